// This program performs administrative tasks for the CMS service.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/mail"
	"os"
	"time"

	"github.com/jcpaschoal/headless-cms/business/domain/tenantbus"
	"github.com/jcpaschoal/headless-cms/business/domain/tenantbus/stores/tenantdb"
	"github.com/jcpaschoal/headless-cms/business/domain/userbus"
	"github.com/jcpaschoal/headless-cms/business/domain/userbus/stores/userdb"
	"github.com/jcpaschoal/headless-cms/business/sdk/migrate"
	"github.com/jcpaschoal/headless-cms/business/sdk/sqldb"
	"github.com/jcpaschoal/headless-cms/business/types/name"
	"github.com/jcpaschoal/headless-cms/business/types/password"
	"github.com/jcpaschoal/headless-cms/business/types/role"
	"github.com/jcpaschoal/headless-cms/business/types/slug"
	"github.com/jcpaschoal/headless-cms/foundation/logger"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds the database settings shared with the API service.
type Config struct {
	DB struct {
		User         string `envconfig:"DB_USER" default:"postgres"`
		Password     string `envconfig:"DB_PASSWORD" default:"postgres"`
		Host         string `envconfig:"DB_HOST" default:"localhost:5432"`
		Name         string `envconfig:"DB_NAME" default:"cms"`
		MaxIdleConns int    `envconfig:"DB_MAX_IDLE_CONNS" default:"0"`
		MaxOpenConns int    `envconfig:"DB_MAX_OPEN_CONNS" default:"0"`
		DisableTLS   bool   `envconfig:"DB_DISABLE_TLS" default:"true"`
	}
	Auth struct {
		BcryptCost int `envconfig:"AUTH_BCRYPT_COST" default:"10"`
	}
}

func main() {
	log := logger.New(os.Stdout, logger.LevelInfo, "CMS-ADMIN", nil)
	ctx := context.Background()

	if err := run(ctx, log); err != nil {
		log.Error(ctx, "admin", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *logger.Logger) error {
	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		fmt.Println("Commands: migrate, create-admin")
		return nil
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("CMS", &cfg); err != nil {
		return fmt.Errorf("processing config: %w", err)
	}

	db, err := sqldb.Open(sqldb.Config{
		User:         cfg.DB.User,
		Password:     cfg.DB.Password,
		Host:         cfg.DB.Host,
		Name:         cfg.DB.Name,
		MaxIdleConns: cfg.DB.MaxIdleConns,
		MaxOpenConns: cfg.DB.MaxOpenConns,
		DisableTLS:   cfg.DB.DisableTLS,
	})
	if err != nil {
		return fmt.Errorf("connecting to db: %w", err)
	}
	defer db.Close()

	switch os.Args[1] {
	case "migrate":
		return runMigrate(ctx, log, db)

	case "create-admin":
		tenantBus := tenantbus.NewCore(log, tenantdb.NewStore(log, db))
		userBus := userbus.NewCore(userdb.NewStore(log, db), userbus.WithBcryptCost(cfg.Auth.BcryptCost))

		return runCreateAdmin(ctx, sqldb.NewBeginner(db), tenantBus, userBus, os.Args[2:])

	default:
		return fmt.Errorf("unknown command: %s", os.Args[1])
	}
}

func runMigrate(ctx context.Context, log *logger.Logger, db *sqlx.DB) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := migrate.Migrate(ctx, db); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	log.Info(ctx, "migrate", "status", "migrations complete")
	return nil
}

// runCreateAdmin creates an admin user, creating the tenant when the slug
// is not yet taken. Both writes share one transaction.
func runCreateAdmin(ctx context.Context, bgn sqldb.Beginner, tb *tenantbus.Core, ub *userbus.Core, args []string) (err error) {
	cmd := flag.NewFlagSet("create-admin", flag.ExitOnError)
	slugStr := cmd.String("tenant-slug", "", "Tenant slug (Required)")
	emailStr := cmd.String("email", "", "Admin email (Required)")
	passStr := cmd.String("password", "", "Admin password (Required)")
	nameStr := cmd.String("name", "", "Admin full name (Required)")
	cmd.Parse(args)

	if *slugStr == "" || *emailStr == "" || *passStr == "" || *nameStr == "" {
		cmd.PrintDefaults()
		return errors.New("missing required fields")
	}

	slg, err := slug.Parse(*slugStr)
	if err != nil {
		return fmt.Errorf("invalid tenant slug: %w", err)
	}

	n, err := name.Parse(*nameStr)
	if err != nil {
		return fmt.Errorf("invalid name: %w", err)
	}

	p, err := password.Parse(*passStr)
	if err != nil {
		return fmt.Errorf("invalid password: %w", err)
	}

	email, err := mail.ParseAddress(*emailStr)
	if err != nil {
		return fmt.Errorf("invalid email: %w", err)
	}

	tx, err := bgn.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	tb, err = tb.NewWithTx(tx)
	if err != nil {
		return err
	}

	ub, err = ub.NewWithTx(tx)
	if err != nil {
		return err
	}

	tnt, created, err := tb.FindOrCreate(ctx, slg)
	if err != nil {
		return fmt.Errorf("tenant: %w", err)
	}

	usr, err := ub.Create(ctx, userbus.NewUser{
		TenantID: tnt.ID,
		Name:     n,
		Email:    *email,
		Role:     role.Admin,
		Password: p,
	})
	if err != nil {
		return fmt.Errorf("create admin: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	fmt.Printf("\nSUCCESS: admin created!\nTenant: %s (%s) new=%t\nID: %s\nEmail: %s\n", tnt.Slug, tnt.ID, created, usr.ID, usr.Email.Address)
	return nil
}
