package main

import (
	"context"
	"encoding/json"
	"errors"
	"expvar"
	"fmt"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/jcpaschoal/headless-cms/api/cmd/build/all"
	"github.com/jcpaschoal/headless-cms/app/sdk/auth"
	"github.com/jcpaschoal/headless-cms/app/sdk/mux"
	"github.com/jcpaschoal/headless-cms/business/domain/contentbus"
	"github.com/jcpaschoal/headless-cms/business/domain/contentbus/stores/contentdb"
	"github.com/jcpaschoal/headless-cms/business/domain/schemabus"
	"github.com/jcpaschoal/headless-cms/business/domain/schemabus/stores/schemadb"
	"github.com/jcpaschoal/headless-cms/business/domain/tenantbus"
	"github.com/jcpaschoal/headless-cms/business/domain/tenantbus/stores/tenantdb"
	"github.com/jcpaschoal/headless-cms/business/domain/userbus"
	"github.com/jcpaschoal/headless-cms/business/domain/userbus/stores/usercache"
	"github.com/jcpaschoal/headless-cms/business/domain/userbus/stores/userdb"
	"github.com/jcpaschoal/headless-cms/business/sdk/sqldb"
	"github.com/jcpaschoal/headless-cms/foundation/logger"
	"github.com/jcpaschoal/headless-cms/foundation/otel"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var build = "develop"

type Config struct {
	Version struct {
		Build string `json:"build"`
		Desc  string `json:"desc"`
	} `json:"version"`

	Web struct {
		ReadTimeout        time.Duration `envconfig:"WEB_READ_TIMEOUT" default:"5s"`
		WriteTimeout       time.Duration `envconfig:"WEB_WRITE_TIMEOUT" default:"10s"`
		IdleTimeout        time.Duration `envconfig:"WEB_IDLE_TIMEOUT" default:"120s"`
		ShutdownTimeout    time.Duration `envconfig:"WEB_SHUTDOWN_TIMEOUT" default:"20s"`
		APIHost            string        `envconfig:"WEB_API_HOST" default:"0.0.0.0:3001"`
		DebugHost          string        `envconfig:"WEB_DEBUG_HOST" default:"0.0.0.0:3011"`
		CORSAllowedOrigins []string      `envconfig:"WEB_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
		DevMode            bool          `envconfig:"WEB_DEV_MODE" default:"false"`
	}
	Auth struct {
		Secret      string        `envconfig:"AUTH_SECRET" default:"dev-secret-key"`
		Issuer      string        `envconfig:"AUTH_ISSUER" default:"headless-cms"`
		TokenExpiry time.Duration `envconfig:"AUTH_TOKEN_EXPIRY" default:"168h"`
		BcryptCost  int           `envconfig:"AUTH_BCRYPT_COST" default:"10"`
	}
	DB struct {
		User         string `envconfig:"DB_USER" default:"postgres"`
		Password     string `envconfig:"DB_PASSWORD" default:"postgres"`
		Host         string `envconfig:"DB_HOST" default:"localhost:5432"`
		Name         string `envconfig:"DB_NAME" default:"cms"`
		MaxIdleConns int    `envconfig:"DB_MAX_IDLE_CONNS" default:"2"`
		MaxOpenConns int    `envconfig:"DB_MAX_OPEN_CONNS" default:"10"`
		DisableTLS   bool   `envconfig:"DB_DISABLE_TLS" default:"true"`
	}
	Tempo struct {
		Host        string  `envconfig:"TEMPO_HOST" default:""`
		ServiceName string  `envconfig:"TEMPO_SERVICE_NAME" default:"headless-cms"`
		Probability float64 `envconfig:"TEMPO_PROBABILITY" default:"0.05"`
	}
	Content struct {
		EnforceSchema bool `envconfig:"CONTENT_ENFORCE_SCHEMA" default:"false"`
	}
	Cache struct {
		UserTTL time.Duration `envconfig:"CACHE_USER_TTL" default:"1m"`
	}
}

func main() {
	var log *logger.Logger

	events := logger.Events{
		Error: func(ctx context.Context, r logger.Record) {
			log.Info(ctx, "******* SEND ALERT *******")
		},
	}

	log = logger.NewWithEvents(os.Stdout, logger.LevelInfo, "CMS", otel.GetTraceID, events)

	// -------------------------------------------------------------------------

	ctx := context.Background()

	if err := run(ctx, log); err != nil {
		log.Error(ctx, "startup", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *logger.Logger) error {

	// -------------------------------------------------------------------------
	// GOMAXPROCS

	log.Info(ctx, "startup", "GOMAXPROCS", runtime.GOMAXPROCS(0))

	// -------------------------------------------------------------------------
	// Configuration

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	var cfg Config

	cfg.Version.Build = build
	cfg.Version.Desc = "Headless CMS"

	if err := envconfig.Process("CMS", &cfg); err != nil {
		return fmt.Errorf("processing config: %w", err)
	}

	// -------------------------------------------------------------------------
	// App Starting

	log.Info(ctx, "starting service", "version", cfg.Version.Build)
	defer log.Info(ctx, "shutdown complete")

	log.Info(ctx, "startup", "config", sanitizeConfig(cfg))

	log.BuildInfo(ctx)

	expvar.NewString("build").Set(cfg.Version.Build)

	// -------------------------------------------------------------------------
	// Database Support

	log.Info(ctx, "startup", "status", "initializing database support", "hostport", cfg.DB.Host)

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

	if err := sqldb.StatusCheck(ctx, db); err != nil {
		return fmt.Errorf("checking db: %w", err)
	}

	// -------------------------------------------------------------------------
	// Start Tracing Support

	log.Info(ctx, "startup", "status", "initializing tracing support")

	traceProvider, teardown, err := otel.InitTracing(log, otel.Config{
		ServiceName: cfg.Tempo.ServiceName,
		Host:        cfg.Tempo.Host,
		ExcludedRoutes: map[string]struct{}{
			"/api/health":    {},
			"/api/readiness": {},
		},
		Probability: cfg.Tempo.Probability,
	})
	if err != nil {
		return fmt.Errorf("starting tracing: %w", err)
	}

	defer teardown(context.Background())

	tracer := traceProvider.Tracer(cfg.Tempo.ServiceName)

	// -------------------------------------------------------------------------
	// Business Support

	log.Info(ctx, "startup", "status", "initializing business support")

	tenantBus := tenantbus.NewCore(log, tenantdb.NewStore(log, db))
	userBus := userbus.NewCore(
		usercache.NewStore(log, userdb.NewStore(log, db), cfg.Cache.UserTTL),
		userbus.WithBcryptCost(cfg.Auth.BcryptCost),
	)
	schemaBus := schemabus.NewCore(log, schemadb.NewStore(log, db))
	contentBus := contentbus.NewCore(log, schemaBus, contentdb.NewStore(log, db),
		contentbus.WithSchemaEnforcement(cfg.Content.EnforceSchema),
	)

	// -------------------------------------------------------------------------
	// Auth Support

	log.Info(ctx, "startup", "status", "initializing authentication support")

	ath, err := auth.New(auth.Config{
		Log:     log,
		UserBus: userBus,
		Secret:  cfg.Auth.Secret,
		Issuer:  cfg.Auth.Issuer,
		Expiry:  cfg.Auth.TokenExpiry,
	})
	if err != nil {
		return fmt.Errorf("constructing auth: %w", err)
	}

	// -------------------------------------------------------------------------
	// Start Debug Service

	go func() {
		log.Info(ctx, "startup", "status", "debug router started", "host", cfg.Web.DebugHost)

		if err := http.ListenAndServe(cfg.Web.DebugHost, debugMux()); err != nil {
			log.Error(ctx, "shutdown", "status", "debug router closed", "host", cfg.Web.DebugHost, "msg", err)
		}
	}()

	// -------------------------------------------------------------------------
	// Start API Service

	log.Info(ctx, "startup", "status", "initializing API support")

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	cfgMux := mux.Config{
		Build:    cfg.Version.Build,
		Log:      log,
		DB:       db,
		Beginner: sqldb.NewBeginner(db),
		Tracer:   tracer,
		DevMode:  cfg.Web.DevMode,
		BusConfig: mux.BusConfig{
			TenantBus:  tenantBus,
			UserBus:    userBus,
			SchemaBus:  schemaBus,
			ContentBus: contentBus,
		},
		AuthConfig: mux.AuthConfig{
			Auth: ath,
		},
	}

	webAPI := mux.WebAPI(cfgMux,
		all.Routes(),
		mux.WithCORS(cfg.Web.CORSAllowedOrigins),
	)

	api := http.Server{
		Addr:         cfg.Web.APIHost,
		Handler:      webAPI,
		ReadTimeout:  cfg.Web.ReadTimeout,
		WriteTimeout: cfg.Web.WriteTimeout,
		IdleTimeout:  cfg.Web.IdleTimeout,
		ErrorLog:     logger.NewStdLogger(log, logger.LevelError),
	}

	serverErrors := make(chan error, 1)

	go func() {
		log.Info(ctx, "startup", "status", "api router started", "host", api.Addr)
		serverErrors <- api.ListenAndServe()
	}()

	// -------------------------------------------------------------------------
	// Shutdown

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		log.Info(ctx, "shutdown", "status", "shutdown started", "signal", sig)
		defer log.Info(ctx, "shutdown", "status", "shutdown complete", "signal", sig)

		ctx, cancel := context.WithTimeout(ctx, cfg.Web.ShutdownTimeout)
		defer cancel()

		if err := api.Shutdown(ctx); err != nil {
			api.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}

// debugMux registers the profiling, expvar and prometheus endpoints on a
// mux separate from the API.
func debugMux() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	mux.Handle("/debug/vars", expvar.Handler())
	mux.Handle("/metrics", promhttp.Handler())

	return mux
}

func sanitizeConfig(cfg Config) string {
	cfg.DB.Password = "[MASKED]"
	cfg.Auth.Secret = "[MASKED]"

	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Sprintf("%+v", cfg)
	}
	return string(data)
}
