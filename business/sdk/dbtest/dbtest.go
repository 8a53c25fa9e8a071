// Package dbtest provides an in-memory database with storers for every
// business domain, so the business and app layers can be exercised in tests
// without a running Postgres.
package dbtest

import (
	"bytes"
	"context"
	"database/sql"
	"maps"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/headless-cms/business/domain/contentbus"
	"github.com/jcpaschoal/headless-cms/business/domain/schemabus"
	"github.com/jcpaschoal/headless-cms/business/domain/tenantbus"
	"github.com/jcpaschoal/headless-cms/business/domain/userbus"
	"github.com/jcpaschoal/headless-cms/business/domain/userbus/stores/usercache"
	"github.com/jcpaschoal/headless-cms/business/sdk/sqldb"
	"github.com/jcpaschoal/headless-cms/foundation/logger"
	"github.com/jcpaschoal/headless-cms/foundation/otel"
	"golang.org/x/crypto/bcrypt"
)

// DB is the in-memory backing store. Every storer built from the same DB
// shares its tables. A transaction snapshots the tables on Begin and
// restores them on Rollback.
type DB struct {
	mu           sync.Mutex
	tenants      map[uuid.UUID]tenantbus.Tenant
	users        map[uuid.UUID]userbus.User
	contentTypes map[uuid.UUID]schemabus.ContentType
	contents     map[uuid.UUID]contentbus.Content
	mutations    int
}

// NewDB constructs an empty in-memory database.
func NewDB() *DB {
	return &DB{
		tenants:      make(map[uuid.UUID]tenantbus.Tenant),
		users:        make(map[uuid.UUID]userbus.User),
		contentTypes: make(map[uuid.UUID]schemabus.ContentType),
		contents:     make(map[uuid.UUID]contentbus.Content),
	}
}

// Mutations returns the number of writes the storers have applied.
func (db *DB) Mutations() int {
	db.mu.Lock()
	defer db.mu.Unlock()

	return db.mutations
}

// Begin implements the sqldb.Beginner interface.
func (db *DB) Begin() (sqldb.CommitRollbacker, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	t := tx{
		db:           db,
		tenants:      maps.Clone(db.tenants),
		users:        maps.Clone(db.users),
		contentTypes: maps.Clone(db.contentTypes),
		contents:     maps.Clone(db.contents),
		mutations:    db.mutations,
	}

	return &t, nil
}

type tx struct {
	db           *DB
	done         bool
	tenants      map[uuid.UUID]tenantbus.Tenant
	users        map[uuid.UUID]userbus.User
	contentTypes map[uuid.UUID]schemabus.ContentType
	contents     map[uuid.UUID]contentbus.Content
	mutations    int
}

func (t *tx) Commit() error {
	if t.done {
		return sql.ErrTxDone
	}
	t.done = true

	return nil
}

func (t *tx) Rollback() error {
	if t.done {
		return sql.ErrTxDone
	}
	t.done = true

	t.db.mu.Lock()
	defer t.db.mu.Unlock()

	t.db.tenants = t.tenants
	t.db.users = t.users
	t.db.contentTypes = t.contentTypes
	t.db.contents = t.contents
	t.db.mutations = t.mutations

	return nil
}

// =============================================================================

// BusDomain represents all the business domain apis needed for testing.
type BusDomain struct {
	Tenant  *tenantbus.Core
	User    *userbus.Core
	Schema  *schemabus.Core
	Content *contentbus.Core
}

// Database owns the in-memory state and the business apis built on it.
type Database struct {
	Log       *logger.Logger
	DB        *DB
	BusDomain BusDomain
}

// Option configures the business apis built by New.
type Option func(o *options)

type options struct {
	enforceSchema bool
}

// WithSchemaEnforcement turns on content validation against content types.
func WithSchemaEnforcement() Option {
	return func(o *options) {
		o.enforceSchema = true
	}
}

// New creates an in-memory database and the business apis for it. Users are
// read through the same cache the service runs with. Log output is captured
// and printed only when the test fails.
func New(t *testing.T, testName string, opts ...Option) *Database {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var buf bytes.Buffer
	log := logger.New(&buf, logger.LevelInfo, testName, func(ctx context.Context) string { return otel.GetTraceID(ctx) })

	t.Cleanup(func() {
		if t.Failed() {
			t.Logf("******************** LOGS (%s) ********************\n\n%s", testName, buf.String())
		}
	})

	db := NewDB()

	schemaBus := schemabus.NewCore(log, NewSchemaStore(db))

	return &Database{
		Log: log,
		DB:  db,
		BusDomain: BusDomain{
			Tenant:  tenantbus.NewCore(log, NewTenantStore(db)),
			User:    userbus.NewCore(usercache.NewStore(log, NewUserStore(db), time.Minute), userbus.WithBcryptCost(bcrypt.MinCost)),
			Schema:  schemaBus,
			Content: contentbus.NewCore(log, schemaBus, NewContentStore(db), contentbus.WithSchemaEnforcement(o.enforceSchema)),
		},
	}
}
