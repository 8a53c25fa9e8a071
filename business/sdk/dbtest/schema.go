package dbtest

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/jcpaschoal/headless-cms/business/domain/schemabus"
	"github.com/jcpaschoal/headless-cms/business/sdk/sqldb"
	"github.com/jcpaschoal/headless-cms/business/types/slug"
)

// SchemaStore implements schemabus.Storer in memory.
type SchemaStore struct {
	db *DB
}

// NewSchemaStore constructs a content type storer on the database.
func NewSchemaStore(db *DB) *SchemaStore {
	return &SchemaStore{db: db}
}

// NewWithTx returns the same store; transactions act on the whole DB.
func (s *SchemaStore) NewWithTx(tx sqldb.CommitRollbacker) (schemabus.Storer, error) {
	return s, nil
}

func (s *SchemaStore) Create(ctx context.Context, ct schemabus.ContentType) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for _, cur := range s.db.contentTypes {
		if cur.TenantID == ct.TenantID && cur.Slug.Equal(ct.Slug) {
			return fmt.Errorf("create: %w", schemabus.ErrUniqueSlug)
		}
	}

	s.db.contentTypes[ct.ID] = ct
	s.db.mutations++

	return nil
}

func (s *SchemaStore) Update(ctx context.Context, ct schemabus.ContentType) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	cur, ok := s.db.contentTypes[ct.ID]
	if ok && cur.TenantID == ct.TenantID {
		s.db.contentTypes[ct.ID] = ct
		s.db.mutations++
	}

	return nil
}

func (s *SchemaStore) Delete(ctx context.Context, ct schemabus.ContentType) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	cur, ok := s.db.contentTypes[ct.ID]
	if ok && cur.TenantID == ct.TenantID {
		delete(s.db.contentTypes, ct.ID)
		s.db.mutations++
	}

	return nil
}

func (s *SchemaStore) Query(ctx context.Context, tenantID uuid.UUID) ([]schemabus.ContentType, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	cts := []schemabus.ContentType{}
	for _, ct := range s.db.contentTypes {
		if ct.TenantID == tenantID {
			cts = append(cts, ct)
		}
	}

	slices.SortStableFunc(cts, func(a, b schemabus.ContentType) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})

	return cts, nil
}

func (s *SchemaStore) QueryByID(ctx context.Context, tenantID uuid.UUID, contentTypeID uuid.UUID) (schemabus.ContentType, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	ct, ok := s.db.contentTypes[contentTypeID]
	if !ok || ct.TenantID != tenantID {
		return schemabus.ContentType{}, fmt.Errorf("db: %w", schemabus.ErrNotFound)
	}

	return ct, nil
}

func (s *SchemaStore) QueryBySlug(ctx context.Context, tenantID uuid.UUID, slg slug.Slug) (schemabus.ContentType, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for _, ct := range s.db.contentTypes {
		if ct.TenantID == tenantID && ct.Slug.Equal(slg) {
			return ct, nil
		}
	}

	return schemabus.ContentType{}, fmt.Errorf("db: %w", schemabus.ErrNotFound)
}
