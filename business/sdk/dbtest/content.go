package dbtest

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/jcpaschoal/headless-cms/business/domain/contentbus"
	"github.com/jcpaschoal/headless-cms/business/sdk/sqldb"
	"github.com/jcpaschoal/headless-cms/business/types/slug"
)

// ContentStore implements contentbus.Storer in memory.
type ContentStore struct {
	db *DB
}

// NewContentStore constructs a content storer on the database.
func NewContentStore(db *DB) *ContentStore {
	return &ContentStore{db: db}
}

// NewWithTx returns the same store; transactions act on the whole DB.
func (s *ContentStore) NewWithTx(tx sqldb.CommitRollbacker) (contentbus.Storer, error) {
	return s, nil
}

func (s *ContentStore) Create(ctx context.Context, cnt contentbus.Content) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	s.db.contents[cnt.ID] = cnt
	s.db.mutations++

	return nil
}

func (s *ContentStore) Update(ctx context.Context, cnt contentbus.Content) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	cur, ok := s.db.contents[cnt.ID]
	if ok && cur.TenantID == cnt.TenantID && cur.ContentTypeSlug.Equal(cnt.ContentTypeSlug) {
		s.db.contents[cnt.ID] = cnt
		s.db.mutations++
	}

	return nil
}

func (s *ContentStore) Delete(ctx context.Context, cnt contentbus.Content) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	cur, ok := s.db.contents[cnt.ID]
	if ok && cur.TenantID == cnt.TenantID && cur.ContentTypeSlug.Equal(cnt.ContentTypeSlug) {
		delete(s.db.contents, cnt.ID)
		s.db.mutations++
	}

	return nil
}

func (s *ContentStore) Query(ctx context.Context, filter contentbus.QueryFilter) ([]contentbus.Content, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	cnts := []contentbus.Content{}
	for _, cnt := range s.db.contents {
		switch {
		case cnt.TenantID != filter.TenantID:
			continue
		case !cnt.ContentTypeSlug.Equal(filter.ContentTypeSlug):
			continue
		case filter.IsDraft != nil && cnt.IsDraft != *filter.IsDraft:
			continue
		}

		cnts = append(cnts, cnt)
	}

	slices.SortStableFunc(cnts, func(a, b contentbus.Content) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	return cnts, nil
}

func (s *ContentStore) QueryByID(ctx context.Context, tenantID uuid.UUID, slg slug.Slug, contentID uuid.UUID) (contentbus.Content, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	cnt, ok := s.db.contents[contentID]
	if !ok || cnt.TenantID != tenantID || !cnt.ContentTypeSlug.Equal(slg) {
		return contentbus.Content{}, fmt.Errorf("db: %w", contentbus.ErrNotFound)
	}

	return cnt, nil
}
