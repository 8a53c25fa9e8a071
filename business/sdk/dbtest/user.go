package dbtest

import (
	"cmp"
	"context"
	"fmt"
	"net/mail"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/jcpaschoal/headless-cms/business/domain/userbus"
	"github.com/jcpaschoal/headless-cms/business/sdk/order"
	"github.com/jcpaschoal/headless-cms/business/sdk/page"
	"github.com/jcpaschoal/headless-cms/business/sdk/sqldb"
)

// UserStore implements userbus.Storer in memory.
type UserStore struct {
	db *DB
}

// NewUserStore constructs a user storer on the database.
func NewUserStore(db *DB) *UserStore {
	return &UserStore{db: db}
}

// NewWithTx returns the same store; transactions act on the whole DB.
func (s *UserStore) NewWithTx(tx sqldb.CommitRollbacker) (userbus.Storer, error) {
	return s, nil
}

func (s *UserStore) Create(ctx context.Context, usr userbus.User) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if s.emailTaken(usr) {
		return fmt.Errorf("create: %w", userbus.ErrUniqueEmail)
	}

	s.db.users[usr.ID] = usr
	s.db.mutations++

	return nil
}

func (s *UserStore) Update(ctx context.Context, usr userbus.User) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if s.emailTaken(usr) {
		return userbus.ErrUniqueEmail
	}

	cur, ok := s.db.users[usr.ID]
	if ok && cur.TenantID == usr.TenantID {
		s.db.users[usr.ID] = usr
		s.db.mutations++
	}

	return nil
}

func (s *UserStore) Delete(ctx context.Context, usr userbus.User) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	cur, ok := s.db.users[usr.ID]
	if ok && cur.TenantID == usr.TenantID {
		delete(s.db.users, usr.ID)
		s.db.mutations++
	}

	return nil
}

func (s *UserStore) Query(ctx context.Context, filter userbus.QueryFilter, orderBy order.By, pg page.Page) ([]userbus.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	usrs := s.filter(filter)

	less, err := userLess(orderBy.Field)
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(usrs, func(a, b userbus.User) int {
		if orderBy.Direction == order.DESC {
			return less(b, a)
		}
		return less(a, b)
	})

	start := min(pg.Offset(), len(usrs))
	end := min(start+pg.RowsPerPage(), len(usrs))

	return usrs[start:end], nil
}

func (s *UserStore) Count(ctx context.Context, filter userbus.QueryFilter) (int, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	return len(s.filter(filter)), nil
}

func (s *UserStore) QueryByID(ctx context.Context, userID uuid.UUID) (userbus.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	usr, ok := s.db.users[userID]
	if !ok {
		return userbus.User{}, fmt.Errorf("db: %w", userbus.ErrNotFound)
	}

	return usr, nil
}

func (s *UserStore) QueryByEmail(ctx context.Context, email mail.Address) (userbus.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for _, usr := range s.db.users {
		if strings.EqualFold(usr.Email.Address, email.Address) {
			return usr, nil
		}
	}

	return userbus.User{}, fmt.Errorf("db: %w", userbus.ErrNotFound)
}

func (s *UserStore) emailTaken(usr userbus.User) bool {
	for id, cur := range s.db.users {
		if id != usr.ID && strings.EqualFold(cur.Email.Address, usr.Email.Address) {
			return true
		}
	}
	return false
}

func (s *UserStore) filter(filter userbus.QueryFilter) []userbus.User {
	var usrs []userbus.User

	for _, usr := range s.db.users {
		switch {
		case filter.ID != nil && usr.ID != *filter.ID:
			continue
		case filter.TenantID != nil && usr.TenantID != *filter.TenantID:
			continue
		case filter.Name != nil && !strings.Contains(strings.ToLower(usr.Name.String()), strings.ToLower(filter.Name.String())):
			continue
		case filter.Email != nil && !strings.EqualFold(usr.Email.Address, filter.Email.Address):
			continue
		case filter.Role != nil && !usr.Role.Equal(*filter.Role):
			continue
		case filter.Active != nil && usr.Active != *filter.Active:
			continue
		case filter.StartCreatedAt != nil && usr.CreatedAt.Before(*filter.StartCreatedAt):
			continue
		case filter.EndCreatedAt != nil && usr.CreatedAt.After(*filter.EndCreatedAt):
			continue
		}

		usrs = append(usrs, usr)
	}

	return usrs
}

func userLess(field string) (func(a, b userbus.User) int, error) {
	switch field {
	case userbus.OrderByID:
		return func(a, b userbus.User) int { return cmp.Compare(a.ID.String(), b.ID.String()) }, nil
	case userbus.OrderByName:
		return func(a, b userbus.User) int { return cmp.Compare(a.Name.String(), b.Name.String()) }, nil
	case userbus.OrderByEmail:
		return func(a, b userbus.User) int { return cmp.Compare(a.Email.Address, b.Email.Address) }, nil
	case userbus.OrderByRole:
		return func(a, b userbus.User) int { return cmp.Compare(a.Role.String(), b.Role.String()) }, nil
	case userbus.OrderByActive:
		return func(a, b userbus.User) int {
			switch {
			case a.Active == b.Active:
				return 0
			case !a.Active:
				return -1
			}
			return 1
		}, nil
	case userbus.OrderByCreatedAt:
		return func(a, b userbus.User) int { return a.CreatedAt.Compare(b.CreatedAt) }, nil
	}

	return nil, fmt.Errorf("field %q does not exist", field)
}
