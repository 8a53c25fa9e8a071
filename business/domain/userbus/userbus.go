// Package userbus provides business access to the user domain.
package userbus

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/headless-cms/business/sdk/order"
	"github.com/jcpaschoal/headless-cms/business/sdk/page"
	"github.com/jcpaschoal/headless-cms/business/sdk/sqldb"
	"github.com/jcpaschoal/headless-cms/foundation/otel"
	"golang.org/x/crypto/bcrypt"
)

// Set of error variables for CRUD operations.
var (
	ErrNotFound              = errors.New("user not found")
	ErrUniqueEmail           = errors.New("email is not unique")
	ErrAuthenticationFailure = errors.New("authentication failed")
)

// Storer interface declares the behavior this package needs to persist and
// retrieve data.
type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, usr User) error
	Update(ctx context.Context, usr User) error
	Delete(ctx context.Context, usr User) error
	Query(ctx context.Context, filter QueryFilter, orderBy order.By, page page.Page) ([]User, error)
	Count(ctx context.Context, filter QueryFilter) (int, error)
	QueryByID(ctx context.Context, userID uuid.UUID) (User, error)
	QueryByEmail(ctx context.Context, email mail.Address) (User, error)
}

// Option configures optional Core behavior.
type Option func(c *Core)

// WithBcryptCost overrides the bcrypt cost used to hash passwords.
func WithBcryptCost(cost int) Option {
	return func(c *Core) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			c.cost = cost
		}
	}
}

// Core manages the set of APIs for user access.
type Core struct {
	storer Storer
	cost   int
}

// NewCore constructs a user core API for use.
func NewCore(storer Storer, opts ...Option) *Core {
	c := Core{
		storer: storer,
		cost:   bcrypt.DefaultCost,
	}

	for _, opt := range opts {
		opt(&c)
	}

	return &c
}

// NewWithTx constructs a new Core value that will use the
// specified transaction in any store related calls.
func (c *Core) NewWithTx(tx sqldb.CommitRollbacker) (*Core, error) {
	storer, err := c.storer.NewWithTx(tx)
	if err != nil {
		return nil, err
	}

	return &Core{storer: storer, cost: c.cost}, nil
}

// Create adds a new user to the system. The plaintext password is hashed
// here and never stored.
func (c *Core) Create(ctx context.Context, nu NewUser) (User, error) {
	ctx, span := otel.AddSpan(ctx, "business.userbus.create")
	defer span.End()

	hash, err := bcrypt.GenerateFromPassword([]byte(nu.Password.String()), c.cost)
	if err != nil {
		return User{}, fmt.Errorf("generateFromPassword: %w", err)
	}

	active := true
	if nu.Active != nil {
		active = *nu.Active
	}

	now := time.Now()

	usr := User{
		ID:           uuid.New(),
		TenantID:     nu.TenantID,
		Name:         nu.Name,
		Email:        normalizeEmail(nu.Email),
		PasswordHash: hash,
		Role:         nu.Role,
		Active:       active,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := c.storer.Create(ctx, usr); err != nil {
		return User{}, fmt.Errorf("create: %w", err)
	}

	return usr, nil
}

// Update modifies information about a user. The password is only re-hashed
// when a new one is supplied.
func (c *Core) Update(ctx context.Context, usr User, uu UpdateUser) (User, error) {
	ctx, span := otel.AddSpan(ctx, "business.userbus.update")
	defer span.End()

	if uu.Name != nil {
		usr.Name = *uu.Name
	}

	if uu.Email != nil {
		usr.Email = normalizeEmail(*uu.Email)
	}

	if uu.Role != nil {
		usr.Role = *uu.Role
	}

	if uu.Password != nil {
		pw, err := bcrypt.GenerateFromPassword([]byte(uu.Password.String()), c.cost)
		if err != nil {
			return User{}, fmt.Errorf("generatefrompassword: %w", err)
		}
		usr.PasswordHash = pw
	}

	if uu.Active != nil {
		usr.Active = *uu.Active
	}

	usr.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, usr); err != nil {
		return User{}, fmt.Errorf("update: %w", err)
	}

	return usr, nil
}

// Delete removes the specified user.
func (c *Core) Delete(ctx context.Context, usr User) error {
	ctx, span := otel.AddSpan(ctx, "business.userbus.delete")
	defer span.End()

	if err := c.storer.Delete(ctx, usr); err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	return nil
}

// Query retrieves a list of existing users.
func (c *Core) Query(ctx context.Context, filter QueryFilter, orderBy order.By, page page.Page) ([]User, error) {
	ctx, span := otel.AddSpan(ctx, "business.userbus.query")
	defer span.End()

	users, err := c.storer.Query(ctx, filter, orderBy, page)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	return users, nil
}

// Count returns the total number of users.
func (c *Core) Count(ctx context.Context, filter QueryFilter) (int, error) {
	ctx, span := otel.AddSpan(ctx, "business.userbus.count")
	defer span.End()

	return c.storer.Count(ctx, filter)
}

// QueryByID finds the user by the specified ID.
func (c *Core) QueryByID(ctx context.Context, userID uuid.UUID) (User, error) {
	ctx, span := otel.AddSpan(ctx, "business.userbus.queryByID")
	defer span.End()

	user, err := c.storer.QueryByID(ctx, userID)
	if err != nil {
		return User{}, fmt.Errorf("query: userID[%s]: %w", userID, err)
	}

	return user, nil
}

// QueryInTenant finds the user by ID and reports ErrNotFound when the user
// belongs to a different tenant.
func (c *Core) QueryInTenant(ctx context.Context, tenantID uuid.UUID, userID uuid.UUID) (User, error) {
	usr, err := c.QueryByID(ctx, userID)
	if err != nil {
		return User{}, err
	}

	if usr.TenantID != tenantID {
		return User{}, fmt.Errorf("query: userID[%s] tenantID[%s]: %w", userID, tenantID, ErrNotFound)
	}

	return usr, nil
}

// QueryByEmail finds the user by a specified user email.
func (c *Core) QueryByEmail(ctx context.Context, email mail.Address) (User, error) {
	ctx, span := otel.AddSpan(ctx, "business.userbus.queryByEmail")
	defer span.End()

	user, err := c.storer.QueryByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return User{}, fmt.Errorf("query: email[%s]: %w", email.Address, err)
	}

	return user, nil
}

// Authenticate finds an active user by their email and verifies their
// password. Every failure is reported as ErrAuthenticationFailure so callers
// cannot tell an unknown email from a wrong password.
func (c *Core) Authenticate(ctx context.Context, email mail.Address, password string) (User, error) {
	ctx, span := otel.AddSpan(ctx, "business.userbus.authenticate")
	defer span.End()

	usr, err := c.QueryByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, fmt.Errorf("query: %w", ErrAuthenticationFailure)
		}
		return User{}, err
	}

	if err := bcrypt.CompareHashAndPassword(usr.PasswordHash, []byte(password)); err != nil {
		return User{}, fmt.Errorf("compareHashAndPassword: %w", ErrAuthenticationFailure)
	}

	if !usr.Active {
		return User{}, fmt.Errorf("inactive: %w", ErrAuthenticationFailure)
	}

	return usr, nil
}

func normalizeEmail(addr mail.Address) mail.Address {
	return mail.Address{Name: addr.Name, Address: strings.ToLower(strings.TrimSpace(addr.Address))}
}
