// Package auth provides authentication and authorization support.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/casbin/casbin/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jcpaschoal/headless-cms/business/domain/userbus"
	"github.com/jcpaschoal/headless-cms/business/types/actions"
	"github.com/jcpaschoal/headless-cms/business/types/resource"
	"github.com/jcpaschoal/headless-cms/business/types/role"
	"github.com/jcpaschoal/headless-cms/foundation/logger"
)

// Set of errors the auth package can return.
var (
	ErrMissingHeader = errors.New("missing or invalid authorization header")
	ErrInvalidToken  = errors.New("invalid or expired token")
	ErrForbidden     = errors.New("attempted action is not allowed")
	ErrUserDisabled  = errors.New("user is disabled")
)

// DefaultExpiry is the lifetime of a token when none is configured.
const DefaultExpiry = 7 * 24 * time.Hour

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"userId"`
	TenantID string `json:"tenantId"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// NewClaims builds the claims that identify the user.
func NewClaims(usr userbus.User) Claims {
	return Claims{
		UserID:   usr.ID.String(),
		TenantID: usr.TenantID.String(),
		Email:    usr.Email.Address,
		Role:     usr.Role.String(),
	}
}

// UserUUID returns the user id carried by the claims.
func (c Claims) UserUUID() (uuid.UUID, error) {
	return uuid.Parse(c.UserID)
}

// TenantUUID returns the tenant id carried by the claims.
func (c Claims) TenantUUID() (uuid.UUID, error) {
	return uuid.Parse(c.TenantID)
}

// Config represents information required to initialize auth.
type Config struct {
	Log     *logger.Logger
	UserBus *userbus.Core
	Secret  string
	Issuer  string
	Expiry  time.Duration
}

// Auth is used to authenticate clients.
type Auth struct {
	log      *logger.Logger
	userBus  *userbus.Core
	enforcer *casbin.SyncedEnforcer
	secret   []byte
	method   jwt.SigningMethod
	parser   *jwt.Parser
	issuer   string
	expiry   time.Duration
}

// New creates an Auth to support authentication/authorization. A nil
// UserBus skips the check that the principal still exists and is active.
func New(cfg Config) (*Auth, error) {
	enforcer, err := newEnforcer()
	if err != nil {
		return nil, fmt.Errorf("role policies: %w", err)
	}

	expiry := cfg.Expiry
	if expiry <= 0 {
		expiry = DefaultExpiry
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}

	a := Auth{
		log:      cfg.Log,
		userBus:  cfg.UserBus,
		enforcer: enforcer,
		secret:   []byte(cfg.Secret),
		method:   jwt.SigningMethodHS256,
		parser:   jwt.NewParser(opts...),
		issuer:   cfg.Issuer,
		expiry:   expiry,
	}

	return &a, nil
}

// Issuer provides the configured issuer used to authenticate tokens.
func (a *Auth) Issuer() string {
	return a.issuer
}

// GenerateToken signs the claims. The registered claims for subject,
// issuer and lifetime are always set here.
func (a *Auth) GenerateToken(claims Claims) (string, error) {
	now := time.Now()

	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   claims.UserID,
		Issuer:    a.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(a.expiry)),
	}

	token := jwt.NewWithClaims(a.method, claims)

	str, err := token.SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	return str, nil
}

// VerifyToken checks the signature, algorithm, expiry and issuer of the
// token and returns its claims. It does not touch any store.
func (a *Auth) VerifyToken(tokenStr string) (Claims, error) {
	var claims Claims

	token, err := a.parser.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		return a.secret, nil
	})
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	if _, err := role.Parse(claims.Role); err != nil {
		return Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if _, err := claims.UserUUID(); err != nil {
		return Claims{}, fmt.Errorf("%w: user id: %w", ErrInvalidToken, err)
	}

	if _, err := claims.TenantUUID(); err != nil {
		return Claims{}, fmt.Errorf("%w: tenant id: %w", ErrInvalidToken, err)
	}

	return claims, nil
}

// Authenticate processes the Authorization header value and validates the
// bearer token it carries.
func (a *Auth) Authenticate(ctx context.Context, bearerToken string) (Claims, error) {
	tokenStr, ok := strings.CutPrefix(bearerToken, "Bearer ")
	if !ok || strings.TrimSpace(tokenStr) == "" {
		return Claims{}, ErrMissingHeader
	}

	claims, err := a.VerifyToken(tokenStr)
	if err != nil {
		return Claims{}, err
	}

	if err := a.isUserEnabled(ctx, claims); err != nil {
		a.log.Info(ctx, "**Authenticate-FAILED**", "userID", claims.UserID, "ERROR", err)
		return Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	return claims, nil
}

// Authorize checks the role in the claims is granted the action on the
// resource by the role policies.
func (a *Auth) Authorize(claims Claims, res resource.Resource, act actions.Action) error {
	ok, err := a.enforcer.Enforce(claims.Role, res.String(), act.String())
	if err != nil {
		return fmt.Errorf("enforce: %w", err)
	}

	if !ok {
		return fmt.Errorf("%w: role %q cannot %s %s", ErrForbidden, claims.Role, act, res)
	}

	return nil
}

// AllowedRoles lists the roles granted the action on the resource, highest
// privilege first.
func (a *Auth) AllowedRoles(res resource.Resource, act actions.Action) []role.Role {
	var allowed []role.Role
	for _, r := range role.All() {
		if ok, err := a.enforcer.Enforce(r.String(), res.String(), act.String()); err == nil && ok {
			allowed = append(allowed, r)
		}
	}

	return allowed
}

// Login verifies the credentials and returns the user.
func (a *Auth) Login(ctx context.Context, email mail.Address, password string) (userbus.User, error) {
	usr, err := a.userBus.Authenticate(ctx, email, password)
	if err != nil {
		return userbus.User{}, fmt.Errorf("login: %w", err)
	}

	return usr, nil
}

// isUserEnabled checks the principal still exists and is active. Lookups go
// through the user cache when the bus was built on it.
func (a *Auth) isUserEnabled(ctx context.Context, claims Claims) error {
	if a.userBus == nil {
		return nil
	}

	userID, err := claims.UserUUID()
	if err != nil {
		return fmt.Errorf("parsing user ID %q from claims: %w", claims.UserID, err)
	}

	usr, err := a.userBus.QueryByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("query user: %w", err)
	}

	if !usr.Active {
		return ErrUserDisabled
	}

	return nil
}
