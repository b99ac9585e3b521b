package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"timeclock/backend/foundation/web"
)

const (
	RoleAdmin    = "ADMIN"
	RoleEmployee = "EMPLOYEE"
)

type ctxKey int

// Key is used to store/retrieve a Claims value from a context.Context.
const Key ctxKey = 1

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.RegisteredClaims
	UserId    uuid.UUID `json:"user_id"`
	CompanyId uuid.UUID `json:"company_id"`
	Role      string    `json:"role"`
}

// Authorized returns true if the claims has at least one of the provided roles.
func (c Claims) Authorized(roles ...string) bool {
	for _, has := range roles {
		if c.Role == has {
			return true
		}
	}

	return false
}

// CanRead reports whether the caller may see workerID's punches: an admin
// within their own company, anyone for themselves.
func (c Claims) CanRead(workerID, companyID uuid.UUID) bool {
	if c.UserId == workerID {
		return true
	}

	return c.Role == RoleAdmin && c.CompanyId == companyID
}

// Auth signs and validates HS256 tokens.
type Auth struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

func New(key string, ttl time.Duration) (*Auth, error) {
	if key == "" {
		return nil, errors.New("empty signing key")
	}

	return &Auth{key: []byte(key), ttl: ttl, now: time.Now}, nil
}

// GenerateToken issues a token for the worker.
func (a *Auth) GenerateToken(userID, companyID uuid.UUID, role string) (string, error) {
	now := a.now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
		UserId:    userID,
		CompanyId: companyID,
		Role:      role,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.key)
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}

	return token, nil
}

// ValidateToken recreates the Claims that were used to generate a token.
func (a *Auth) ValidateToken(tokenStr string) (Claims, error) {
	var claims Claims

	_, err := jwt.ParseWithClaims(tokenStr, &claims, func(*jwt.Token) (interface{}, error) {
		return a.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(a.now))
	if err != nil {
		return Claims{}, errors.Wrap(err, "parsing token")
	}

	return claims, nil
}

// GetClaims returns the claims stored by the Authenticate middleware.
func GetClaims(ctx context.Context) (Claims, error) {
	claims, ok := ctx.Value(Key).(Claims)
	if !ok {
		return Claims{}, web.NewRequestError(errors.New("claims missing from context"), http.StatusUnauthorized)
	}

	return claims, nil
}
