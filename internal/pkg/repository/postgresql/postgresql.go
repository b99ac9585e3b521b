package postgresql

import (
	"context"
	"database/sql"
	"net"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"

	"timeclock/backend/foundation/web"
	"timeclock/backend/internal/auth"
)

type Config struct {
	Username   string
	Password   string
	Host       string
	Port       string
	Name       string
	DisableTLS bool
	Debug      bool
}

// Database is the bun handle shared by every repository.
type Database struct {
	*bun.DB
}

func NewDB(ctx context.Context, cfg Config) (*Database, error) {
	connector := pgdriver.NewConnector(
		pgdriver.WithNetwork("tcp"),
		pgdriver.WithAddr(net.JoinHostPort(cfg.Host, cfg.Port)),
		pgdriver.WithUser(cfg.Username),
		pgdriver.WithPassword(cfg.Password),
		pgdriver.WithDatabase(cfg.Name),
		pgdriver.WithInsecure(cfg.DisableTLS),
		pgdriver.WithTimeout(5*time.Second),
	)

	db := bun.NewDB(sql.OpenDB(connector), pgdialect.New())
	if cfg.Debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "connecting to postgres")
	}

	return &Database{DB: db}, nil
}

// CheckClaims returns the caller's claims, requiring one of roles when any
// are given.
func (d Database) CheckClaims(ctx context.Context, roles ...string) (auth.Claims, error) {
	claims, err := auth.GetClaims(ctx)
	if err != nil {
		return auth.Claims{}, err
	}

	if len(roles) > 0 && !claims.Authorized(roles...) {
		return auth.Claims{}, web.NewRequestError(errors.New("attempted action is not allowed"), http.StatusForbidden)
	}

	return claims, nil
}

// ValidateStruct rejects s when any of the named fields is unset.
func (d Database) ValidateStruct(s interface{}, fields ...string) error {
	if missing := web.Required(s, fields...); len(missing) > 0 {
		return &web.Error{
			Err:    errors.New("field validation error"),
			Status: http.StatusBadRequest,
			Fields: missing,
		}
	}

	return nil
}
