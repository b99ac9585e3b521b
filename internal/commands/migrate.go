package commands

import (
	"context"
	"database/sql"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"golang.org/x/crypto/bcrypt"

	"timeclock/backend/internal/auth"
	"timeclock/backend/internal/entity"
	"timeclock/backend/internal/pkg/repository/postgresql"
)

type Scheme struct {
	Index       int
	Description string
	Query       string
}

var scheme = []Scheme{
	{
		Index:       1,
		Description: "Create extension: pgcrypto.",
		Query:       `CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
	},
	{
		Index:       2,
		Description: "Create table: companies.",
		Query: `
        CREATE TABLE IF NOT EXISTS companies (
            id uuid primary key default gen_random_uuid(),
            name text not null,
            created_at timestamptz not null default now()
        );`,
	},
	{
		Index:       3,
		Description: "Create table: workers.",
		Query: `
        CREATE TABLE IF NOT EXISTS workers (
            id uuid primary key default gen_random_uuid(),
            company_id uuid not null references companies(id),
            email text not null,
            full_name text,
            password text not null,
            role text not null check (role IN ('ADMIN', 'EMPLOYEE')),
            created_at timestamptz not null default now()
        );
        CREATE UNIQUE INDEX IF NOT EXISTS workers_email_idx ON workers (lower(email));`,
	},
	{
		Index:       4,
		Description: "Create table: punch_events.",
		Query: `
        CREATE TABLE IF NOT EXISTS punch_events (
            id uuid primary key default gen_random_uuid(),
            worker_id uuid not null references workers(id),
            company_id uuid not null references companies(id),
            type text not null check (type IN ('clock_in', 'clock_out', 'pause_start', 'pause_end')),
            punched_at timestamptz not null,
            created_at timestamptz not null default now()
        );
        CREATE INDEX IF NOT EXISTS punch_events_worker_idx ON punch_events (worker_id, punched_at, created_at);`,
	},
}

// MigrateUP applies every scheme entry newer than the recorded version. A
// failed entry leaves the version dirty; it is retried on the next run.
func MigrateUP(ctx context.Context, db *postgresql.Database) error {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (version int not null, dirty bool not null, error text)`); err != nil {
		return errors.Wrap(err, "creating schema_migrations")
	}

	var (
		version int
		dirty   bool
	)

	err := db.QueryRowContext(ctx, `SELECT version, dirty FROM schema_migrations`).Scan(&version, &dirty)
	if errors.Is(err, sql.ErrNoRows) {
		if _, err = db.ExecContext(ctx, `INSERT INTO schema_migrations (version, dirty) VALUES (0, false)`); err != nil {
			return errors.Wrap(err, "initialising schema_migrations")
		}
	} else if err != nil {
		return errors.Wrap(err, "reading schema_migrations")
	}

	if dirty {
		version--
	}

	for _, s := range scheme {
		if s.Index <= version {
			continue
		}

		log.Printf("migrate: %d %s", s.Index, s.Description)

		if _, err = db.ExecContext(ctx, s.Query); err != nil {
			if _, uerr := db.ExecContext(ctx, `UPDATE schema_migrations SET version = ?, dirty = true, error = ?`, s.Index, err.Error()); uerr != nil {
				return errors.Wrap(uerr, "recording migration failure")
			}
			return errors.Wrapf(err, "migrate version %d", s.Index)
		}

		if _, err = db.ExecContext(ctx, `UPDATE schema_migrations SET version = ?, dirty = false, error = null`, s.Index); err != nil {
			return errors.Wrap(err, "recording migration")
		}
	}

	return nil
}

type Seed struct {
	CompanyName   string
	AdminEmail    string
	AdminPassword string
}

// SeedAdmin creates the first company and its admin when no worker exists.
func SeedAdmin(ctx context.Context, db *postgresql.Database, seed Seed) error {
	if seed.AdminEmail == "" || seed.AdminPassword == "" {
		return nil
	}

	exists, err := db.NewSelect().Model((*entity.Worker)(nil)).Exists(ctx)
	if err != nil {
		return errors.Wrap(err, "checking workers")
	}
	if exists {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seed.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return errors.Wrap(err, "hashing admin password")
	}

	now := time.Now().UTC()
	name := seed.CompanyName
	company := entity.Company{ID: uuid.New(), Name: &name, CreatedAt: now}

	email := strings.TrimSpace(seed.AdminEmail)
	password, role, fullName := string(hash), auth.RoleAdmin, "Administrator"
	admin := entity.Worker{
		ID:        uuid.New(),
		CompanyID: company.ID,
		Email:     &email,
		FullName:  &fullName,
		Password:  &password,
		Role:      &role,
		CreatedAt: now,
	}

	return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(&company).Exec(ctx); err != nil {
			return errors.Wrap(err, "creating company")
		}
		if _, err := tx.NewInsert().Model(&admin).Exec(ctx); err != nil {
			return errors.Wrap(err, "creating admin")
		}

		log.Printf("seeded company %q with admin %s", name, email)

		return nil
	})
}
