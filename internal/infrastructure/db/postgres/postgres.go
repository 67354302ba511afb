// Package postgres implements the marketplace repositories on PostgreSQL
// through pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/99minutos/job-marketplace/internal/core/domain"
)

const (
	// defaultTimeout bounds connecting and every repository call.
	defaultTimeout = 5 * time.Second

	uniqueViolation = "23505"
)

// DB is the subset of *pgxpool.Pool the repositories use.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Config holds the pool settings.
type Config struct {
	DSN      string
	MaxConns int32
	MinConns int32
}

// Connect creates a connection pool and verifies it with a ping.
func Connect(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}
	poolCfg.MaxConns = 10
	poolCfg.MinConns = 2
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return pool, nil
}

// Store bundles the repositories sharing one pool.
type Store struct {
	Users        *UserRepository
	Jobs         *JobRepository
	Applications *ApplicationRepository
}

func NewStore(db DB) *Store {
	return &Store{
		Users:        NewUserRepository(db),
		Jobs:         NewJobRepository(db),
		Applications: NewApplicationRepository(db),
	}
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		email         TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		role          TEXT NOT NULL,
		display_name  TEXT NOT NULL DEFAULT '',
		created_at    TIMESTAMPTZ NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS users_email_key ON users (email)`,
	`CREATE TABLE IF NOT EXISTS jobs (
		id            TEXT PRIMARY KEY,
		poster_id     TEXT NOT NULL,
		title         TEXT NOT NULL,
		company       TEXT NOT NULL DEFAULT '',
		location      TEXT NOT NULL DEFAULT '',
		job_type      TEXT NOT NULL DEFAULT '',
		comp_text     TEXT NOT NULL DEFAULT '',
		comp_amount   NUMERIC,
		comp_currency TEXT NOT NULL DEFAULT '',
		comp_period   TEXT NOT NULL DEFAULT '',
		contact       TEXT NOT NULL,
		description   TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS jobs_created_idx ON jobs (created_at DESC, id DESC)`,
	`CREATE INDEX IF NOT EXISTS jobs_poster_idx ON jobs (poster_id, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS applications (
		id         TEXT PRIMARY KEY,
		job_id     TEXT NOT NULL,
		seeker_id  TEXT NOT NULL,
		message    TEXT NOT NULL DEFAULT '',
		applied_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS applications_job_idx ON applications (job_id, applied_at DESC)`,
	`CREATE INDEX IF NOT EXISTS applications_seeker_idx ON applications (seeker_id, applied_at DESC)`,
}

// EnsureSchema creates the tables and indexes if they are missing.
// applications.job_id carries no foreign key: deleting a job leaves its
// applications in place.
func EnsureSchema(ctx context.Context, db DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, domain.ErrStoreUnavailable, err)
}
