// Package store owns the relational connection: driver selection per
// provider, pool sizing, and the destructive reset step.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/eduforge/eduforge/internal/config"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

// Conn is the narrow surface the writer and runner need. *sql.DB is
// adapted behind it so tests can substitute a fake.
type Conn interface {
	Exec(ctx context.Context, query string, args ...any) error
	Query(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	Begin(ctx context.Context) (Tx, error)
	Session(ctx context.Context) (Session, error)
	Close() error
}

// Session pins a single underlying connection. Statements whose effect
// is session-scoped (MySQL FOREIGN_KEY_CHECKS) must all run here; the
// pool gives no guarantee that consecutive Exec calls share a session.
type Session interface {
	Exec(ctx context.Context, query string, args ...any) error
	Close() error
}

type Tx interface {
	Exec(ctx context.Context, query string, args ...any) error
	Commit() error
	Rollback() error
}

type sqlConn struct {
	db *sql.DB
}

type sqlTx struct {
	tx *sql.Tx
}

type sqlSession struct {
	conn *sql.Conn
}

// Open connects using the configured provider and sizes the pool to at
// least the fan-out worker count so concurrent jobs cannot starve.
func Open(cfg *config.Config) (Conn, error) {
	dbURL, err := cfg.DatabaseURL()
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driverName(cfg.Database.Provider), dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	poolSize := cfg.Database.PoolSize
	if poolSize < cfg.Workers {
		poolSize = cfg.Workers
	}
	db.SetMaxOpenConns(poolSize)
	db.SetMaxIdleConns(poolSize)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &sqlConn{db: db}, nil
}

func driverName(provider string) string {
	switch provider {
	case "postgresql", "postgres":
		return "pgx"
	case "mysql":
		return "mysql"
	case "sqlite", "sqlite3":
		return "sqlite3"
	default:
		return "mysql"
	}
}

// Placeholder returns the bind-parameter style for the provider.
func Placeholder(provider string) squirrel.PlaceholderFormat {
	switch provider {
	case "postgresql", "postgres":
		return squirrel.Dollar
	default:
		return squirrel.Question
	}
}

func (c *sqlConn) Exec(ctx context.Context, query string, args ...any) error {
	_, err := c.db.ExecContext(ctx, query, args...)
	return err
}

func (c *sqlConn) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return c.db.QueryContext(ctx, query, args...)
}

func (c *sqlConn) Begin(ctx context.Context) (Tx, error) {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &sqlTx{tx: tx}, nil
}

func (c *sqlConn) Session(ctx context.Context) (Session, error) {
	conn, err := c.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire connection: %w", err)
	}
	return &sqlSession{conn: conn}, nil
}

func (c *sqlConn) Close() error {
	return c.db.Close()
}

func (s *sqlSession) Exec(ctx context.Context, query string, args ...any) error {
	_, err := s.conn.ExecContext(ctx, query, args...)
	return err
}

func (s *sqlSession) Close() error {
	return s.conn.Close()
}

func (t *sqlTx) Exec(ctx context.Context, query string, args ...any) error {
	_, err := t.tx.ExecContext(ctx, query, args...)
	return err
}

func (t *sqlTx) Commit() error {
	return t.tx.Commit()
}

func (t *sqlTx) Rollback() error {
	return t.tx.Rollback()
}
