// Package store is the only code that talks to the target database.
package store

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"db-seed/internal/dialect"
)

// Session is one exclusively held connection.
type Session interface {
	Begin(ctx context.Context) (Unit, error)
	Close() error
}

// Unit is one commit unit (a transaction).
type Unit interface {
	Exec(ctx context.Context, stmt string) error
	Commit() error
	Rollback() error
}

// Opener acquires a Session.
type Opener func(ctx context.Context) (Session, error)

// Connect opens and pings the target database.
func Connect(ctx context.Context, d dialect.Dialect, c dialect.Conn) (*sql.DB, error) {
	db, err := sql.Open(d.DriverName(), d.DSN(c))
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to db: %w", err)
	}
	return db, nil
}

// Open returns an Opener that pins a single pooled connection per Session, so
// session state such as the selected database survives between units.
func Open(db *sql.DB) Opener {
	return func(ctx context.Context) (Session, error) {
		conn, err := db.Conn(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to acquire connection: %w", err)
		}
		return &sqlSession{conn: conn}, nil
	}
}

type sqlSession struct {
	conn *sql.Conn
}

func (s *sqlSession) Begin(ctx context.Context) (Unit, error) {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &sqlUnit{tx: tx}, nil
}

func (s *sqlSession) Close() error {
	return s.conn.Close()
}

type sqlUnit struct {
	tx *sql.Tx
}

func (u *sqlUnit) Exec(ctx context.Context, stmt string) error {
	_, err := u.tx.ExecContext(ctx, stmt)
	return err
}

func (u *sqlUnit) Commit() error   { return u.tx.Commit() }
func (u *sqlUnit) Rollback() error { return u.tx.Rollback() }

// Counter counts table rows for post-load verification.
type Counter struct {
	DB      *sql.DB
	Dialect dialect.Dialect
}

func (c Counter) Count(ctx context.Context, table string) (int, error) {
	var n int
	err := sq.Select("COUNT(*)").
		From(c.Dialect.QuoteIdent(table)).
		PlaceholderFormat(c.Dialect.PlaceholderFormat()).
		RunWith(c.DB).
		QueryRowContext(ctx).
		Scan(&n)
	return n, err
}
