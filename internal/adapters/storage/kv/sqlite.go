package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/adapters/storage"
)

// SQLDB is the subset of storage.SQLDB the SQLite store needs.
type SQLDB = storage.SQLDB

// timeLayout is fixed-width so expires_at compares correctly as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// SQLite stores entries in the session_kv table.
type SQLite struct {
	db  SQLDB
	now func() time.Time
}

var (
	_ Store   = (*SQLite)(nil)
	_ Sweeper = (*SQLite)(nil)
)

// NewSQLite wraps a migrated database handle.
// PRE: storage.MigrateDB has been run on db
func NewSQLite(db SQLDB) *SQLite {
	return &SQLite{db: db, now: time.Now}
}

func stamp(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func (s *SQLite) Get(ctx context.Context, key string) ([]byte, error) {
	ctx = storage.WithLabel(ctx, "kv.Get")
	var value []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM session_kv WHERE key = ? AND expires_at > ?`,
		key, stamp(s.now()),
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("kv get: %w", err)
	}
	return value, nil
}

func (s *SQLite) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	ctx = storage.WithLabel(ctx, "kv.Put")
	now := s.now()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO session_kv (key, value, expires_at, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value,
		   expires_at = excluded.expires_at, updated_at = excluded.updated_at`,
		key, value, stamp(now.Add(ttl)), stamp(now),
	)
	if err != nil {
		return fmt.Errorf("kv put: %w", err)
	}
	return nil
}

func (s *SQLite) Delete(ctx context.Context, key string) error {
	ctx = storage.WithLabel(ctx, "kv.Delete")
	if _, err := s.db.ExecContext(ctx, `DELETE FROM session_kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("kv delete: %w", err)
	}
	return nil
}

// DeleteExpired removes rows whose expiry is at or before now.
// PRE: none
// POST: returns the number of rows removed
func (s *SQLite) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	ctx = storage.WithLabel(ctx, "kv.DeleteExpired")
	res, err := s.db.ExecContext(ctx, `DELETE FROM session_kv WHERE expires_at <= ?`, stamp(now))
	if err != nil {
		return 0, fmt.Errorf("kv sweep: %w", err)
	}
	return res.RowsAffected()
}
