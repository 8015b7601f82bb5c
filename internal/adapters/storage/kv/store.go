// Package kv holds the short-lived per-session key/value state of the web
// frontend: the token pair and the invoice wizard of each browser session.
package kv

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned by Get when the key is absent or expired.
var ErrNotFound = errors.New("kv: key not found")

// Store is a key/value store with per-entry expiry.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Sweeper is implemented by stores that need expired entries removed explicitly.
type Sweeper interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// Driver identifiers.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
)

// Config selects and configures a backend.
type Config struct {
	Driver    string
	RedisAddr string
	// Prefix is prepended to every key in shared backends (Redis).
	Prefix string
}

// Dependencies carries handles owned by the caller.
type Dependencies struct {
	SQL SQLDB
}

// New builds the store selected by cfg.Driver (memory when empty).
// PRE: the sqlite driver needs deps.SQL with the session_kv table migrated
// POST: returns a ready store or a configuration error
func New(cfg Config, deps Dependencies) (Store, error) {
	switch cfg.Driver {
	case "", DriverMemory:
		return NewMemory(), nil
	case DriverSQLite:
		if deps.SQL == nil {
			return nil, fmt.Errorf("sqlite driver requires a database handle")
		}
		return NewSQLite(deps.SQL), nil
	case DriverRedis:
		return NewRedis(context.Background(), cfg.RedisAddr, cfg.Prefix)
	default:
		return nil, fmt.Errorf("unsupported kv driver: %s", cfg.Driver)
	}
}
