package storage

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/adapters/http/perf"
)

// SQLDB is the database interface used by the session stores.
// Both *sql.DB and *TimedDB satisfy this interface.
type SQLDB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var _ SQLDB = (*sql.DB)(nil)

// DefaultSlowQuery is the threshold above which a statement is logged at warn level.
const DefaultSlowQuery = 50 * time.Millisecond

type labelKey struct{}

// WithLabel names the statements run with ctx, e.g. "kv.Get".
func WithLabel(ctx context.Context, label string) context.Context {
	return context.WithValue(ctx, labelKey{}, label)
}

func labelFrom(ctx context.Context, fallback string) string {
	if l, ok := ctx.Value(labelKey{}).(string); ok && l != "" {
		return l
	}
	return fallback
}

// TimedDB times every statement against the session database. Statements
// slower than the threshold are logged at WARN and failures at ERROR; all of
// them land in the perf collector when one is set.
type TimedDB struct {
	db        *sql.DB
	collector *perf.Collector
	threshold time.Duration
}

var _ SQLDB = (*TimedDB)(nil)

// NewTimedDB wraps db. A non-positive slow uses DefaultSlowQuery.
func NewTimedDB(db *sql.DB, collector *perf.Collector, slow time.Duration) *TimedDB {
	if slow <= 0 {
		slow = DefaultSlowQuery
	}
	return &TimedDB{db: db, collector: collector, threshold: slow}
}

func (t *TimedDB) observe(ctx context.Context, op string, start time.Time, err error) {
	elapsed := time.Since(start)
	label := labelFrom(ctx, op)
	ms := float64(elapsed.Microseconds()) / 1000.0

	switch {
	case err != nil && !errors.Is(err, context.Canceled):
		slog.Error("query_failed", "op", label, "duration_ms", ms, "error", err)
	case elapsed >= t.threshold:
		slog.Warn("slow_query", "op", label, "duration_ms", ms)
	default:
		slog.Debug("query", "op", label, "duration_ms", ms)
	}

	if t.collector != nil {
		t.collector.Record(perf.Entry{Kind: perf.KindQuery, Path: label, DurationMs: ms, Timestamp: start})
	}
}

func (t *TimedDB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	start := time.Now()
	res, err := t.db.ExecContext(ctx, query, args...)
	t.observe(ctx, "exec", start, err)
	return res, err
}

func (t *TimedDB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	start := time.Now()
	rows, err := t.db.QueryContext(ctx, query, args...)
	t.observe(ctx, "query", start, err)
	return rows, err
}

// QueryRowContext defers its error to Scan, so failures are only timed.
func (t *TimedDB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	start := time.Now()
	row := t.db.QueryRowContext(ctx, query, args...)
	t.observe(ctx, "query_row", start, nil)
	return row
}
