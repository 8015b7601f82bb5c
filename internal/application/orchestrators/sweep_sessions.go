package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// DefaultSweepInterval is how often expired session entries are removed.
const DefaultSweepInterval = 15 * time.Minute

// ExpiredSweeper deletes session entries whose TTL has passed.
type ExpiredSweeper interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// SweepSessionsDeps holds dependencies for SweepSessions.
type SweepSessionsDeps struct {
	Store ExpiredSweeper
	Now   func() time.Time // optional, defaults to time.Now
}

// ExecuteSweepSessions removes expired token and wizard entries.
// PRE: deps.Store is connected
// POST: returns the number of removed entries
func ExecuteSweepSessions(ctx context.Context, deps SweepSessionsDeps) (int64, error) {
	now := time.Now
	if deps.Now != nil {
		now = deps.Now
	}
	n, err := deps.Store.DeleteExpired(ctx, now())
	if err != nil {
		return 0, fmt.Errorf("sweep sessions: %w", err)
	}
	if n > 0 {
		slog.Info("session_sweep", "event", "removed", "count", n)
	}
	return n, nil
}

// StartSessionSweeper runs ExecuteSweepSessions every interval in the background.
// PRE: stopCh is provided to signal shutdown
// POST: worker runs until stopCh is closed
func StartSessionSweeper(deps SweepSessionsDeps, interval time.Duration, stopCh <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
				if _, err := ExecuteSweepSessions(ctx, deps); err != nil {
					slog.Error("session_sweep", "event", "failed", "error", err)
				}
				cancel()
			case <-stopCh:
				slog.Info("session_sweep", "event", "stopped")
				return
			}
		}
	}()
}
