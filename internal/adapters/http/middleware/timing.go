package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/adapters/http/perf"
)

// DefaultSlowRequest is the threshold used when none is configured.
const DefaultSlowRequest = 200 * time.Millisecond

// RequestIDHeader carries the per-process request number back to the browser.
const RequestIDHeader = "X-Request-ID"

var requestSeq atomic.Uint64

// statusWriter remembers the status code written by a page handler.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (sw *statusWriter) WriteHeader(code int) {
	sw.status = code
	sw.ResponseWriter.WriteHeader(code)
}

var statusWriters = sync.Pool{New: func() any { return new(statusWriter) }}

// Timing logs every page request and feeds the perf collector. Requests at or
// above slow are logged at WARN, the rest at DEBUG. Static assets pass
// through untimed.
func Timing(collector *perf.Collector, slow time.Duration) func(http.Handler) http.Handler {
	if slow <= 0 {
		slow = DefaultSlowRequest
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasPrefix(r.URL.Path, "/static/") {
				next.ServeHTTP(w, r)
				return
			}

			id := requestSeq.Add(1)
			w.Header().Set(RequestIDHeader, strconv.FormatUint(id, 10))

			sw := statusWriters.Get().(*statusWriter)
			sw.ResponseWriter, sw.status = w, http.StatusOK
			start := time.Now()

			next.ServeHTTP(sw, r)

			elapsed := time.Since(start)
			ms := float64(elapsed.Microseconds()) / 1000.0
			level, msg := slog.LevelDebug, "request"
			if elapsed >= slow {
				level, msg = slog.LevelWarn, "slow_request"
			}
			slog.Log(r.Context(), level, msg,
				"request_id", id,
				"method", r.Method,
				"path", r.URL.Path,
				"status", sw.status,
				"duration_ms", ms,
			)
			if collector != nil {
				collector.Record(perf.Entry{
					Kind:       perf.KindRequest,
					Path:       r.Method + " " + r.URL.Path,
					StatusCode: sw.status,
					DurationMs: ms,
					Timestamp:  start,
				})
			}

			sw.ResponseWriter = nil
			statusWriters.Put(sw)
		})
	}
}
