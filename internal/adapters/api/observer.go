package api

import (
	"strings"
	"time"
)

// Refresh outcomes reported to an Observer.
const (
	RefreshSuccess = "success"
	RefreshFailed  = "failed"
	RefreshNoToken = "no_token"
)

// Observer receives client telemetry.
// status is 0 when the request failed before a response arrived.
type Observer interface {
	ObserveRequest(method, route string, status int, d time.Duration)
	ObserveRefresh(outcome string)
}

// NopObserver discards everything.
type NopObserver struct{}

func (NopObserver) ObserveRequest(string, string, int, time.Duration) {}
func (NopObserver) ObserveRefresh(string)                             {}

// Observers fans out to several observers.
type Observers []Observer

func (o Observers) ObserveRequest(method, route string, status int, d time.Duration) {
	for _, obs := range o {
		obs.ObserveRequest(method, route, status, d)
	}
}

func (o Observers) ObserveRefresh(outcome string) {
	for _, obs := range o {
		obs.ObserveRefresh(outcome)
	}
}

// RouteLabel turns a request path into a low-cardinality label:
// the query is dropped and numeric segments become {id}.
func RouteLabel(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	parts := strings.Split(path, "/")
	for i, p := range parts {
		if p != "" && isDigits(p) {
			parts[i] = "{id}"
		}
	}
	return strings.Join(parts, "/")
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
