// Package metrics exports API client telemetry to Prometheus and to the
// in-process perf collector.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/adapters/api"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/adapters/http/perf"
)

const namespace = "lagana"

// Prometheus records API round trips and refresh outcomes.
type Prometheus struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	refresh  *prometheus.CounterVec
}

var _ api.Observer = (*Prometheus)(nil)

// NewPrometheus registers the client metrics on a private registry
// together with the Go runtime and process collectors.
func NewPrometheus() *Prometheus {
	reg := prometheus.NewRegistry()
	p := &Prometheus{
		registry: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Coaching API requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "Coaching API round-trip latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		refresh: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "refresh_total",
			Help:      "Token refresh attempts by outcome.",
		}, []string{"outcome"}),
	}
	reg.MustRegister(
		p.requests, p.latency, p.refresh,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return p
}

// ObserveRequest counts one round trip; status 0 is reported as "error".
func (p *Prometheus) ObserveRequest(method, route string, status int, d time.Duration) {
	code := "error"
	if status > 0 {
		code = strconv.Itoa(status)
	}
	p.requests.WithLabelValues(method, route, code).Inc()
	p.latency.WithLabelValues(method, route).Observe(d.Seconds())
}

func (p *Prometheus) ObserveRefresh(outcome string) {
	p.refresh.WithLabelValues(outcome).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

// Registry exposes the registry for tests and extra collectors.
func (p *Prometheus) Registry() *prometheus.Registry {
	return p.registry
}

// Perf feeds API round trips into the perf collector behind /debug/perf.
type Perf struct {
	Collector *perf.Collector
}

var _ api.Observer = Perf{}

func (p Perf) ObserveRequest(method, route string, status int, d time.Duration) {
	if p.Collector == nil {
		return
	}
	p.Collector.Record(perf.Entry{
		Kind:       perf.KindUpstream,
		Path:       method + " " + route,
		StatusCode: status,
		DurationMs: float64(d.Microseconds()) / 1000.0,
		Timestamp:  time.Now().Add(-d),
	})
}

func (Perf) ObserveRefresh(string) {}
