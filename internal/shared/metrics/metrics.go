// Package metrics exposes Prometheus instrumentation for the dashboard:
//
//	shotboard_query_duration_seconds   histogram by query and status
//	shotboard_query_errors_total       counter by query
//	shotboard_selection_events_total   counter by event and result
//	shotboard_http_requests_total      counter by method, route and status
//	shotboard_sessions_active          gauge
//
// All methods are no-ops on a nil *Metrics so components can run without
// instrumentation in tests.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"shotboard/internal/shared/errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	QueryDuration   *prometheus.HistogramVec
	QueryErrors     *prometheus.CounterVec
	SelectionEvents *prometheus.CounterVec
	HTTPRequests    *prometheus.CounterVec
	ActiveSessions  prometheus.Gauge
}

// New registers every collector on reg. Registering twice on the same
// registry panics, like prometheus.MustRegister.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		QueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "shotboard_query_duration_seconds",
			Help:    "Aggregation and reference query latency in seconds.",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"query", "status"}),
		QueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "shotboard_query_errors_total",
			Help: "Queries that failed and were replaced by an empty result.",
		}, []string{"query"}),
		SelectionEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "shotboard_selection_events_total",
			Help: "Dashboard selection events by outcome.",
		}, []string{"event", "result"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "shotboard_http_requests_total",
			Help: "HTTP requests handled.",
		}, []string{"method", "route", "status"}),
		ActiveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "shotboard_sessions_active",
			Help: "Dashboard sessions currently held in memory.",
		}),
	}

	reg.MustRegister(m.QueryDuration, m.QueryErrors, m.SelectionEvents, m.HTTPRequests, m.ActiveSessions)
	return m
}

func (m *Metrics) ObserveQuery(name string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
		m.QueryErrors.WithLabelValues(name).Inc()
	}
	m.QueryDuration.WithLabelValues(name, status).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveSelection(event string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	switch {
	case err == nil:
	case errors.Is(err, errors.ErrorTypeLookup), errors.Is(err, errors.ErrorTypeValidation):
		result = "rejected"
	default:
		result = "error"
	}
	m.SelectionEvents.WithLabelValues(event, result).Inc()
}

func (m *Metrics) SetActiveSessions(n int) {
	if m == nil {
		return
	}
	m.ActiveSessions.Set(float64(n))
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware counts requests by matched route pattern rather than raw path,
// so session ids do not explode label cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		m.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
	})
}

// Handler serves the registry at the scrape endpoint.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
