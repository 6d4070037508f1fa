// Package metrics exposes Prometheus collectors for the store and services.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"skillswap/internal/domain"
	"skillswap/internal/store"
)

type Metrics struct {
	Dispatches    *prometheus.CounterVec
	MatchDuration prometheus.Histogram
	MatchCache    *prometheus.CounterVec
	Broadcasts    prometheus.Counter
	HTTPRequests  *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// New registers the collectors with a fresh registry that also carries the
// Go and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return NewWithRegistry(reg, reg)
}

func NewWithRegistry(reg prometheus.Registerer, gatherer prometheus.Gatherer) *Metrics {
	m := &Metrics{
		Dispatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "skillswap",
			Name:      "dispatch_total",
			Help:      "State transitions dispatched, by action and result.",
		}, []string{"action", "result"}),
		MatchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "skillswap",
			Name:      "match_duration_seconds",
			Help:      "Time spent computing match lists.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		MatchCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "skillswap",
			Name:      "match_cache_total",
			Help:      "Match cache lookups, by result.",
		}, []string{"result"}),
		Broadcasts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "skillswap",
			Name:      "broadcasts_total",
			Help:      "Admin broadcast messages sent.",
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "skillswap",
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by method and status code.",
		}, []string{"method", "code"}),
		gatherer: gatherer,
	}
	reg.MustRegister(m.Dispatches, m.MatchDuration, m.MatchCache, m.Broadcasts, m.HTTPRequests)
	return m
}

// ObserveDispatch is a store.Observer.
func (m *Metrics) ObserveDispatch(a store.Action, _ store.State, err error) {
	name := "unknown"
	if a != nil {
		name = a.Name()
	}
	m.Dispatches.WithLabelValues(name, result(err)).Inc()
}

func result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, domain.ErrValidation):
		return "validation"
	default:
		return "error"
	}
}

func (m *Metrics) ObserveMatch(d time.Duration) {
	m.MatchDuration.Observe(d.Seconds())
}

func (m *Metrics) CacheHit()   { m.MatchCache.WithLabelValues("hit").Inc() }
func (m *Metrics) CacheMiss()  { m.MatchCache.WithLabelValues("miss").Inc() }
func (m *Metrics) CacheError() { m.MatchCache.WithLabelValues("error").Inc() }

func (m *Metrics) Broadcast() { m.Broadcasts.Inc() }

func (m *Metrics) ObserveHTTP(method string, status int) {
	m.HTTPRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
