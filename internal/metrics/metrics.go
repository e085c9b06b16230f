// Package metrics exposes decoder activity as Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/samcharles93/op2geom/pkg/op2"
)

const namespace = "op2geom"

// Metrics holds the collectors of one registry.
type Metrics struct {
	registry *prometheus.Registry

	entitiesTotal  *prometheus.CounterVec
	recordsTotal   *prometheus.CounterVec
	streamsTotal   *prometheus.CounterVec
	decodeDuration prometheus.Histogram
	streamBytes    prometheus.Histogram
	cacheLookups   *prometheus.CounterVec
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
}

// New creates and registers every collector on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		entitiesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "entities_total",
				Help:      "Entities registered, by card.",
			},
			[]string{"card"},
		),
		recordsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "records_total",
				Help:      "Records seen, by outcome (decoded, skipped, marker, or a failure kind).",
			},
			[]string{"outcome"},
		),
		streamsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "streams_total",
				Help:      "Streams decoded, by status.",
			},
			[]string{"status"},
		),
		decodeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "decode_duration_seconds",
			Help:      "Time spent decoding one stream.",
			Buckets:   prometheus.DefBuckets,
		}),
		streamBytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stream_bytes",
			Help:      "Size of decoded streams.",
			Buckets:   prometheus.ExponentialBuckets(1024, 4, 10),
		}),
		cacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_lookups_total",
				Help:      "Decode cache lookups, by result.",
			},
			[]string{"result"},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "HTTP requests, by route and status code.",
			},
			[]string{"method", "route", "code"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
	m.registry.MustRegister(
		m.entitiesTotal,
		m.recordsTotal,
		m.streamsTotal,
		m.decodeDuration,
		m.streamBytes,
		m.cacheLookups,
		m.httpRequests,
		m.httpDuration,
	)
	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveStream records the outcome of one DecodeStream call.
func (m *Metrics) ObserveStream(stats op2.Stats, size int, elapsed time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.streamsTotal.WithLabelValues(status).Inc()
	m.decodeDuration.Observe(elapsed.Seconds())
	m.streamBytes.Observe(float64(size))

	m.recordsTotal.WithLabelValues("decoded").Add(float64(stats.Decoded))
	m.recordsTotal.WithLabelValues("skipped").Add(float64(stats.Skipped))
	m.recordsTotal.WithLabelValues("marker").Add(float64(stats.Markers))
	for kind, n := range stats.Failed {
		m.recordsTotal.WithLabelValues(kind).Add(float64(n))
	}
}

// ObserveCache records a cache hit or miss.
func (m *Metrics) ObserveCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

// ObserveHTTP records one served request.
func (m *Metrics) ObserveHTTP(method, route string, code int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Sink counts entities per card on their way to next.
type Sink struct {
	next op2.EntitySink
	m    *Metrics
}

// WrapSink decorates next with entity counting.
func (m *Metrics) WrapSink(next op2.EntitySink) *Sink {
	return &Sink{next: next, m: m}
}

func (s *Sink) RegisterEntity(e op2.Entity) {
	s.m.entitiesTotal.WithLabelValues(e.Card()).Inc()
	s.next.RegisterEntity(e)
}

func (s *Sink) IncrementRecordCount(name string, n int) {
	s.next.IncrementRecordCount(name, n)
}
