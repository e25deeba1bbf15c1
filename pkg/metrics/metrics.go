package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// SupplierMetrics records upstream hotel-API call outcomes.
type SupplierMetrics struct {
	duration *prometheus.HistogramVec
	failures *prometheus.CounterVec
}

// NewSupplierMetrics registers the supplier metrics on the provided registerer.
func NewSupplierMetrics(reg prometheus.Registerer) *SupplierMetrics {
	if reg == nil {
		return &SupplierMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "supplier_request_duration_seconds",
		Help:    "Duration of supplier API calls in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "supplier_request_failures",
		Help: "Failed supplier API calls.",
	}, []string{"operation"})
	reg.MustRegister(duration, failures)
	return &SupplierMetrics{duration: duration, failures: failures}
}

// ObserveDuration records the call duration for the named operation.
func (s *SupplierMetrics) ObserveDuration(operation string, duration time.Duration) {
	if s == nil || s.duration == nil {
		return
	}
	s.duration.WithLabelValues(normalizeLabel(operation)).Observe(duration.Seconds())
}

// IncFailure increments the failure counter for the named operation.
func (s *SupplierMetrics) IncFailure(operation string) {
	if s == nil || s.failures == nil {
		return
	}
	s.failures.WithLabelValues(normalizeLabel(operation)).Inc()
}

// CacheMetrics records cache-aside hit/miss outcomes per flow.
type CacheMetrics struct {
	hits   *prometheus.CounterVec
	misses *prometheus.CounterVec
}

// NewCacheMetrics registers the cache metrics on the provided registerer.
func NewCacheMetrics(reg prometheus.Registerer) *CacheMetrics {
	if reg == nil {
		return &CacheMetrics{}
	}
	hits := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cache_hits",
		Help: "Cache-aside hits per flow.",
	}, []string{"flow"})
	misses := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cache_misses",
		Help: "Cache-aside misses per flow.",
	}, []string{"flow"})
	reg.MustRegister(hits, misses)
	return &CacheMetrics{hits: hits, misses: misses}
}

// IncHit increments the hit counter for the named flow.
func (c *CacheMetrics) IncHit(flow string) {
	if c == nil || c.hits == nil {
		return
	}
	c.hits.WithLabelValues(normalizeLabel(flow)).Inc()
}

// IncMiss increments the miss counter for the named flow.
func (c *CacheMetrics) IncMiss(flow string) {
	if c == nil || c.misses == nil {
		return
	}
	c.misses.WithLabelValues(normalizeLabel(flow)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
