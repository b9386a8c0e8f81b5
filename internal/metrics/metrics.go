// file: internal/metrics/metrics.go
// version: 1.0.0
// guid: 2c4e6a8b-0d1f-4a3b-9c5d-7e9f1b3d5a7c

package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	cacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "swim_admin",
		Name:      "cache_hits_total",
		Help:      "Total number of cache hits",
	})
	cacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "swim_admin",
		Name:      "cache_misses_total",
		Help:      "Total number of cache misses (absent or expired entries)",
	})
	cacheEvictions = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "swim_admin",
		Name:      "cache_evictions_total",
		Help:      "Total number of entries removed by expiry (lazy or sweep)",
	})

	dedupCoalesced = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "swim_admin",
		Name:      "dedup_coalesced_total",
		Help:      "Total number of callers attached to an already in-flight request",
	})

	upstreamRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "swim_admin",
		Name:      "upstream_requests_total",
		Help:      "Total number of upstream API requests by method and outcome",
	}, []string{"method", "outcome"})
	upstreamDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "swim_admin",
		Name:      "upstream_request_duration_seconds",
		Help:      "Histogram of upstream API request durations in seconds",
		Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12), // 10ms up to ~40s
	}, []string{"method"})

	unrecognizedEnvelopes = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "swim_admin",
		Name:      "unrecognized_envelopes_total",
		Help:      "Total number of upstream responses that matched no known envelope shape",
	})
)

// Register initializes metrics with the global Prometheus registry (idempotent)
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(cacheHits, cacheMisses, cacheEvictions,
			dedupCoalesced, upstreamRequests, upstreamDuration, unrecognizedEnvelopes)
	})
}

// Cache counters
func IncCacheHit()      { cacheHits.Inc() }
func IncCacheMiss()     { cacheMisses.Inc() }
func IncCacheEviction() { cacheEvictions.Inc() }

// Dedup counters
func IncDedupCoalesced() { dedupCoalesced.Inc() }

// Upstream request lifecycle
func IncUpstreamRequest(method, outcome string) {
	upstreamRequests.WithLabelValues(method, outcome).Inc()
}
func ObserveUpstreamDuration(method string, d time.Duration) {
	upstreamDuration.WithLabelValues(method).Observe(d.Seconds())
}

func IncUnrecognizedEnvelope() { unrecognizedEnvelopes.Inc() }
