package metrics

import (
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private Prometheus registry. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	registry        *prometheus.Registry
	handler         http.Handler
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	cacheHitRatio   prometheus.Gauge
	recomputations  *prometheus.CounterVec
	domainFailures  *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec

	hitCount       uint64
	missCount      uint64
	recomputeCount uint64
}

// Snapshot is a point-in-time copy of the counters, for doctor output and tests.
type Snapshot struct {
	CacheHits      uint64  `json:"cacheHits"`
	CacheMisses    uint64  `json:"cacheMisses"`
	CacheHitRatio  float64 `json:"cacheHitRatio"`
	Recomputations uint64  `json:"recomputations"`
}

// New registers every collector on a private registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lumen_cache_hits_total",
			Help: "Result cache lookups served from a fresh entry",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lumen_cache_misses_total",
			Help: "Result cache lookups that found no fresh entry",
		}),
		cacheHitRatio: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "lumen_cache_hit_ratio",
			Help: "Ratio of cache hits to total cache lookups",
		}),
		recomputations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lumen_recomputations_total",
			Help: "Derived results computed from raw records",
		}, []string{"key"}),
		domainFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lumen_domain_read_failures_total",
			Help: "Record store reads that failed and were replaced by an empty default",
		}, []string{"domain"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "lumen_http_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		requestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lumen_http_requests_total",
			Help: "Total number of API requests",
		}, []string{"method", "path", "status"}),
	}

	registry.MustRegister(
		m.cacheHits, m.cacheMisses, m.cacheHitRatio,
		m.recomputations, m.domainFailures,
		m.requestDuration, m.requestTotal,
	)
	m.handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return m
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// CacheLookup counts a hit or a miss and updates the hit ratio.
func (m *Metrics) CacheLookup(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.cacheHits.Inc()
		atomic.AddUint64(&m.hitCount, 1)
	} else {
		m.cacheMisses.Inc()
		atomic.AddUint64(&m.missCount, 1)
	}
	hits := atomic.LoadUint64(&m.hitCount)
	total := hits + atomic.LoadUint64(&m.missCount)
	m.cacheHitRatio.Set(float64(hits) / float64(total))
}

// Recomputed counts one computation of the result cached under key.
func (m *Metrics) Recomputed(key string) {
	if m == nil {
		return
	}
	m.recomputations.WithLabelValues(key).Inc()
	atomic.AddUint64(&m.recomputeCount, 1)
}

// DomainReadFailed counts a domain that could not be read.
func (m *Metrics) DomainReadFailed(domain string) {
	if m == nil {
		return
	}
	m.domainFailures.WithLabelValues(domain).Inc()
}

func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := strconv.Itoa(status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

func (m *Metrics) Snapshot() Snapshot {
	if m == nil {
		return Snapshot{}
	}
	hits := atomic.LoadUint64(&m.hitCount)
	misses := atomic.LoadUint64(&m.missCount)
	var ratio float64
	if hits+misses > 0 {
		ratio = float64(hits) / float64(hits+misses)
	}
	return Snapshot{
		CacheHits:      hits,
		CacheMisses:    misses,
		CacheHitRatio:  ratio,
		Recomputations: atomic.LoadUint64(&m.recomputeCount),
	}
}
