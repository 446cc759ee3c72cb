package providers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"recstore/internal/structures"
	"time"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	ObserveStoreDuration(kind, op string, duration time.Duration)
	ObservePersistenceDuration(duration time.Duration)
	SetRecordsTotal(kind string, count int)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	storeDuration       *prometheus.HistogramVec
	persistenceDuration prometheus.Histogram
	recordsTotal        *prometheus.GaugeVec
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) ObserveStoreDuration(kind, op string, duration time.Duration) {
	m.storeDuration.WithLabelValues(kind, op).Observe(duration.Seconds())
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) SetRecordsTotal(kind string, count int) {
	m.recordsTotal.WithLabelValues(kind).Set(float64(count))
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "recstore_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "recstore_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "recstore_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "recstore_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		storeDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "recstore_store_operation_duration_seconds",
			Help:    "Duration of record file reads and writes in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"kind", "op"}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "recstore_snapshot_duration_seconds",
			Help:    "Duration of snapshot writes in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		recordsTotal: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "recstore_records_total",
			Help: "Number of records per collection as of the last read or write",
		}, []string{"kind"}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                  {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration)  {}
func (n *noopMetrics) IncCacheHits()                                     {}
func (n *noopMetrics) IncCacheMisses()                                   {}
func (n *noopMetrics) ObserveStoreDuration(_, _ string, _ time.Duration) {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)        {}
func (n *noopMetrics) SetRecordsTotal(_ string, _ int)                   {}
