package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the API and
// the workflow engine.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	transitions     *prometheus.CounterVec
	rejections      prometheus.Counter
	conflicts       *prometheus.CounterVec
	staleAttempts   prometheus.Counter
	busyResponses   prometheus.Counter
	documentsQueued prometheus.Counter
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mission_transitions_total",
		Help: "Workflow transitions applied, by action and destination status",
	}, []string{"action", "to_status"})

	rejections := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "mission_rejections_total",
		Help: "Missions rejected at any step",
	})

	conflicts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mission_conflicts_total",
		Help: "Transitions refused by an exclusivity or resource conflict",
	}, []string{"kind"})

	staleAttempts := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "mission_stale_transitions_total",
		Help: "Transitions lost to a concurrent status change",
	})

	busyResponses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "mission_busy_responses_total",
		Help: "Requests that gave up waiting for a mission lock",
	})

	documentsQueued := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "mission_documents_queued_total",
		Help: "Document render jobs enqueued after validation",
	})

	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_hits_total",
		Help: "Total cache hits",
	})

	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_misses_total",
		Help: "Total cache misses",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, transitions, rejections,
		conflicts, staleAttempts, busyResponses, documentsQueued, cacheHits, cacheMisses, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		transitions:     transitions,
		rejections:      rejections,
		conflicts:       conflicts,
		staleAttempts:   staleAttempts,
		busyResponses:   busyResponses,
		documentsQueued: documentsQueued,
		cacheHits:       cacheHits,
		cacheMisses:     cacheMisses,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// RecordTransition counts an applied workflow transition.
func (m *MetricsService) RecordTransition(action, toStatus string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(action, toStatus).Inc()
	if toStatus == "REJECTED" {
		m.rejections.Inc()
	}
}

// RecordConflict counts a refused transition by conflict kind
// (employee, resource, stale).
func (m *MetricsService) RecordConflict(kind string) {
	if m == nil {
		return
	}
	m.conflicts.WithLabelValues(kind).Inc()
	if kind == "stale" {
		m.staleAttempts.Inc()
	}
}

// RecordBusy counts a request that gave up on the mission lock.
func (m *MetricsService) RecordBusy() {
	if m == nil {
		return
	}
	m.busyResponses.Inc()
}

// RecordDocumentQueued counts an enqueued document render job.
func (m *MetricsService) RecordDocumentQueued() {
	if m == nil {
		return
	}
	m.documentsQueued.Inc()
}

// RecordCacheOperation records cache hit/miss metrics.
func (m *MetricsService) RecordCacheOperation(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.cacheHits.Inc()
	} else {
		m.cacheMisses.Inc()
	}
}
