package service

import (
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for report runs and the local server.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	pagesTotal      prometheus.Counter
	rowsTotal       *prometheus.CounterVec
	subjects        prometheus.Gauge
	lectures        prometheus.Gauge
	capHits         prometheus.Counter
	buildDuration   prometheus.Histogram

	acceptedCount uint64
	rejectedCount uint64
	capHitCount   uint64
}

// RunSnapshot is a point-in-time copy of the row counters.
type RunSnapshot struct {
	RowsAccepted uint64
	RowsRejected uint64
	CapHits      uint64
}

// NewMetricsService registers the collectors on a private registry.
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

	pagesTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "attendance_pages_total",
		Help: "Document pages processed",
	})

	rowsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "attendance_rows_total",
		Help: "Table rows seen, by outcome",
	}, []string{"outcome"})

	subjects := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "attendance_subjects",
		Help: "Subjects in the last built report",
	})

	lectures := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "attendance_lectures",
		Help: "Lectures in the last built report",
	})

	capHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "attendance_projection_cap_hits_total",
		Help: "Projections that found the target unreachable within the search cap",
	})

	buildDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "attendance_report_build_seconds",
		Help:    "Time spent turning an extracted document into a report",
		Buckets: prometheus.DefBuckets,
	})

	registry.MustRegister(requestDuration, requestTotal, pagesTotal, rowsTotal, subjects, lectures, capHits, buildDuration)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		pagesTotal:      pagesTotal,
		rowsTotal:       rowsTotal,
		subjects:        subjects,
		lectures:        lectures,
		capHits:         capHits,
		buildDuration:   buildDuration,
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

// ObservePages counts processed pages.
func (m *MetricsService) ObservePages(n int) {
	if m == nil {
		return
	}
	m.pagesTotal.Add(float64(n))
}

// ObserveRow counts one row as accepted or rejected.
func (m *MetricsService) ObserveRow(accepted bool) {
	if m == nil {
		return
	}
	if accepted {
		m.rowsTotal.WithLabelValues("accepted").Inc()
		atomic.AddUint64(&m.acceptedCount, 1)
		return
	}
	m.rowsTotal.WithLabelValues("rejected").Inc()
	atomic.AddUint64(&m.rejectedCount, 1)
}

// ObserveReport records the shape of a finished report.
func (m *MetricsService) ObserveReport(subjects, lectures int, duration time.Duration) {
	if m == nil {
		return
	}
	m.subjects.Set(float64(subjects))
	m.lectures.Set(float64(lectures))
	m.buildDuration.Observe(duration.Seconds())
}

// ObserveProjectionCapHit counts an unreachable target.
func (m *MetricsService) ObserveProjectionCapHit() {
	if m == nil {
		return
	}
	m.capHits.Inc()
	atomic.AddUint64(&m.capHitCount, 1)
}

// Snapshot returns the row counters.
func (m *MetricsService) Snapshot() RunSnapshot {
	if m == nil {
		return RunSnapshot{}
	}
	return RunSnapshot{
		RowsAccepted: atomic.LoadUint64(&m.acceptedCount),
		RowsRejected: atomic.LoadUint64(&m.rejectedCount),
		CapHits:      atomic.LoadUint64(&m.capHitCount),
	}
}

// WriteTextfile dumps the registry in text exposition format for a node-exporter textfile collector.
// An empty path is a no-op.
func (m *MetricsService) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

// Registry exposes the underlying gatherer for tests and custom exporters.
func (m *MetricsService) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}
