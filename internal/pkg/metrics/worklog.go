// Package metrics provides Prometheus instrumentation for the worklog service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Status label values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Report label values.
const (
	ReportWeekdayPattern = "weekday_pattern"
	ReportPeriodBaseline = "period_baseline"
	ReportTaskIntervals  = "task_intervals"
	ReportTimesheet      = "timesheet_export"
)

// WorklogMetrics contains Prometheus metrics for entry, audit and report operations.
// All recording methods are safe to call on a nil receiver.
type WorklogMetrics struct {
	registry *prometheus.Registry

	entriesWrittenTotal    *prometheus.CounterVec
	auditRecordsTotal      *prometheus.CounterVec
	reportGenerationsTotal *prometheus.CounterVec
	reportDurationSeconds  *prometheus.HistogramVec
	integrityMismatches    prometheus.Gauge
	integrityCheckedTotal  prometheus.Counter

	httpRequestsTotal   *prometheus.CounterVec
	httpDurationSeconds *prometheus.HistogramVec
}

// NewWorklogMetrics creates and registers the worklog metrics
func NewWorklogMetrics(registry *prometheus.Registry) (*WorklogMetrics, error) {
	m := &WorklogMetrics{registry: registry}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *WorklogMetrics) initMetrics() {
	m.entriesWrittenTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worklog_entries_written_total",
			Help: "Total number of time entry writes",
		},
		[]string{"operation"}, // operation: create, update, delete, import
	)

	m.auditRecordsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worklog_audit_records_total",
			Help: "Total number of audit record appends",
		},
		[]string{"action", "status"},
	)

	m.reportGenerationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worklog_report_generations_total",
			Help: "Total number of generated reports",
		},
		[]string{"report", "status"},
	)

	m.reportDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "worklog_report_duration_seconds",
			Help:    "Time taken to generate a report",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~2s
		},
		[]string{"report"},
	)

	m.integrityMismatches = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "worklog_integrity_mismatches",
		Help: "Number of entries whose integrity hash did not verify in the last sweep",
	})

	m.integrityCheckedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "worklog_integrity_checked_total",
		Help: "Total number of entries verified by integrity sweeps",
	})

	m.httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worklog_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status_code"},
	)

	m.httpDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "worklog_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
}

func (m *WorklogMetrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.entriesWrittenTotal,
		m.auditRecordsTotal,
		m.reportGenerationsTotal,
		m.reportDurationSeconds,
		m.integrityMismatches,
		m.integrityCheckedTotal,
		m.httpRequestsTotal,
		m.httpDurationSeconds,
	}
}

// Describe implements the Collector interface
func (m *WorklogMetrics) Describe(ch chan<- *prometheus.Desc) {
	for _, c := range m.collectors() {
		c.Describe(ch)
	}
}

// Collect implements the Collector interface
func (m *WorklogMetrics) Collect(ch chan<- prometheus.Metric) {
	for _, c := range m.collectors() {
		c.Collect(ch)
	}
}

// RecordEntryWrite records a create, update, delete or import of a time entry
func (m *WorklogMetrics) RecordEntryWrite(operation string) {
	if m == nil {
		return
	}
	m.entriesWrittenTotal.WithLabelValues(operation).Inc()
}

// RecordAudit records an audit append attempt
func (m *WorklogMetrics) RecordAudit(action string, err error) {
	if m == nil {
		return
	}
	m.auditRecordsTotal.WithLabelValues(action, statusOf(err)).Inc()
}

// RecordReport records one report generation and its duration
func (m *WorklogMetrics) RecordReport(report string, started time.Time, err error) {
	if m == nil {
		return
	}
	m.reportGenerationsTotal.WithLabelValues(report, statusOf(err)).Inc()
	m.reportDurationSeconds.WithLabelValues(report).Observe(time.Since(started).Seconds())
}

// RecordIntegritySweep publishes the outcome of one integrity sweep
func (m *WorklogMetrics) RecordIntegritySweep(checked, mismatches int) {
	if m == nil {
		return
	}
	m.integrityCheckedTotal.Add(float64(checked))
	m.integrityMismatches.Set(float64(mismatches))
}

// Handler serves the registry in the Prometheus text format.
func (m *WorklogMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware records request counts and latency labelled by chi route pattern.
func (m *WorklogMetrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		m.httpRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.httpDurationSeconds.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

func statusOf(err error) string {
	if err != nil {
		return StatusError
	}
	return StatusSuccess
}
