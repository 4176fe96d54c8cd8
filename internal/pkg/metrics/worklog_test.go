package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMetrics(t *testing.T) *WorklogMetrics {
	t.Helper()
	m, err := NewWorklogMetrics(prometheus.NewRegistry())
	require.NoError(t, err)
	return m
}

func TestNewWorklogMetricsRejectsDoubleRegistration(t *testing.T) {
	registry := prometheus.NewRegistry()
	_, err := NewWorklogMetrics(registry)
	require.NoError(t, err)

	_, err = NewWorklogMetrics(registry)
	assert.Error(t, err)
}

func TestRecorders(t *testing.T) {
	m := newTestMetrics(t)

	m.RecordEntryWrite("create")
	m.RecordEntryWrite("create")
	m.RecordAudit("UPDATE", nil)
	m.RecordAudit("UPDATE", errors.New("boom"))
	m.RecordReport(ReportTaskIntervals, time.Now(), nil)
	m.RecordIntegritySweep(10, 2)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.entriesWrittenTotal.WithLabelValues("create")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.auditRecordsTotal.WithLabelValues("UPDATE", StatusSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.auditRecordsTotal.WithLabelValues("UPDATE", StatusError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.reportGenerationsTotal.WithLabelValues(ReportTaskIntervals, StatusSuccess)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.integrityMismatches))
	assert.Equal(t, 10.0, testutil.ToFloat64(m.integrityCheckedTotal))
}

func TestNilReceiverIsNoop(t *testing.T) {
	var m *WorklogMetrics
	assert.NotPanics(t, func() {
		m.RecordEntryWrite("create")
		m.RecordAudit("INSERT", nil)
		m.RecordReport(ReportWeekdayPattern, time.Now(), nil)
		m.RecordIntegritySweep(1, 0)
	})
}

func TestMiddlewareAndHandler(t *testing.T) {
	m := newTestMetrics(t)

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/entries/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Handle("/metrics", m.Handler())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/entries/abc", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues(http.MethodGet, "/entries/{id}", "404")))

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "worklog_http_requests_total"))
}
