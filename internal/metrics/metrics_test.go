package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCollector_RegistersMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	require.NotNil(t, c)

	c.RecordHTTPRequest(http.MethodGet, "/api/tasks", http.StatusOK, 10*time.Millisecond)
	c.RecordTaskOperation("create", OutcomeOK)
	c.RecordBulkDeleted(1)
	c.AuthFailure("expired")

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, mf := range families {
		names[mf.GetName()] = true
	}
	for _, want := range []string{
		"tasker_http_requests_total",
		"tasker_http_request_duration_seconds",
		"tasker_task_operations_total",
		"tasker_tasks_bulk_deleted_total",
		"tasker_auth_failures_total",
	} {
		assert.True(t, names[want], "metric %s should be registered", want)
	}
}

func TestRecordHTTPRequest(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())

	c.RecordHTTPRequest(http.MethodGet, "/api/tasks/{id}", http.StatusNotFound, time.Millisecond)
	c.RecordHTTPRequest(http.MethodGet, "/api/tasks/{id}", http.StatusNotFound, time.Millisecond)
	c.RecordHTTPRequest(http.MethodGet, "", http.StatusNotFound, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(
		c.httpRequests.WithLabelValues(http.MethodGet, "/api/tasks/{id}", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(
		c.httpRequests.WithLabelValues(http.MethodGet, "unmatched", "404")))
}

func TestRecordTaskOperation(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())

	c.RecordTaskOperation("update", OutcomeNotFound)
	c.RecordTaskOperation("update", OutcomeOK)
	c.RecordTaskOperation("update", OutcomeOK)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.taskOperations.WithLabelValues("update", OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.taskOperations.WithLabelValues("update", OutcomeNotFound)))
}

func TestRecordBulkDeleted_IgnoresZero(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())

	c.RecordBulkDeleted(2)
	c.RecordBulkDeleted(0)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.tasksBulkDelete))
}

func TestAuthFailure(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())

	c.AuthFailure("revoked")

	assert.Equal(t, 1.0, testutil.ToFloat64(c.authFailures.WithLabelValues("revoked")))
}

func TestHandler_ServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordTaskOperation("create", OutcomeOK)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	Handler(reg).ServeHTTP(w, req)

	resp := w.Result()
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `tasker_task_operations_total{operation="create",outcome="ok"} 1`)
}
