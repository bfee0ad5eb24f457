// Package metrics collects and exposes the service's Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for task operations.
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeInvalid  = "invalid"
	OutcomeError    = "error"
)

// TaskRecorder is the part of the collector the task service uses.
type TaskRecorder interface {
	RecordTaskOperation(operation, outcome string)
	RecordBulkDeleted(count int64)
}

// HTTPRecorder is the part of the collector the HTTP middleware uses.
type HTTPRecorder interface {
	RecordHTTPRequest(method, route string, status int, duration time.Duration)
}

// Collector records request, task and authentication metrics.
type Collector struct {
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	taskOperations  *prometheus.CounterVec
	tasksBulkDelete prometheus.Counter
	authFailures    *prometheus.CounterVec
}

var (
	_ TaskRecorder = (*Collector)(nil)
	_ HTTPRecorder = (*Collector)(nil)
)

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tasker_http_requests_total",
			Help: "HTTP requests by method, route pattern and status code.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tasker_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		taskOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tasker_task_operations_total",
			Help: "Task lifecycle operations by operation and outcome.",
		}, []string{"operation", "outcome"}),
		tasksBulkDelete: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tasker_tasks_bulk_deleted_total",
			Help: "Tasks removed by delete-completed requests.",
		}),
		authFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tasker_auth_failures_total",
			Help: "Rejected credentials by reason.",
		}, []string{"reason"}),
	}

	reg.MustRegister(
		c.httpRequests,
		c.httpDuration,
		c.taskOperations,
		c.tasksBulkDelete,
		c.authFailures,
	)

	return c
}

// RecordHTTPRequest records one served request. route is the matched route
// pattern, not the raw path, to keep label cardinality bounded.
func (c *Collector) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordTaskOperation records the outcome of a task lifecycle operation.
func (c *Collector) RecordTaskOperation(operation, outcome string) {
	c.taskOperations.WithLabelValues(operation, outcome).Inc()
}

// RecordBulkDeleted adds count to the bulk-deleted counter.
func (c *Collector) RecordBulkDeleted(count int64) {
	if count <= 0 {
		return
	}
	c.tasksBulkDelete.Add(float64(count))
}

// AuthFailure implements auth.FailureRecorder.
func (c *Collector) AuthFailure(reason string) {
	c.authFailures.WithLabelValues(reason).Inc()
}

// Handler returns the HTTP handler Prometheus scrapes.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop discards everything. It is used when metrics are disabled and in tests
// that do not assert on metrics.
type Nop struct{}

func (Nop) RecordHTTPRequest(string, string, int, time.Duration) {}
func (Nop) RecordTaskOperation(string, string)                 {}
func (Nop) RecordBulkDeleted(int64)                             {}
func (Nop) AuthFailure(string)                                  {}
