// Package metrics holds the Prometheus collectors of the service. They register
// with the default registry, which the router exposes on /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "workledger"

// Attendance write outcomes.
const (
	OutcomeCreated         = "created"
	OutcomeUpdated         = "updated"
	OutcomeCeilingExceeded = "ceiling_exceeded"
	OutcomeNotMember       = "not_member"
	OutcomeFailed          = "failed"
	OutcomeSucceeded       = "succeeded"
)

var (
	AttendanceWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "attendance_writes_total",
		Help:      "Attendance upserts by outcome.",
	}, []string{"outcome"})

	AdvancesRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "advances_recorded_total",
		Help:      "Advances written to the ledger.",
	})

	AuditEntries = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_entries_total",
		Help:      "Audit entries appended by action.",
	}, []string{"action"})

	Purges = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "purges_total",
		Help:      "Completed purges by kind.",
	}, []string{"kind"})

	PayrollReportDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "payroll_report_duration_seconds",
		Help:      "Time spent computing payroll reports by scope.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"scope"})

	JobRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cron_job_runs_total",
		Help:      "Maintenance job runs by job and outcome.",
	}, []string{"job", "outcome"})

	httpRequests = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route pattern and status.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

// Instrument records latency of every request under its chi route pattern.
func Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

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
		httpRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Observe(time.Since(start).Seconds())
	})
}
