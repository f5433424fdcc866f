package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the collectors the service exports on /metrics. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	HTTPRequests     *prometheus.CounterVec
	LeaveDecisions   *prometheus.CounterVec
	ReconcileRecords *prometheus.CounterVec
	ReconcileRuns    *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"path", "method", "status"},
		),
		LeaveDecisions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hrms_leave_decisions_total",
				Help: "Leave requests approved or rejected, by leave type",
			},
			[]string{"leave_type", "status"},
		),
		ReconcileRecords: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hrms_reconcile_records_total",
				Help: "Attendance records written by the daily reconciliation",
			},
			[]string{"status"},
		),
		ReconcileRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hrms_reconcile_runs_total",
				Help: "Daily reconciliation runs by outcome",
			},
			[]string{"outcome"},
		),
	}
	reg.MustRegister(m.HTTPRequests, m.LeaveDecisions, m.ReconcileRecords, m.ReconcileRuns)
	return m
}

func (m *Metrics) ObserveRequest(path, method, status string) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(path, method, status).Inc()
}

func (m *Metrics) ObserveLeaveDecision(leaveType, status string) {
	if m == nil {
		return
	}
	m.LeaveDecisions.WithLabelValues(leaveType, status).Inc()
}

// ObserveReconcile records one sweep. failed counts users the sweep skipped.
func (m *Metrics) ObserveReconcile(absent, onLeave, failed int) {
	if m == nil {
		return
	}
	m.ReconcileRecords.WithLabelValues("Absent").Add(float64(absent))
	m.ReconcileRecords.WithLabelValues("Leave").Add(float64(onLeave))
	outcome := "success"
	if failed > 0 {
		outcome = "partial"
	}
	m.ReconcileRuns.WithLabelValues(outcome).Inc()
}
