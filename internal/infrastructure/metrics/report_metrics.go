package metrics

import (
	"time"

	"portal_pagos/internal/domain/entities"
	"portal_pagos/internal/usecase/interfaces"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ReportMetrics exposes reporter outcomes and legacy dispatch results.
type ReportMetrics struct {
	reports    *prometheus.CounterVec
	latency    *prometheus.HistogramVec
	dispatches *prometheus.CounterVec
}

var _ interfaces.IReportMetrics = (*ReportMetrics)(nil)

// NewReportMetrics registers the collectors on reg.
func NewReportMetrics(reg prometheus.Registerer) *ReportMetrics {
	f := promauto.With(reg)
	return &ReportMetrics{
		reports: f.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_legacy_reports_total",
			Help: "Legacy report attempts by gateway and outcome",
		}, []string{"gateway", "outcome"}),
		latency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "portal_legacy_report_duration_seconds",
			Help:    "Time spent reporting a transaction to the legacy service",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 20},
		}, []string{"gateway"}),
		dispatches: f.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_ingresar_pago_requests_total",
			Help: "IngresarPago submissions by gateway, endpoint and result",
		}, []string{"gateway", "endpoint", "result"}),
	}
}

func (m *ReportMetrics) ObserveReport(gateway entities.Gateway, outcome string, elapsed time.Duration) {
	m.reports.WithLabelValues(string(gateway), outcome).Inc()
	m.latency.WithLabelValues(string(gateway)).Observe(elapsed.Seconds())
}

func (m *ReportMetrics) ObserveDispatch(gateway entities.Gateway, endpoint string, ok bool) {
	result := "error"
	if ok {
		result = "ok"
	}
	m.dispatches.WithLabelValues(string(gateway), endpoint, result).Inc()
}
