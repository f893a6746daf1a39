package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// LedgerMetrics records outcomes of stock ledger and report operations.
type LedgerMetrics struct {
	recorded       *prometheus.CounterVec
	rejected       *prometheus.CounterVec
	reportDuration *prometheus.HistogramVec
}

// NewLedgerMetrics registers the ledger metrics on the provided registerer.
func NewLedgerMetrics(reg prometheus.Registerer) *LedgerMetrics {
	if reg == nil {
		return &LedgerMetrics{}
	}
	recorded := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stock_transactions_recorded_total",
		Help: "Stock transactions committed, by type.",
	}, []string{"type"})
	rejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stock_transactions_rejected_total",
		Help: "Stock transactions rejected or rolled back, by type.",
	}, []string{"type"})
	reportDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "report_query_duration_seconds",
		Help:    "Duration of report queries in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"report"})
	reg.MustRegister(recorded, rejected, reportDuration)
	return &LedgerMetrics{
		recorded:       recorded,
		rejected:       rejected,
		reportDuration: reportDuration,
	}
}

// IncRecorded increments the committed counter for the transaction type.
func (m *LedgerMetrics) IncRecorded(txType string) {
	if m == nil || m.recorded == nil {
		return
	}
	m.recorded.WithLabelValues(normalizeLabel(txType)).Inc()
}

// IncRejected increments the rejected counter for the transaction type.
func (m *LedgerMetrics) IncRejected(txType string) {
	if m == nil || m.rejected == nil {
		return
	}
	m.rejected.WithLabelValues(normalizeLabel(txType)).Inc()
}

// ObserveReportDuration records the duration for the named report.
func (m *LedgerMetrics) ObserveReportDuration(report string, duration time.Duration) {
	if m == nil || m.reportDuration == nil {
		return
	}
	m.reportDuration.WithLabelValues(normalizeLabel(report)).Observe(duration.Seconds())
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
