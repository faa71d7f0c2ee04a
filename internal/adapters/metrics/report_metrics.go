package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"github.com/andrescamacho/eve-wallet-go/internal/application/report"
	"github.com/andrescamacho/eve-wallet-go/internal/domain/shared"
)

// ReportMetricsCollector exposes the outcome of the last report run
type ReportMetricsCollector struct {
	walletBalance      *prometheus.GaugeVec
	reportTotalProfit  *prometheus.GaugeVec
	reportRows         *prometheus.GaugeVec
	lastRunTimestamp   prometheus.Gauge
	tradeProfitPerUnit *prometheus.HistogramVec
	clock              shared.Clock
}

// NewReportMetricsCollector creates a new report metrics collector.
// If clock is nil, uses RealClock.
func NewReportMetricsCollector(clock shared.Clock) *ReportMetricsCollector {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &ReportMetricsCollector{
		clock: clock,
		walletBalance: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "wallet_balance_isk",
				Help:      "Wallet balance of the character at the last run",
			},
			[]string{"character"},
		),

		// Balance change of the last report, per reference system
		reportTotalProfit: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "total_profit_isk",
				Help:      "Sum of per-transaction profit against the reference market",
			},
			[]string{"system_id"},
		),

		reportRows: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "rows",
				Help:      "Transactions in the last report by outcome (priced, estimated, skipped)",
			},
			[]string{"outcome"},
		),

		lastRunTimestamp: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "last_run_timestamp_seconds",
				Help:      "Unix time of the last completed report",
			},
		),

		tradeProfitPerUnit: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "profit_per_unit_isk",
				Help:      "Per-unit profit of each priced transaction against the reference market",
				Buckets:   []float64{-1000, -100, -10, -1, 0, 1, 10, 100, 1000, 10000},
			},
			[]string{"system_id"},
		),
	}
}

// Register registers all report metrics with the Prometheus registry
func (c *ReportMetricsCollector) Register() error {
	return register(
		c.walletBalance,
		c.reportTotalProfit,
		c.reportRows,
		c.lastRunTimestamp,
		c.tradeProfitPerUnit,
	)
}

// RecordReport records the aggregate and per-row outcome of a report
func (c *ReportMetricsCollector) RecordReport(r *report.Report) {
	estimated := r.EstimatedCount()

	c.reportTotalProfit.WithLabelValues(r.SystemID).Set(r.Total.InexactFloat64())
	c.reportRows.WithLabelValues("priced").Set(float64(len(r.Rows) - estimated))
	c.reportRows.WithLabelValues("estimated").Set(float64(estimated))
	c.reportRows.WithLabelValues("skipped").Set(float64(len(r.Skipped)))

	for _, row := range r.Rows {
		if row.Estimated {
			continue
		}
		perUnit := row.Transaction.Price().Sub(row.MarketPrice)
		c.tradeProfitPerUnit.WithLabelValues(r.SystemID).Observe(perUnit.InexactFloat64())
	}

	c.lastRunTimestamp.Set(float64(c.clock.Now().Unix()))
}

// RecordBalance records the wallet balance of a character
func (c *ReportMetricsCollector) RecordBalance(characterName string, amount decimal.Decimal) {
	c.walletBalance.WithLabelValues(characterName).Set(amount.InexactFloat64())
}
