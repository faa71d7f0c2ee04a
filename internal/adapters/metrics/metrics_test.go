package metrics

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/eve-wallet-go/internal/application/mediator"
	"github.com/andrescamacho/eve-wallet-go/internal/application/report"
	"github.com/andrescamacho/eve-wallet-go/internal/domain/market"
	"github.com/andrescamacho/eve-wallet-go/internal/domain/shared"
	"github.com/andrescamacho/eve-wallet-go/internal/domain/wallet"
)

func withRegistry(t *testing.T) {
	t.Helper()
	InitRegistry()
	t.Cleanup(func() { Registry = nil })
}

func TestNewCollectors_DisabledReturnsNil(t *testing.T) {
	Registry = nil

	c, err := NewCollectors(nil)

	require.NoError(t, err)
	assert.Nil(t, c)
	assert.NoError(t, WriteTextfile(filepath.Join(t.TempDir(), "unused.prom")))
}

func TestAPIMetricsCollector(t *testing.T) {
	// Arrange
	withRegistry(t)
	c, err := NewCollectors(nil)
	require.NoError(t, err)

	// Act
	c.API.RecordAPIRequest("POST", "/char/WalletTransactions.xml.aspx", 503, 0.2)
	c.API.RecordAPIRequest("POST", "/char/WalletTransactions.xml.aspx", 200, 0.1)
	c.API.RecordAPIRetry("POST", "/char/WalletTransactions.xml.aspx", "server_error")

	// Assert
	assert.Equal(t, 1.0, testutil.ToFloat64(c.API.apiRequestsTotal.WithLabelValues("POST", "/char/WalletTransactions.xml.aspx", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.API.apiRetries.WithLabelValues("POST", "/char/WalletTransactions.xml.aspx", "server_error")))
	assert.Equal(t, 2, testutil.CollectAndCount(c.API.apiRequestsTotal))
}

func TestReportMetricsCollector(t *testing.T) {
	// Arrange
	withRegistry(t)
	clock := shared.NewMockClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	c := NewReportMetricsCollector(clock)
	require.NoError(t, c.Register())

	tx, err := wallet.NewTransaction(1, "2014-03-01 12:00:00", 100, 34, "Tritanium",
		decimal.RequireFromString("5.0"), "", "", wallet.TransactionTypeSell, "personal")
	require.NoError(t, err)
	r := &report.Report{
		SystemID: "30000142",
		Rows: []report.Row{{
			Transaction:  tx,
			MarketPrice:  decimal.RequireFromString("4.5"),
			Profit:       decimal.RequireFromString("50"),
			RunningTotal: decimal.RequireFromString("50"),
		}},
		Skipped: []report.SkippedRow{{Transaction: tx, Err: market.ErrQuoteNotFound}},
		Total:   decimal.RequireFromString("50"),
	}

	// Act
	c.RecordReport(r)
	c.RecordBalance("Kali Lin", decimal.RequireFromString("1000.5"))

	// Assert
	assert.Equal(t, 50.0, testutil.ToFloat64(c.reportTotalProfit.WithLabelValues("30000142")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.reportRows.WithLabelValues("priced")))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.reportRows.WithLabelValues("estimated")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.reportRows.WithLabelValues("skipped")))
	assert.Equal(t, 1000.5, testutil.ToFloat64(c.walletBalance.WithLabelValues("Kali Lin")))
	assert.Equal(t, float64(clock.CurrentTime.Unix()), testutil.ToFloat64(c.lastRunTimestamp))
}

func TestPrometheusMiddleware(t *testing.T) {
	collector := NewQueryMetricsCollector()
	mw := PrometheusMiddleware(collector)

	_, err := mw(context.Background(), &report.Report{}, func(ctx context.Context, r mediator.Request) (mediator.Response, error) {
		return nil, nil
	})
	require.NoError(t, err)
	_, err = mw(context.Background(), &report.Report{}, func(ctx context.Context, r mediator.Request) (mediator.Response, error) {
		return nil, errors.New("boom")
	})
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(collector.queriesTotal.WithLabelValues("Report", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.queriesTotal.WithLabelValues("Report", "error")))
}

func TestPrometheusMiddleware_NilCollectorPassesThrough(t *testing.T) {
	mw := PrometheusMiddleware(nil)

	resp, err := mw(context.Background(), "q", func(ctx context.Context, r mediator.Request) (mediator.Response, error) {
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", resp)
}

func TestWriteTextfile(t *testing.T) {
	// Arrange
	withRegistry(t)
	c, err := NewCollectors(nil)
	require.NoError(t, err)
	c.Report.RecordBalance("Kali Lin", decimal.RequireFromString("42"))
	c.Query.RecordQueryExecution("GetWalletReportQuery", 0.4, true)
	c.API.RecordAPIRequest("POST", "/api/marketstat", 200, 0.1)
	path := filepath.Join(t.TempDir(), "eve_wallet.prom")

	// Act
	err = WriteTextfile(path)

	// Assert
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `eve_wallet_report_wallet_balance_isk{character="Kali Lin"} 42`)
	assert.Contains(t, string(data), `eve_wallet_query_executions_total{query="GetWalletReportQuery",status="success"} 1`)
	assert.NotContains(t, string(data), "eve_wallet_report_executions_total")
}
