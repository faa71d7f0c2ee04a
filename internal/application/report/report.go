package report

import (
	"github.com/shopspring/decimal"

	"github.com/andrescamacho/eve-wallet-go/internal/domain/wallet"
)

// Row is one priced transaction of the report
type Row struct {
	Transaction  *wallet.Transaction
	MarketPrice  decimal.Decimal
	Profit       decimal.Decimal
	RunningTotal decimal.Decimal

	// Estimated is set when no quote existed and the market price was zero-filled
	Estimated bool
}

// SkippedRow is a transaction left out of the report, with the reason
type SkippedRow struct {
	Transaction *wallet.Transaction
	Err         error
}

// Report is the priced transaction list in service order plus the aggregate
type Report struct {
	SystemID string
	Policy   MissingQuotePolicy
	Rows     []Row
	Skipped  []SkippedRow
	Total    decimal.Decimal
}

// EstimatedCount returns how many rows were priced without a quote
func (r *Report) EstimatedCount() int {
	n := 0
	for _, row := range r.Rows {
		if row.Estimated {
			n++
		}
	}
	return n
}

// IsEmpty reports whether the report has no priced rows
func (r *Report) IsEmpty() bool {
	return len(r.Rows) == 0
}
