package report

import "github.com/shopspring/decimal"

// Recorder receives the outcome of report runs (implemented by the metrics adapter)
type Recorder interface {
	RecordReport(r *Report)
	RecordBalance(characterName string, amount decimal.Decimal)
}
