package report

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/eve-wallet-go/internal/domain/market"
	"github.com/andrescamacho/eve-wallet-go/internal/domain/wallet"
)

// Profit computes (sellPrice - marketPrice) * quantity
func Profit(sellPrice, marketPrice decimal.Decimal, quantity int64) decimal.Decimal {
	return sellPrice.Sub(marketPrice).Mul(decimal.NewFromInt(quantity))
}

// Calculator prices wallet transactions against reference-market quotes
type Calculator struct{}

// NewCalculator creates a new Calculator
func NewCalculator() *Calculator {
	return &Calculator{}
}

// Build prices every transaction in order and accumulates the running total.
// Transactions whose type is absent from quotes are handled per policy.
func (c *Calculator) Build(
	transactions []*wallet.Transaction,
	quotes *market.QuoteBook,
	policy MissingQuotePolicy,
) (*Report, error) {
	if !policy.IsValid() {
		return nil, fmt.Errorf("invalid missing quote policy %q", policy)
	}
	if quotes == nil {
		quotes = market.NewQuoteBook("")
	}

	r := &Report{
		SystemID: quotes.SystemID(),
		Policy:   policy,
		Rows:     make([]Row, 0, len(transactions)),
		Total:    decimal.Zero,
	}

	for _, tx := range transactions {
		marketPrice := decimal.Zero
		estimated := false

		quote, err := quotes.Get(tx.TypeID())
		if err != nil {
			switch policy {
			case PolicyAbort:
				return nil, fmt.Errorf("transaction %d: %w", tx.ID(), err)
			case PolicySkip:
				r.Skipped = append(r.Skipped, SkippedRow{Transaction: tx, Err: err})
				continue
			case PolicyZero:
				estimated = true
			}
		} else {
			marketPrice = quote.SellMin()
		}

		profit := Profit(tx.Price(), marketPrice, tx.Quantity())
		r.Total = r.Total.Add(profit)
		r.Rows = append(r.Rows, Row{
			Transaction:  tx,
			MarketPrice:  marketPrice,
			Profit:       profit,
			RunningTotal: r.Total,
			Estimated:    estimated,
		})
	}

	return r, nil
}
