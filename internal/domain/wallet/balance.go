package wallet

import "github.com/shopspring/decimal"

// Balance is one wallet account of a character
type Balance struct {
	AccountID  int64
	AccountKey int64
	Amount     decimal.Decimal
}
