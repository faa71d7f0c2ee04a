package helpers

import (
	"github.com/shopspring/decimal"

	"github.com/andrescamacho/eve-wallet-go/internal/domain/market"
	"github.com/andrescamacho/eve-wallet-go/internal/domain/wallet"
)

// DefaultTimestamp is used by fixtures that do not care about the date
const DefaultTimestamp = "2014-03-01 12:00:00"

// NewSaleTransaction builds a valid sell transaction, panicking on invalid input
func NewSaleTransaction(id int64, typeID market.TypeID, typeName string, quantity int64, price string) *wallet.Transaction {
	tx, err := wallet.NewTransaction(
		id,
		DefaultTimestamp,
		quantity,
		typeID,
		typeName,
		decimal.RequireFromString(price),
		"Some Buyer",
		"Jita IV - Moon 4 - Caldari Navy Assembly Plant",
		wallet.TransactionTypeSell,
		"personal",
	)
	if err != nil {
		panic(err)
	}
	return tx
}
