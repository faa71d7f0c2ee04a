package wallet

import "context"

// Account is the read side of a character's wallet on the account API
type Account interface {
	// AccountBalance returns the first wallet account; an empty result is
	// reported as shared.ErrBalanceUnavailable
	AccountBalance(ctx context.Context) (*Balance, error)

	// WalletTransactions returns every transaction in service order
	WalletTransactions(ctx context.Context) ([]*Transaction, error)
}
