package queries

import (
	"context"
	"errors"
	"fmt"

	"github.com/andrescamacho/eve-wallet-go/internal/application/mediator"
	"github.com/andrescamacho/eve-wallet-go/internal/domain/shared"
	"github.com/andrescamacho/eve-wallet-go/internal/domain/wallet"
)

// GetAccountBalanceQuery fetches the character's wallet balance
type GetAccountBalanceQuery struct{}

// GetAccountBalanceResponse carries the balance, or nil when the API reported no wallet rows
type GetAccountBalanceResponse struct {
	Balance *wallet.Balance
}

// Available reports whether the balance was returned
func (r *GetAccountBalanceResponse) Available() bool {
	return r.Balance != nil
}

// GetAccountBalanceHandler handles the GetAccountBalance query
type GetAccountBalanceHandler struct {
	account wallet.Account
}

// NewGetAccountBalanceHandler creates a new GetAccountBalanceHandler
func NewGetAccountBalanceHandler(account wallet.Account) *GetAccountBalanceHandler {
	return &GetAccountBalanceHandler{account: account}
}

// Handle executes the GetAccountBalance query.
// An empty balance rowset is not an error; the response reports it as unavailable.
func (h *GetAccountBalanceHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*GetAccountBalanceQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetAccountBalanceQuery")
	}

	balance, err := h.account.AccountBalance(ctx)
	if err != nil {
		if errors.Is(err, shared.ErrBalanceUnavailable) {
			return &GetAccountBalanceResponse{}, nil
		}
		return nil, fmt.Errorf("failed to fetch balance: %w", err)
	}

	return &GetAccountBalanceResponse{Balance: balance}, nil
}
