package queries

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/andrescamacho/eve-wallet-go/internal/application/common"
	"github.com/andrescamacho/eve-wallet-go/internal/application/mediator"
	"github.com/andrescamacho/eve-wallet-go/internal/application/report"
	"github.com/andrescamacho/eve-wallet-go/internal/domain/market"
	"github.com/andrescamacho/eve-wallet-go/internal/domain/shared"
	"github.com/andrescamacho/eve-wallet-go/internal/domain/wallet"
)

// GetWalletReportQuery requests a full profit report for the configured character
type GetWalletReportQuery struct {
	MissingQuotePolicy report.MissingQuotePolicy
}

// GetWalletReportResponse is the priced report plus the context it was built in
type GetWalletReportResponse struct {
	CharacterName string
	CharacterID   shared.CharacterID

	// Balance is nil when the account API returned no wallet rows
	Balance *wallet.Balance

	Report      *report.Report
	GeneratedAt time.Time
	RunID       string
}

// BalanceAvailable reports whether a balance was returned
func (r *GetWalletReportResponse) BalanceAvailable() bool {
	return r.Balance != nil
}

// GetWalletReportHandler runs the report sequence: character, balance,
// transactions, quotes for the distinct item types, then pricing.
type GetWalletReportHandler struct {
	account    common.AccountGateway
	quotes     market.QuoteProvider
	calculator *report.Calculator
	clock      shared.Clock
	recorder   report.Recorder
}

// NewGetWalletReportHandler creates a new GetWalletReportHandler.
// recorder may be nil when metrics are disabled.
func NewGetWalletReportHandler(
	account common.AccountGateway,
	quotes market.QuoteProvider,
	clock shared.Clock,
	recorder report.Recorder,
) *GetWalletReportHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &GetWalletReportHandler{
		account:    account,
		quotes:     quotes,
		calculator: report.NewCalculator(),
		clock:      clock,
		recorder:   recorder,
	}
}

// Handle executes the GetWalletReport query
func (h *GetWalletReportHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetWalletReportQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetWalletReportQuery")
	}

	policy := query.MissingQuotePolicy
	if policy == "" {
		policy = report.DefaultMissingQuotePolicy
	}

	logger := common.LoggerFromContext(ctx)
	name := h.account.CharacterName()

	characterID, err := h.account.CharacterID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve character %s: %w", name, err)
	}

	balance, err := h.account.AccountBalance(ctx)
	if err != nil {
		if !errors.Is(err, shared.ErrBalanceUnavailable) {
			return nil, fmt.Errorf("failed to fetch balance: %w", err)
		}
		logger.Warn("balance unavailable", "character", name, "error", err)
		balance = nil
	}

	transactions, err := h.account.WalletTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transactions: %w", err)
	}

	typeIDs := make([]market.TypeID, 0, len(transactions))
	for _, tx := range transactions {
		typeIDs = append(typeIDs, tx.TypeID())
	}

	book, err := h.quotes.MarketQuotes(ctx, market.UniqueTypeIDs(typeIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch market quotes: %w", err)
	}

	rep, err := h.calculator.Build(transactions, book, policy)
	if err != nil {
		return nil, fmt.Errorf("failed to build report: %w", err)
	}

	for _, skipped := range rep.Skipped {
		logger.Warn("transaction skipped",
			"transaction_id", skipped.Transaction.ID(),
			"type_id", skipped.Transaction.TypeID().String(),
			"item", skipped.Transaction.TypeName(),
			"error", skipped.Err)
	}

	if h.recorder != nil {
		h.recorder.RecordReport(rep)
		if balance != nil {
			h.recorder.RecordBalance(name, balance.Amount)
		}
	}

	logger.Info("wallet report built",
		"character", name,
		"transactions", len(transactions),
		"rows", len(rep.Rows),
		"skipped", len(rep.Skipped),
		"total", rep.Total.StringFixed(2))

	return &GetWalletReportResponse{
		CharacterName: name,
		CharacterID:   characterID,
		Balance:       balance,
		Report:        rep,
		GeneratedAt:   h.clock.Now(),
		RunID:         common.RunIDFromContext(ctx),
	}, nil
}
