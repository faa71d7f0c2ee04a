package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/eve-wallet-go/internal/application/mediator"
	"github.com/andrescamacho/eve-wallet-go/internal/domain/market"
	"github.com/andrescamacho/eve-wallet-go/internal/domain/shared"
)

// GetMarketQuotesQuery asks the reference market for the given item types
type GetMarketQuotesQuery struct {
	TypeIDs []market.TypeID
}

// GetMarketQuotesResponse contains the quote book.
// Missing lists requested types the market returned no quote for, in ascending order.
type GetMarketQuotesResponse struct {
	Book    *market.QuoteBook
	Missing []market.TypeID
}

// GetMarketQuotesHandler handles the GetMarketQuotes query
type GetMarketQuotesHandler struct {
	provider market.QuoteProvider
}

// NewGetMarketQuotesHandler creates a new GetMarketQuotesHandler
func NewGetMarketQuotesHandler(provider market.QuoteProvider) *GetMarketQuotesHandler {
	return &GetMarketQuotesHandler{provider: provider}
}

// Handle executes the GetMarketQuotes query
func (h *GetMarketQuotesHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetMarketQuotesQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetMarketQuotesQuery")
	}

	if len(query.TypeIDs) == 0 {
		return nil, shared.NewValidationError("type_ids", "at least one type id is required")
	}

	requested := market.UniqueTypeIDs(query.TypeIDs)
	book, err := h.provider.MarketQuotes(ctx, requested)
	if err != nil {
		return nil, fmt.Errorf("failed to get market quotes: %w", err)
	}

	var missing []market.TypeID
	for _, id := range requested {
		if !book.Has(id) {
			missing = append(missing, id)
		}
	}

	return &GetMarketQuotesResponse{
		Book:    book,
		Missing: market.SortTypeIDs(missing),
	}, nil
}
