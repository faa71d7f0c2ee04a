package helpers

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/eve-wallet-go/internal/domain/market"
)

// MockQuoteProvider is a test double for the reference market
type MockQuoteProvider struct {
	mu sync.Mutex

	systemID string
	quotes   map[market.TypeID]*market.Quote
	err      error

	// Requests holds the type ids of every MarketQuotes call
	Requests [][]market.TypeID
}

// NewMockQuoteProvider creates an empty provider for the given system
func NewMockQuoteProvider(systemID string) *MockQuoteProvider {
	return &MockQuoteProvider{
		systemID: systemID,
		quotes:   make(map[market.TypeID]*market.Quote),
	}
}

// SetSellMin registers a quote whose only populated price is the sell minimum
func (m *MockQuoteProvider) SetSellMin(typeID market.TypeID, sellMin decimal.Decimal) error {
	q, err := market.NewQuote(typeID, sellMin, decimal.Zero, 0, decimal.Zero)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quotes[typeID] = q
	return nil
}

func (m *MockQuoteProvider) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *MockQuoteProvider) SystemID() string {
	return m.systemID
}

// MarketQuotes returns a book holding the registered quotes among typeIDs
func (m *MockQuoteProvider) MarketQuotes(ctx context.Context, typeIDs []market.TypeID) (*market.QuoteBook, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Requests = append(m.Requests, append([]market.TypeID(nil), typeIDs...))
	if m.err != nil {
		return nil, m.err
	}

	book := market.NewQuoteBook(m.systemID)
	for _, id := range typeIDs {
		if q, ok := m.quotes[id]; ok {
			book.Add(q)
		}
	}
	return book, nil
}
