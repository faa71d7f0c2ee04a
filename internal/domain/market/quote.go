package market

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/eve-wallet-go/internal/domain/shared"
)

// Quote is the reference-market price summary for one item type (immutable value object).
// SellMin is the price baseline used for profit calculation.
type Quote struct {
	typeID     TypeID
	sellMin    decimal.Decimal
	sellAvg    decimal.Decimal
	sellVolume int64
	buyMax     decimal.Decimal
}

// NewQuote creates a new Quote with validation
func NewQuote(typeID TypeID, sellMin, sellAvg decimal.Decimal, sellVolume int64, buyMax decimal.Decimal) (*Quote, error) {
	if typeID <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTypeID, typeID)
	}
	if sellMin.IsNegative() || sellAvg.IsNegative() || buyMax.IsNegative() {
		return nil, ErrInvalidPrice
	}
	return &Quote{
		typeID:     typeID,
		sellMin:    sellMin,
		sellAvg:    sellAvg,
		sellVolume: sellVolume,
		buyMax:     buyMax,
	}, nil
}

func (q *Quote) TypeID() TypeID {
	return q.typeID
}

func (q *Quote) SellMin() decimal.Decimal {
	return q.sellMin
}

func (q *Quote) SellAvg() decimal.Decimal {
	return q.sellAvg
}

func (q *Quote) SellVolume() int64 {
	return q.sellVolume
}

func (q *Quote) BuyMax() decimal.Decimal {
	return q.buyMax
}

// IsPriced reports whether the reference market had sell orders for the type.
// The aggregator answers types without sell orders with a zero minimum.
func (q *Quote) IsPriced() bool {
	return q.sellMin.IsPositive()
}

// QuoteBook maps item types to their reference-market quote
type QuoteBook struct {
	systemID string
	quotes   map[TypeID]*Quote
}

// NewQuoteBook creates an empty book for the given reference system
func NewQuoteBook(systemID string) *QuoteBook {
	return &QuoteBook{
		systemID: systemID,
		quotes:   make(map[TypeID]*Quote),
	}
}

// Add stores q, replacing any earlier quote for the same type
func (b *QuoteBook) Add(q *Quote) {
	b.quotes[q.TypeID()] = q
}

// Get returns the quote for typeID or a DataConsistencyError wrapping ErrQuoteNotFound.
// A quote without sell orders counts as absent.
func (b *QuoteBook) Get(typeID TypeID) (*Quote, error) {
	q, ok := b.quotes[typeID]
	if !ok {
		return nil, shared.NewDataConsistencyError(
			fmt.Sprintf("type %s in system %s", typeID, b.systemID),
			ErrQuoteNotFound,
		)
	}
	if !q.IsPriced() {
		return nil, shared.NewDataConsistencyError(
			fmt.Sprintf("type %s in system %s has no sell orders", typeID, b.systemID),
			ErrQuoteNotFound,
		)
	}
	return q, nil
}

// Has reports whether the book holds a priced quote for typeID
func (b *QuoteBook) Has(typeID TypeID) bool {
	q, ok := b.quotes[typeID]
	return ok && q.IsPriced()
}

// TypeIDs returns the quoted types in ascending order
func (b *QuoteBook) TypeIDs() []TypeID {
	ids := make([]TypeID, 0, len(b.quotes))
	for id := range b.quotes {
		ids = append(ids, id)
	}
	return SortTypeIDs(ids)
}

func (b *QuoteBook) Len() int {
	return len(b.quotes)
}

func (b *QuoteBook) SystemID() string {
	return b.systemID
}
