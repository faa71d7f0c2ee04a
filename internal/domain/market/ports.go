package market

import "context"

// QuoteProvider fetches reference-market quotes for a set of item types
type QuoteProvider interface {
	// MarketQuotes issues one request for all ids and returns a book keyed by
	// exactly the ids the service quoted with sell orders
	MarketQuotes(ctx context.Context, typeIDs []TypeID) (*QuoteBook, error)
}
