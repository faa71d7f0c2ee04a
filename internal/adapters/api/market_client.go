package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/andrescamacho/eve-wallet-go/internal/domain/market"
	"github.com/andrescamacho/eve-wallet-go/internal/domain/shared"
)

const (
	// DefaultMarketURL is the eve-central market aggregator
	DefaultMarketURL = "http://api.eve-central.com"

	// JitaSystemID is the reference market used when none is configured
	JitaSystemID = "30000142"

	endpointMarketStat = "/api/marketstat"
)

// MarketClient fetches reference-market quotes from the aggregator
type MarketClient struct {
	requester *requester
	logger    *slog.Logger
	systemID  string
}

// NewMarketClient creates a client quoting prices in the given solar system
func NewMarketClient(systemID string, opts ...Option) (*MarketClient, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	req, err := o.newRequester(DefaultMarketURL, nil)
	if err != nil {
		return nil, err
	}

	if systemID == "" {
		systemID = JitaSystemID
	}

	return &MarketClient{
		requester: req,
		logger:    o.logger,
		systemID:  systemID,
	}, nil
}

// SystemID returns the reference solar system id
func (c *MarketClient) SystemID() string {
	return c.systemID
}

// MarketQuotes issues a single request carrying every distinct type id and
// returns the sell-side minimum per type. An empty id set needs no request.
func (c *MarketClient) MarketQuotes(ctx context.Context, typeIDs []market.TypeID) (*market.QuoteBook, error) {
	book := market.NewQuoteBook(c.systemID)

	unique := market.UniqueTypeIDs(typeIDs)
	if len(unique) == 0 {
		return book, nil
	}

	form := url.Values{"usesystem": {c.systemID}}
	for _, id := range unique {
		form.Add("typeid", id.String())
	}

	body, err := c.requester.post(ctx, endpointMarketStat, form)
	if err != nil {
		return nil, fmt.Errorf("failed to get market data: %w", err)
	}

	var doc marketStatDocument
	if err := decodeDocument(endpointMarketStat, body, &doc); err != nil {
		return nil, err
	}

	for i, t := range doc.Types {
		quote, err := convertMarketStatType(i, t)
		if err != nil {
			return nil, err
		}
		if !quote.IsPriced() || (t.Sell.Volume != "" && quote.SellVolume() == 0) {
			c.logger.Debug("no sell orders", "type_id", quote.TypeID(), "system_id", c.systemID)
			continue
		}
		book.Add(quote)
	}

	c.logger.Debug("market quotes fetched",
		"system_id", c.systemID,
		"requested", len(unique),
		"quoted", book.Len())
	return book, nil
}

func convertMarketStatType(index int, t marketStatType) (*market.Quote, error) {
	if err := validateRow(endpointMarketStat, index, t); err != nil {
		return nil, err
	}

	field := func(name string) string {
		return fmt.Sprintf("type[%d].%s", index, name)
	}

	typeID, err := market.ParseTypeID(t.ID)
	if err != nil {
		return nil, shared.NewParseError(endpointMarketStat, field("id"), err)
	}
	if t.Sell.Min == "" {
		return nil, shared.NewParseError(endpointMarketStat, field("sell.min"), fmt.Errorf("missing element"))
	}
	sellMin, err := parseDecimal(endpointMarketStat, field("sell.min"), t.Sell.Min)
	if err != nil {
		return nil, err
	}
	sellAvg, err := parseOptionalDecimal(endpointMarketStat, field("sell.avg"), t.Sell.Avg)
	if err != nil {
		return nil, err
	}
	sellVolume, err := parseOptionalDecimal(endpointMarketStat, field("sell.volume"), t.Sell.Volume)
	if err != nil {
		return nil, err
	}
	buyMax, err := parseOptionalDecimal(endpointMarketStat, field("buy.max"), t.Buy.Max)
	if err != nil {
		return nil, err
	}

	quote, err := market.NewQuote(typeID, sellMin, sellAvg, sellVolume.IntPart(), buyMax)
	if err != nil {
		return nil, shared.NewParseError(endpointMarketStat, field("sell"), err)
	}
	return quote, nil
}
