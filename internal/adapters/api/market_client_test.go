package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/eve-wallet-go/internal/adapters/api"
	"github.com/andrescamacho/eve-wallet-go/internal/domain/market"
	"github.com/andrescamacho/eve-wallet-go/internal/domain/shared"
)

const marketStatXML = `<?xml version='1.0' encoding='utf-8'?>
<evec_api version="2.0" method="marketstat_xml">
  <marketstat>
    <type id="34">
      <buy><volume>1000000</volume><avg>4.10</avg><max>4.40</max><min>3.00</min></buy>
      <sell><volume>2500000</volume><avg>4.80</avg><max>9.00</max><min>4.50</min></sell>
    </type>
    <type id="35">
      <buy><volume>1000</volume><avg>9.10</avg><max>9.90</max><min>8.00</min></buy>
      <sell><volume>2000</volume><avg>10.80</avg><max>15.00</max><min>10.05</min></sell>
    </type>
  </marketstat>
</evec_api>`

func newMarketServer(t *testing.T, body string, form *url.Values, calls *int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		assert.Equal(t, "/api/marketstat", r.URL.Path)
		assert.NoError(t, r.ParseForm())
		*form = r.PostForm
		w.Write([]byte(body))
	}))
}

func newTestMarketClient(t *testing.T, serverURL string) *api.MarketClient {
	t.Helper()
	client, err := api.NewMarketClient("",
		api.WithBaseURL(serverURL),
		api.WithClock(shared.NewMockClock(time.Time{})),
	)
	require.NoError(t, err)
	return client
}

func TestMarketClient_RoundTripPreservesTypeIDs(t *testing.T) {
	// Arrange
	var form url.Values
	var calls int32
	srv := newMarketServer(t, marketStatXML, &form, &calls)
	defer srv.Close()
	client := newTestMarketClient(t, srv.URL)

	// Act
	book, err := client.MarketQuotes(context.Background(), []market.TypeID{34, 35, 34})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, []string{"34", "35"}, form["typeid"])
	assert.Equal(t, api.JitaSystemID, form.Get("usesystem"))

	assert.Equal(t, []market.TypeID{34, 35}, book.TypeIDs())
	quote, err := book.Get(34)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("4.50").Equal(quote.SellMin()))
	assert.True(t, decimal.RequireFromString("4.40").Equal(quote.BuyMax()))
	assert.Equal(t, int64(2500000), quote.SellVolume())

	quote, err = book.Get(35)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("10.05").Equal(quote.SellMin()))
}

func TestMarketClient_EmptySetMakesNoRequest(t *testing.T) {
	// Arrange
	var form url.Values
	var calls int32
	srv := newMarketServer(t, marketStatXML, &form, &calls)
	defer srv.Close()
	client := newTestMarketClient(t, srv.URL)

	// Act
	book, err := client.MarketQuotes(context.Background(), nil)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 0, book.Len())
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestMarketClient_UnquotedTypeIsMissingFromBook(t *testing.T) {
	// Arrange
	doc := `<evec_api version="2.0"><marketstat>
<type id="34"><buy><max>4.40</max></buy><sell><min>4.50</min></sell></type>
</marketstat></evec_api>`
	var form url.Values
	var calls int32
	srv := newMarketServer(t, doc, &form, &calls)
	defer srv.Close()
	client := newTestMarketClient(t, srv.URL)

	// Act
	book, err := client.MarketQuotes(context.Background(), []market.TypeID{34, 99})

	// Assert
	require.NoError(t, err)
	assert.True(t, book.Has(34))
	_, err = book.Get(99)
	require.Error(t, err)
	assert.True(t, shared.IsDataConsistency(err))
	assert.ErrorIs(t, err, market.ErrQuoteNotFound)
}

func TestMarketClient_TypeWithoutSellOrdersIsMissingFromBook(t *testing.T) {
	// Arrange
	doc := `<evec_api version="2.0"><marketstat>
<type id="34"><sell><volume>2500000</volume><min>4.50</min></sell></type>
<type id="99"><buy><volume>0</volume><max>0</max></buy><sell><volume>0</volume><avg>0</avg><min>0</min></sell></type>
<type id="100"><sell><volume>0</volume><min>3.10</min></sell></type>
</marketstat></evec_api>`
	var form url.Values
	var calls int32
	srv := newMarketServer(t, doc, &form, &calls)
	defer srv.Close()
	client := newTestMarketClient(t, srv.URL)

	// Act
	book, err := client.MarketQuotes(context.Background(), []market.TypeID{34, 99, 100})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []market.TypeID{34}, book.TypeIDs())
	for _, id := range []market.TypeID{99, 100} {
		assert.False(t, book.Has(id))
		_, err = book.Get(id)
		require.Error(t, err)
		assert.True(t, shared.IsDataConsistency(err))
		assert.ErrorIs(t, err, market.ErrQuoteNotFound)
	}
}

func TestMarketClient_NonCanonicalTypeIDIsParseError(t *testing.T) {
	// Arrange
	doc := `<evec_api version="2.0"><marketstat><type id="034"><sell><volume>10</volume><min>4.50</min></sell></type></marketstat></evec_api>`
	var form url.Values
	var calls int32
	srv := newMarketServer(t, doc, &form, &calls)
	defer srv.Close()
	client := newTestMarketClient(t, srv.URL)

	// Act
	book, err := client.MarketQuotes(context.Background(), []market.TypeID{34})

	// Assert
	require.Error(t, err)
	assert.Nil(t, book)
	var parseErr *shared.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "type[0].id", parseErr.Field)
}

func TestMarketClient_MissingSellMinIsParseError(t *testing.T) {
	// Arrange
	doc := `<evec_api version="2.0"><marketstat><type id="34"><sell><avg>4.80</avg></sell></type></marketstat></evec_api>`
	var form url.Values
	var calls int32
	srv := newMarketServer(t, doc, &form, &calls)
	defer srv.Close()
	client := newTestMarketClient(t, srv.URL)

	// Act
	_, err := client.MarketQuotes(context.Background(), []market.TypeID{34})

	// Assert
	require.Error(t, err)
	var parseErr *shared.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "type[0].sell.min", parseErr.Field)
}

func TestMarketClient_CustomReferenceSystem(t *testing.T) {
	// Arrange
	var form url.Values
	var calls int32
	srv := newMarketServer(t, marketStatXML, &form, &calls)
	defer srv.Close()
	client, err := api.NewMarketClient("30002187", api.WithBaseURL(srv.URL))
	require.NoError(t, err)

	// Act
	book, err := client.MarketQuotes(context.Background(), []market.TypeID{34})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "30002187", form.Get("usesystem"))
	assert.Equal(t, "30002187", book.SystemID())
}
