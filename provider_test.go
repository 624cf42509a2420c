package holdings

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEquity struct {
	prices map[string]float64
	calls  []string
}

func (f *fakeEquity) LatestClose(_ context.Context, id string) (decimal.Decimal, error) {
	f.calls = append(f.calls, id)
	p, ok := f.prices[id]
	if !ok {
		return decimal.Decimal{}, errors.New("no data for " + id)
	}
	return decimal.NewFromFloat(p), nil
}

type fakeCrypto struct {
	prices map[string]float64
	err    error
	calls  [][]string
}

func (f *fakeCrypto) Prices(_ context.Context, ids []string) (map[string]decimal.Decimal, error) {
	f.calls = append(f.calls, ids)
	if f.err != nil {
		return nil, f.err
	}
	res := make(map[string]decimal.Decimal)
	for _, id := range ids {
		if p, ok := f.prices[id]; ok {
			res[id] = decimal.NewFromFloat(p)
		}
	}
	return res, nil
}

var testSymbols = Symbols{
	Stocks: map[string]string{"TSLA": "TSLA", "NIO": "NIO", "AAPL": "AAPL.US"},
	Crypto: map[string]string{"ETH": "ethereum", "SOL": "solana", "BNB": "binancecoin"},
}

func quotesByAsset(quotes []Quote) map[string]Quote {
	m := make(map[string]Quote)
	for _, q := range quotes {
		m[q.Asset] = q
	}
	return m
}

func TestSymbols_Lookup(t *testing.T) {
	s := Symbols{Stocks: map[string]string{"X": "x.us"}, Crypto: map[string]string{"X": "x-coin", "Y": "y-coin"}}

	source, id, ok := s.Lookup("X")
	assert.True(t, ok)
	assert.Equal(t, SourceEquity, source)
	assert.Equal(t, "x.us", id)

	source, id, ok = s.Lookup("Y")
	assert.True(t, ok)
	assert.Equal(t, SourceCrypto, source)
	assert.Equal(t, "y-coin", id)

	_, _, ok = s.Lookup("Z")
	assert.False(t, ok)
}

func TestFetcher_Fetch(t *testing.T) {
	equity := &fakeEquity{prices: map[string]float64{"TSLA": 250, "AAPL.US": 180.5}}
	crypto := &fakeCrypto{prices: map[string]float64{"ethereum": 3000, "binancecoin": 600}}
	f := &Fetcher{Symbols: testSymbols, Equity: equity, Crypto: crypto, Currency: USD}

	got := f.Fetch(context.Background(), []string{"TSLA", "SOL", "ETH", "UNKNOWN", "AAPL", "TSLA", "BNB"})

	assert.Equal(t, []string{"TSLA", "SOL", "ETH", "AAPL", "BNB"}, func() []string {
		var names []string
		for _, q := range got {
			names = append(names, q.Asset)
		}
		return names
	}())

	// equities one by one, crypto in a single sorted batch, unknown never fetched
	assert.Equal(t, []string{"TSLA", "AAPL.US"}, equity.calls)
	assert.Equal(t, [][]string{{"binancecoin", "ethereum", "solana"}}, crypto.calls)

	quotes := quotesByAsset(got)
	assertMoney(t, 250, quotes["TSLA"].Price)
	assertMoney(t, 180.5, quotes["AAPL"].Price)
	assertMoney(t, 3000, quotes["ETH"].Price)
	assertMoney(t, 600, quotes["BNB"].Price)
	assert.Equal(t, SourceCrypto, quotes["ETH"].Source)
	assert.Equal(t, "ethereum", quotes["ETH"].ID)

	sol := quotes["SOL"]
	assert.False(t, sol.Price.IsSet())
	assert.ErrorIs(t, sol.Err, ErrNoQuote)
}

func TestFetcher_EquityFailureIsolation(t *testing.T) {
	equity := &fakeEquity{prices: map[string]float64{"TSLA": 250}}
	log, hook := test.NewNullLogger()
	f := &Fetcher{Symbols: testSymbols, Equity: equity, Currency: USD, Log: log}

	quotes := quotesByAsset(f.Fetch(context.Background(), []string{"NIO", "TSLA"}))

	assert.Error(t, quotes["NIO"].Err)
	assert.False(t, quotes["NIO"].Price.IsSet())
	assert.NoError(t, quotes["TSLA"].Err)
	assertMoney(t, 250, quotes["TSLA"].Price)

	warnings := 0
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			warnings++
			assert.Equal(t, "NIO", e.Data["asset"])
			assert.Equal(t, SourceEquity, e.Data["source"])
		}
	}
	assert.Equal(t, 1, warnings)
}

func TestFetcher_CryptoRequestFailure(t *testing.T) {
	equity := &fakeEquity{prices: map[string]float64{"TSLA": 250}}
	crypto := &fakeCrypto{err: errors.New("timeout")}
	f := &Fetcher{Symbols: testSymbols, Equity: equity, Crypto: crypto, Currency: USD}

	quotes := quotesByAsset(f.Fetch(context.Background(), []string{"ETH", "TSLA", "SOL"}))

	assert.EqualError(t, quotes["ETH"].Err, "timeout")
	assert.EqualError(t, quotes["SOL"].Err, "timeout")
	assertMoney(t, 250, quotes["TSLA"].Price)
	assert.Len(t, crypto.calls, 1)
}

func TestFetcher_NoCryptoRequest(t *testing.T) {
	crypto := &fakeCrypto{}
	f := &Fetcher{Symbols: testSymbols, Equity: &fakeEquity{}, Crypto: crypto, Currency: USD}

	f.Fetch(context.Background(), []string{"TSLA", "CASH", "FOO"})
	assert.Empty(t, crypto.calls)
}

func TestFetcher_DisabledSources(t *testing.T) {
	f := &Fetcher{Symbols: testSymbols, Currency: USD}

	quotes := f.Fetch(context.Background(), []string{"TSLA", "ETH"})
	require.Len(t, quotes, 2)
	for _, q := range quotes {
		assert.Error(t, q.Err, q.Asset)
		assert.False(t, q.Price.IsSet())
	}
}

func TestApplyQuotes(t *testing.T) {
	rows := []Holding{
		{Asset: "TSLA", Price: usd(200)},
		{Asset: "NIO", Price: usd(5)},
		{Asset: "FOO", Price: usd(1)},
		{Asset: "ETH"},
	}
	ApplyQuotes(rows, []Quote{
		{Asset: "TSLA", Price: usd(250)},
		{Asset: "NIO", Err: errors.New("boom")},
		{Asset: "ETH", Err: ErrNoQuote},
	})

	assertMoney(t, 250, rows[0].Price)
	assertMoney(t, 5, rows[1].Price)
	assertMoney(t, 1, rows[2].Price)
	assert.False(t, rows[3].Price.IsSet())
}

func TestQuote_String(t *testing.T) {
	q := Quote{Asset: "TSLA", Source: SourceEquity, ID: "TSLA", Price: usd(1234.5)}
	assert.Equal(t, "TSLA (equity TSLA): $1,234.50", q.String())

	q = Quote{Asset: "SOL", Source: SourceCrypto, ID: "solana", Err: ErrNoQuote}
	assert.Equal(t, "SOL (crypto solana): — (no quote in response)", q.String())
}
