package holdings

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// EquitySource returns the most recent valid daily close of an equity or ETF.
type EquitySource interface {
	LatestClose(ctx context.Context, id string) (decimal.Decimal, error)
}

// CryptoSource returns prices of many crypto assets in a single request.
//
// Identifiers missing from the returned map have no price.
type CryptoSource interface {
	Prices(ctx context.Context, ids []string) (map[string]decimal.Decimal, error)
}

// Source names used in quotes and logs.
const (
	SourceEquity = "equity"
	SourceCrypto = "crypto"
)

// ErrNoQuote is returned for an identifier the crypto source did not price.
var ErrNoQuote = errors.New("no quote in response")

// Symbols maps display symbols to quote source identifiers.
type Symbols struct {
	Stocks map[string]string // symbol -> equity source identifier
	Crypto map[string]string // symbol -> crypto source identifier
}

// Lookup returns the source and identifier for 'asset', or ok == false if
// the asset is in neither table. Stocks take precedence.
func (s Symbols) Lookup(asset string) (source, id string, ok bool) {
	if id, ok := s.Stocks[asset]; ok {
		return SourceEquity, id, true
	}
	if id, ok := s.Crypto[asset]; ok {
		return SourceCrypto, id, true
	}
	return "", "", false
}

// Quote is the outcome of a price fetch for one asset.
type Quote struct {
	Asset  string
	Source string
	ID     string
	Price  Optional[Money]
	Err    error
}

// Fetcher resolves the latest prices of assets.
type Fetcher struct {
	Symbols  Symbols
	Equity   EquitySource // nil disables equity quotes
	Crypto   CryptoSource // nil disables crypto quotes
	Currency string
	Log      logrus.FieldLogger
}

// Fetch returns a quote for each asset that appears in a lookup table, in
// 'assets' order. Assets in no table are skipped.
//
// Equities are fetched one by one; crypto identifiers are fetched in a single
// batch. A failure is recorded on the quote and never stops the other
// fetches.
func (f *Fetcher) Fetch(ctx context.Context, assets []string) []Quote {
	var quotes []Quote
	seen := make(map[string]bool)
	cryptoIDs := make(map[string]bool)
	for _, asset := range assets {
		if seen[asset] {
			continue
		}
		seen[asset] = true
		source, id, ok := f.Symbols.Lookup(asset)
		if !ok {
			continue
		}
		quotes = append(quotes, Quote{Asset: asset, Source: source, ID: id})
		if source == SourceCrypto {
			cryptoIDs[id] = true
		}
	}

	var cryptoPrices map[string]decimal.Decimal
	var cryptoErr error
	if len(cryptoIDs) > 0 {
		if f.Crypto == nil {
			cryptoErr = errors.New("crypto quotes are disabled")
		} else {
			cryptoPrices, cryptoErr = f.Crypto.Prices(ctx, slices.Sorted(maps.Keys(cryptoIDs)))
		}
	}

	for i := range quotes {
		q := &quotes[i]
		switch q.Source {
		case SourceEquity:
			q.Price, q.Err = f.equity(ctx, q.ID)
		case SourceCrypto:
			if cryptoErr != nil {
				q.Err = cryptoErr
				break
			}
			if p, ok := cryptoPrices[q.ID]; ok {
				q.Price = Some(M(p, f.Currency))
			} else {
				q.Err = ErrNoQuote
			}
		}
		f.logQuote(*q)
	}
	return quotes
}

func (f *Fetcher) equity(ctx context.Context, id string) (Optional[Money], error) {
	if f.Equity == nil {
		return None[Money](), errors.New("equity quotes are disabled")
	}
	p, err := f.Equity.LatestClose(ctx, id)
	if err != nil {
		return None[Money](), err
	}
	return Some(M(p, f.Currency)), nil
}

func (f *Fetcher) logQuote(q Quote) {
	if f.Log == nil {
		return
	}
	entry := f.Log.WithFields(logrus.Fields{"asset": q.Asset, "source": q.Source, "id": q.ID})
	if q.Err != nil {
		entry.WithError(q.Err).Warn("price unavailable, keeping stored price")
		return
	}
	if p, ok := q.Price.Get(); ok {
		entry.WithField("price", p.Decimal().String()).Debug("price updated")
	}
}

// ApplyQuotes replaces the price of every holding that has a fetched price.
// Holdings whose fetch failed, or that were not fetched, keep their stored
// price.
func ApplyQuotes(holdings []Holding, quotes []Quote) {
	prices := make(map[string]Money, len(quotes))
	for _, q := range quotes {
		if p, ok := q.Price.Get(); ok {
			prices[q.Asset] = p
		}
	}
	for i := range holdings {
		if p, ok := prices[holdings[i].Asset]; ok {
			holdings[i].Price = Some(p)
		}
	}
}

// String describes the quote for logs and the quote command.
func (q Quote) String() string {
	if p, ok := q.Price.Get(); ok {
		return fmt.Sprintf("%s (%s %s): %s", q.Asset, q.Source, q.ID, p)
	}
	return fmt.Sprintf("%s (%s %s): — (%v)", q.Asset, q.Source, q.ID, q.Err)
}
