// Package coingecko fetches crypto prices from the public CoinGecko API.
package coingecko

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/holdings/webcache"
	"github.com/shopspring/decimal"
)

// DefaultBaseURL is the root of the public CoinGecko API.
const DefaultBaseURL = "https://api.coingecko.com/api/v3"

// Timeout bounds the single batch request.
const Timeout = 10 * time.Second

// Client queries CoinGecko simple prices.
type Client struct {
	baseURL  string
	currency string
	http     *http.Client
}

// New returns a Client quoting in 'currency' (e.g. "usd"). A nil http client
// uses a plain client with Timeout.
func New(currency string, client *http.Client) *Client {
	if client == nil {
		client = &http.Client{Timeout: Timeout}
	}
	return &Client{baseURL: DefaultBaseURL, currency: strings.ToLower(currency), http: client}
}

// WithBaseURL returns a copy of c that targets another API root.
func (c *Client) WithBaseURL(base string) *Client {
	n := *c
	n.baseURL = strings.TrimSuffix(base, "/")
	return &n
}

// Prices returns the price of every id in a single request. Ids absent from
// the response are absent from the result.
func (c *Client) Prices(ctx context.Context, ids []string) (map[string]decimal.Decimal, error) {
	prices := make(map[string]decimal.Decimal, len(ids))
	if len(ids) == 0 {
		return prices, nil
	}
	// https://api.coingecko.com/api/v3/simple/price?ids=ethereum,cardano&vs_currencies=usd
	// {
	//   "cardano": {"usd": 0.71},
	//   "ethereum": {"usd": 4120.5}
	// }
	q := url.Values{}
	q.Set("ids", strings.Join(ids, ","))
	q.Set("vs_currencies", c.currency)
	addr := c.baseURL + "/simple/price?" + q.Encode()

	var jobj any
	if err := webcache.GetJSON(ctx, c.http, addr, &jobj); err != nil {
		return nil, fmt.Errorf("coingecko prices: %w", err)
	}
	for _, id := range ids {
		if price, err := extract(jobj, id, c.currency); err == nil {
			prices[id] = price
		}
	}
	return prices, nil
}

// extract reads the price of 'id' in 'currency' out of the decoded response.
func extract(jobj any, id, currency string) (decimal.Decimal, error) {
	path := fmt.Sprintf("$[%q][%q]", id, currency)
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("error parsing %q: %w", path, err)
	}
	// because jsonpath is never clear about wheter it returns a list of 1 answer, or a single answer:
	// by this call I keep the first one if any
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("error parsing %q: not a number %v", path, jval)
	}
	return decimal.NewFromFloat(val), nil
}
