// Package eodhd fetches end-of-day equity and ETF prices from eodhd.com.
package eodhd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/etnz/holdings/date"
	"github.com/etnz/holdings/webcache"
	"github.com/shopspring/decimal"
)

// DefaultBaseURL is the root of the EODHD API.
const DefaultBaseURL = "https://eodhd.com/api"

// DefaultExchange is the EODHD exchange code appended to bare tickers.
const DefaultExchange = "US"

// window is the number of calendar days fetched to find the latest close, it
// spans week-ends and holidays.
const window = 7

// Timeout bounds each daily closes request.
const Timeout = 30 * time.Second

// ErrNoClose is returned when the history holds no valid close.
var ErrNoClose = errors.New("no valid close in history")

// Client queries EODHD daily prices.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	today   func() date.Date
}

// New returns a Client using 'apiKey'. A nil http client uses a plain
// client with Timeout.
func New(apiKey string, client *http.Client) *Client {
	if client == nil {
		client = &http.Client{Timeout: Timeout}
	}
	return &Client{apiKey: apiKey, baseURL: DefaultBaseURL, http: client, today: date.Today}
}

// WithBaseURL returns a copy of c that targets another API root.
func (c *Client) WithBaseURL(base string) *Client {
	n := *c
	n.baseURL = strings.TrimSuffix(base, "/")
	return &n
}

// Ticker returns the EODHD ticker of a symbol: "SYMBOL.EXCHANGE", bare
// symbols are assumed on DefaultExchange.
func Ticker(symbol string) string {
	if strings.Contains(symbol, ".") {
		return symbol
	}
	return symbol + "." + DefaultExchange
}

// LatestClose returns the most recent valid close of 'symbol' over the last
// few days.
func (c *Client) LatestClose(ctx context.Context, symbol string) (decimal.Decimal, error) {
	to := c.today()
	closes, err := c.Closes(ctx, Ticker(symbol), to.Add(-window), to)
	if err != nil {
		return decimal.Decimal{}, err
	}
	_, close, ok := closes.Latest()
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("%s: %w", symbol, ErrNoClose)
	}
	return close, nil
}

// Closes returns the daily closes for a given ticker, bounds included.
func (c *Client) Closes(ctx context.Context, ticker string, from, to date.Date) (*date.Closes, error) {
	// https://eodhd.com/api/eod/MCD.US?api_token=demo&fmt=json
	// [
	//	{
	//		"date": "2024-02-13",
	//		"open": 675.066,
	//		"high": 684.219,
	//		"low": 648.659,
	//		"close": 668.445,
	//		"adjusted_close": 67.705,
	//		"volume": 0
	//	},
	addr := fmt.Sprintf("%s/eod/%s?fmt=json&api_token=%s&from=%s&to=%s",
		c.baseURL, url.PathEscape(ticker), url.QueryEscape(c.apiKey), from, to)

	type Info struct {
		Date  date.Date           `json:"date"`
		Close decimal.NullDecimal `json:"close"`
	}

	content := make([]Info, 0)
	if err := webcache.GetJSON(ctx, c.http, addr, &content); err != nil {
		return nil, fmt.Errorf("eodhd prices for %s: %w", ticker, err)
	}

	closes := new(date.Closes)
	for _, info := range content {
		closes.Append(info.Date, info.Close)
	}
	return closes, nil
}
