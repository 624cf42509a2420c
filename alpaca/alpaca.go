// Package alpaca fetches equity daily closes from the Alpaca market data API.
//
// Credentials are read by the SDK from APCA_API_KEY_ID and
// APCA_API_SECRET_KEY when not given explicitly.
package alpaca

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
	"github.com/shopspring/decimal"
)

// window is the number of calendar days of bars requested to find the
// latest close.
const window = 7 * 24 * time.Hour

// ErrNoBar is returned when no daily bar is available.
var ErrNoBar = errors.New("no daily bar")

// barsGetter is the subset of the market data client used here.
type barsGetter interface {
	GetBars(symbol string, req marketdata.GetBarsRequest) ([]marketdata.Bar, error)
}

// Provider implements an equity source on top of Alpaca daily bars.
type Provider struct {
	md  barsGetter
	now func() time.Time
}

// NewProvider returns a Provider. Empty keys let the SDK read them from the
// environment.
func NewProvider(apiKey, apiSecret string) *Provider {
	return &Provider{
		md:  marketdata.NewClient(marketdata.ClientOpts{APIKey: apiKey, APISecret: apiSecret}),
		now: time.Now,
	}
}

// LatestClose returns the close of the most recent daily bar with a positive
// close over the last week.
func (p *Provider) LatestClose(ctx context.Context, symbol string) (decimal.Decimal, error) {
	if err := ctx.Err(); err != nil {
		return decimal.Decimal{}, err
	}
	end := p.now()
	bars, err := p.md.GetBars(symbol, marketdata.GetBarsRequest{
		TimeFrame: marketdata.OneDay,
		Start:     end.Add(-window),
		End:       end,
	})
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("alpaca bars for %s: %w", symbol, err)
	}
	var latest *marketdata.Bar
	for i := range bars {
		b := &bars[i]
		if b.Close <= 0 {
			continue
		}
		if latest == nil || b.Timestamp.After(latest.Timestamp) {
			latest = b
		}
	}
	if latest == nil {
		return decimal.Decimal{}, fmt.Errorf("%s: %w", symbol, ErrNoBar)
	}
	return decimal.NewFromFloat(latest.Close), nil
}
