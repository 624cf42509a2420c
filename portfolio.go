package holdings

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Portfolio is a fully valued portfolio, ready to be rendered.
type Portfolio struct {
	// Holdings are ranked by descending weight, the cash row included.
	Holdings []Holding
	Totals   Totals
	Warnings []Warning
	// Quotes are the fetch outcomes, in spreadsheet order.
	Quotes []Quote
}

// Valuation turns the holdings of a spreadsheet into a Portfolio.
type Valuation struct {
	Cash    Money
	Fetcher *Fetcher // nil keeps all stored prices
	Log     logrus.FieldLogger
}

// Run values 'holdings': it updates prices, recomputes derived columns,
// computes totals, replaces the cash row, ranks holdings and reviews them.
//
// 'holdings' is not modified.
func (v *Valuation) Run(ctx context.Context, holdings []Holding) *Portfolio {
	rows := WithoutCash(holdings)
	p := new(Portfolio)

	if v.Fetcher != nil {
		assets := make([]string, 0, len(rows))
		for _, h := range rows {
			assets = append(assets, h.Asset)
		}
		p.Quotes = v.Fetcher.Fetch(ctx, assets)
		ApplyQuotes(rows, p.Quotes)
	}

	Recalculate(rows)
	p.Totals = NewTotals(rows, v.Cash)

	rows = InjectCash(rows, v.Cash)
	Rank(rows, v.Cash.Currency())
	p.Holdings = rows
	p.Warnings = Review(rows)

	if v.Log != nil {
		v.Log.WithFields(logrus.Fields{
			"holdings": len(rows),
			"value":    p.Totals.Value.String(),
			"warnings": len(p.Warnings),
		}).Debug("portfolio valued")
	}
	return p
}
