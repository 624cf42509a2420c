package holdings

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// WarningKind classifies consistency warnings.
type WarningKind int

const (
	// HighMultiple flags a position worth more than maxValueMultiple times its
	// invested capital: the cost basis was probably not updated after a buy
	// or a split.
	HighMultiple WarningKind = iota + 1
	// ValueMismatch flags a market value that disagrees with price × quantity:
	// quantity or price is probably stale.
	ValueMismatch
)

const maxValueMultiple = 3

// Warning is an advisory finding of Review. It never blocks a report.
type Warning struct {
	Asset string
	Kind  WarningKind
	// Multiple is MarketValue/Invested for HighMultiple.
	Multiple float64
	// MarketValue and Computed are the stored and the price × quantity values
	// for ValueMismatch.
	MarketValue Money
	Computed    Money
}

func (w Warning) String() string {
	switch w.Kind {
	case HighMultiple:
		return fmt.Sprintf("%s: market value / invested = %.2f, the invested amount may not include later buys or splits, please check.", w.Asset, w.Multiple)
	case ValueMismatch:
		return fmt.Sprintf("%s: market value (%.2f) differs from price × quantity (%.2f), please check quantity and price.", w.Asset, w.MarketValue.AsFloat(), w.Computed.AsFloat())
	}
	return w.Asset + ": unknown warning"
}

// Review runs the consistency checks over holdings and returns warnings in
// holdings order. Cash rows are never flagged.
func Review(holdings []Holding) []Warning {
	var warnings []Warning
	for _, h := range holdings {
		if h.IsCash() {
			continue
		}
		invested := h.Invested.Or(Money{})
		mv := h.MarketValue.Or(Money{})

		if invested.IsPositive() && mv.IsPositive() {
			if multiple := mv.Ratio(invested); multiple > maxValueMultiple {
				warnings = append(warnings, Warning{Asset: h.Asset, Kind: HighMultiple, Multiple: multiple})
			}
		}

		price, qty := h.Price.Or(Money{}), h.Quantity.Or(Quantity{})
		if h.MarketValue.IsSet() && price.IsPositive() && qty.IsPositive() {
			computed := price.Mul(qty)
			tolerance := decimal.Max(decimal.NewFromInt(1), mv.Decimal().Mul(decimal.NewFromFloat(0.01)))
			if computed.Sub(mv).Abs().Decimal().GreaterThan(tolerance) {
				warnings = append(warnings, Warning{Asset: h.Asset, Kind: ValueMismatch, MarketValue: mv, Computed: computed})
			}
		}
	}
	return warnings
}
