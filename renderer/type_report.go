package renderer

import (
	"github.com/etnz/holdings"
)

// absent is how missing values are displayed.
const absent = "—"

// Report is the display-ready form of a valued portfolio.
//
// Numbers are already formatted; the source holdings are kept for outputs
// that need raw values (csv, chart).
type Report struct {
	Rows     []Row
	Totals   holdings.Totals
	Warnings []string
}

// Row is a single table row.
type Row struct {
	Rank        int
	Asset       string
	Invested    string
	Price       string
	Quantity    string
	MarketValue string
	PL          string
	Ratio       string
	Weight      string
	// Sign of the P/L: -1 loss, 1 gain (zero included), 0 unknown.
	Sign    int
	Holding holdings.Holding
}

// NewReport creates a Report from a valued portfolio.
func NewReport(p *holdings.Portfolio) *Report {
	r := &Report{
		Rows:     make([]Row, 0, len(p.Holdings)),
		Totals:   p.Totals,
		Warnings: make([]string, 0, len(p.Warnings)),
	}
	for _, h := range p.Holdings {
		row := Row{
			Rank:        h.Rank,
			Asset:       h.Asset,
			Invested:    money(h.Invested),
			Price:       money(h.Price),
			Quantity:    absent,
			MarketValue: money(h.MarketValue),
			PL:          money(h.PL),
			Ratio:       percent(h.Ratio),
			Weight:      percent(h.Weight),
			Holding:     h,
		}
		if q, ok := h.Quantity.Get(); ok {
			row.Quantity = q.Format()
		}
		if pl, ok := h.PL.Get(); ok {
			row.Sign = 1
			if pl.IsNegative() {
				row.Sign = -1
			}
		}
		r.Rows = append(r.Rows, row)
	}
	for _, w := range p.Warnings {
		r.Warnings = append(r.Warnings, w.String())
	}
	return r
}

func money(m holdings.Optional[holdings.Money]) string {
	if v, ok := m.Get(); ok {
		return v.String()
	}
	return absent
}

func percent(p holdings.Optional[holdings.Percent]) string {
	if v, ok := p.Get(); ok {
		return v.String()
	}
	return absent
}
