package holdings

import (
	"cmp"
	"slices"
)

// TotalValue returns the sum of all market values, cash included. Absent
// market values count as zero.
func TotalValue(holdings []Holding, currency string) Money {
	total := M(0, currency)
	for _, h := range holdings {
		if mv, ok := h.MarketValue.Get(); ok {
			total = total.Add(mv)
		}
	}
	return total
}

// Rank sets every holding weight to its share of the total value, sorts
// holdings by descending weight and numbers them from 1.
//
// A total value that is not positive is replaced by one so that weights stay
// finite. Holdings without market value have no weight and are ranked last.
// Ties keep their original order.
func Rank(holdings []Holding, currency string) {
	total := TotalValue(holdings, currency)
	if !total.IsPositive() {
		total = M(1, currency)
	}
	for i := range holdings {
		holdings[i].Weight = None[Percent]()
		if mv, ok := holdings[i].MarketValue.Get(); ok {
			holdings[i].Weight = Some(Percent(100 * mv.Ratio(total)))
		}
	}
	slices.SortStableFunc(holdings, func(a, b Holding) int {
		wa, oka := a.Weight.Get()
		wb, okb := b.Weight.Get()
		switch {
		case oka && okb:
			return cmp.Compare(wb, wa)
		case oka:
			return -1
		case okb:
			return 1
		}
		return 0
	})
	for i := range holdings {
		holdings[i].Rank = i + 1
	}
}
