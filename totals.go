package holdings

// Totals are the aggregate figures of a portfolio.
//
// Invested and PL cover positions only, the cash row is excluded. Value
// includes cash.
type Totals struct {
	Invested   Money   // total invested capital, cash excluded
	PL         Money   // total profit/loss, cash excluded
	Ratio      Percent // PL over Invested, 0 when Invested is not positive
	Positions  Money   // total market value of positions, cash excluded
	Value      Money   // Positions plus Cash
	Cash       Money   // uninvested cash
	CashWeight Percent // Cash over Value, 0 when Value is not positive
}

// NewTotals aggregates holdings. Cash rows are ignored; 'cash' is the
// configured cash amount. Absent values count as zero.
func NewTotals(holdings []Holding, cash Money) Totals {
	currency := cash.Currency()
	t := Totals{
		Invested:  M(0, currency),
		PL:        M(0, currency),
		Positions: M(0, currency),
		Cash:      cash,
	}
	for _, h := range holdings {
		if h.IsCash() {
			continue
		}
		t.Invested = t.Invested.Add(h.Invested.Or(M(0, currency)))
		t.PL = t.PL.Add(h.PL.Or(M(0, currency)))
		t.Positions = t.Positions.Add(h.MarketValue.Or(M(0, currency)))
	}
	if t.Invested.IsPositive() {
		t.Ratio = Percent(100 * t.PL.Ratio(t.Invested))
	}
	t.Value = t.Positions.Add(cash)
	if t.Value.IsPositive() {
		t.CashWeight = Percent(100 * cash.Ratio(t.Value))
	}
	return t
}
