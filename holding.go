package holdings

// CashAsset is the reserved asset name of the synthetic cash row.
const CashAsset = "CASH"

// Holding is one row of the portfolio table.
//
// Every numeric column is optional: the spreadsheet may leave cells blank, a
// price may never have been fetched, and the cash row has neither price nor
// quantity.
type Holding struct {
	Asset       string
	Invested    Optional[Money]
	Price       Optional[Money]
	Quantity    Optional[Quantity]
	MarketValue Optional[Money]
	PL          Optional[Money]
	Ratio       Optional[Percent] // PL over Invested.
	Weight      Optional[Percent] // MarketValue over the portfolio total value.
	Rank        int               // 1-based display index, set by Rank.
	Cash        bool              // true for the synthetic cash row.
}

// IsCash reports whether h is the cash row, either the synthetic one or a
// row of the spreadsheet using the reserved name.
func (h Holding) IsCash() bool { return h.Cash || h.Asset == CashAsset }

// Recalculate derives MarketValue, PL and Ratio from Price, Quantity and
// Invested.
//
// MarketValue is absent when either Price or Quantity is absent, PL is absent
// when MarketValue or Invested is, and Ratio is absent when PL is absent or
// Invested is zero.
func (h *Holding) Recalculate() {
	h.MarketValue, h.PL, h.Ratio = None[Money](), None[Money](), None[Percent]()

	price, okPrice := h.Price.Get()
	qty, okQty := h.Quantity.Get()
	if !okPrice || !okQty {
		return
	}
	mv := price.Mul(qty)
	h.MarketValue = Some(mv)

	invested, ok := h.Invested.Get()
	if !ok {
		return
	}
	pl := mv.Sub(invested)
	h.PL = Some(pl)
	if invested.IsZero() {
		return
	}
	h.Ratio = Some(Percent(100 * pl.Ratio(invested)))
}

// Recalculate recomputes the derived columns of every non-cash holding in
// place. The cash row carries fixed values and is left untouched.
func Recalculate(holdings []Holding) {
	for i := range holdings {
		if holdings[i].IsCash() {
			continue
		}
		holdings[i].Recalculate()
	}
}

// NewCashHolding returns the synthetic cash row: invested and market value
// are 'cash', P/L and ratio are zero, price and quantity are absent.
func NewCashHolding(cash Money) Holding {
	return Holding{
		Asset:       CashAsset,
		Invested:    Some(cash),
		MarketValue: Some(cash),
		PL:          Some(M(0, cash.Currency())),
		Ratio:       Some(Percent(0)),
		Cash:        true,
	}
}

// InjectCash removes any row named CashAsset and appends exactly one
// synthetic cash row.
func InjectCash(holdings []Holding, cash Money) []Holding {
	out := WithoutCash(holdings)
	return append(out, NewCashHolding(cash))
}

// WithoutCash returns a copy of holdings without any cash row.
func WithoutCash(holdings []Holding) []Holding {
	out := make([]Holding, 0, len(holdings)+1)
	for _, h := range holdings {
		if h.IsCash() {
			continue
		}
		out = append(out, h)
	}
	return out
}

// USD is the currency of every amount in the holdings spreadsheet.
const USD = "USD"
