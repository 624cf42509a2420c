package holdings

// usd is a helper for test to create a present usd amount from a const
func usd(v float64) Optional[Money] { return Some(M(v, USD)) }

// qty is a helper for test to create a present quantity from a const
func qty(v float64) Optional[Quantity] { return Some(Q(v)) }

// position returns a holding with invested, price and quantity set.
func position(asset string, invested, price, quantity float64) Holding {
	return Holding{Asset: asset, Invested: usd(invested), Price: usd(price), Quantity: qty(quantity)}
}

// valued returns a holding whose market value is set, nothing else.
func valued(asset string, mv float64) Holding {
	return Holding{Asset: asset, MarketValue: usd(mv)}
}

// assets returns the asset names in order.
func assets(holdings []Holding) []string {
	names := make([]string, 0, len(holdings))
	for _, h := range holdings {
		names = append(names, h.Asset)
	}
	return names
}
