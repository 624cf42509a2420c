package holdings

import "fmt"

// Percent is a ratio expressed in percentage points (12.5 means 12.5%).
type Percent float64

// Ratio returns p as a fraction (12.5% is 0.125).
func (p Percent) Ratio() float64 { return float64(p) / 100 }

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", float64(p))
}

func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", float64(p))
	if res == "+0.00%" || res == "-0.00%" {
		return "0.00%"
	}
	return res
}
