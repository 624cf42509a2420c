package date

import (
	"slices"

	"github.com/shopspring/decimal"
)

// Closes is a chronological series of daily closing prices. A day may be
// present with no price: quote services report holidays or halted sessions
// as null closes.
type Closes struct {
	days   []Date
	values []decimal.NullDecimal
}

// Len returns the number of days in the series, with or without a price.
func (c *Closes) Len() int { return len(c.days) }

// Append records the close of 'on', replacing an existing one.
func (c *Closes) Append(on Date, close decimal.NullDecimal) *Closes {
	i, found := slices.BinarySearchFunc(c.days, on, compare)
	if found {
		c.values[i] = close
		return c
	}
	c.days = slices.Insert(c.days, i, on)
	c.values = slices.Insert(c.values, i, close)
	return c
}

// Latest returns the most recent valid close. Missing closes are skipped.
func (c *Closes) Latest() (on Date, close decimal.Decimal, ok bool) {
	for i := len(c.days) - 1; i >= 0; i-- {
		if c.values[i].Valid {
			return c.days[i], c.values[i].Decimal, true
		}
	}
	return Date{}, decimal.Decimal{}, false
}

func compare(d, t Date) int {
	switch {
	case d.Before(t):
		return -1
	case d.After(t):
		return 1
	}
	return 0
}
