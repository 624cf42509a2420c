package renderer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/etnz/holdings"
)

// CSV writes the report rows with raw numbers: amounts and quantities as
// exact decimals, ratio and weight as fractions. Absent values are empty.
//
// The output starts with a UTF-8 byte order mark so that spreadsheet
// applications detect the encoding.
func CSV(w io.Writer, r *Report) error {
	if _, err := io.WriteString(w, "\ufeff"); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return err
	}
	for _, row := range r.Rows {
		h := row.Holding
		record := []string{
			strconv.Itoa(row.Rank),
			h.Asset,
			rawMoney(h.Invested),
			rawMoney(h.Price),
			"",
			rawMoney(h.MarketValue),
			rawMoney(h.PL),
			rawPercent(h.Ratio),
			rawPercent(h.Weight),
		}
		if q, ok := h.Quantity.Get(); ok {
			record[4] = q.String()
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func rawMoney(m holdings.Optional[holdings.Money]) string {
	if v, ok := m.Get(); ok {
		return v.Decimal().String()
	}
	return ""
}

func rawPercent(p holdings.Optional[holdings.Percent]) string {
	if v, ok := p.Get(); ok {
		return fmt.Sprint(v.Ratio())
	}
	return ""
}
