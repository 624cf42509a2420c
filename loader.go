package holdings

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// column identifies a spreadsheet column independently of its header text.
type column int

const (
	colAsset column = iota + 1
	colInvested
	colPrice
	colQuantity
	colMarketValue
	colPL
	colRatio
)

// headers maps normalized header names to columns. Both the historical
// headers of the spreadsheet and their English names are accepted.
var headers = map[string]column{
	"資產":     colAsset,
	"asset":  colAsset,
	"symbol": colAsset,

	"投入(usd)":     colInvested,
	"invested(usd)": colInvested,
	"invested":      colInvested,

	"現價(usd)":  colPrice,
	"price(usd)": colPrice,
	"price":      colPrice,

	"持有數量":     colQuantity,
	"quantity": colQuantity,

	"現值(usd)":        colMarketValue,
	"marketvalue(usd)": colMarketValue,
	"marketvalue":      colMarketValue,

	"損益(usd)": colPL,
	"p/l(usd)":  colPL,
	"p/l":       colPL,

	"損益率":  colRatio,
	"p/l%": colRatio,
}

// normalizeHeader lowers and removes all spaces of a header cell.
func normalizeHeader(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	return strings.ToLower(strings.Join(strings.Fields(s), ""))
}

// ErrNoAssetColumn is returned when a table has no asset column.
var ErrNoAssetColumn = errors.New("no asset column")

// Load reads holdings from an .xlsx or a .csv file. For workbooks, 'sheet'
// selects the sheet, the first one is used if empty.
func Load(path, sheet string) ([]Holding, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx", ".xlsm":
		return loadWorkbook(path, sheet)
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("could not open holdings file %q: %w", path, err)
		}
		defer f.Close()
		holdings, err := DecodeCSV(f)
		if err != nil {
			return nil, fmt.Errorf("could not decode holdings file %q: %w", path, err)
		}
		return holdings, nil
	default:
		return nil, fmt.Errorf("unsupported holdings file %q: extension %q is neither .xlsx nor .csv", path, ext)
	}
}

func loadWorkbook(path, sheet string) ([]Holding, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not open holdings workbook %q: %w", path, err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("holdings workbook %q has no sheet", path)
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("could not read sheet %q of %q: %w", sheet, path, err)
	}
	holdings, err := Decode(rows)
	if err != nil {
		return nil, fmt.Errorf("could not decode sheet %q of %q: %w", sheet, path, err)
	}
	return holdings, nil
}

// DecodeCSV reads holdings from CSV content with a header line.
func DecodeCSV(r io.Reader) ([]Holding, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	return Decode(records)
}

// Decode converts table records into holdings. The first record is the
// header. Rows without an asset name are skipped; numeric cells that cannot
// be read are absent.
func Decode(records [][]string) ([]Holding, error) {
	if len(records) == 0 {
		return nil, ErrNoAssetColumn
	}
	index := make(map[column]int)
	for i, cell := range records[0] {
		if c, ok := headers[normalizeHeader(cell)]; ok {
			if _, dup := index[c]; !dup {
				index[c] = i
			}
		}
	}
	if _, ok := index[colAsset]; !ok {
		return nil, ErrNoAssetColumn
	}

	cell := func(record []string, c column) string {
		i, ok := index[c]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	var holdings []Holding
	for _, record := range records[1:] {
		asset := strings.TrimSpace(cell(record, colAsset))
		if asset == "" {
			continue
		}
		h := Holding{Asset: asset}
		h.Invested = parseMoney(cell(record, colInvested))
		h.Price = parseMoney(cell(record, colPrice))
		h.MarketValue = parseMoney(cell(record, colMarketValue))
		h.PL = parseMoney(cell(record, colPL))
		if q, ok := ParseNumber(cell(record, colQuantity)).Get(); ok {
			h.Quantity = Some(Q(q))
		}
		if r, ok := ParseNumber(cell(record, colRatio)).Get(); ok {
			h.Ratio = Some(Percent(100 * r.InexactFloat64()))
		}
		holdings = append(holdings, h)
	}
	return holdings, nil
}

func parseMoney(s string) Optional[Money] {
	if v, ok := ParseNumber(s).Get(); ok {
		return Some(M(v, USD))
	}
	return None[Money]()
}

// ParseNumber coerces a cell into a number. It accepts thousands separators,
// a leading '$' and a trailing '%' (the value is then divided by 100). Blank
// or malformed cells are absent.
func ParseNumber(s string) Optional[decimal.Decimal] {
	s = strings.TrimSpace(s)
	percent := strings.HasSuffix(s, "%")
	s = strings.TrimSuffix(s, "%")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	s = strings.TrimPrefix(s, "$")
	if s == "" || strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		return None[decimal.Decimal]()
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return None[decimal.Decimal]()
	}
	if neg {
		d = d.Neg()
	}
	if percent {
		d = d.Div(decimal.NewFromInt(100))
	}
	return Some(d)
}
