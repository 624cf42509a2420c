package renderer

import (
	"bytes"
	"context"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/etnz/holdings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testReport values three positions and 500 USD of cash:
//
//	AAPL 10 × 150 for 1000 invested (gain)
//	TSLA 10 × 100 for 2000 invested (loss)
//	FOO  5 units without price
func testReport(t *testing.T) *Report {
	t.Helper()
	usd := func(v int) holdings.Optional[holdings.Money] { return holdings.Some(holdings.M(v, holdings.USD)) }
	qty := func(v int) holdings.Optional[holdings.Quantity] { return holdings.Some(holdings.Q(v)) }
	rows := []holdings.Holding{
		{Asset: "FOO", Invested: usd(0), Quantity: qty(5)},
		{Asset: "TSLA", Invested: usd(2000), Price: usd(100), Quantity: qty(10)},
		{Asset: "AAPL", Invested: usd(1000), Price: usd(150), Quantity: qty(10)},
	}
	v := holdings.Valuation{Cash: holdings.M(500, holdings.USD)}
	return NewReport(v.Run(context.Background(), rows))
}

func TestNewReport(t *testing.T) {
	r := testReport(t)
	require.Len(t, r.Rows, 4)

	var assets []string
	for _, row := range r.Rows {
		assets = append(assets, row.Asset)
	}
	assert.Equal(t, []string{"AAPL", "TSLA", "CASH", "FOO"}, assets)

	aapl := r.Rows[0]
	assert.Equal(t, 1, aapl.Rank)
	assert.Equal(t, "$1,500.00", aapl.MarketValue)
	assert.Equal(t, "10.0000", aapl.Quantity)
	assert.Equal(t, "50.00%", aapl.Ratio)
	assert.Equal(t, 1, aapl.Sign)

	assert.Equal(t, -1, r.Rows[1].Sign)
	assert.Equal(t, "-50.00%", r.Rows[1].Ratio)

	foo := r.Rows[3]
	assert.Equal(t, absent, foo.Price)
	assert.Equal(t, absent, foo.MarketValue)
	assert.Equal(t, absent, foo.Ratio)
	assert.Equal(t, absent, foo.Weight)
	assert.Equal(t, 0, foo.Sign)
}

func TestSummary(t *testing.T) {
	want := `## Portfolio Totals (exclude cash)

- Total Invested: **$3,000.00**
- Total P/L: **-$500.00**
- Total P/L %: **-16.67%**

Total Portfolio Value (incl. cash): **$3,000.00**

Cash Position: $500.00 (16.67%)
`
	assert.Equal(t, want, Summary(testReport(t)))
}

func TestSummary_Warnings(t *testing.T) {
	r := testReport(t)
	r.Warnings = []string{"AAPL: first", "TSLA: second"}
	got := Summary(r)
	assert.Contains(t, got, "## Consistency Warnings\n\n- AAPL: first\n- TSLA: second\n")
}

func TestMarkdown(t *testing.T) {
	got := Markdown(testReport(t))

	for _, line := range []string{
		"| # | Asset | Invested (USD) | Price (USD) | Quantity | Market Value (USD) | P/L (USD) | P/L % | Weight |",
		"| 1 | AAPL | $1,000.00 | $150.00 | 10.0000 | $1,500.00 | $500.00 | 50.00% | 50.00% |",
		"| 2 | TSLA | $2,000.00 | $100.00 | 10.0000 | $1,000.00 | -$1,000.00 | -50.00% | 33.33% |",
		"| 3 | CASH | $500.00 | — | — | $500.00 | $0.00 | 0.00% | 16.67% |",
		"| 4 | FOO | $0.00 | — | 5.0000 | — | — | — | — |",
		"Total Portfolio Value (incl. cash): **$3,000.00**",
	} {
		assert.Contains(t, got, line+"\n")
	}
	assert.NotContains(t, got, "Consistency Warnings")
}

func TestHTML(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, HTML(&b, testReport(t)))
	got := b.String()

	assert.True(t, strings.HasPrefix(got, "<!DOCTYPE html>"))
	assert.Contains(t, got, "<table>")
	assert.Contains(t, got, `<span class="gain">$500.00</span>`)
	assert.Contains(t, got, `<span class="loss">-$1,000.00</span>`)
	assert.Contains(t, got, `<span class="loss">-50.00%</span>`)
	assert.Contains(t, got, "Portfolio Totals (exclude cash)")
}

func TestCSV(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, CSV(&b, testReport(t)))

	got := b.String()
	require.True(t, strings.HasPrefix(got, "\ufeff"), "missing byte order mark")

	records, err := csv.NewReader(strings.NewReader(strings.TrimPrefix(got, "\ufeff"))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 5)
	assert.Equal(t, columns, records[0])
	assert.Equal(t, []string{"1", "AAPL", "1000", "150", "10", "1500", "500", "0.5", "0.5"}, records[1])
	assert.Equal(t, []string{"3", "CASH", "500", "", "", "500", "0", "0"}, records[3][:8])
	assert.Equal(t, []string{"4", "FOO", "0", "", "5", "", "", "", ""}, records[4])
}

func TestConsole(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, Console(&b, testReport(t)))
	got := b.String()

	for _, s := range []string{"Asset", "Weight", "AAPL", "TSLA", "CASH", "FOO", "-$1,000.00", "16.67%"} {
		assert.Contains(t, got, s)
	}
	assert.Less(t, strings.Index(got, "AAPL"), strings.Index(got, "TSLA"))
}

func TestBars(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, Bars(&b, testReport(t)))

	lines := strings.Split(strings.TrimSuffix(b.String(), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "Portfolio Allocation by Asset", lines[0])
	assert.Equal(t, "AAPL "+strings.Repeat("█", barWidth)+" 50.0%", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "TSLA "))
	assert.True(t, strings.HasSuffix(lines[2], " 33.3%"))
	assert.Equal(t, "FOO   0.0%", lines[4])
}

func TestChart(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, Chart(&b, testReport(t)))
	assert.True(t, bytes.HasPrefix(b.Bytes(), []byte("\x89PNG")), "not a png")
}

func TestChart_Empty(t *testing.T) {
	var b bytes.Buffer
	assert.Error(t, Chart(&b, &Report{}))
	assert.Zero(t, b.Len())
}

func TestMarkdown_EscapesAsset(t *testing.T) {
	r := testReport(t)
	r.Rows[0].Asset = "A|B<script>"
	got := Markdown(r)
	assert.Contains(t, got, `| 1 | A\|B&lt;script&gt; | $1,000.00 |`)

	var b bytes.Buffer
	require.NoError(t, HTML(&b, r))
	assert.NotContains(t, b.String(), "<script>")
	assert.Contains(t, b.String(), "A|B&lt;script&gt;")
}

func TestBars_WideNames(t *testing.T) {
	r := testReport(t)
	r.Rows[0].Asset = "比特幣"
	var b bytes.Buffer
	require.NoError(t, Bars(&b, r))

	lines := strings.Split(strings.TrimSuffix(b.String(), "\n"), "\n")
	require.Len(t, lines, 5)
	// the widest name is 6 cells wide, the narrower ones are padded to it
	assert.True(t, strings.HasPrefix(lines[1], "比特幣 █"), lines[1])
	assert.Equal(t, "FOO     0.0%", lines[4])
}
