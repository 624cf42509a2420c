package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	headerStyle = cellStyle.Bold(true).Align(lipgloss.Center)
	gainColor   = lipgloss.Color("2")
	lossColor   = lipgloss.Color("1")
)

// Console writes the holdings table with P/L cells colored by sign: green
// for gains, red for losses.
func Console(w io.Writer, r *Report) error {
	rows := make([][]string, 0, len(r.Rows))
	for _, row := range r.Rows {
		rows = append(rows, cells(row))
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(columns...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			style := cellStyle
			if col != 1 {
				style = style.Align(lipgloss.Right)
			}
			if (col == colPL || col == colRatio) && row >= 0 && row < len(r.Rows) {
				switch r.Rows[row].Sign {
				case 1:
					style = style.Foreground(gainColor)
				case -1:
					style = style.Foreground(lossColor)
				}
			}
			return style
		})

	_, err := fmt.Fprintln(w, t.Render())
	return err
}

// cells returns the row cells in 'columns' order.
func cells(row Row) []string {
	return []string{
		fmt.Sprint(row.Rank),
		row.Asset,
		row.Invested,
		row.Price,
		row.Quantity,
		row.MarketValue,
		row.PL,
		row.Ratio,
		row.Weight,
	}
}

// barWidth is the length of the largest weight bar.
const barWidth = 40

// Bars writes a text bar chart of weights in report order (descending).
func Bars(w io.Writer, r *Report) error {
	maxWeight, nameWidth := 0.0, 0
	for _, row := range r.Rows {
		maxWeight = max(maxWeight, float64(row.Holding.Weight.Or(0)))
		nameWidth = max(nameWidth, lipgloss.Width(row.Asset))
	}
	if _, err := fmt.Fprintln(w, "Portfolio Allocation by Asset"); err != nil {
		return err
	}
	for _, row := range r.Rows {
		weight := float64(row.Holding.Weight.Or(0))
		n := 0
		if maxWeight > 0 && weight > 0 {
			n = int(weight/maxWeight*barWidth + 0.5)
		}
		pad := strings.Repeat(" ", nameWidth-lipgloss.Width(row.Asset))
		if _, err := fmt.Fprintf(w, "%s%s %s %.1f%%\n", row.Asset, pad, strings.Repeat("█", n), weight); err != nil {
			return err
		}
	}
	return nil
}
