// Package renderer formats a valued portfolio as markdown, a colored console
// table, HTML, CSV and charts.
package renderer

import (
	"fmt"
	"html"
	"strings"
	"text/template"
)

// columns are the table headers, in display order.
var columns = []string{"#", "Asset", "Invested (USD)", "Price (USD)", "Quantity", "Market Value (USD)", "P/L (USD)", "P/L %", "Weight"}

// index of the colored columns in 'columns'.
const (
	colPL    = 6
	colRatio = 7
)

const reportTemplate = `# Portfolio

| # | Asset | Invested (USD) | Price (USD) | Quantity | Market Value (USD) | P/L (USD) | P/L % | Weight |
|---:|:---|---:|---:|---:|---:|---:|---:|---:|
{{- range .Rows }}
| {{ .Rank }} | {{ asset .Asset }} | {{ .Invested }} | {{ .Price }} | {{ .Quantity }} | {{ .MarketValue }} | {{ pl .Sign .PL }} | {{ pl .Sign .Ratio }} | {{ .Weight }} |
{{- end }}

{{ template "summary" . }}`

const summaryTemplate = `## Portfolio Totals (exclude cash)

- Total Invested: **{{ .Totals.Invested }}**
- Total P/L: **{{ .Totals.PL.SignedString }}**
- Total P/L %: **{{ .Totals.Ratio.SignedString }}**

Total Portfolio Value (incl. cash): **{{ .Totals.Value }}**

Cash Position: {{ .Totals.Cash }} ({{ .Totals.CashWeight }})
{{- if .Warnings }}

## Consistency Warnings
{{ range .Warnings }}
- {{ . }}
{{- end }}
{{- end }}
`

// assetCell escapes the asset name for a markdown table cell: pipes would
// split the cell and markup would reach the html page.
func assetCell(name string) string {
	return strings.ReplaceAll(html.EscapeString(name), "|", `\|`)
}

// plainCell returns the cell as is.
func plainCell(sign int, cell string) string { return cell }

// htmlCell wraps the cell into a span colored by sign.
func htmlCell(sign int, cell string) string {
	class := ""
	switch {
	case sign < 0:
		class = "loss"
	case sign > 0:
		class = "gain"
	default:
		return html.EscapeString(cell)
	}
	return fmt.Sprintf(`<span class="%s">%s</span>`, class, html.EscapeString(cell))
}

// Markdown renders the full report: table, totals and warnings.
func Markdown(r *Report) string {
	return renderTemplate(r, plainCell)
}

// Summary renders the totals and the warnings only.
func Summary(r *Report) string {
	tmpl := template.Must(template.New("summary").Parse(summaryTemplate))
	var b strings.Builder
	if err := tmpl.Execute(&b, r); err != nil {
		return fmt.Sprintf("error executing template %q: %v", "summary", err)
	}
	return b.String()
}

// renderTemplate renders the report template with 'cell' formatting the
// colored P/L cells.
func renderTemplate(r *Report, cell func(int, string) string) string {
	tmpl, err := template.New("report").Funcs(template.FuncMap{"pl": cell, "asset": assetCell}).Parse(reportTemplate)
	if err != nil {
		return fmt.Sprintf("error parsing template %q: %v", "report", err)
	}
	if _, err := tmpl.New("summary").Parse(summaryTemplate); err != nil {
		return fmt.Sprintf("error parsing template %q: %v", "summary", err)
	}
	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, "report", r); err != nil {
		return fmt.Sprintf("error executing template %q: %v", "report", err)
	}
	return b.String()
}
