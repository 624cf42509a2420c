package renderer

import (
	"bytes"
	"html/template"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

const pageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{ .Title }}</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 4px 8px; }
th { background: #f4f4f4; }
.gain { color: green; }
.loss { color: red; }
</style>
</head>
<body>
{{ .Body }}
</body>
</html>
`

var page = template.Must(template.New("page").Parse(pageTemplate))

// HTML writes a standalone HTML page of the report, P/L cells colored by
// sign.
func HTML(w io.Writer, r *Report) error {
	md := goldmark.New(
		goldmark.WithExtensions(extension.Table),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)
	var body bytes.Buffer
	if err := md.Convert([]byte(renderTemplate(r, htmlCell)), &body); err != nil {
		return err
	}
	return page.Execute(w, struct {
		Title string
		Body  template.HTML
	}{
		Title: "Portfolio",
		Body:  template.HTML(body.String()),
	})
}
