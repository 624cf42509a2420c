package renderer

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Chart geometry.
const (
	chartWidth  = 10 * vg.Inch
	chartHeight = 6 * vg.Inch
	chartDPI    = 150
)

var barColor = color.RGBA{R: 31, G: 119, B: 180, A: 255}

// Chart writes a PNG bar chart of weights in report order, each bar labeled
// with its percentage.
func Chart(w io.Writer, r *Report) error {
	if len(r.Rows) == 0 {
		return errors.New("no holdings to chart")
	}
	values := make(plotter.Values, len(r.Rows))
	names := make([]string, len(r.Rows))
	points := make(plotter.XYs, len(r.Rows))
	labels := make([]string, len(r.Rows))
	top := 0.0
	for i, row := range r.Rows {
		weight := float64(row.Holding.Weight.Or(0))
		values[i] = weight
		names[i] = row.Asset
		points[i] = plotter.XY{X: float64(i), Y: weight}
		labels[i] = fmt.Sprintf("%.1f%%", weight)
		top = max(top, weight)
	}

	p := plot.New()
	p.Title.Text = "Portfolio Allocation by Asset"
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.Y.Label.Text = "Weight (%)"
	p.Y.Label.TextStyle.Font.Size = vg.Points(12)
	p.Y.Min = 0
	p.Y.Max = math.Max(top*1.1, 1)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = text.XRight

	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return fmt.Errorf("cannot create bar chart: %w", err)
	}
	bars.Color = barColor
	bars.LineStyle.Width = 0
	p.Add(bars)
	p.NominalX(names...)

	annotations, err := plotter.NewLabels(plotter.XYLabels{XYs: points, Labels: labels})
	if err != nil {
		return fmt.Errorf("cannot create bar labels: %w", err)
	}
	for i := range annotations.TextStyle {
		annotations.TextStyle[i].Font.Size = vg.Points(9)
		annotations.TextStyle[i].XAlign = text.XCenter
		annotations.TextStyle[i].YAlign = text.YBottom
	}
	p.Add(annotations)

	c := vgimg.NewWith(vgimg.UseWH(chartWidth, chartHeight), vgimg.UseDPI(chartDPI))
	p.Draw(draw.New(c))
	_, err = vgimg.PngCanvas{Canvas: c}.WriteTo(w)
	return err
}
