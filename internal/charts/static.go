package charts

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"webcarbon/internal/models"
)

// Format selects the static image encoding
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// ParseFormat converts a file extension or format name into a Format
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "png":
		return FormatPNG, nil
	case "svg":
		return FormatSVG, nil
	default:
		return "", fmt.Errorf("unsupported chart format: %s", s)
	}
}

func (f Format) provider() chart.RendererProvider {
	if f == FormatSVG {
		return chart.SVG
	}
	return chart.PNG
}

// colorFromHex converts "#rrggbb" into a drawing color
func colorFromHex(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

// RenderStatic draws the stacked bar chart as a PNG or SVG image
func (cg *ChartGenerator) RenderStatic(w io.Writer, records []models.PlatformEnergyRecord, format Format) error {
	if len(records) == 0 {
		return fmt.Errorf("no records to chart")
	}

	all := models.AllSeries()
	bars := make([]chart.StackedBar, 0, len(records))
	for _, r := range records {
		values := make([]chart.Value, 0, len(all))
		for _, s := range all {
			v, _ := r.Value(s.Key)
			c := colorFromHex(s.Color)
			values = append(values, chart.Value{
				Label: s.Name,
				Value: v,
				Style: chart.Style{FillColor: c, StrokeColor: c, StrokeWidth: 1},
			})
		}
		bars = append(bars, chart.StackedBar{Name: r.Name, Values: values})
	}

	graph := chart.StackedBarChart{
		Title: ChartTitle,
		TitleStyle: chart.Style{
			FontSize:  16,
			FontColor: drawing.ColorBlack,
		},
		Background: chart.Style{
			Padding: chart.Box{
				Top:    80,
				Left:   60,
				Right:  30,
				Bottom: 60,
			},
		},
		Width:      900,
		Height:     500,
		BarSpacing: 60,
		XAxis: chart.Style{
			FontSize: 12,
		},
		YAxis: chart.Style{
			FontSize: 10,
		},
		Bars:     bars,
		Elements: []chart.Renderable{seriesLegend(all), axisTitles(XAxisName, YAxisName)},
	}

	if err := graph.Render(format.provider(), w); err != nil {
		return fmt.Errorf("failed to render %s chart: %w", format, err)
	}
	return nil
}

// seriesLegend draws one colored swatch per series across the top of the canvas
func seriesLegend(all []models.Series) chart.Renderable {
	return func(r chart.Renderer, canvasBox chart.Box, defaults chart.Style) {
		if defaults.Font != nil {
			r.SetFont(defaults.Font)
		}
		r.SetFontSize(11)
		r.SetFontColor(drawing.ColorBlack)

		const swatch = 12
		x := canvasBox.Left
		y := canvasBox.Top - 30
		for _, s := range all {
			c := colorFromHex(s.Color)
			r.SetFillColor(c)
			r.SetStrokeColor(c)
			r.MoveTo(x, y)
			r.LineTo(x+swatch, y)
			r.LineTo(x+swatch, y+swatch)
			r.LineTo(x, y+swatch)
			r.Close()
			r.FillStroke()

			r.Text(s.Name, x+swatch+6, y+swatch-1)
			x += swatch + 6 + len(s.Name)*7 + 24
		}
	}
}

// axisTitles names the category axis below the bars and the value axis along the left edge
func axisTitles(xName, yName string) chart.Renderable {
	return func(r chart.Renderer, canvasBox chart.Box, defaults chart.Style) {
		if defaults.Font != nil {
			r.SetFont(defaults.Font)
		}
		r.SetFontSize(12)
		r.SetFontColor(drawing.ColorBlack)

		xBox := r.MeasureText(xName)
		r.Text(xName, canvasBox.Left+(canvasBox.Width()-xBox.Width())/2, canvasBox.Bottom+40)

		yBox := r.MeasureText(yName)
		r.SetTextRotation(3 * math.Pi / 2)
		r.Text(yName, canvasBox.Left-30, canvasBox.Top+(canvasBox.Height()+yBox.Width())/2)
		r.ClearTextRotation()
	}
}
