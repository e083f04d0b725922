package charts

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"webcarbon/internal/models"
)

// tooltipLookup reads the precomputed tooltip for the hovered category.
// It must avoid double quotes and HTML special characters because the option
// JSON carries it as an escaped string.
const tooltipLookup = "function (params) { var t = energyTips[params[0].name]; return t ? t : ''; }"

// RenderInteractive renders a standalone go-echarts page with the stacked bar chart
func (cg *ChartGenerator) RenderInteractive(w io.Writer, records []models.PlatformEnergyRecord) error {
	if len(records) == 0 {
		return fmt.Errorf("no records to chart")
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: ChartTitle,
			Theme:     types.ThemeWesteros,
			Width:     "900px",
			Height:    "500px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title: ChartTitle,
			Left:  "center",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:        true,
			Trigger:     "axis",
			AxisPointer: &opts.AxisPointer{Type: "shadow"},
			Formatter:   opts.FuncOpts(tooltipLookup),
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: true,
			Top:  "8%",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: XAxisName,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: YAxisName,
		}),
	)

	names := make([]string, 0, len(records))
	for _, r := range records {
		names = append(names, r.Name)
	}
	bar.SetXAxis(names)

	for _, s := range models.AllSeries() {
		data := make([]opts.BarData, 0, len(records))
		for _, r := range records {
			v, _ := r.Value(s.Key)
			data = append(data, opts.BarData{Name: r.Name, Value: v})
		}
		bar.AddSeries(s.Name, data,
			charts.WithBarChartOpts(opts.BarChart{Stack: "total"}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color}),
		)
	}

	tips, err := json.Marshal(TooltipHTML(records))
	if err != nil {
		return fmt.Errorf("failed to marshal tooltips: %w", err)
	}
	bar.AddJSFuncs(fmt.Sprintf("var energyTips = %s;", tips))

	if err := bar.Render(w); err != nil {
		return fmt.Errorf("failed to render interactive chart: %w", err)
	}
	return nil
}
