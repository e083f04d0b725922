package charts

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"webcarbon/internal/models"
	"webcarbon/internal/tooltip"
)

// ChartSnippet represents an embeddable ECharts chart fragment.
// Div contains a single root <div id="..." style="..."></div>
// Script contains the <script>...</script> block that initializes the chart in that div.
// HTML contains the complete snippet with div + script combined for template substitution.
type ChartSnippet struct {
	ID     string
	Title  string
	Div    string
	Script string
	HTML   string
}

// echartsCDN is the script tag loading the ECharts runtime used by snippets
const echartsCDN = `<script src="https://cdn.jsdelivr.net/npm/echarts@5.4.3/dist/echarts.min.js"></script>`

// GenerateEnergySnippet builds the stacked ECharts bar chart for the report page.
// Hover text is produced by the tooltip formatter ahead of time and looked up by
// platform name in the browser.
func (cg *ChartGenerator) GenerateEnergySnippet(records []models.PlatformEnergyRecord) (ChartSnippet, error) {
	id := "chart-energy-consumption"

	names := make([]string, 0, len(records))
	for _, r := range records {
		names = append(names, r.Name)
	}

	series := make([]interface{}, 0, 3)
	for _, s := range models.AllSeries() {
		values := make([]float64, 0, len(records))
		for _, r := range records {
			v, _ := r.Value(s.Key)
			values = append(values, v)
		}
		series = append(series, map[string]interface{}{
			"name":      s.Name,
			"type":      "bar",
			"stack":     "total",
			"data":      values,
			"itemStyle": map[string]interface{}{"color": s.Color},
		})
	}

	option := map[string]interface{}{
		"tooltip": map[string]interface{}{"trigger": "axis", "axisPointer": map[string]interface{}{"type": "shadow"}},
		"legend":  map[string]interface{}{"top": 0},
		"grid":    map[string]interface{}{"left": "8%", "right": "4%", "bottom": "12%", "containLabel": true},
		"xAxis": map[string]interface{}{
			"type": "category", "data": names,
			"name": XAxisName, "nameLocation": "middle", "nameGap": 32,
		},
		"yAxis": map[string]interface{}{
			"type": "value",
			"name": YAxisName, "nameLocation": "middle", "nameGap": 48,
			"splitLine": map[string]interface{}{"lineStyle": map[string]interface{}{"type": "dashed"}},
		},
		"series": series,
	}

	optJSON, err := json.Marshal(option)
	if err != nil {
		return ChartSnippet{}, fmt.Errorf("failed to marshal chart option: %w", err)
	}
	tipsJSON, err := json.Marshal(TooltipHTML(records))
	if err != nil {
		return ChartSnippet{}, fmt.Errorf("failed to marshal tooltips: %w", err)
	}

	div := fmt.Sprintf("<div id=\"%s\" style=\"width:100%%;height:500px;\"></div>", id)
	script := fmt.Sprintf(`<script>(function(){var el=document.getElementById('%s');if(!el)return;var tips=%s;var c=echarts.init(el);var option=%s;option.tooltip.formatter=function(p){var n=Array.isArray(p)?(p.length?p[0].name:''):p.name;return tips[n]||'';};c.setOption(option);window.addEventListener('resize',function(){c.resize();});})();</script>`, id, string(tipsJSON), string(optJSON))

	completeHTML := fmt.Sprintf(`%s
<div class="chart-container">
	<h2>%s</h2>
	%s
</div>
%s`, echartsCDN, ChartTitle, div, script)

	return ChartSnippet{ID: id, Title: ChartTitle, Div: div, Script: script, HTML: completeHTML}, nil
}

// TooltipHTML renders the formatted tooltip of every record as an HTML fragment
func TooltipHTML(records []models.PlatformEnergyRecord) map[string]string {
	out := make(map[string]string, len(records))
	for name, tip := range tooltip.Table(records) {
		out[name] = tooltipFragment(tip)
	}
	return out
}

func tooltipFragment(tip tooltip.Tooltip) string {
	if tip.IsEmpty() {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "<div class=\"energy-tooltip\"><p style=\"font-weight:600;margin:0 0 6px\">%s</p>", html.EscapeString(tip.Title))
	last := len(tip.Lines) - 1
	for i, l := range tip.Lines {
		if i == last {
			fmt.Fprintf(&b, "<p style=\"font-weight:600;margin:6px 0 0\">%s</p>", html.EscapeString(l.Text))
			continue
		}
		fmt.Fprintf(&b, "<p style=\"color:%s;margin:0\">%s</p>", html.EscapeString(l.Color), html.EscapeString(l.Text))
	}
	b.WriteString("</div>")
	return b.String()
}
