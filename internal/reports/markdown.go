package reports

import (
	"fmt"
	"io"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"webcarbon/internal/charts"
	"webcarbon/internal/models"
	"webcarbon/internal/tooltip"
)

// MarkdownWriter renders the explanatory panel and the energy breakdown as markdown
type MarkdownWriter struct {
	output io.Writer
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{output: output}
}

// WritePanel writes only the explanatory panel. This is what the HTML page embeds.
func (w *MarkdownWriter) WritePanel(panel Panel) error {
	md := markdown.NewMarkdown(w.output)
	w.writePanel(md, panel)
	return md.Build()
}

// WriteDocument writes a standalone document: title, breakdown table, share
// pie charts and the explanatory panel.
func (w *MarkdownWriter) WriteDocument(panel Panel, records []models.PlatformEnergyRecord) error {
	md := markdown.NewMarkdown(w.output)

	md.H1(charts.ChartTitle)
	md.PlainText("")

	w.writeBreakdown(md, records)
	w.writeShares(md, records)
	w.writePanel(md, panel)

	return md.Build()
}

func (w *MarkdownWriter) writePanel(md *markdown.Markdown, panel Panel) {
	md.H3(panel.Heading)
	md.PlainText("")
	md.PlainText(panel.Formula)
	md.PlainText("")

	coeffs := make([]string, 0, len(panel.Coefficients))
	for _, c := range panel.Coefficients {
		coeffs = append(coeffs, c.String())
	}
	md.BulletList(coeffs...)
	md.PlainText("")

	if panel.CharacteristicsHeading != "" {
		md.H3(panel.CharacteristicsHeading)
		md.PlainText("")
	}
	for _, g := range panel.Groups {
		md.H4(g.Title)
		md.PlainText("")
		md.BulletList(g.Points...)
		md.PlainText("")
	}

	md.H3(panel.SourcesHeading)
	md.PlainText("")
	sources := make([]string, 0, len(panel.Sources))
	for _, s := range panel.Sources {
		if panel.LinkSources {
			sources = append(sources, fmt.Sprintf("%s %s - %s", markdown.Bold(s.Category+":"), s.Title, markdown.Link(s.URL, s.URL)))
			continue
		}
		sources = append(sources, fmt.Sprintf("%s: %s", s.Category, s.Title))
	}
	md.BulletList(sources...)
	md.PlainText("")
}

// writeBreakdown writes one table row per platform using the tooltip wording
func (w *MarkdownWriter) writeBreakdown(md *markdown.Markdown, records []models.PlatformEnergyRecord) {
	md.H2("Breakdown")
	md.PlainText("")

	all := models.AllSeries()
	header := []string{"Platform"}
	for _, s := range all {
		header = append(header, s.Name)
	}
	header = append(header, "Total")

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		tip := tooltip.Format(tooltip.PointFromRecord(r))
		row := []string{r.Name}
		for i, s := range all {
			v, _ := r.Value(s.Key)
			row = append(row, fmt.Sprintf("%sWh (%d%%)", tooltip.FormatWh(v), tip.Lines[i].Percent))
		}
		row = append(row, r.Label)
		rows = append(rows, row)
	}

	md.Table(markdown.TableSet{Header: header, Rows: rows})
	md.PlainText("")
}

// writeShares writes a mermaid pie chart of each platform's component shares
func (w *MarkdownWriter) writeShares(md *markdown.Markdown, records []models.PlatformEnergyRecord) {
	md.H2("Component Shares")
	md.PlainText("")

	for _, r := range records {
		tip := tooltip.Format(tooltip.PointFromRecord(r))
		chart := piechart.NewPieChart(
			io.Discard,
			piechart.WithTitle(r.Name),
			piechart.WithShowData(true),
		)
		for i, s := range models.AllSeries() {
			chart.LabelAndIntValue(s.Name, uint64(tip.Lines[i].Percent))
		}
		md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
		md.PlainText("")
	}
}
