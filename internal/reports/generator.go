package reports

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"webcarbon/internal/charts"
	"webcarbon/internal/logger"
	"webcarbon/internal/models"
	"webcarbon/internal/storage"
)

// Artifact names produced by Generate
const (
	IndexFile       = "index.html"
	MarkdownFile    = "methodology.md"
	DatasetJSONFile = "dataset.json"
	DatasetYAMLFile = "dataset.yaml"
)

// Artifact is one generated file
type Artifact struct {
	Name string
	Data []byte
}

// Report is the complete set of generated files for one variant
type Report struct {
	Variant     Variant
	GeneratedAt time.Time
	Artifacts   []Artifact
}

// Artifact returns the named artifact
func (r *Report) Artifact(name string) ([]byte, bool) {
	for _, a := range r.Artifacts {
		if a.Name == name {
			return a.Data, true
		}
	}
	return nil, false
}

// Generator produces the report page and its companion files
type Generator struct {
	charts  *charts.ChartGenerator
	html    *HTMLBuilder
	version string
	now     func() time.Time
	log     *logger.Logger
}

// NewGenerator creates a report generator. chartDir is where GenerateCharts writes files.
func NewGenerator(chartDir, version string) (*Generator, error) {
	builder, err := NewHTMLBuilder()
	if err != nil {
		return nil, err
	}
	return &Generator{
		charts:  charts.NewChartGenerator(chartDir),
		html:    builder,
		version: version,
		now:     time.Now,
		log:     logger.GetGlobalLogger().WithComponent("reports"),
	}, nil
}

// Charts returns the chart generator used for the report
func (g *Generator) Charts() *charts.ChartGenerator {
	return g.charts
}

// RenderPage renders only the HTML page for a variant
func (g *Generator) RenderPage(variant Variant) ([]byte, error) {
	records := models.Dataset()
	panel, err := PanelFor(variant)
	if err != nil {
		return nil, err
	}
	return g.renderPage(records, panel, g.now())
}

func (g *Generator) renderPage(records []models.PlatformEnergyRecord, panel Panel, at time.Time) ([]byte, error) {
	snippet, err := g.charts.GenerateEnergySnippet(records)
	if err != nil {
		return nil, fmt.Errorf("failed to generate chart snippet: %w", err)
	}

	var panelMD bytes.Buffer
	if err := NewMarkdownWriter(&panelMD).WritePanel(panel); err != nil {
		return nil, fmt.Errorf("failed to write panel markdown: %w", err)
	}

	return g.html.BuildPage(snippet, panelMD.String(), panel.Variant, g.version, at)
}

// Generate renders every artifact for a variant in memory
func (g *Generator) Generate(ctx context.Context, variant Variant) (*Report, error) {
	panel, err := PanelFor(variant)
	if err != nil {
		return nil, err
	}

	records := models.Dataset()
	if err := models.ValidateDataset(records); err != nil {
		return nil, fmt.Errorf("dataset failed validation: %w", err)
	}

	report := &Report{Variant: variant, GeneratedAt: g.now()}

	steps := []struct {
		name  string
		build func() ([]byte, error)
	}{
		{IndexFile, func() ([]byte, error) { return g.renderPage(records, panel, report.GeneratedAt) }},
		{MarkdownFile, func() ([]byte, error) {
			var buf bytes.Buffer
			err := NewMarkdownWriter(&buf).WriteDocument(panel, records)
			return buf.Bytes(), err
		}},
		{charts.StaticPNGFile, func() ([]byte, error) {
			var buf bytes.Buffer
			err := g.charts.RenderStatic(&buf, records, charts.FormatPNG)
			return buf.Bytes(), err
		}},
		{charts.StaticSVGFile, func() ([]byte, error) {
			var buf bytes.Buffer
			err := g.charts.RenderStatic(&buf, records, charts.FormatSVG)
			return buf.Bytes(), err
		}},
		{charts.InteractiveFile, func() ([]byte, error) {
			var buf bytes.Buffer
			err := g.charts.RenderInteractive(&buf, records)
			return buf.Bytes(), err
		}},
		{DatasetJSONFile, func() ([]byte, error) { return MarshalDataset(records, "json") }},
		{DatasetYAMLFile, func() ([]byte, error) { return MarshalDataset(records, "yaml") }},
	}

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := step.build()
		if err != nil {
			return nil, fmt.Errorf("failed to build %s: %w", step.name, err)
		}
		report.Artifacts = append(report.Artifacts, Artifact{Name: step.name, Data: data})
	}

	g.log.Info("Report generated", logger.Fields{
		"variant":   string(variant),
		"artifacts": len(report.Artifacts),
	})
	return report, nil
}

// Publish stores every artifact of the report through the storage client
// and returns the folder the report was written to.
func (g *Generator) Publish(ctx context.Context, report *Report, store storage.StorageClient) (string, error) {
	for _, a := range report.Artifacts {
		if err := store.StoreFile(ctx, a.Data, a.Name, report.GeneratedAt); err != nil {
			return "", fmt.Errorf("failed to publish %s: %w", a.Name, err)
		}
	}
	folder := storage.GenerateReportFolderPath(report.GeneratedAt)
	g.log.Info("Report published", logger.Fields{"folder": folder, "variant": string(report.Variant)})
	return folder, nil
}

// MarshalDataset encodes the records as "json" or "yaml"
func MarshalDataset(records []models.PlatformEnergyRecord, format string) ([]byte, error) {
	switch format {
	case "json":
		return json.MarshalIndent(records, "", "  ")
	case "yaml", "yml":
		return yaml.Marshal(records)
	default:
		return nil, fmt.Errorf("unsupported dataset format: %s", format)
	}
}
