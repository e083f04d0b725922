package charts

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"webcarbon/internal/logger"
	"webcarbon/internal/models"
)

// Chart labels shared by every renderer
const (
	ChartTitle = "Energy Consumption by Component and Platform"
	XAxisName  = "Platform Type"
	YAxisName  = "Energy Consumption (Wh)"
)

// Chart file names written by GenerateCharts
const (
	StaticPNGFile   = "energy_chart.png"
	StaticSVGFile   = "energy_chart.svg"
	InteractiveFile = "energy_chart.html"
)

// ChartGenerator handles creation of the energy chart in every output format
type ChartGenerator struct {
	outputDir string
	log       *logger.Logger
}

// NewChartGenerator creates a new chart generator
func NewChartGenerator(outputDir string) *ChartGenerator {
	return &ChartGenerator{
		outputDir: outputDir,
		log:       logger.GetGlobalLogger().WithComponent("charts"),
	}
}

// GenerateCharts writes the static and interactive charts into the output directory
func (cg *ChartGenerator) GenerateCharts(records []models.PlatformEnergyRecord) ([]string, error) {
	if err := os.MkdirAll(cg.outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create chart directory %s: %w", cg.outputDir, err)
	}

	outputs := []struct {
		name   string
		render func(io.Writer) error
	}{
		{StaticPNGFile, func(w io.Writer) error { return cg.RenderStatic(w, records, FormatPNG) }},
		{StaticSVGFile, func(w io.Writer) error { return cg.RenderStatic(w, records, FormatSVG) }},
		{InteractiveFile, func(w io.Writer) error { return cg.RenderInteractive(w, records) }},
	}

	var chartFiles []string
	for _, o := range outputs {
		filename := filepath.Join(cg.outputDir, o.name)
		if err := writeChartFile(filename, o.render); err != nil {
			return chartFiles, err
		}
		cg.log.Debug("Chart written", map[string]interface{}{"file": filename})
		chartFiles = append(chartFiles, filename)
	}

	return chartFiles, nil
}

func writeChartFile(filename string, render func(io.Writer) error) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create chart file %s: %w", filename, err)
	}

	if err := render(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to render chart %s: %w", filename, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close chart file %s: %w", filename, err)
	}
	return nil
}
