package charts

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"webcarbon/internal/models"
)

func TestNewChartGenerator(t *testing.T) {
	outputDir := "/test/output"
	generator := NewChartGenerator(outputDir)

	if generator == nil {
		t.Fatal("NewChartGenerator returned nil")
	}

	if generator.outputDir != outputDir {
		t.Errorf("Expected outputDir %s, got %s", outputDir, generator.outputDir)
	}
}

func TestGenerateEnergySnippet(t *testing.T) {
	generator := NewChartGenerator(t.TempDir())

	snippet, err := generator.GenerateEnergySnippet(models.Dataset())
	if err != nil {
		t.Fatalf("GenerateEnergySnippet failed: %v", err)
	}

	if snippet.ID == "" || snippet.Title != ChartTitle {
		t.Errorf("Unexpected snippet header: id=%q title=%q", snippet.ID, snippet.Title)
	}
	if !strings.Contains(snippet.Div, snippet.ID) {
		t.Error("Div does not reference snippet ID")
	}
	if !strings.Contains(snippet.Script, "echarts.init") {
		t.Error("Script does not initialize ECharts")
	}
	if !strings.Contains(snippet.HTML, snippet.Div) || !strings.Contains(snippet.HTML, snippet.Script) {
		t.Error("HTML should contain both div and script")
	}

	for _, want := range []string{
		"Content/API Data", "HTML/CSS", "JavaScript",
		"Desktop Web", "Mobile Web", "Desktop App", "Mobile App",
		XAxisName, YAxisName, "\"stack\":\"total\"", "#ffc658", "#8884d8", "#82ca9d",
	} {
		if !strings.Contains(snippet.Script, want) {
			t.Errorf("Script missing %q", want)
		}
	}

	// tooltip text travels inside the JSON lookup table
	if !strings.Contains(snippet.Script, "Content/API Data: 13.5Wh (30%)") {
		t.Error("Script missing precomputed tooltip text for Desktop Web")
	}
	if !strings.Contains(snippet.Script, "Total: 135Wh") {
		t.Error("Script missing precomputed total for Mobile Web")
	}
}

func TestTooltipHTML(t *testing.T) {
	fragments := TooltipHTML(models.Dataset())

	if len(fragments) != 4 {
		t.Fatalf("Expected 4 fragments, got %d", len(fragments))
	}

	desktopApp := fragments["Desktop App"]
	for _, want := range []string{
		"Desktop App",
		"color:#ffc658",
		"Content/API Data: 7.5Wh (25%)",
		"HTML/CSS: 10.5Wh (35%)",
		"JavaScript: 12Wh (40%)",
		"Total: 30Wh",
	} {
		if !strings.Contains(desktopApp, want) {
			t.Errorf("Desktop App fragment missing %q: %s", want, desktopApp)
		}
	}
}

func TestRenderStatic(t *testing.T) {
	generator := NewChartGenerator(t.TempDir())

	var png bytes.Buffer
	if err := generator.RenderStatic(&png, models.Dataset(), FormatPNG); err != nil {
		t.Fatalf("RenderStatic PNG failed: %v", err)
	}
	if !bytes.HasPrefix(png.Bytes(), []byte("\x89PNG")) {
		t.Error("PNG output does not start with PNG signature")
	}

	var svg bytes.Buffer
	if err := generator.RenderStatic(&svg, models.Dataset(), FormatSVG); err != nil {
		t.Fatalf("RenderStatic SVG failed: %v", err)
	}
	if !strings.Contains(svg.String(), "<svg") {
		t.Error("SVG output does not contain an svg element")
	}
	for _, want := range []string{ChartTitle, XAxisName, YAxisName, "Desktop Web", "JavaScript"} {
		if !strings.Contains(svg.String(), want) {
			t.Errorf("SVG output missing %q", want)
		}
	}
}

func TestRenderStaticNoRecords(t *testing.T) {
	generator := NewChartGenerator(t.TempDir())

	var buf bytes.Buffer
	if err := generator.RenderStatic(&buf, nil, FormatPNG); err == nil {
		t.Error("Expected error when rendering without records")
	}
	if err := generator.RenderInteractive(&buf, nil); err == nil {
		t.Error("Expected error when rendering interactive chart without records")
	}
}

func TestRenderInteractive(t *testing.T) {
	generator := NewChartGenerator(t.TempDir())

	var buf bytes.Buffer
	if err := generator.RenderInteractive(&buf, models.Dataset()); err != nil {
		t.Fatalf("RenderInteractive failed: %v", err)
	}

	page := buf.String()
	for _, want := range []string{"echarts", ChartTitle, "energyTips", "Mobile App", "Energy Consumption (Wh)"} {
		if !strings.Contains(page, want) {
			t.Errorf("Interactive page missing %q", want)
		}
	}
}

func TestGenerateCharts(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "charts")
	generator := NewChartGenerator(dir)

	files, err := generator.GenerateCharts(models.Dataset())
	if err != nil {
		t.Fatalf("GenerateCharts failed: %v", err)
	}

	expected := []string{StaticPNGFile, StaticSVGFile, InteractiveFile}
	if len(files) != len(expected) {
		t.Fatalf("Expected %d files, got %d", len(expected), len(files))
	}
	for i, name := range expected {
		if filepath.Base(files[i]) != name {
			t.Errorf("File %d: expected %s, got %s", i, name, files[i])
		}
		info, err := os.Stat(files[i])
		if err != nil {
			t.Errorf("Chart file %s missing: %v", files[i], err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("Chart file %s is empty", files[i])
		}
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
		wantErr  bool
	}{
		{"png", FormatPNG, false},
		{".PNG", FormatPNG, false},
		{"svg", FormatSVG, false},
		{"gif", "", true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if got != tt.expected {
			t.Errorf("ParseFormat(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestWriteChartFileReportsCloseError(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "chart.svg")

	err := writeChartFile(filename, func(w io.Writer) error {
		if _, err := w.Write([]byte("<svg/>")); err != nil {
			return err
		}
		// closing here makes the final Close fail
		return w.(*os.File).Close()
	})
	if err == nil || !strings.Contains(err.Error(), "failed to close chart file") {
		t.Errorf("Expected close error, got %v", err)
	}
}

func TestWriteChartFileReportsRenderError(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "chart.png")

	err := writeChartFile(filename, func(io.Writer) error {
		return errors.New("boom")
	})
	if err == nil || !strings.Contains(err.Error(), "failed to render chart") {
		t.Errorf("Expected render error, got %v", err)
	}
}
