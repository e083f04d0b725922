package reports

import (
	"bytes"
	"strings"
	"testing"

	"webcarbon/internal/models"
)

func TestWritePanelDetailed(t *testing.T) {
	panel, _ := PanelFor(VariantDetailed)

	var buf bytes.Buffer
	if err := NewMarkdownWriter(&buf).WritePanel(panel); err != nil {
		t.Fatalf("WritePanel failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"### Energy Calculation Methodology",
		"Energy consumption (E) = Data Transfer × Energy per MB × Component Percentage",
		"Desktop: 0.2 Wh/MB (fixed broadband)",
		"Mobile: 0.6 Wh/MB (cellular network)",
		"### Platform Characteristics",
		"#### Desktop Web",
		"Cached resources reduce transfers",
		"### Data Sources",
		"**Energy Metrics:**",
		"(https://httparchive.org/reports/state-of-the-web)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Panel markdown missing %q", want)
		}
	}
}

func TestWritePanelCompact(t *testing.T) {
	panel, _ := PanelFor(VariantCompact)

	var buf bytes.Buffer
	if err := NewMarkdownWriter(&buf).WritePanel(panel); err != nil {
		t.Fatalf("WritePanel failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"### Energy Calculation", "E = Data Transfer × Energy/MB × Component %", "#### Desktop", "Energy: The Shift Project (2023)"} {
		if !strings.Contains(out, want) {
			t.Errorf("Compact markdown missing %q", want)
		}
	}
	for _, unwanted := range []string{"Platform Characteristics", "https://", "Methodology"} {
		if strings.Contains(out, unwanted) {
			t.Errorf("Compact markdown should not contain %q", unwanted)
		}
	}
}

func TestWriteDocument(t *testing.T) {
	panel, _ := PanelFor(VariantDetailed)

	var buf bytes.Buffer
	if err := NewMarkdownWriter(&buf).WriteDocument(panel, models.Dataset()); err != nil {
		t.Fatalf("WriteDocument failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"# Energy Consumption by Component and Platform",
		"## Breakdown",
		"| Platform",
		"13.5Wh (30%)",
		"12Wh (40%)",
		"135Wh Total",
		"## Component Shares",
		"```mermaid",
		"pie",
		"Mobile App",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Document missing %q", want)
		}
	}
}
