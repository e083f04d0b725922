package storage

import (
	"testing"
	"time"
)

func TestGenerateReportFolderPath(t *testing.T) {
	ts := time.Date(2025, 9, 7, 15, 11, 33, 0, time.UTC)

	expected := "2025/09/07/EnergyChart-2025-09-07-15-11-33"
	if got := GenerateReportFolderPath(ts); got != expected {
		t.Errorf("Expected %s, got %s", expected, got)
	}

	// non-UTC timestamps are normalized
	est := time.FixedZone("EST", -5*60*60)
	if got := GenerateReportFolderPath(ts.In(est)); got != expected {
		t.Errorf("Expected UTC folder %s, got %s", expected, got)
	}
}

func TestGetContentType(t *testing.T) {
	tests := map[string]string{
		"index.html":       "text/html; charset=utf-8",
		"dataset.json":     "application/json",
		"dataset.yaml":     "application/yaml",
		"methodology.md":   "text/markdown; charset=utf-8",
		"energy_chart.png": "image/png",
		"energy_chart.svg": "image/svg+xml",
		"INDEX.HTML":       "text/html; charset=utf-8",
		"archive.tar":      "application/octet-stream",
	}

	for name, want := range tests {
		if got := GetContentType(name); got != want {
			t.Errorf("GetContentType(%q) = %q, expected %q", name, got, want)
		}
	}
}

func TestNewestFirst(t *testing.T) {
	paths := []string{"2024/01/a/index.html", "2025/02/b/index.html", "2024/12/c/index.html"}

	got := newestFirst(paths, 2)
	if len(got) != 2 {
		t.Fatalf("Expected 2 paths, got %d", len(got))
	}
	if got[0] != "2025/02/b/index.html" || got[1] != "2024/12/c/index.html" {
		t.Errorf("Unexpected order: %v", got)
	}
}
