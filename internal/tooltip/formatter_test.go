package tooltip

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"webcarbon/internal/models"
)

func point(label string, content, htmlCSS, js float64) *ActivePoint {
	return &ActivePoint{
		Label: label,
		Values: []SeriesValue{
			{Key: models.SeriesContent, Name: "Content/API Data", Color: "#ffc658", Value: content},
			{Key: models.SeriesHTMLCSS, Name: "HTML/CSS", Color: "#8884d8", Value: htmlCSS},
			{Key: models.SeriesJavaScript, Name: "JavaScript", Color: "#82ca9d", Value: js},
		},
	}
}

func TestFormatPercentages(t *testing.T) {
	tests := []struct {
		name     string
		point    *ActivePoint
		expected []string
	}{
		{
			name:  "desktop web",
			point: point("Desktop Web", 13.5, 11.25, 20.25),
			expected: []string{
				"Content/API Data: 13.5Wh (30%)",
				"HTML/CSS: 11.25Wh (25%)",
				"JavaScript: 20.25Wh (45%)",
				"Total: 45Wh",
			},
		},
		{
			name:  "desktop app",
			point: point("Desktop App", 7.5, 10.5, 12),
			expected: []string{
				"Content/API Data: 7.5Wh (25%)",
				"HTML/CSS: 10.5Wh (35%)",
				"JavaScript: 12Wh (40%)",
				"Total: 30Wh",
			},
		},
		{
			name:  "mobile web",
			point: point("Mobile Web", 40.5, 33.75, 60.75),
			expected: []string{
				"Content/API Data: 40.5Wh (30%)",
				"HTML/CSS: 33.75Wh (25%)",
				"JavaScript: 60.75Wh (45%)",
				"Total: 135Wh",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tip := Format(tt.point)
			if len(tip.Lines) != len(tt.expected) {
				t.Fatalf("Expected %d lines, got %d", len(tt.expected), len(tip.Lines))
			}
			for i, want := range tt.expected {
				if tip.Lines[i].Text != want {
					t.Errorf("Line %d: expected %q, got %q", i, want, tip.Lines[i].Text)
				}
			}
			if tip.Title != tt.point.Label {
				t.Errorf("Expected title %q, got %q", tt.point.Label, tip.Title)
			}
		})
	}
}

func TestFormatLineColors(t *testing.T) {
	tip := Format(point("Desktop Web", 13.5, 11.25, 20.25))

	colors := []string{"#ffc658", "#8884d8", "#82ca9d", ""}
	for i, c := range colors {
		if tip.Lines[i].Color != c {
			t.Errorf("Line %d: expected color %q, got %q", i, c, tip.Lines[i].Color)
		}
	}
}

func TestFormatNoActivePoint(t *testing.T) {
	for i := 0; i < 3; i++ {
		if tip := Format(nil); !tip.IsEmpty() || tip.Text() != "" {
			t.Errorf("Expected empty tooltip for nil point, got %+v", tip)
		}
		if tip := Format(&ActivePoint{Label: "Desktop Web"}); !tip.IsEmpty() || tip.Text() != "" {
			t.Errorf("Expected empty tooltip for point without values, got %+v", tip)
		}
	}
}

func TestFormatIsDeterministic(t *testing.T) {
	p := point("Mobile App", 22.5, 31.5, 36)

	first := Format(p)
	second := Format(p)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Format is not deterministic:\n%+v\n%+v", first, second)
	}

	// input must not be modified
	if p.Values[0].Value != 22.5 || len(p.Values) != 3 {
		t.Errorf("Format modified its input: %+v", p)
	}
}

func TestFormatZeroTotal(t *testing.T) {
	tip := Format(point("Empty", 0, 0, 0))

	if len(tip.Lines) != 4 {
		t.Fatalf("Expected 4 lines, got %d", len(tip.Lines))
	}
	for i := 0; i < 3; i++ {
		if tip.Lines[i].Percent != 0 {
			t.Errorf("Line %d: expected 0%%, got %d%%", i, tip.Lines[i].Percent)
		}
		if !strings.HasSuffix(tip.Lines[i].Text, "(0%)") {
			t.Errorf("Line %d: expected (0%%) suffix, got %q", i, tip.Lines[i].Text)
		}
	}
	if tip.Lines[3].Text != "Total: 0Wh" {
		t.Errorf("Expected total line 'Total: 0Wh', got %q", tip.Lines[3].Text)
	}
}

func TestFormatRecomputesTotal(t *testing.T) {
	// values deliberately disagree with any stored record total
	tip := Format(&ActivePoint{
		Label: "Desktop Web",
		Values: []SeriesValue{
			{Name: "Content/API Data", Value: 10},
			{Name: "JavaScript", Value: 30},
		},
	})

	want := []string{
		"Content/API Data: 10Wh (25%)",
		"JavaScript: 30Wh (75%)",
		"Total: 40Wh",
	}
	for i, w := range want {
		if tip.Lines[i].Text != w {
			t.Errorf("Line %d: expected %q, got %q", i, w, tip.Lines[i].Text)
		}
	}
}

func TestFormatPreservesInputOrder(t *testing.T) {
	tip := Format(&ActivePoint{
		Values: []SeriesValue{
			{Name: "JavaScript", Value: 12},
			{Name: "Content/API Data", Value: 7.5},
			{Name: "HTML/CSS", Value: 10.5},
		},
	})

	prefixes := []string{"JavaScript:", "Content/API Data:", "HTML/CSS:", "Total:"}
	for i, p := range prefixes {
		if !strings.HasPrefix(tip.Lines[i].Text, p) {
			t.Errorf("Line %d: expected prefix %q, got %q", i, p, tip.Lines[i].Text)
		}
	}
}

func TestPercentRounding(t *testing.T) {
	tests := []struct {
		value, total float64
		expected     int
	}{
		{1, 8, 13},   // 12.5 rounds up
		{1, 40, 3},   // 2.5 rounds up
		{3, 8, 38},   // 37.5 rounds up
		{1, 3, 33},   // 33.33
		{2, 3, 67},   // 66.67
		{0, 10, 0},
		{5, 0, 0},
		{math.Inf(1), math.Inf(1), 0},
	}

	for _, tt := range tests {
		if got := Percent(tt.value, tt.total); got != tt.expected {
			t.Errorf("Percent(%v, %v) = %d, expected %d", tt.value, tt.total, got, tt.expected)
		}
	}
}

func TestRoundHalfUp(t *testing.T) {
	tests := []struct {
		x, expected float64
	}{
		{0.49999999999999994, 0},
		{0.5, 1},
		{2.5, 3},
		{44.99, 45},
		{-2.5, -2},
		{-2.6, -3},
		{7, 7},
	}

	for _, tt := range tests {
		if got := roundHalfUp(tt.x); got != tt.expected {
			t.Errorf("roundHalfUp(%v) = %v, expected %v", tt.x, got, tt.expected)
		}
	}
}

func TestFormatWh(t *testing.T) {
	tests := map[float64]string{
		45:    "45",
		13.5:  "13.5",
		20.25: "20.25",
		0:     "0",
		135:   "135",
	}
	for v, want := range tests {
		if got := FormatWh(v); got != want {
			t.Errorf("FormatWh(%v) = %q, expected %q", v, got, want)
		}
	}
}

func TestTooltipText(t *testing.T) {
	tip := Format(PointFromRecord(models.Dataset()[0]))

	expected := strings.Join([]string{
		"Desktop Web",
		"Content/API Data: 13.5Wh (30%)",
		"HTML/CSS: 11.25Wh (25%)",
		"JavaScript: 20.25Wh (45%)",
		"Total: 45Wh",
	}, "\n")
	if tip.Text() != expected {
		t.Errorf("Unexpected text:\n%s\nexpected:\n%s", tip.Text(), expected)
	}
}

func TestTableCoversDataset(t *testing.T) {
	records := models.Dataset()
	table := Table(records)

	if len(table) != len(records) {
		t.Fatalf("Expected %d tooltips, got %d", len(records), len(table))
	}
	for _, r := range records {
		tip, ok := table[r.Name]
		if !ok {
			t.Errorf("Missing tooltip for %s", r.Name)
			continue
		}
		last := tip.Lines[len(tip.Lines)-1].Text
		if want := "Total: " + FormatWh(r.Total) + "Wh"; last != want {
			t.Errorf("%s: expected %q, got %q", r.Name, want, last)
		}
	}
}
