package tooltip

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"webcarbon/internal/models"
)

// SeriesValue is one series value of the hovered bar
type SeriesValue struct {
	Key   string  `json:"key"`
	Name  string  `json:"name"`
	Color string  `json:"color"`
	Value float64 `json:"value"`
}

// ActivePoint is the bar currently under the pointer
type ActivePoint struct {
	Label  string        `json:"label"`
	Values []SeriesValue `json:"values"`
}

// Line is a single rendered tooltip line
type Line struct {
	Text    string `json:"text"`
	Color   string `json:"color,omitempty"`
	Percent int    `json:"percent"`
}

// Tooltip is the formatted hover text for one point.
// The zero value is the empty tooltip shown when nothing is hovered.
type Tooltip struct {
	Title string `json:"title,omitempty"`
	Lines []Line `json:"lines,omitempty"`
}

// IsEmpty reports whether there is nothing to display
func (t Tooltip) IsEmpty() bool {
	return len(t.Lines) == 0
}

// Text renders the title followed by every line, newline separated
func (t Tooltip) Text() string {
	if t.IsEmpty() {
		return ""
	}
	parts := make([]string, 0, len(t.Lines)+1)
	if t.Title != "" {
		parts = append(parts, t.Title)
	}
	for _, l := range t.Lines {
		parts = append(parts, l.Text)
	}
	return strings.Join(parts, "\n")
}

// Format builds the tooltip for the hovered point.
//
// The total is always recomputed from the point's own values, never taken from
// the record's stored total. Lines keep the order the values were provided in,
// followed by a "Total" line. A zero total yields 0% for every line.
func Format(point *ActivePoint) Tooltip {
	if point == nil || len(point.Values) == 0 {
		return Tooltip{}
	}

	var total float64
	for _, v := range point.Values {
		total += v.Value
	}

	lines := make([]Line, 0, len(point.Values)+1)
	for _, v := range point.Values {
		pct := Percent(v.Value, total)
		lines = append(lines, Line{
			Text:    fmt.Sprintf("%s: %sWh (%d%%)", v.Name, FormatWh(v.Value), pct),
			Color:   v.Color,
			Percent: pct,
		})
	}
	lines = append(lines, Line{Text: fmt.Sprintf("Total: %sWh", FormatWh(total)), Percent: 100})
	if total == 0 {
		lines[len(lines)-1].Percent = 0
	}

	return Tooltip{Title: point.Label, Lines: lines}
}

// Percent returns value's share of total rounded half-up to a whole percent.
// A zero or non-finite result is reported as 0.
func Percent(value, total float64) int {
	if total == 0 {
		return 0
	}
	p := roundHalfUp(value / total * 100)
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return 0
	}
	return int(p)
}

// roundHalfUp rounds to the nearest integer, ties toward +Inf.
// Adding 0.5 before flooring would round 0.49999999999999994 up.
func roundHalfUp(x float64) float64 {
	f := math.Floor(x)
	if x-f >= 0.5 {
		f++
	}
	return f
}

// FormatWh prints a watt-hour value in its shortest decimal form (12, 13.5, 20.25)
func FormatWh(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// PointFromRecord builds the active point for a record in stacking order
func PointFromRecord(r models.PlatformEnergyRecord) *ActivePoint {
	all := models.AllSeries()
	values := make([]SeriesValue, 0, len(all))
	for _, s := range all {
		v, _ := r.Value(s.Key)
		values = append(values, SeriesValue{Key: s.Key, Name: s.Name, Color: s.Color, Value: v})
	}
	return &ActivePoint{Label: r.Name, Values: values}
}

// Table precomputes the tooltip of every record keyed by platform name
func Table(records []models.PlatformEnergyRecord) map[string]Tooltip {
	out := make(map[string]Tooltip, len(records))
	for _, r := range records {
		out[r.Name] = Format(PointFromRecord(r))
	}
	return out
}
