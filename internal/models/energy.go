package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInconsistentTotal is returned when a record's components do not add up to its total
var ErrInconsistentTotal = errors.New("component values do not sum to total")

// Series keys, in stacking order (bottom to top)
const (
	SeriesContent    = "content"
	SeriesHTMLCSS    = "htmlCss"
	SeriesJavaScript = "javascript"
)

// PlatformEnergyRecord holds the energy breakdown for one platform in watt-hours
type PlatformEnergyRecord struct {
	Name       string  `json:"name" yaml:"name"`
	Total      float64 `json:"total" yaml:"total"`
	Content    float64 `json:"content" yaml:"content"`
	HTMLCSS    float64 `json:"htmlCss" yaml:"htmlCss"`
	JavaScript float64 `json:"javascript" yaml:"javascript"`
	Label      string  `json:"label" yaml:"label"`
}

// Series describes one stacked component of a bar
type Series struct {
	Key   string `json:"key" yaml:"key"`
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color" yaml:"color"`
}

var series = [...]Series{
	{Key: SeriesContent, Name: "Content/API Data", Color: "#ffc658"},
	{Key: SeriesHTMLCSS, Name: "HTML/CSS", Color: "#8884d8"},
	{Key: SeriesJavaScript, Name: "JavaScript", Color: "#82ca9d"},
}

var dataset = [...]PlatformEnergyRecord{
	{Name: "Desktop Web", Total: 45, Content: 13.5, HTMLCSS: 11.25, JavaScript: 20.25, Label: "45Wh Total"},
	{Name: "Mobile Web", Total: 135, Content: 40.5, HTMLCSS: 33.75, JavaScript: 60.75, Label: "135Wh Total"},
	{Name: "Desktop App", Total: 30, Content: 7.5, HTMLCSS: 10.5, JavaScript: 12, Label: "30Wh Total"},
	{Name: "Mobile App", Total: 90, Content: 22.5, HTMLCSS: 31.5, JavaScript: 36, Label: "90Wh Total"},
}

// Dataset returns the platform records in display order.
// Each call returns a fresh copy; the underlying data is never mutated.
func Dataset() []PlatformEnergyRecord {
	out := make([]PlatformEnergyRecord, len(dataset))
	copy(out, dataset[:])
	return out
}

// AllSeries returns the stacked series in stacking order
func AllSeries() []Series {
	out := make([]Series, len(series))
	copy(out, series[:])
	return out
}

// FindByName looks up a record by platform name, ignoring case and surrounding spaces
func FindByName(name string) (PlatformEnergyRecord, bool) {
	name = strings.TrimSpace(name)
	for _, r := range dataset {
		if strings.EqualFold(r.Name, name) {
			return r, true
		}
	}
	return PlatformEnergyRecord{}, false
}

// Value returns the component value for a series key
func (r PlatformEnergyRecord) Value(key string) (float64, bool) {
	switch key {
	case SeriesContent:
		return r.Content, true
	case SeriesHTMLCSS:
		return r.HTMLCSS, true
	case SeriesJavaScript:
		return r.JavaScript, true
	default:
		return 0, false
	}
}

// ComponentSum adds up the stacked components
func (r PlatformEnergyRecord) ComponentSum() float64 {
	return r.Content + r.HTMLCSS + r.JavaScript
}

// Validate checks that the components add up to the stored total
func (r PlatformEnergyRecord) Validate() error {
	if sum := r.ComponentSum(); sum != r.Total {
		return fmt.Errorf("%s: %w (components=%v, total=%v)", r.Name, ErrInconsistentTotal, sum, r.Total)
	}
	return nil
}

// ValidateDataset validates every record and joins the failures
func ValidateDataset(records []PlatformEnergyRecord) error {
	var errs []error
	for _, r := range records {
		if err := r.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
