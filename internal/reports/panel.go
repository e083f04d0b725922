package reports

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownVariant is returned for a variant name with no panel text
var ErrUnknownVariant = errors.New("unknown chart variant")

// Variant selects the wording of the explanatory panel
type Variant string

const (
	VariantDetailed Variant = "detailed"
	VariantCompact  Variant = "compact"
)

// Variants lists every supported variant
func Variants() []Variant {
	return []Variant{VariantDetailed, VariantCompact}
}

// ParseVariant converts a name into a Variant
func ParseVariant(s string) (Variant, error) {
	v := Variant(strings.ToLower(strings.TrimSpace(s)))
	switch v {
	case VariantDetailed, VariantCompact:
		return v, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownVariant, s)
	}
}

// Coefficient is the network energy cost per transferred megabyte
type Coefficient struct {
	Platform string
	WhPerMB  float64
	Network  string
}

// String renders "Desktop: 0.2 Wh/MB", with the network note when present
func (c Coefficient) String() string {
	s := fmt.Sprintf("%s: %s Wh/MB", c.Platform, strconv.FormatFloat(c.WhPerMB, 'f', -1, 64))
	if c.Network != "" {
		s += " (" + c.Network + ")"
	}
	return s
}

// PlatformGroup is a titled list of platform characteristics
type PlatformGroup struct {
	Title  string
	Points []string
}

// Source is a cited data source
type Source struct {
	Category string
	Title    string
	URL      string
}

// Panel is the explanatory text shown under the chart
type Panel struct {
	Variant                Variant
	Heading                string
	Formula                string
	Coefficients           []Coefficient
	CharacteristicsHeading string
	Groups                 []PlatformGroup
	SourcesHeading         string
	Sources                []Source
	LinkSources            bool
}

const (
	shiftProject = "https://theshiftproject.org/en/lean-ict-2/"
	httpArchive  = "https://httparchive.org/reports/state-of-the-web"
	ericsson     = "https://www.ericsson.com/en/reports-and-papers/mobility-report"
)

// PanelFor returns the panel text for a variant
func PanelFor(v Variant) (Panel, error) {
	switch v {
	case VariantDetailed:
		return Panel{
			Variant: v,
			Heading: "Energy Calculation Methodology",
			Formula: "Energy consumption (E) = Data Transfer × Energy per MB × Component Percentage",
			Coefficients: []Coefficient{
				{Platform: "Desktop", WhPerMB: 0.2, Network: "fixed broadband"},
				{Platform: "Mobile", WhPerMB: 0.6, Network: "cellular network"},
			},
			CharacteristicsHeading: "Platform Characteristics",
			Groups: []PlatformGroup{
				{Title: "Desktop Web", Points: []string{
					"Stable connection, lower energy/MB",
					"Larger JS frameworks common",
					"Cached resources reduce transfers",
				}},
				{Title: "Mobile Web", Points: []string{
					"Variable connection quality",
					"Higher energy cost per MB",
					"Often uses mobile-optimized frameworks",
				}},
			},
			SourcesHeading: "Data Sources",
			Sources: []Source{
				{Category: "Energy Metrics", Title: "The Shift Project (2023)", URL: shiftProject},
				{Category: "Web Components", Title: "HTTP Archive (2024)", URL: httpArchive},
				{Category: "Mobile Usage", Title: "Ericsson Mobility Report (2023)", URL: ericsson},
			},
			LinkSources: true,
		}, nil
	case VariantCompact:
		return Panel{
			Variant: v,
			Heading: "Energy Calculation",
			Formula: "E = Data Transfer × Energy/MB × Component %",
			Coefficients: []Coefficient{
				{Platform: "Desktop", WhPerMB: 0.2},
				{Platform: "Mobile", WhPerMB: 0.6},
			},
			Groups: []PlatformGroup{
				{Title: "Desktop", Points: []string{"Stable connection", "Larger JS frameworks", "Better caching"}},
				{Title: "Mobile", Points: []string{"Variable connection", "Higher energy cost", "Optimized frameworks"}},
			},
			SourcesHeading: "Sources",
			Sources: []Source{
				{Category: "Energy", Title: "The Shift Project (2023)", URL: shiftProject},
				{Category: "Components", Title: "HTTP Archive (2024)", URL: httpArchive},
				{Category: "Mobile", Title: "Ericsson Mobility Report (2023)", URL: ericsson},
			},
		}, nil
	default:
		return Panel{}, fmt.Errorf("%w: %q", ErrUnknownVariant, string(v))
	}
}
