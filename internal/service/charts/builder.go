// Package charts builds renderable chart descriptors from the derived
// data products. Builders are pure: they return plain descriptor values
// and never touch a rendering context.
package charts

import (
	"sort"

	"trendboard/internal/domain/insight"
)

// Descriptor is a renderable chart: a type tag, a title and typed
// series data. The dashboard page maps each descriptor onto a Plotly
// trace set client-side.
type Descriptor struct {
	Type   string  `json:"type"`
	Title  string  `json:"title"`
	Series []Trace `json:"series"`
	Axes   *Axes   `json:"axes,omitempty"`
}

// Trace is one series of a chart.
type Trace struct {
	Name      string    `json:"name,omitempty"`
	Labels    []string  `json:"labels,omitempty"`
	X         []float64 `json:"x,omitempty"`
	Y         []float64 `json:"y,omitempty"`
	Sizes     []float64 `json:"sizes,omitempty"`
	Locations []string  `json:"locations,omitempty"`
	Values    []float64 `json:"values,omitempty"`
}

// Axes holds axis options for cartesian charts.
type Axes struct {
	XTitle string `json:"x_title,omitempty"`
	YTitle string `json:"y_title,omitempty"`
	XLog   bool   `json:"x_log,omitempty"`
	YLog   bool   `json:"y_log,omitempty"`
}

// VennDescriptor describes the trend-overlap panel: the three subset
// sizes plus the common-trend list for the expandable detail view.
type VennDescriptor struct {
	Title        string   `json:"title"`
	WorldLabel   string   `json:"world_label"`
	RegionLabel  string   `json:"region_label"`
	WorldOnly    int      `json:"world_only"`
	RegionOnly   int      `json:"region_only"`
	Common       int      `json:"common"`
	CommonTrends []string `json:"common_trends"`
}

// langCountry maps major language codes to the country shown on the
// choropleth. Codes without a single obvious country (und included)
// are left off the map; the bar chart still shows them.
var langCountry = map[string]string{
	"en": "USA",
	"es": "Spain",
	"it": "Italy",
	"pl": "Poland",
	"ja": "Japan",
	"fr": "France",
	"de": "Germany",
	"tr": "Turkey",
	"ru": "Russia",
	"ko": "South Korea",
}

// TrendOverlap builds the venn descriptor for the overlap panel.
func TrendOverlap(overlap insight.TrendOverlap) VennDescriptor {
	return VennDescriptor{
		Title:        "Worldwide & Regional Trend Overlap",
		WorldLabel:   "Worldwide Trends",
		RegionLabel:  "Regional Trends",
		WorldOnly:    overlap.WorldSize - overlap.CommonSize,
		RegionOnly:   overlap.RegionSize - overlap.CommonSize,
		Common:       overlap.CommonSize,
		CommonTrends: overlap.Common,
	}
}

// EngagementScatter builds the retweets-vs-favorites bubble chart, one
// point per aggregated account row, bubble size scaled by followers.
func EngagementScatter(rows []insight.AccountEngagement) Descriptor {
	trace := Trace{
		Labels: make([]string, 0, len(rows)),
		X:      make([]float64, 0, len(rows)),
		Y:      make([]float64, 0, len(rows)),
		Sizes:  make([]float64, 0, len(rows)),
	}
	for _, row := range rows {
		trace.Labels = append(trace.Labels, row.ScreenName)
		trace.X = append(trace.X, float64(row.TotalRetweets))
		trace.Y = append(trace.Y, float64(row.TotalFavorites))
		trace.Sizes = append(trace.Sizes, float64(row.Followers))
	}

	return Descriptor{
		Type:   "scatter",
		Title:  "Tweet Activity: Retweets vs. Favorites",
		Series: []Trace{trace},
		Axes: &Axes{
			XTitle: "Total Retweets",
			YTitle: "Total Favorites",
			XLog:   true,
			YLog:   true,
		},
	}
}

// EngagementRateBar builds the normalized-engagement bar chart, rows
// re-sorted by rate descending.
func EngagementRateBar(rows []insight.AccountEngagement) Descriptor {
	ordered := make([]insight.AccountEngagement, len(rows))
	copy(ordered, rows)
	sortByRateDesc(ordered)

	trace := Trace{
		Labels: make([]string, 0, len(ordered)),
		Y:      make([]float64, 0, len(ordered)),
	}
	for _, row := range ordered {
		trace.Labels = append(trace.Labels, row.ScreenName)
		trace.Y = append(trace.Y, row.EngagementRate)
	}

	return Descriptor{
		Type:   "bar",
		Title:  "Normalized Engagement Rate by Account",
		Series: []Trace{trace},
		Axes: &Axes{
			XTitle: "Account",
			YTitle: "Engagement Rate (%)",
		},
	}
}

// LanguageMap builds the choropleth descriptor over the mapped major
// languages. Unmapped codes are omitted here, not from the bar chart.
func LanguageMap(counts []insight.LanguageCount) Descriptor {
	trace := Trace{
		Labels:    make([]string, 0, len(counts)),
		Locations: make([]string, 0, len(counts)),
		Values:    make([]float64, 0, len(counts)),
	}
	for _, c := range counts {
		country, ok := langCountry[c.Lang]
		if !ok {
			continue
		}
		trace.Labels = append(trace.Labels, c.Lang)
		trace.Locations = append(trace.Locations, country)
		trace.Values = append(trace.Values, float64(c.Count))
	}

	return Descriptor{
		Type:   "choropleth",
		Title:  "Tweet Language Distribution by Country",
		Series: []Trace{trace},
	}
}

// LanguageBar builds the full language-frequency bar chart, und
// included.
func LanguageBar(counts []insight.LanguageCount) Descriptor {
	trace := Trace{
		Labels: make([]string, 0, len(counts)),
		Y:      make([]float64, 0, len(counts)),
	}
	for _, c := range counts {
		trace.Labels = append(trace.Labels, c.Lang)
		trace.Y = append(trace.Y, float64(c.Count))
	}

	return Descriptor{
		Type:   "bar",
		Title:  "Full Distribution of Tweet Languages",
		Series: []Trace{trace},
		Axes: &Axes{
			XTitle: "Language",
			YTitle: "Tweets",
		},
	}
}

// sortByRateDesc is stable so equal rates keep the table's follower
// ordering.
func sortByRateDesc(rows []insight.AccountEngagement) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].EngagementRate > rows[j].EngagementRate
	})
}
