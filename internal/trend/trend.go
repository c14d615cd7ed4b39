// Package trend shapes aggregated totals into the chart payload rendered on
// screen devices. Building a payload is pure: no I/O, no clock reads.
package trend

import (
	"math"

	"kidpoints/internal/core"
)

const (
	barScale   = 200 // max bar height in pixels
	sparkScale = 60  // max sparkline height in pixels

	colorPositive = "#4A90E2"
	colorNegative = "#D0021B"
)

type (
	// Bar is one (date, person) column.
	Bar struct {
		Date   string `json:"date"`
		Label  string `json:"label"`
		Person string `json:"person"`
		Value  int    `json:"value"`
		Height int    `json:"height"`
		Color  string `json:"color"`
	}

	// SparkPoint is one combined all-persons column of the sparkline.
	SparkPoint struct {
		Date   string `json:"date"`
		Value  int    `json:"value"`
		Height int    `json:"height"`
	}

	// Payload is the chart-ready structure embedded in the visual
	// directive's datasources.
	Payload struct {
		Dates      []string     `json:"dates"`
		Labels     []string     `json:"labels"`
		Persons    []string     `json:"persons"`
		BarWidth   int          `json:"barWidth"`
		BarSpacing int          `json:"barSpacing"`
		Bars       []Bar        `json:"bars"`
		Sparkline  []SparkPoint `json:"sparkline"`
	}
)

// Build produces the payload for the given window. Labels must be parallel
// to dates; when more than 7 dates are in view only every Nth label is kept
// (N = ceil(count/5)) plus always the final one.
func Build(dates, labels []string, totals core.Totals, persons []string) Payload {
	p := Payload{
		Dates:   dates,
		Labels:  thinLabels(dates, labels),
		Persons: persons,
	}
	p.BarWidth, p.BarSpacing = barSizing(len(dates))

	maxAbs := 0
	for _, d := range dates {
		for _, person := range persons {
			if a := abs(totals.Get(d, person)); a > maxAbs {
				maxAbs = a
			}
		}
	}

	for i, d := range dates {
		for _, person := range persons {
			v := totals.Get(d, person)
			p.Bars = append(p.Bars, Bar{
				Date:   d,
				Label:  p.Labels[i],
				Person: person,
				Value:  v,
				Height: scale(v, maxAbs, barScale),
				Color:  colorFor(v),
			})
		}
	}

	p.Sparkline = buildSparkline(dates, totals, persons)
	return p
}

// buildSparkline aggregates all persons' totals per date into one combined
// series, scaled against its own maximum.
func buildSparkline(dates []string, totals core.Totals, persons []string) []SparkPoint {
	combined := make([]int, len(dates))
	maxAbs := 0
	for i, d := range dates {
		for _, person := range persons {
			combined[i] += totals.Get(d, person)
		}
		if a := abs(combined[i]); a > maxAbs {
			maxAbs = a
		}
	}
	points := make([]SparkPoint, len(dates))
	for i, d := range dates {
		points[i] = SparkPoint{
			Date:   d,
			Value:  combined[i],
			Height: scale(combined[i], maxAbs, sparkScale),
		}
	}
	return points
}

// thinLabels blanks out labels that would crowd the axis, keeping every Nth
// and always the final date.
func thinLabels(dates, labels []string) []string {
	out := make([]string, len(dates))
	copy(out, labels)
	count := len(dates)
	if count <= 7 {
		return out
	}
	step := int(math.Ceil(float64(count) / 5))
	for i := range out {
		if i%step != 0 && i != count-1 {
			out[i] = ""
		}
	}
	return out
}

// barSizing steps the bar width and spacing down through fixed tiers as the
// window grows.
func barSizing(count int) (width, spacing int) {
	switch {
	case count <= 3:
		return 80, 24
	case count <= 7:
		return 48, 16
	case count <= 14:
		return 24, 8
	default:
		return 12, 4
	}
}

// scale normalizes |value| against the in-view maximum, with a minimum
// denominator of 1.
func scale(value, maxAbs, max int) int {
	denom := maxAbs
	if denom < 1 {
		denom = 1
	}
	return int(math.Round(float64(abs(value)) / float64(denom) * float64(max)))
}

func colorFor(value int) string {
	if value < 0 {
		return colorNegative
	}
	return colorPositive
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
