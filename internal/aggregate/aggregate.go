// Package aggregate buckets point events into per-date, per-person totals
// over the summary windows. All date math is wall-clock calendar days in the
// family timezone.
package aggregate

import (
	"strconv"
	"time"

	"kidpoints/internal/core"
)

// DateRange returns the ordered calendar days covered by a period, ending
// at now. today = the 3 most recent days, week = 7, month = the 1st of the
// current month through today.
func DateRange(period core.Period, now time.Time) []string {
	switch period {
	case core.PeriodWeek:
		return lastNDays(now, 7)
	case core.PeriodMonth:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return daysBetween(first, now)
	default:
		return lastNDays(now, 3)
	}
}

// Labels renders chart axis labels for a date range: weekday + day for the
// short windows, bare day-of-month once the range gets long.
func Labels(dates []string) []string {
	labels := make([]string, len(dates))
	for i, d := range dates {
		t, err := time.Parse(core.DateLayout, d)
		if err != nil {
			labels[i] = d
			continue
		}
		if len(dates) <= 7 {
			labels[i] = t.Format("Mon 2")
		} else {
			labels[i] = strconv.Itoa(t.Day())
		}
	}
	return labels
}

// Totals sums event deltas into totals[date][person] for every date in the
// range and every configured person, defaulting absent combinations to
// zero. Events outside the range, and events for unrecognized persons, are
// ignored without error.
func Totals(events []core.Event, dates []string, persons []string) core.Totals {
	totals := make(core.Totals, len(dates))
	for _, d := range dates {
		byPerson := make(map[string]int, len(persons))
		for _, p := range persons {
			byPerson[core.NormalizeName(p)] = 0
		}
		totals[d] = byPerson
	}
	for _, e := range events {
		byPerson, ok := totals[e.Date]
		if !ok {
			continue
		}
		person := core.NormalizeName(e.Person)
		if _, ok := byPerson[person]; !ok {
			continue
		}
		byPerson[person] += e.Delta
	}
	return totals
}

// WindowSums collapses a per-day breakdown into one scalar per person
// across the whole window.
func WindowSums(totals core.Totals, dates []string, persons []string) map[string]int {
	sums := make(map[string]int, len(persons))
	for _, p := range persons {
		name := core.NormalizeName(p)
		for _, d := range dates {
			sums[name] += totals.Get(d, name)
		}
	}
	return sums
}

func lastNDays(now time.Time, n int) []string {
	dates := make([]string, 0, n)
	for i := n - 1; i >= 0; i-- {
		dates = append(dates, now.AddDate(0, 0, -i).Format(core.DateLayout))
	}
	return dates
}

func daysBetween(first, last time.Time) []string {
	lastDay := last.Format(core.DateLayout)
	var dates []string
	for d := first; ; d = d.AddDate(0, 0, 1) {
		day := d.Format(core.DateLayout)
		dates = append(dates, day)
		if day == lastDay {
			return dates
		}
	}
}
