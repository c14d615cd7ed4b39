package trend

import (
	"testing"

	"kidpoints/internal/core"
)

func TestBuild_HeightsWithinBounds(t *testing.T) {
	dates := []string{"2026-08-29", "2026-08-30", "2026-08-31"}
	labels := []string{"Sat 29", "Sun 30", "Mon 31"}
	persons := []string{"Krish", "Adith"}
	totals := core.Totals{
		"2026-08-29": {"Krish": 10, "Adith": -4},
		"2026-08-30": {"Krish": 0, "Adith": 2},
		"2026-08-31": {"Krish": -10, "Adith": 5},
	}

	p := Build(dates, labels, totals, persons)

	if len(p.Bars) != len(dates)*len(persons) {
		t.Fatalf("want %d bars, got %d", len(dates)*len(persons), len(p.Bars))
	}
	for _, b := range p.Bars {
		if b.Height < 0 || b.Height > 200 {
			t.Errorf("bar height out of range: %+v", b)
		}
	}
	for _, sp := range p.Sparkline {
		if sp.Height < 0 || sp.Height > 60 {
			t.Errorf("sparkline height out of range: %+v", sp)
		}
	}
}

func TestBuild_HeightIsRoundedRatio(t *testing.T) {
	dates := []string{"2026-08-31"}
	totals := core.Totals{"2026-08-31": {"Krish": 3, "Adith": -10}}
	p := Build(dates, []string{"Mon 31"}, totals, []string{"Krish", "Adith"})

	// max |value| is 10: Krish 3/10*200 = 60, Adith 10/10*200 = 200.
	for _, b := range p.Bars {
		switch b.Person {
		case "Krish":
			if b.Height != 60 {
				t.Errorf("Krish height = %d, want 60", b.Height)
			}
			if b.Color != colorPositive {
				t.Errorf("positive bar got color %s", b.Color)
			}
		case "Adith":
			if b.Height != 200 {
				t.Errorf("Adith height = %d, want 200", b.Height)
			}
			if b.Color != colorNegative {
				t.Errorf("negative bar got color %s", b.Color)
			}
		}
	}
}

func TestBuild_AllZeroTotals(t *testing.T) {
	dates := []string{"2026-08-30", "2026-08-31"}
	totals := core.Totals{"2026-08-30": {"K": 0}, "2026-08-31": {"K": 0}}
	p := Build(dates, []string{"a", "b"}, totals, []string{"K"})
	for _, b := range p.Bars {
		if b.Height != 0 {
			t.Errorf("zero totals must give zero heights, got %d", b.Height)
		}
		if b.Color != colorPositive {
			t.Errorf("zero value should use the positive color")
		}
	}
}

func TestSparkline_CombinesPersons(t *testing.T) {
	dates := []string{"2026-08-31"}
	totals := core.Totals{"2026-08-31": {"Krish": 3, "Adith": -1}}
	p := Build(dates, []string{"x"}, totals, []string{"Krish", "Adith"})
	if len(p.Sparkline) != 1 {
		t.Fatalf("want 1 point, got %d", len(p.Sparkline))
	}
	if p.Sparkline[0].Value != 2 {
		t.Errorf("combined value = %d, want 2", p.Sparkline[0].Value)
	}
	if p.Sparkline[0].Height != 60 {
		t.Errorf("height = %d, want 60 (own max)", p.Sparkline[0].Height)
	}
}

func TestThinLabels(t *testing.T) {
	// 14 dates: N = ceil(14/5) = 3, keep indexes 0,3,6,9,12 and the final.
	dates := make([]string, 14)
	labels := make([]string, 14)
	for i := range dates {
		dates[i] = "d"
		labels[i] = "L"
	}
	got := thinLabels(dates, labels)
	for i, l := range got {
		keep := i%3 == 0 || i == 13
		if keep && l == "" {
			t.Errorf("index %d should keep its label", i)
		}
		if !keep && l != "" {
			t.Errorf("index %d should be blanked", i)
		}
	}

	// 7 or fewer dates: nothing is thinned.
	got = thinLabels(dates[:7], labels[:7])
	for i, l := range got {
		if l == "" {
			t.Errorf("index %d unexpectedly blanked for short range", i)
		}
	}
}

func TestBarSizingTiers(t *testing.T) {
	cases := []struct {
		count, width int
	}{
		{3, 80}, {7, 48}, {14, 24}, {31, 12},
	}
	for _, tc := range cases {
		w, s := barSizing(tc.count)
		if w != tc.width {
			t.Errorf("count %d: width = %d, want %d", tc.count, w, tc.width)
		}
		if s <= 0 || s >= w {
			t.Errorf("count %d: spacing %d should be positive and below width %d", tc.count, s, w)
		}
	}
}
