package aggregate

import (
	"reflect"
	"testing"
	"time"

	"kidpoints/internal/core"
)

func mustLoc(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Skipf("timezone db unavailable: %v", err)
	}
	return loc
}

func TestDateRange_Today(t *testing.T) {
	now := time.Date(2026, 8, 31, 15, 0, 0, 0, time.UTC)
	got := DateRange(core.PeriodToday, now)
	want := []string{"2026-08-29", "2026-08-30", "2026-08-31"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestDateRange_Week(t *testing.T) {
	now := time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC)
	got := DateRange(core.PeriodWeek, now)
	if len(got) != 7 {
		t.Fatalf("want 7 days, got %d: %v", len(got), got)
	}
	if got[0] != "2026-02-25" || got[6] != "2026-03-03" {
		t.Fatalf("wrong bounds: %v", got)
	}
}

func TestDateRange_Month(t *testing.T) {
	now := time.Date(2026, 8, 15, 23, 59, 0, 0, time.UTC)
	got := DateRange(core.PeriodMonth, now)
	if len(got) != 15 {
		t.Fatalf("want 15 days, got %d", len(got))
	}
	if got[0] != "2026-08-01" || got[14] != "2026-08-15" {
		t.Fatalf("wrong bounds: %v", got)
	}
}

func TestDateRange_MonthOnTheFirst(t *testing.T) {
	now := time.Date(2026, 9, 1, 0, 30, 0, 0, time.UTC)
	got := DateRange(core.PeriodMonth, now)
	if len(got) != 1 || got[0] != "2026-09-01" {
		t.Fatalf("got %v", got)
	}
}

func TestDateRange_AcrossDSTTransition(t *testing.T) {
	// US DST spring-forward on 2026-03-08; the range stays wall-clock days.
	loc := mustLoc(t, "America/New_York")
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, loc)
	got := DateRange(core.PeriodWeek, now)
	want := []string{
		"2026-03-04", "2026-03-05", "2026-03-06", "2026-03-07",
		"2026-03-08", "2026-03-09", "2026-03-10",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestTotals(t *testing.T) {
	dates := []string{"2026-08-30", "2026-08-31"}
	persons := []string{"Krish", "Adith"}
	events := []core.Event{
		{Date: "2026-08-31", Person: "Krish", Delta: 2},
		{Date: "2026-08-31", Person: "KRISH", Delta: 1},
		{Date: "2026-08-31", Person: "Adith", Delta: -2},
		{Date: "2026-08-30", Person: "krish", Delta: 5},
		{Date: "2026-07-01", Person: "Krish", Delta: 99}, // outside range
		{Date: "2026-08-31", Person: "Stranger", Delta: 7},
		{Date: "2026-08-31", Person: "", Delta: 7},
	}

	totals := Totals(events, dates, persons)

	if got := totals.Get("2026-08-31", "Krish"); got != 3 {
		t.Errorf("Krish 31st = %d, want 3", got)
	}
	if got := totals.Get("2026-08-31", "Adith"); got != -2 {
		t.Errorf("Adith 31st = %d, want -2", got)
	}
	if got := totals.Get("2026-08-30", "Adith"); got != 0 {
		t.Errorf("Adith 30th = %d, want 0", got)
	}
	if got := totals.Get("2026-08-30", "Krish"); got != 5 {
		t.Errorf("Krish 30th = %d, want 5", got)
	}

	// Idempotent under re-running with the same input.
	again := Totals(events, dates, persons)
	if !reflect.DeepEqual(totals, again) {
		t.Error("totals not idempotent")
	}
}

func TestTotals_EmptyInputsDefaultToZero(t *testing.T) {
	totals := Totals(nil, []string{"2026-08-31"}, []string{"Krish"})
	if got := totals.Get("2026-08-31", "Krish"); got != 0 {
		t.Fatalf("got %d, want 0", got)
	}
}

func TestWindowSums(t *testing.T) {
	dates := []string{"2026-08-29", "2026-08-30", "2026-08-31"}
	persons := []string{"Krish", "Adith"}
	events := []core.Event{
		{Date: "2026-08-29", Person: "Krish", Delta: 2},
		{Date: "2026-08-31", Person: "Krish", Delta: -1},
		{Date: "2026-08-30", Person: "Adith", Delta: -3},
	}
	sums := WindowSums(Totals(events, dates, persons), dates, persons)
	if sums["Krish"] != 1 {
		t.Errorf("Krish = %d, want 1", sums["Krish"])
	}
	if sums["Adith"] != -3 {
		t.Errorf("Adith = %d, want -3", sums["Adith"])
	}
}

func TestLabels(t *testing.T) {
	short := Labels([]string{"2026-08-30", "2026-08-31"})
	if short[0] != "Sun 30" || short[1] != "Mon 31" {
		t.Fatalf("short labels = %v", short)
	}
	long := Labels(DateRange(core.PeriodMonth, time.Date(2026, 8, 12, 0, 0, 0, 0, time.UTC)))
	if long[0] != "1" || long[len(long)-1] != "12" {
		t.Fatalf("long labels = %v", long)
	}
}
