package slots

import (
	"strings"
	"testing"

	"kidpoints/internal/core"
)

func TestMatchPerson(t *testing.T) {
	kids := []string{"Krish", "Adith"}
	cases := []struct {
		raw, want string
	}{
		{"Krish", "Krish"},
		{"krish", "Krish"},
		{"KRISH", "Krish"},
		{"Krish's", "Krish"},
		{"krish’s", "Krish"},
		{"  adith ", "Adith"},
		{"Chris", ""},
		{"", ""},
		{"'s", ""},
	}
	for _, tc := range cases {
		if got := MatchPerson(tc.raw, kids); got != tc.want {
			t.Errorf("MatchPerson(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestSignedDelta(t *testing.T) {
	cases := []struct {
		delta, direction string
		want             int
	}{
		{"2", "add", 2},
		{"2", "reduce", -2},
		{"", "add", 1},
		{"", "", 1},
		{"abc", "minus", -1},
		{"-3", "add", 3},
		{"0", "take away two", -1},
		{"5", "please subtract", -5},
		{"1", "remove a point", -1},
		{"4", "deduct", -4},
		{"3", "give", 3},
	}
	for _, tc := range cases {
		got := SignedDelta(tc.delta, tc.direction)
		if got != tc.want {
			t.Errorf("SignedDelta(%q, %q) = %d, want %d", tc.delta, tc.direction, got, tc.want)
		}
		if got == 0 {
			t.Errorf("SignedDelta(%q, %q) magnitude must be >= 1", tc.delta, tc.direction)
		}
	}
}

func TestKidList(t *testing.T) {
	cases := []struct {
		raw  string
		want []string
	}{
		{"Anna, Ben and Ben", []string{"Anna", "Ben"}},
		{"anna & BEN", []string{"Anna", "Ben"}},
		{"krish and adith", []string{"Krish", "Adith"}},
		{"a, b, c, d, e, f, g, h", []string{"A", "B", "C", "D", "E", "F"}},
		{", , and &", nil},
		{"", nil},
		{"  Solo  ", []string{"Solo"}},
	}
	for _, tc := range cases {
		got := KidList(tc.raw)
		if len(got) != len(tc.want) {
			t.Fatalf("KidList(%q) = %v, want %v", tc.raw, got, tc.want)
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("KidList(%q)[%d] = %q, want %q", tc.raw, i, got[i], tc.want[i])
			}
		}
		if len(got) > core.MaxKids {
			t.Errorf("KidList(%q) exceeds cap: %d", tc.raw, len(got))
		}
	}
}

func TestKidList_DedupeIsCaseInsensitive(t *testing.T) {
	got := KidList("Ben, BEN, ben")
	if len(got) != 1 || got[0] != "Ben" {
		t.Fatalf("got %v, want [Ben]", got)
	}
}

func TestPeriodFrom(t *testing.T) {
	cases := []struct {
		raw  string
		want core.Period
	}{
		{"this week", core.PeriodWeek},
		{"WEEK", core.PeriodWeek},
		{"the month", core.PeriodMonth},
		{"monthly", core.PeriodMonth},
		{"today", core.PeriodToday},
		{"", core.PeriodToday},
		{"yesterday", core.PeriodToday},
	}
	for _, tc := range cases {
		if got := PeriodFrom(tc.raw); got != tc.want {
			t.Errorf("PeriodFrom(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestNegativeWordsAreSubstrings(t *testing.T) {
	for _, w := range []string{"reduce", "remove", "minus", "subtract", "deduct", "take away"} {
		if !IsNegative("please " + strings.ToUpper(w) + " now") {
			t.Errorf("expected %q to read as negative", w)
		}
	}
	if IsNegative("add some") {
		t.Error("add should not be negative")
	}
}
