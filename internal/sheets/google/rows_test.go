package google

import (
	"context"
	"testing"
	"time"

	"kidpoints/internal/core"
)

func TestParseEventRow(t *testing.T) {
	cases := []struct {
		name string
		row  []any
		want core.Event
		ok   bool
	}{
		{
			name: "full row",
			row:  []any{"2026-08-31T10:00:00Z", "2026-08-31", "Krish", "2", "mom", "chores"},
			want: core.Event{Date: "2026-08-31", Person: "Krish", Delta: 2, Actor: "mom", Note: "chores"},
			ok:   true,
		},
		{
			name: "negative delta",
			row:  []any{"", "2026-08-31", "Adith", "-2", "", ""},
			want: core.Event{Date: "2026-08-31", Person: "Adith", Delta: -2},
			ok:   true,
		},
		{
			name: "numeric cell from sheets api",
			row:  []any{"", "2026-08-31", "Krish", 3, "", ""},
			want: core.Event{Date: "2026-08-31", Person: "Krish", Delta: 3},
			ok:   true,
		},
		{name: "blank person", row: []any{"", "2026-08-31", "", "2"}, ok: false},
		{name: "blank date", row: []any{"", "", "Krish", "2"}, ok: false},
		{name: "bad date", row: []any{"", "31/08/2026", "Krish", "2"}, ok: false},
		{name: "non-numeric delta", row: []any{"", "2026-08-31", "Krish", "two"}, ok: false},
		{name: "short row", row: []any{"2026-08-31"}, ok: false},
		{name: "empty row", row: nil, ok: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := parseEventRow(tc.row)
			if ok != tc.ok {
				t.Fatalf("ok = %v, want %v", ok, tc.ok)
			}
			if !ok {
				return
			}
			if got.Date != tc.want.Date || got.Person != tc.want.Person ||
				got.Delta != tc.want.Delta || got.Actor != tc.want.Actor || got.Note != tc.want.Note {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestFamilyRowRoundTrip(t *testing.T) {
	fam := core.Family{
		UserID:    "amzn1.ask.account.A",
		TabName:   "fam-0123456789",
		Kids:      []string{"Anna", "Ben"},
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		UpdatedAt: time.Date(2026, 6, 7, 8, 9, 10, 0, time.UTC),
	}
	got, ok := parseFamilyRow(familyToRow(fam))
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	if got.UserID != fam.UserID || got.TabName != fam.TabName {
		t.Fatalf("got %+v", got)
	}
	if len(got.Kids) != 2 || got.Kids[0] != "Anna" || got.Kids[1] != "Ben" {
		t.Fatalf("kids = %v", got.Kids)
	}
	if !got.CreatedAt.Equal(fam.CreatedAt) || !got.UpdatedAt.Equal(fam.UpdatedAt) {
		t.Fatalf("timestamps = %v / %v", got.CreatedAt, got.UpdatedAt)
	}
}

func TestParseFamilyRow_Defensive(t *testing.T) {
	if _, ok := parseFamilyRow([]any{"", "fam-x", "Anna"}); ok {
		t.Error("blank user id should not parse")
	}
	if _, ok := parseFamilyRow([]any{"user", "", "Anna"}); ok {
		t.Error("blank tab name should not parse")
	}
	fam, ok := parseFamilyRow([]any{"user", "fam-x", " , Anna ,, "})
	if !ok || len(fam.Kids) != 1 || fam.Kids[0] != "Anna" {
		t.Errorf("messy kid list should coerce: %+v ok=%v", fam, ok)
	}
}

func TestNew_RequiresSpreadsheetID(t *testing.T) {
	_, err := New(context.Background(), Options{})
	if err == nil {
		t.Fatal("expected error for missing spreadsheet id")
	}
}

func TestClientOptions_RequiresCredentials(t *testing.T) {
	_, err := clientOptions(context.Background(), Options{SpreadsheetID: "x"})
	if err == nil {
		t.Fatal("expected error when no credential source is set")
	}
	_, err = clientOptions(context.Background(), Options{
		SpreadsheetID:   "x",
		OAuthClientJSON: []byte("not json"),
		OAuthTokenJSON:  []byte("{}"),
	})
	if err == nil {
		t.Fatal("expected error for malformed oauth client json")
	}
}
