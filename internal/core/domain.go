package core

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"strings"
	"time"
	"unicode"
)

// Period selects the aggregation window for summaries.
const (
	PeriodToday Period = "today"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

// MaxKids caps the number of children a family can track.
const MaxKids = 6

// DateLayout is the calendar-day format used in sheet rows and totals keys.
const DateLayout = "2006-01-02"

type (
	Period string

	// Event is one persisted point change. Events are append-only; the
	// order of rows in a family tab is insertion order.
	Event struct {
		Timestamp time.Time
		Date      string // calendar day in the family timezone, DateLayout
		Person    string
		Delta     int
		Actor     string
		Note      string
	}

	// Family groups a voice-platform user id with its tracked children and
	// the sheet tab holding their events. Never deleted by this code.
	Family struct {
		UserID    string
		TabName   string
		Kids      []string
		CreatedAt time.Time
		UpdatedAt time.Time
	}

	// Totals maps date -> person -> summed delta. Derived, never persisted.
	Totals map[string]map[string]int
)

var (
	ErrEmptyPerson = errors.New("empty person")
	ErrInvalidDate = errors.New("invalid date")
	ErrNoKids      = errors.New("family has no kids configured")
)

func (p Period) IsValid() bool {
	switch p {
	case PeriodToday, PeriodWeek, PeriodMonth:
		return true
	}
	return false
}

func (e Event) Validate() error {
	if strings.TrimSpace(e.Person) == "" {
		return ErrEmptyPerson
	}
	if _, err := time.Parse(DateLayout, e.Date); err != nil {
		return ErrInvalidDate
	}
	return nil
}

// Configured reports whether the family has finished onboarding.
func (f Family) Configured() bool {
	return len(f.Kids) > 0
}

// HasKid matches a canonical name against the configured kid list,
// case-insensitively.
func (f Family) HasKid(name string) bool {
	for _, k := range f.Kids {
		if strings.EqualFold(k, name) {
			return true
		}
	}
	return false
}

// TabNameForUser derives the per-family event tab name from the
// voice-platform user id. The derivation is deterministic so re-running it
// for the same user always yields the same tab.
func TabNameForUser(prefix, userID string) string {
	sum := sha1.Sum([]byte(userID))
	return prefix + hex.EncodeToString(sum[:])[:10]
}

// NormalizeName canonicalizes a person name to Title Case so that casing
// variants collapse into one totals bucket.
func NormalizeName(name string) string {
	words := strings.Fields(strings.ToLower(strings.TrimSpace(name)))
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// Get returns the summed delta for a (date, person) pair, zero when the
// pair has no matching events.
func (t Totals) Get(date, person string) int {
	if byPerson, ok := t[date]; ok {
		return byPerson[person]
	}
	return 0
}
