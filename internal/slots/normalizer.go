// Package slots maps raw spoken slot values to canonical domain values.
// Ambiguity is signalled with empty results, never errors, so handlers can
// re-prompt instead of failing the turn.
package slots

import (
	"strconv"
	"strings"

	"kidpoints/internal/core"
)

// negativeWords flips the sign of a point adjustment when any of them
// appears in the direction slot.
var negativeWords = []string{"reduce", "remove", "minus", "subtract", "deduct", "take away"}

// MatchPerson resolves a spoken person slot against the family's kid list.
// Matching is case-insensitive and exact after stripping a trailing
// possessive marker ("Krish's" -> "Krish"). Returns "" when nothing matches.
func MatchPerson(raw string, kids []string) string {
	name := strings.TrimSpace(raw)
	for _, suffix := range []string{"'s", "’s"} {
		name = strings.TrimSuffix(name, suffix)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	for _, k := range kids {
		if strings.EqualFold(k, name) {
			return k
		}
	}
	return ""
}

// Magnitude parses the delta slot into a positive point count. Absent or
// non-numeric values default to 1; sign words live in the direction slot,
// so any sign on the number itself is discarded.
func Magnitude(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n == 0 {
		return 1
	}
	if n < 0 {
		return -n
	}
	return n
}

// IsNegative reports whether the direction slot carries a reducing intent.
func IsNegative(direction string) bool {
	d := strings.ToLower(direction)
	for _, w := range negativeWords {
		if strings.Contains(d, w) {
			return true
		}
	}
	return false
}

// SignedDelta combines the delta and direction slots into the signed point
// change to persist. The magnitude is always at least 1.
func SignedDelta(rawDelta, direction string) int {
	m := Magnitude(rawDelta)
	if IsNegative(direction) {
		return -m
	}
	return m
}

// KidList normalizes a free-text onboarding utterance into the configured
// kid list: "Anna, Ben & ben" -> ["Anna", "Ben"]. Names are Title-Cased,
// deduplicated case-insensitively, order-preserving, and capped at
// core.MaxKids. An empty result signals the caller to re-prompt.
func KidList(raw string) []string {
	s := strings.ReplaceAll(raw, "&", ",")
	s = strings.ReplaceAll(strings.ToLower(s), " and ", ",")
	seen := map[string]struct{}{}
	var kids []string
	for _, tok := range strings.Split(s, ",") {
		name := core.NormalizeName(tok)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		kids = append(kids, name)
		if len(kids) == core.MaxKids {
			break
		}
	}
	return kids
}

// PeriodFrom maps the spoken period slot onto an aggregation window.
// Anything that is not recognizably weekly or monthly means today.
func PeriodFrom(raw string) core.Period {
	p := strings.ToLower(raw)
	switch {
	case strings.Contains(p, "week"):
		return core.PeriodWeek
	case strings.Contains(p, "month"):
		return core.PeriodMonth
	default:
		return core.PeriodToday
	}
}
