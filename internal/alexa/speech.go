package alexa

import (
	"fmt"
	"strings"

	"kidpoints/internal/core"
)

// Fixed speech fragments. Keeping them in one place makes the voice
// surface reviewable without reading handler code.
const (
	speechOnboarding = "Welcome to Kid Points. Before we start, tell me your kids' names. " +
		"You can say: my kids are Anna and Ben."
	speechOnboardingReprompt = "Tell me your kids' names, for example: my kids are Anna and Ben."
	speechHelp               = "You can add or take away points, or ask for a summary. " +
		"Try: add a point for Anna, or: what are the points for this week."
	speechGoodbye  = "Okay, goodbye."
	speechFallback = "Sorry, I didn't get that. You can add points, take away points, or ask for a summary."
	speechApology  = "Sorry, something went wrong reaching the family scoreboard. Please try again in a moment."
)

// pointsPhrase renders a count as speech, using "minus" for negatives so
// the assistant never says a bare dash.
func pointsPhrase(n int) string {
	if n < 0 {
		return "minus " + pointsPhrase(-n)
	}
	if n == 1 {
		return "1 point"
	}
	return fmt.Sprintf("%d points", n)
}

// joinNames renders a kid list as natural speech: "Anna", "Anna and Ben",
// "Anna, Ben and Cara".
func joinNames(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	default:
		return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
	}
}

func periodPhrase(period core.Period) string {
	switch period {
	case core.PeriodWeek:
		return "this week"
	case core.PeriodMonth:
		return "this month"
	default:
		return "the last few days"
	}
}

func adjustmentSpeech(person string, delta, total int) string {
	var action string
	if delta >= 0 {
		action = fmt.Sprintf("Okay, %s added for %s.", pointsPhrase(delta), person)
	} else {
		action = fmt.Sprintf("Okay, %s taken from %s.", pointsPhrase(-delta), person)
	}
	return fmt.Sprintf("%s %s now has %s for today.", action, person, pointsPhrase(total))
}

func summarySpeech(period core.Period, persons []string, sums map[string]int) string {
	parts := make([]string, 0, len(persons))
	for _, p := range persons {
		parts = append(parts, fmt.Sprintf("%s has %s", p, pointsPhrase(sums[p])))
	}
	return fmt.Sprintf("Here are the points for %s: %s.", periodPhrase(period), strings.Join(parts, ", "))
}

func unknownPersonSpeech(kids []string) string {
	return fmt.Sprintf("I didn't catch which kid that was for. You can say a name like %s.", kids[0])
}
