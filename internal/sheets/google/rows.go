package google

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"kidpoints/internal/core"
)

// Fixed column layouts. Changing these breaks existing spreadsheets.
var (
	familiesHeader = []string{"UserID", "TabName", "Kids", "CreatedAt", "UpdatedAt"}
	eventsHeader   = []string{"Timestamp", "Date", "Person", "Delta", "Actor", "Note"}
)

func familyToRow(fam core.Family) []any {
	return []any{
		fam.UserID,
		fam.TabName,
		strings.Join(fam.Kids, ","),
		fam.CreatedAt.Format(time.RFC3339),
		fam.UpdatedAt.Format(time.RFC3339),
	}
}

func parseFamilyRow(row []any) (core.Family, bool) {
	cols := toStrings(row)
	userID := safeGet(cols, 0)
	tabName := safeGet(cols, 1)
	if userID == "" || tabName == "" {
		return core.Family{}, false
	}
	fam := core.Family{UserID: userID, TabName: tabName}
	for _, kid := range strings.Split(safeGet(cols, 2), ",") {
		if kid = strings.TrimSpace(kid); kid != "" {
			fam.Kids = append(fam.Kids, kid)
		}
	}
	fam.CreatedAt, _ = time.Parse(time.RFC3339, safeGet(cols, 3))
	fam.UpdatedAt, _ = time.Parse(time.RFC3339, safeGet(cols, 4))
	return fam, true
}

func eventToRow(e core.Event) []any {
	return []any{
		e.Timestamp.Format(time.RFC3339),
		e.Date,
		e.Person,
		e.Delta,
		e.Actor,
		e.Note,
	}
}

// parseEventRow coerces one sheet row into an event. Rows with a blank date
// or person, or a delta that is not a number, are dropped rather than
// surfaced as errors.
func parseEventRow(row []any) (core.Event, bool) {
	cols := toStrings(row)
	date := safeGet(cols, 1)
	person := safeGet(cols, 2)
	if date == "" || person == "" {
		return core.Event{}, false
	}
	if _, err := time.Parse(core.DateLayout, date); err != nil {
		return core.Event{}, false
	}
	delta, err := strconv.Atoi(safeGet(cols, 3))
	if err != nil {
		return core.Event{}, false
	}
	e := core.Event{
		Date:   date,
		Person: person,
		Delta:  delta,
		Actor:  safeGet(cols, 4),
		Note:   safeGet(cols, 5),
	}
	e.Timestamp, _ = time.Parse(time.RFC3339, safeGet(cols, 0))
	return e, true
}

func toStrings(in []any) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}

func safeGet(arr []string, idx int) string {
	if idx < 0 || idx >= len(arr) {
		return ""
	}
	return arr[idx]
}
