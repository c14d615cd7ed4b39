// Package service orchestrates the skill's operations against the
// configured store.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"kidpoints/internal/aggregate"
	"kidpoints/internal/cache"
	"kidpoints/internal/core"
	"kidpoints/internal/sheets"
)

// PointsService loads family config, records adjustments, and computes
// summaries. One instance lives for the process; the family cache keeps
// config reads warm across invocations.
type PointsService struct {
	store     sheets.Store
	tabPrefix string
	loc       *time.Location
	families  *cache.LRUCache[core.Family]
}

// Summary is a computed window: the per-day breakdown for charting plus
// the collapsed per-person sums for speech.
type Summary struct {
	Period  core.Period
	Dates   []string
	Labels  []string
	Totals  core.Totals
	Sums    map[string]int
	Persons []string
}

func New(store sheets.Store, tabPrefix string, loc *time.Location) *PointsService {
	return &PointsService{
		store:     store,
		tabPrefix: tabPrefix,
		loc:       loc,
		families:  cache.NewLRUCache[core.Family](256, 5*time.Minute),
	}
}

// Family returns the family config for a user, ok=false when onboarding
// has not happened yet.
func (s *PointsService) Family(ctx context.Context, userID string) (core.Family, bool, error) {
	if fam, ok := s.families.Get(userID); ok {
		return fam, true, nil
	}
	fam, ok, err := s.store.Family(ctx, userID)
	if err != nil {
		return core.Family{}, false, fmt.Errorf("load family: %w", err)
	}
	if ok {
		s.families.Set(userID, fam)
	}
	return fam, ok, nil
}

// ConfigureKids creates or updates the family with the given kid list and
// makes sure its event tab exists. Kids must already be normalized.
func (s *PointsService) ConfigureKids(ctx context.Context, userID string, kids []string) (core.Family, error) {
	if len(kids) == 0 {
		return core.Family{}, core.ErrNoKids
	}

	now := time.Now().In(s.loc)
	fam, ok, err := s.store.Family(ctx, userID)
	if err != nil {
		return core.Family{}, fmt.Errorf("load family: %w", err)
	}
	if !ok {
		fam = core.Family{
			UserID:    userID,
			TabName:   core.TabNameForUser(s.tabPrefix, userID),
			CreatedAt: now,
		}
	}
	fam.Kids = kids
	fam.UpdatedAt = now

	if err := s.store.EnsureEventTab(ctx, fam.TabName); err != nil {
		return core.Family{}, fmt.Errorf("ensure event tab: %w", err)
	}
	if err := s.store.SaveFamily(ctx, fam); err != nil {
		return core.Family{}, fmt.Errorf("save family: %w", err)
	}

	s.families.Set(userID, fam)
	slog.InfoContext(ctx, "Family configured",
		"tab", fam.TabName, "kids_count", len(fam.Kids))
	return fam, nil
}

// RecordAdjustment appends one point-change event and returns the person's
// updated total over the default (today) window.
func (s *PointsService) RecordAdjustment(ctx context.Context, fam core.Family, person string, delta int, actor, note string) (int, error) {
	now := time.Now().In(s.loc)
	event := core.Event{
		Timestamp: now,
		Date:      now.Format(core.DateLayout),
		Person:    person,
		Delta:     delta,
		Actor:     actor,
		Note:      note,
	}
	if err := s.store.AppendEvent(ctx, fam.TabName, event); err != nil {
		return 0, fmt.Errorf("append event: %w", err)
	}
	slog.InfoContext(ctx, "Point adjustment recorded",
		"tab", fam.TabName, "person", person, "delta", delta)

	sum, err := s.Summarize(ctx, fam, core.PeriodToday)
	if err != nil {
		return 0, err
	}
	return sum.Sums[core.NormalizeName(person)], nil
}

// Summarize re-reads the family's events and aggregates them over the
// requested window.
func (s *PointsService) Summarize(ctx context.Context, fam core.Family, period core.Period) (Summary, error) {
	events, err := s.store.ListEvents(ctx, fam.TabName)
	if err != nil {
		return Summary{}, fmt.Errorf("list events: %w", err)
	}

	now := time.Now().In(s.loc)
	dates := aggregate.DateRange(period, now)
	totals := aggregate.Totals(events, dates, fam.Kids)

	persons := make([]string, len(fam.Kids))
	for i, k := range fam.Kids {
		persons[i] = core.NormalizeName(k)
	}

	return Summary{
		Period:  period,
		Dates:   dates,
		Labels:  aggregate.Labels(dates),
		Totals:  totals,
		Sums:    aggregate.WindowSums(totals, dates, fam.Kids),
		Persons: persons,
	}, nil
}
