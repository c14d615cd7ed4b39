package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"kidpoints/internal/core"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := NewRepository(filepath.Join(t.TempDir(), "kidpoints.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestRepository_FamilyRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, ok, err := repo.Family(ctx, "user-1")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("family should not exist yet")
	}

	now := time.Now().UTC().Truncate(time.Second)
	fam := core.Family{
		UserID: "user-1", TabName: "fam-abc",
		Kids:      []string{"Anna", "Ben"},
		CreatedAt: now, UpdatedAt: now,
	}
	if err := repo.SaveFamily(ctx, fam); err != nil {
		t.Fatal(err)
	}

	got, ok, err := repo.Family(ctx, "user-1")
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if got.TabName != "fam-abc" || len(got.Kids) != 2 {
		t.Fatalf("got %+v", got)
	}

	// Reconfiguration updates in place.
	fam.Kids = []string{"Anna"}
	fam.UpdatedAt = now.Add(time.Hour)
	if err := repo.SaveFamily(ctx, fam); err != nil {
		t.Fatal(err)
	}
	got, _, _ = repo.Family(ctx, "user-1")
	if len(got.Kids) != 1 {
		t.Fatalf("update did not stick: %+v", got)
	}
}

func TestRepository_EventsRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	e := core.Event{
		Timestamp: time.Now().UTC().Truncate(time.Second),
		Date:      "2026-08-31",
		Person:    "Krish",
		Delta:     -2,
		Actor:     "parent",
		Note:      "spoken request",
	}
	id, err := repo.appendEvent(ctx, "fam-abc", e)
	if err != nil {
		t.Fatal(err)
	}

	events, err := repo.ListEvents(ctx, "fam-abc")
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 || events[0].Delta != -2 || events[0].Person != "Krish" {
		t.Fatalf("events = %+v", events)
	}

	tab, got, err := repo.Event(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if tab != "fam-abc" || got.Person != "Krish" {
		t.Fatalf("tab=%s event=%+v", tab, got)
	}

	if err := repo.MarkEventSynced(ctx, id); err != nil {
		t.Fatal(err)
	}

	if _, _, err := repo.Event(ctx, 9999); !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
}

func TestRepository_RejectsInvalidEvent(t *testing.T) {
	repo := newTestRepo(t)
	err := repo.AppendEvent(context.Background(), "fam-abc", core.Event{Date: "bad", Person: "K"})
	if err == nil {
		t.Fatal("expected validation error")
	}
}
