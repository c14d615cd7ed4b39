package memory

import (
	"context"
	"testing"
	"time"

	"kidpoints/internal/core"
)

func TestFamilyRoundTrip(t *testing.T) {
	s := New()
	ctx := context.Background()

	_, ok, err := s.Family(ctx, "user-1")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("family should not exist yet")
	}

	fam := core.Family{UserID: "user-1", TabName: "fam-abc", Kids: []string{"Anna"}}
	if err := s.SaveFamily(ctx, fam); err != nil {
		t.Fatal(err)
	}
	got, ok, err := s.Family(ctx, "user-1")
	if err != nil || !ok {
		t.Fatalf("expected family, ok=%v err=%v", ok, err)
	}
	if got.TabName != "fam-abc" || len(got.Kids) != 1 {
		t.Fatalf("unexpected family: %+v", got)
	}
}

func TestEventTabLifecycle(t *testing.T) {
	s := New()
	ctx := context.Background()

	e := core.Event{Timestamp: time.Now(), Date: "2026-08-31", Person: "Anna", Delta: 1}
	if err := s.AppendEvent(ctx, "fam-abc", e); err == nil {
		t.Fatal("append before EnsureEventTab should fail")
	}
	if err := s.EnsureEventTab(ctx, "fam-abc"); err != nil {
		t.Fatal(err)
	}
	// Idempotent.
	if err := s.EnsureEventTab(ctx, "fam-abc"); err != nil {
		t.Fatal(err)
	}
	if err := s.AppendEvent(ctx, "fam-abc", e); err != nil {
		t.Fatal(err)
	}
	events, err := s.ListEvents(ctx, "fam-abc")
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 || events[0].Person != "Anna" {
		t.Fatalf("unexpected events: %+v", events)
	}
}
