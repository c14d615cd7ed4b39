// Package worker replays locally stored point events into the family
// spreadsheet.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"kidpoints/internal/amqp"
	"kidpoints/internal/sheets"
	"kidpoints/internal/storage"
)

type SyncWorker struct {
	repo   *storage.Repository
	events sheets.EventStore
}

func NewSyncWorker(repo *storage.Repository, events sheets.EventStore) *SyncWorker {
	return &SyncWorker{repo: repo, events: events}
}

// HandleSyncMessage replays a single event into its family tab. A missing
// event id is treated as done, not as a failure to retry.
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.EventSyncMessage) error {
	slog.InfoContext(ctx, "Processing sync message", "id", msg.ID)

	tab, event, err := w.repo.Event(ctx, msg.ID)
	if errors.Is(err, storage.ErrEventNotFound) {
		slog.WarnContext(ctx, "Event no longer exists, skipping", "id", msg.ID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("load event %d: %w", msg.ID, err)
	}

	if err := w.events.EnsureEventTab(ctx, tab); err != nil {
		return fmt.Errorf("ensure tab %s: %w", tab, err)
	}
	if err := w.events.AppendEvent(ctx, tab, event); err != nil {
		return fmt.Errorf("append event %d to %s: %w", msg.ID, tab, err)
	}
	if err := w.repo.MarkEventSynced(ctx, msg.ID); err != nil {
		return fmt.Errorf("mark event %d synced: %w", msg.ID, err)
	}

	slog.InfoContext(ctx, "Event replayed to spreadsheet",
		"id", msg.ID, "tab", tab, "person", event.Person, "delta", event.Delta)
	return nil
}
