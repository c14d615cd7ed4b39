package storage

import (
	"context"
	"log/slog"

	"kidpoints/internal/core"
)

// EventPublisher announces locally stored events for replay into the
// spreadsheet. Implemented by the AMQP client.
type EventPublisher interface {
	PublishEventSync(ctx context.Context, id int64) error
}

// SyncingRepository wraps the repository so every appended event is
// announced to the replay queue. A publish failure never fails the append;
// the event is already durable locally.
type SyncingRepository struct {
	*Repository
	publisher EventPublisher
}

func NewSyncingRepository(repo *Repository, publisher EventPublisher) *SyncingRepository {
	return &SyncingRepository{Repository: repo, publisher: publisher}
}

func (s *SyncingRepository) AppendEvent(ctx context.Context, tab string, e core.Event) error {
	id, err := s.Repository.appendEvent(ctx, tab, e)
	if err != nil {
		return err
	}
	if s.publisher == nil {
		return nil
	}
	if err := s.publisher.PublishEventSync(ctx, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish event sync message",
			"id", id, "tab", tab, "error", err)
	}
	return nil
}
