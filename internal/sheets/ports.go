package sheets

import (
	"context"

	"kidpoints/internal/core"
)

// Ports for outbound adapters.
type (
	// FamilyStore reads and writes family configuration rows.
	FamilyStore interface {
		// Family returns the config for a user id; ok is false when the
		// family has never onboarded.
		Family(ctx context.Context, userID string) (fam core.Family, ok bool, err error)
		// SaveFamily creates or updates the family's row.
		SaveFamily(ctx context.Context, fam core.Family) error
	}

	// EventStore appends and reads point-change events in a family tab.
	EventStore interface {
		// EnsureEventTab creates the family's event tab with its header
		// row if it does not exist. Idempotent.
		EnsureEventTab(ctx context.Context, tab string) error
		AppendEvent(ctx context.Context, tab string, e core.Event) error
		ListEvents(ctx context.Context, tab string) ([]core.Event, error)
	}

	// Store is the full port set a backend must provide.
	Store interface {
		FamilyStore
		EventStore
	}
)
