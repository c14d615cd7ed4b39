package backend

import (
	"context"

	"kidpoints/internal/sheets"
)

// Type selects which store implementation backs the skill.
type Type string

const (
	MemoryBackend Type = "memory"
	SheetsBackend Type = "sheets"
	SQLiteBackend Type = "sqlite"
)

func (t Type) String() string { return string(t) }

func (t Type) IsValid() bool {
	switch t {
	case MemoryBackend, SheetsBackend, SQLiteBackend:
		return true
	}
	return false
}

// CleanupFunc releases backend resources at shutdown.
type CleanupFunc func() error

// Result bundles the store with its optional cleanup.
type Result struct {
	Store   sheets.Store
	Cleanup CleanupFunc
}

// Factory creates stores based on configuration.
type Factory interface {
	CreateBackend(ctx context.Context) (*Result, error)
}
