package memory

import (
	"context"
	"fmt"
	"sync"

	"kidpoints/internal/core"
	"kidpoints/internal/sheets"
)

// Store is an in-memory implementation of the sheet ports, used by tests
// and the "memory" backend for local development.
type Store struct {
	mu       sync.Mutex
	families map[string]core.Family
	tabs     map[string][]core.Event
}

var _ sheets.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		families: make(map[string]core.Family),
		tabs:     make(map[string][]core.Event),
	}
}

func (s *Store) Family(_ context.Context, userID string) (core.Family, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fam, ok := s.families[userID]
	return fam, ok, nil
}

func (s *Store) SaveFamily(_ context.Context, fam core.Family) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.families[fam.UserID] = fam
	return nil
}

func (s *Store) EnsureEventTab(_ context.Context, tab string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tabs[tab]; !ok {
		s.tabs[tab] = nil
	}
	return nil
}

func (s *Store) AppendEvent(_ context.Context, tab string, e core.Event) error {
	if err := e.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tabs[tab]; !ok {
		return fmt.Errorf("tab %q does not exist", tab)
	}
	s.tabs[tab] = append(s.tabs[tab], e)
	return nil
}

func (s *Store) ListEvents(_ context.Context, tab string) ([]core.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	events, ok := s.tabs[tab]
	if !ok {
		return nil, fmt.Errorf("tab %q does not exist", tab)
	}
	out := make([]core.Event, len(events))
	copy(out, events)
	return out, nil
}

// HasTab reports whether an event tab exists. Test helper.
func (s *Store) HasTab(tab string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.tabs[tab]
	return ok
}
