// Package memory provides the in-memory audit store used in development and
// tests. It intentionally favors clarity over performance.
package memory

import (
	"context"
	"sync"

	id "paperflow/pkg/domain"
	audit "paperflow/pkg/platform/audit"
)

type Store struct {
	mu     sync.RWMutex
	events map[id.PaperID][]audit.Event
}

func New() *Store {
	return &Store{events: make(map[id.PaperID][]audit.Event)}
}

func (s *Store) Append(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[event.PaperID] = append(s.events[event.PaperID], event)
	return nil
}

func (s *Store) ListByPaper(_ context.Context, paperID id.PaperID) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]audit.Event{}, s.events[paperID]...), nil
}
