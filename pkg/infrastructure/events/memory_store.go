package events

import (
	"sync"
	"time"
)

// InMemoryStore is the default event store for a single order run.
type InMemoryStore struct {
	mu     sync.RWMutex
	events []Event
}

// NewInMemoryStore creates an empty event store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

// Verify interface compliance
var _ Store = (*InMemoryStore)(nil)

// Append records event, stamping it with the current time when unset.
func (s *InMemoryStore) Append(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
}

// ReadAll returns every recorded event in append order.
func (s *InMemoryStore) ReadAll() []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	return events
}

// ReadType returns the recorded events of one type, in append order.
func (s *InMemoryStore) ReadType(eventType string) []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var matched []Event
	for _, event := range s.events {
		if event.Type == eventType {
			matched = append(matched, event)
		}
	}
	return matched
}
