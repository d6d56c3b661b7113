package events

import (
	"fmt"
	"sync"
)

// EventStore keeps the recent events of each room.
type EventStore interface {
	Append(event Event) error
	LoadEvents(roomID string) ([]Event, error)
	Drop(roomID string)
}

// InMemoryEventStore is a bounded in-memory EventStore. It keeps at most
// limit events per room, discarding the oldest.
type InMemoryEventStore struct {
	events map[string][]Event
	limit  int
	mutex  sync.RWMutex
}

// NewInMemoryEventStore creates a store keeping up to limit events per room.
// A limit of 0 or less keeps everything.
func NewInMemoryEventStore(limit int) *InMemoryEventStore {
	return &InMemoryEventStore{
		events: make(map[string][]Event),
		limit:  limit,
	}
}

// Append adds a new event to the store.
func (s *InMemoryEventStore) Append(event Event) error {
	roomID := ExtractRoomID(event)
	if roomID == "" {
		return fmt.Errorf("event %s has no room id", event.Name())
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	log := append(s.events[roomID], event)
	if s.limit > 0 && len(log) > s.limit {
		log = append([]Event(nil), log[len(log)-s.limit:]...)
	}
	s.events[roomID] = log
	return nil
}

// LoadEvents retrieves the stored events for roomID, oldest first.
func (s *InMemoryEventStore) LoadEvents(roomID string) ([]Event, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if events, exists := s.events[roomID]; exists {
		result := make([]Event, len(events))
		copy(result, events)
		return result, nil
	}

	return []Event{}, nil
}

// Drop forgets everything recorded for roomID.
func (s *InMemoryEventStore) Drop(roomID string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.events, roomID)
}
