package memory

import (
	"context"
	"sync"

	"github.com/gridline/gamecast/internal/domain/event"
)

type EventRepository struct {
	mu           sync.RWMutex
	eventsByGame map[string][]event.Event
	seenEventIDs map[string]struct{}
}

func NewEventRepository(events []event.Event) *EventRepository {
	repo := &EventRepository{
		eventsByGame: make(map[string][]event.Event),
		seenEventIDs: make(map[string]struct{}),
	}
	for _, item := range events {
		repo.append(item)
	}
	return repo
}

func (r *EventRepository) ListByGame(_ context.Context, gameID string) ([]event.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.eventsByGame[gameID]
	out := make([]event.Event, 0, len(items))
	out = append(out, items...)
	return out, nil
}

func (r *EventRepository) Append(_ context.Context, items []event.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		r.append(item)
	}
	return nil
}

// append keeps the log idempotent on event ID, matching the conflict
// behavior of the SQL store. Caller holds the write lock.
func (r *EventRepository) append(item event.Event) {
	if item.EventID != "" {
		if _, seen := r.seenEventIDs[item.EventID]; seen {
			return
		}
		r.seenEventIDs[item.EventID] = struct{}{}
	}
	r.eventsByGame[item.GameID] = append(r.eventsByGame[item.GameID], item)
}
