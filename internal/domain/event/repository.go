package event

import "context"

// Repository exposes the per-game event log. The log is append-only:
// implementations never mutate or delete stored events.
type Repository interface {
	ListByGame(ctx context.Context, gameID string) ([]Event, error)
	Append(ctx context.Context, items []Event) error
}
