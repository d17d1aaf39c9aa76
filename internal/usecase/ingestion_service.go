package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gridline/gamecast/internal/domain/event"
	idgen "github.com/gridline/gamecast/internal/platform/id"
)

// IngestRecord is one raw event as submitted by a producer. Timestamp
// and CreatedAt stay untyped; the projection layer resolves them.
type IngestRecord struct {
	EventID   string
	AppID     string
	Sport     string
	Type      string
	Timestamp any
	CreatedAt any
	Payload   map[string]any
}

type IngestionService struct {
	eventRepo event.Repository
	ids       idgen.Generator
	logger    *slog.Logger
}

func NewIngestionService(eventRepo event.Repository, ids idgen.Generator, logger *slog.Logger) *IngestionService {
	if logger == nil {
		logger = slog.Default()
	}

	return &IngestionService{
		eventRepo: eventRepo,
		ids:       ids,
		logger:    logger,
	}
}

// Append validates and stores a batch of raw events. The log is
// append-only; existing events are never mutated or deleted.
func (s *IngestionService) Append(ctx context.Context, gameID string, records []IngestRecord) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.Append")
	defer span.End()

	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return 0, fmt.Errorf("%w: game id is required", ErrInvalidInput)
	}
	if len(records) == 0 {
		return 0, fmt.Errorf("%w: at least one event is required", ErrInvalidInput)
	}

	items := make([]event.Event, 0, len(records))
	for i, record := range records {
		if strings.TrimSpace(record.Type) == "" {
			return 0, fmt.Errorf("%w: event %d is missing type", ErrInvalidInput, i)
		}

		eventID := strings.TrimSpace(record.EventID)
		if eventID == "" {
			generated, err := s.ids.NewID()
			if err != nil {
				return 0, fmt.Errorf("generate event id: %w", err)
			}
			eventID = generated
		}

		items = append(items, event.Event{
			EventID:   eventID,
			GameID:    gameID,
			AppID:     strings.TrimSpace(record.AppID),
			Sport:     strings.TrimSpace(record.Sport),
			Type:      strings.TrimSpace(record.Type),
			Timestamp: record.Timestamp,
			CreatedAt: record.CreatedAt,
			Payload:   record.Payload,
		})
	}

	if err := s.eventRepo.Append(ctx, items); err != nil {
		return 0, fmt.Errorf("append events game=%s: %w", gameID, err)
	}

	s.logger.InfoContext(ctx, "events appended", "game_id", gameID, "count", len(items))
	return len(items), nil
}
