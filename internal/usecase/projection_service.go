package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gridline/gamecast/internal/domain/event"
	"github.com/gridline/gamecast/internal/domain/recap"
)

// ProjectionService rebuilds the game projection from the raw event log
// on every call. Nothing is cached; the log is the only source of truth.
type ProjectionService struct {
	eventRepo event.Repository
	logger    *slog.Logger
}

func NewProjectionService(eventRepo event.Repository, logger *slog.Logger) *ProjectionService {
	if logger == nil {
		logger = slog.Default()
	}

	return &ProjectionService{
		eventRepo: eventRepo,
		logger:    logger,
	}
}

func (s *ProjectionService) Get(ctx context.Context, gameID string) (recap.Projection, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProjectionService.Get")
	defer span.End()

	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return recap.Projection{}, fmt.Errorf("%w: game id is required", ErrInvalidInput)
	}

	events, err := s.eventRepo.ListByGame(ctx, gameID)
	if err != nil {
		return recap.Projection{}, fmt.Errorf("list events game=%s: %w", gameID, err)
	}

	projection, err := recap.Build(gameID, events)
	if err != nil {
		// An unbuildable projection is indistinguishable from a missing
		// game for callers; the reason still travels in the message.
		if isProjectionFailure(err) {
			s.logger.InfoContext(ctx, "projection not buildable", "game_id", gameID, "reason", err.Error())
			return recap.Projection{}, fmt.Errorf("%w: game=%s: %v", ErrNotFound, gameID, err)
		}
		return recap.Projection{}, fmt.Errorf("build projection game=%s: %w", gameID, err)
	}

	return projection, nil
}

func isProjectionFailure(err error) bool {
	return errors.Is(err, recap.ErrNoEvents) ||
		errors.Is(err, recap.ErrNoGameStart) ||
		errors.Is(err, recap.ErrNoTeams) ||
		errors.Is(err, recap.ErrInsufficientData)
}
