package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/gridline/gamecast/internal/domain/event"
	eventmock "github.com/gridline/gamecast/internal/mocks/domain/event"
)

func TestProjectionService_Get_SuccessUsingMockery(t *testing.T) {
	t.Parallel()

	eventRepo := eventmock.NewRepository(t)
	service := NewProjectionService(eventRepo, nil)

	gameID := "mock-game-1"
	eventRepo.
		On("ListByGame", mock.Anything, gameID).
		Return(completedGameEvents(gameID), nil).
		Once()

	got, err := service.Get(context.Background(), gameID)
	if err != nil {
		t.Fatalf("get projection: %v", err)
	}
	if got.GameID != gameID {
		t.Fatalf("unexpected game id: got=%s want=%s", got.GameID, gameID)
	}
	if got.HomeTeam != "Ridge Hawks" || got.AwayTeam != "Bay Sharks" {
		t.Fatalf("unexpected teams: home=%s away=%s", got.HomeTeam, got.AwayTeam)
	}
	if got.FinalScore.Home != 7 {
		t.Fatalf("unexpected home score: got=%d want=7", got.FinalScore.Home)
	}
}

func TestProjectionService_Get_RepoErrorUsingMockery(t *testing.T) {
	t.Parallel()

	eventRepo := eventmock.NewRepository(t)
	service := NewProjectionService(eventRepo, nil)

	storeErr := errors.New("connection reset")
	eventRepo.
		On("ListByGame", mock.Anything, "mock-game-2").
		Return([]event.Event(nil), storeErr).
		Once()

	_, err := service.Get(context.Background(), "mock-game-2")
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected store error to surface, got %v", err)
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatalf("store failure must not read as a missing game: %v", err)
	}
}
