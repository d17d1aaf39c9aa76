package memory

import (
	"context"
	"testing"

	"github.com/gridline/gamecast/internal/domain/event"
	"github.com/gridline/gamecast/internal/domain/recap"
)

func TestEventRepositoryListByGameFiltersAndCopies(t *testing.T) {
	repo := NewEventRepository([]event.Event{
		{EventID: "a", GameID: "g1", Type: event.TypeGameStart},
		{EventID: "b", GameID: "g2", Type: event.TypeGameStart},
		{EventID: "c", GameID: "g1", Type: event.TypeGameEnd},
	})

	items, err := repo.ListByGame(context.Background(), "g1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 events for g1, got %d", len(items))
	}

	items[0].EventID = "mutated"
	again, err := repo.ListByGame(context.Background(), "g1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if again[0].EventID != "a" {
		t.Fatalf("expected stored event untouched by caller mutation, got %q", again[0].EventID)
	}
}

func TestEventRepositoryAppendDedupsByEventID(t *testing.T) {
	repo := NewEventRepository(nil)

	err := repo.Append(context.Background(), []event.Event{
		{EventID: "dup", GameID: "g1", Type: event.TypeGameStart},
		{EventID: "dup", GameID: "g1", Type: event.TypeGameStart},
		{EventID: "other", GameID: "g1", Type: event.TypeGameEnd},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	items, err := repo.ListByGame(context.Background(), "g1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected duplicate event id dropped, got %d events", len(items))
	}
}

func TestSeedGameEventsBuildsReadyProjection(t *testing.T) {
	repo := NewEventRepository(SeedGameEvents())

	items, err := repo.ListByGame(context.Background(), GameIDDemoOpener)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	projection, err := recap.Build(GameIDDemoOpener, items)
	if err != nil {
		t.Fatalf("expected seed data to build a projection, got %v", err)
	}
	if projection.HomeTeam != "Harbor City Titans" || projection.AwayTeam != "Northgate Wraiths" {
		t.Fatalf("unexpected teams: %q vs %q", projection.HomeTeam, projection.AwayTeam)
	}
	if projection.FinalScore.Home != 14 || projection.FinalScore.Away != 3 {
		t.Fatalf("unexpected final score: %d-%d", projection.FinalScore.Home, projection.FinalScore.Away)
	}
	if len(projection.Drives) != 1 {
		t.Fatalf("expected 1 drive, got %d", len(projection.Drives))
	}
	if len(projection.Turnovers) != 1 {
		t.Fatalf("expected 1 turnover, got %d", len(projection.Turnovers))
	}
}
