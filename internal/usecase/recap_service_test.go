package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

type stubNarrative struct {
	result NarrativeResult
	err    error
	calls  int
	last   NarrativeRequest
}

func (g *stubNarrative) GenerateRecap(_ context.Context, req NarrativeRequest) (NarrativeResult, error) {
	g.calls++
	g.last = req
	if g.err != nil {
		return NarrativeResult{}, g.err
	}
	return g.result, nil
}

func TestRecapServiceGet(t *testing.T) {
	repo := &stubEventRepo{events: completedGameEvents("game-1")}
	narrative := &stubNarrative{result: NarrativeResult{
		Headline:      "Hawks hold on",
		Article:       "A long article.",
		PodcastScript: "Welcome to the recap.",
	}}
	svc := NewRecapService(NewProjectionService(repo, nil), narrative, nil)

	rec, err := svc.Get(context.Background(), "game-1")
	if err != nil {
		t.Fatalf("get recap: %v", err)
	}
	if rec.Headline != "Hawks hold on" {
		t.Fatalf("unexpected headline: %q", rec.Headline)
	}
	if rec.Projection.GameID != "game-1" {
		t.Fatalf("unexpected projection game id: %q", rec.Projection.GameID)
	}
	if narrative.calls != 1 {
		t.Fatalf("expected one narrative call, got %d", narrative.calls)
	}
	if narrative.last.HomeTeam != "Ridge Hawks" || narrative.last.HomeScore != 7 {
		t.Fatalf("unexpected narrative request: %+v", narrative.last)
	}
	if !strings.Contains(narrative.last.Summary, "Ridge Hawks 7, Bay Sharks 0.") {
		t.Fatalf("summary must lead with the final score: %q", narrative.last.Summary)
	}
	if !strings.Contains(narrative.last.Summary, "Q1") {
		t.Fatalf("summary must mention scoring plays: %q", narrative.last.Summary)
	}
}

func TestRecapServiceGetPropagatesNotFound(t *testing.T) {
	svc := NewRecapService(NewProjectionService(&stubEventRepo{}, nil), &stubNarrative{}, nil)

	_, err := svc.Get(context.Background(), "missing-game")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRecapServiceGetWrapsNarrativeErrors(t *testing.T) {
	repo := &stubEventRepo{events: completedGameEvents("game-1")}
	narrative := &stubNarrative{err: fmt.Errorf("%w: circuit open", ErrDependencyUnavailable)}
	svc := NewRecapService(NewProjectionService(repo, nil), narrative, nil)

	_, err := svc.Get(context.Background(), "game-1")
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}
