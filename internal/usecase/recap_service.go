package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gridline/gamecast/internal/domain/recap"
	"github.com/gridline/gamecast/internal/platform/resilience"
)

// NarrativeRequest carries the projection facts the narrative
// collaborator writes from. Summary is a pre-rendered play-by-play
// digest so the collaborator never needs the raw event log.
type NarrativeRequest struct {
	GameID    string
	HomeTeam  string
	AwayTeam  string
	HomeScore int
	AwayScore int
	Summary   string
}

type NarrativeResult struct {
	Headline      string
	Article       string
	PodcastScript string
}

type NarrativeGenerator interface {
	GenerateRecap(ctx context.Context, req NarrativeRequest) (NarrativeResult, error)
}

// Recap is a projection plus its generated editorial content.
type Recap struct {
	Projection    recap.Projection
	Headline      string
	Article       string
	PodcastScript string
}

type RecapService struct {
	projections *ProjectionService
	narrative   NarrativeGenerator
	flight      resilience.SingleFlight
	logger      *slog.Logger
}

func NewRecapService(projections *ProjectionService, narrative NarrativeGenerator, logger *slog.Logger) *RecapService {
	if logger == nil {
		logger = slog.Default()
	}

	return &RecapService{
		projections: projections,
		narrative:   narrative,
		logger:      logger,
	}
}

func (s *RecapService) Get(ctx context.Context, gameID string) (Recap, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RecapService.Get")
	defer span.End()

	projection, err := s.projections.Get(ctx, gameID)
	if err != nil {
		return Recap{}, err
	}

	// Concurrent recap requests for the same game share one narrative
	// call; generation is the expensive leg.
	out, err, shared := s.flight.Do(projection.GameID, func() (any, error) {
		return s.narrative.GenerateRecap(ctx, buildNarrativeRequest(projection))
	})
	if err != nil {
		return Recap{}, fmt.Errorf("generate narrative game=%s: %w", projection.GameID, err)
	}
	if shared {
		s.logger.DebugContext(ctx, "narrative call deduplicated", "game_id", projection.GameID)
	}

	result, ok := out.(NarrativeResult)
	if !ok {
		return Recap{}, fmt.Errorf("unexpected narrative result type %T", out)
	}

	return Recap{
		Projection:    projection,
		Headline:      result.Headline,
		Article:       result.Article,
		PodcastScript: result.PodcastScript,
	}, nil
}

func buildNarrativeRequest(projection recap.Projection) NarrativeRequest {
	return NarrativeRequest{
		GameID:    projection.GameID,
		HomeTeam:  projection.HomeTeam,
		AwayTeam:  projection.AwayTeam,
		HomeScore: projection.FinalScore.Home,
		AwayScore: projection.FinalScore.Away,
		Summary:   renderGameSummary(projection),
	}
}

func renderGameSummary(projection recap.Projection) string {
	summary := fmt.Sprintf("%s %d, %s %d.", projection.HomeTeam, projection.FinalScore.Home, projection.AwayTeam, projection.FinalScore.Away)
	for _, play := range projection.ScoringPlays {
		summary += fmt.Sprintf(" Q%d %s: %s %s for %d (%s).", play.Quarter, play.Clock, play.Team, play.Type, play.Points, play.Description)
	}
	for _, turnover := range projection.Turnovers {
		summary += fmt.Sprintf(" Q%d turnover by %s (%s).", turnover.Quarter, turnover.Team, turnover.Type)
	}
	return summary
}
