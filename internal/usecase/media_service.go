package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc"
)

const (
	AssetKindAudio = "audio"
	AssetKindImage = "image"
	AssetKindVideo = "video"

	AssetStatusCompleted = "completed"
	AssetStatusFailed    = "failed"
)

type SpeechRequest struct {
	GameID string
	Script string
}

type MediaRequest struct {
	GameID   string
	Kind     string
	Headline string
	Article  string
}

// GeneratedAsset is the terminal result of one generation job.
type GeneratedAsset struct {
	Kind  string
	URL   string
	JobID string
}

type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, req SpeechRequest) (GeneratedAsset, error)
}

type MediaGenerator interface {
	Generate(ctx context.Context, req MediaRequest) (GeneratedAsset, error)
}

type AssetOutcome struct {
	Kind   string
	Status string
	URL    string
	JobID  string
	Error  string
}

type MediaBundle struct {
	GameID string
	Assets []AssetOutcome
}

// MediaService fans asset generation out over a shared worker pool.
// The pool bounds concurrent generation jobs across all in-flight
// requests; each request collects its own results.
type MediaService struct {
	recaps *RecapService
	speech SpeechSynthesizer
	media  MediaGenerator
	pool   *ants.Pool
	logger *slog.Logger
}

func NewMediaService(recaps *RecapService, speech SpeechSynthesizer, media MediaGenerator, pool *ants.Pool, logger *slog.Logger) *MediaService {
	if logger == nil {
		logger = slog.Default()
	}

	return &MediaService{
		recaps: recaps,
		speech: speech,
		media:  media,
		pool:   pool,
		logger: logger,
	}
}

// Generate produces the audio, image, and video assets for a game's
// recap. One asset failing does not fail the others.
func (s *MediaService) Generate(ctx context.Context, gameID string) (MediaBundle, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MediaService.Generate")
	defer span.End()

	rec, err := s.recaps.Get(ctx, gameID)
	if err != nil {
		return MediaBundle{}, err
	}

	kinds := []string{AssetKindAudio, AssetKindImage, AssetKindVideo}
	outcomes := make([]AssetOutcome, len(kinds))

	var wg conc.WaitGroup
	for i, kind := range kinds {
		i, kind := i, kind
		wg.Go(func() {
			outcomes[i] = s.runPooled(ctx, rec, kind)
		})
	}
	wg.Wait()

	failed := 0
	for _, outcome := range outcomes {
		if outcome.Status == AssetStatusFailed {
			failed++
			s.logger.WarnContext(ctx, "asset generation failed", "game_id", rec.Projection.GameID, "kind", outcome.Kind, "error", outcome.Error)
		}
	}
	if failed == len(outcomes) {
		return MediaBundle{}, fmt.Errorf("%w: all asset generators failed", ErrDependencyUnavailable)
	}

	return MediaBundle{GameID: rec.Projection.GameID, Assets: outcomes}, nil
}

func (s *MediaService) runPooled(ctx context.Context, rec Recap, kind string) AssetOutcome {
	results := make(chan AssetOutcome, 1)
	if err := s.pool.Submit(func() {
		results <- s.generateAsset(ctx, rec, kind)
	}); err != nil {
		return AssetOutcome{Kind: kind, Status: AssetStatusFailed, Error: fmt.Sprintf("submit to worker pool: %v", err)}
	}

	select {
	case outcome := <-results:
		return outcome
	case <-ctx.Done():
		return AssetOutcome{Kind: kind, Status: AssetStatusFailed, Error: ctx.Err().Error()}
	}
}

func (s *MediaService) generateAsset(ctx context.Context, rec Recap, kind string) AssetOutcome {
	var (
		asset GeneratedAsset
		err   error
	)

	switch kind {
	case AssetKindAudio:
		asset, err = s.speech.Synthesize(ctx, SpeechRequest{
			GameID: rec.Projection.GameID,
			Script: rec.PodcastScript,
		})
	case AssetKindImage, AssetKindVideo:
		asset, err = s.media.Generate(ctx, MediaRequest{
			GameID:   rec.Projection.GameID,
			Kind:     kind,
			Headline: rec.Headline,
			Article:  rec.Article,
		})
	default:
		err = fmt.Errorf("unknown asset kind %q", kind)
	}
	if err != nil {
		return AssetOutcome{Kind: kind, Status: AssetStatusFailed, Error: err.Error()}
	}

	return AssetOutcome{
		Kind:   kind,
		Status: AssetStatusCompleted,
		URL:    asset.URL,
		JobID:  asset.JobID,
	}
}
