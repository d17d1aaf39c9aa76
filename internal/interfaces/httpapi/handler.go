package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"

	"github.com/gridline/gamecast/internal/domain/recap"
	"github.com/gridline/gamecast/internal/usecase"
)

type Handler struct {
	projectionService *usecase.ProjectionService
	recapService      *usecase.RecapService
	ingestionService  *usecase.IngestionService
	mediaService      *usecase.MediaService
	logger            *slog.Logger
	validator         *validator.Validate
}

func NewHandler(
	projectionService *usecase.ProjectionService,
	recapService *usecase.RecapService,
	ingestionService *usecase.IngestionService,
	mediaService *usecase.MediaService,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		projectionService: projectionService,
		recapService:      recapService,
		ingestionService:  ingestionService,
		mediaService:      mediaService,
		logger:            logger,
		validator:         validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetGameProjection serves the projection verbatim; its JSON shape is
// the public contract, so there is no DTO layer in between.
func (h *Handler) GetGameProjection(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGameProjection")
	defer span.End()

	gameID := strings.TrimSpace(r.PathValue("gameID"))
	projection, err := h.projectionService.Get(ctx, gameID)
	if err != nil {
		h.logger.WarnContext(ctx, "get projection failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, projection)
}

func (h *Handler) GetGameRecap(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGameRecap")
	defer span.End()

	gameID := strings.TrimSpace(r.PathValue("gameID"))
	rec, err := h.recapService.Get(ctx, gameID)
	if err != nil {
		h.logger.WarnContext(ctx, "get recap failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, recapDTO{
		Projection:    rec.Projection,
		Headline:      rec.Headline,
		Article:       rec.Article,
		PodcastScript: rec.PodcastScript,
	})
}

func (h *Handler) IngestGameEvents(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.IngestGameEvents")
	defer span.End()

	gameID := strings.TrimSpace(r.PathValue("gameID"))

	var req ingestEventsRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	records := make([]usecase.IngestRecord, 0, len(req.Events))
	for _, item := range req.Events {
		records = append(records, usecase.IngestRecord{
			EventID:   item.EventID,
			AppID:     item.AppID,
			Sport:     item.Sport,
			Type:      item.Type,
			Timestamp: item.Timestamp,
			CreatedAt: item.CreatedAt,
			Payload:   item.Payload,
		})
	}

	appended, err := h.ingestionService.Append(ctx, gameID, records)
	if err != nil {
		h.logger.WarnContext(ctx, "ingest events failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusAccepted, ingestEventsResponse{
		GameID:   gameID,
		Appended: appended,
	})
}

func (h *Handler) GenerateGameMedia(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GenerateGameMedia")
	defer span.End()

	gameID := strings.TrimSpace(r.PathValue("gameID"))
	bundle, err := h.mediaService.Generate(ctx, gameID)
	if err != nil {
		h.logger.WarnContext(ctx, "generate media failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	assets := make([]assetOutcomeDTO, 0, len(bundle.Assets))
	for _, asset := range bundle.Assets {
		assets = append(assets, assetOutcomeDTO{
			Kind:   asset.Kind,
			Status: asset.Status,
			URL:    asset.URL,
			JobID:  asset.JobID,
			Error:  asset.Error,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, mediaBundleDTO{
		GameID: bundle.GameID,
		Assets: assets,
	})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type ingestEventsRequest struct {
	Events []ingestEventItem `json:"events" validate:"required,min=1,dive"`
}

type ingestEventItem struct {
	EventID   string         `json:"eventId"`
	AppID     string         `json:"appId"`
	Sport     string         `json:"sport"`
	Type      string         `json:"type" validate:"required"`
	Timestamp any            `json:"timestamp"`
	CreatedAt any            `json:"createdAt"`
	Payload   map[string]any `json:"payload"`
}

type ingestEventsResponse struct {
	GameID   string `json:"gameId"`
	Appended int    `json:"appended"`
}

type recapDTO struct {
	Projection    recap.Projection `json:"projection"`
	Headline      string           `json:"headline"`
	Article       string           `json:"article"`
	PodcastScript string           `json:"podcastScript,omitempty"`
}

type mediaBundleDTO struct {
	GameID string            `json:"gameId"`
	Assets []assetOutcomeDTO `json:"assets"`
}

type assetOutcomeDTO struct {
	Kind   string `json:"kind"`
	Status string `json:"status"`
	URL    string `json:"url,omitempty"`
	JobID  string `json:"jobId,omitempty"`
	Error  string `json:"error,omitempty"`
}
