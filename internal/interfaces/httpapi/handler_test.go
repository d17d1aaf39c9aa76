package httpapi

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/panjf2000/ants/v2"

	"github.com/gridline/gamecast/internal/infrastructure/repository/memory"
	idgen "github.com/gridline/gamecast/internal/platform/id"
	"github.com/gridline/gamecast/internal/usecase"
)

const testInternalJobToken = "test-job-secret"

type stubNarrative struct{}

func (s stubNarrative) GenerateRecap(_ context.Context, req usecase.NarrativeRequest) (usecase.NarrativeResult, error) {
	return usecase.NarrativeResult{
		Headline:      req.HomeTeam + " Win",
		Article:       "An article about " + req.GameID + ".",
		PodcastScript: "A script.",
	}, nil
}

type stubSpeech struct{}

func (s stubSpeech) Synthesize(_ context.Context, req usecase.SpeechRequest) (usecase.GeneratedAsset, error) {
	return usecase.GeneratedAsset{Kind: usecase.AssetKindAudio, URL: "https://cdn.test/audio.mp3", JobID: "audio-1"}, nil
}

type stubMedia struct{}

func (s stubMedia) Generate(_ context.Context, req usecase.MediaRequest) (usecase.GeneratedAsset, error) {
	return usecase.GeneratedAsset{Kind: req.Kind, URL: "https://cdn.test/" + req.Kind, JobID: req.Kind + "-1"}, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := memory.NewEventRepository(memory.SeedGameEvents())

	projections := usecase.NewProjectionService(repo, logger)
	recaps := usecase.NewRecapService(projections, stubNarrative{}, logger)
	ingestion := usecase.NewIngestionService(repo, idgen.NewRandomGenerator(), logger)

	pool, err := ants.NewPool(2)
	if err != nil {
		t.Fatalf("create worker pool: %v", err)
	}
	t.Cleanup(pool.Release)
	media := usecase.NewMediaService(recaps, stubSpeech{}, stubMedia{}, pool, logger)

	handler := NewHandler(projections, recaps, ingestion, media, logger)
	return NewRouter(handler, logger, []string{"*"}, testInternalJobToken)
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	return body
}

func TestRouterHealthz(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestGetGameProjection_SeededGame(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/games/"+memory.GameIDDemoOpener+"/projection", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", rec.Code, rec.Body.String())
	}

	body := decodeEnvelope(t, rec)
	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object, got %v", body)
	}
	if got, _ := data["homeTeam"].(string); got != "Harbor City Titans" {
		t.Fatalf("unexpected home team: %v", data["homeTeam"])
	}
	finalScore, ok := data["finalScore"].(map[string]any)
	if !ok {
		t.Fatalf("expected finalScore object, got %v", data["finalScore"])
	}
	if got, _ := finalScore["home"].(float64); got != 14 {
		t.Fatalf("unexpected home score: %v", finalScore["home"])
	}
}

func TestGetGameProjection_UnknownGameIs404(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/games/no-such-game/projection", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}

	body := decodeEnvelope(t, rec)
	errorObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object, got %v", body)
	}
	if got, _ := errorObj["status"].(string); got != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND status, got %v", errorObj["status"])
	}
}

func TestGetGameRecap_IncludesNarrative(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/games/"+memory.GameIDDemoOpener+"/recap", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", rec.Code, rec.Body.String())
	}

	body := decodeEnvelope(t, rec)
	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object, got %v", body)
	}
	if got, _ := data["headline"].(string); got != "Harbor City Titans Win" {
		t.Fatalf("unexpected headline: %v", data["headline"])
	}
	if _, ok := data["projection"].(map[string]any); !ok {
		t.Fatalf("expected embedded projection, got %v", data["projection"])
	}
}

func TestIngestGameEvents_RequiresInternalToken(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/games/new-game/events", strings.NewReader(`{"events":[{"type":"game_start"}]}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestIngestGameEvents_AppendsAndProjects(t *testing.T) {
	router := newTestRouter(t)

	payload := `{"events":[
		{"type":"game_start","timestamp":1000,"payload":{"homeTeam":"Ridge Hawks","awayTeam":"Bay Sharks"}},
		{"type":"score","timestamp":2000,"payload":{"team":"Ridge Hawks","points":7,"quarter":1}},
		{"type":"game_end","timestamp":3000,"payload":{}}
	]}`

	req := httptest.NewRequest(http.MethodPost, "/v1/games/new-game/events", strings.NewReader(payload))
	req.Header.Set("X-Internal-Job-Token", testInternalJobToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected status 202, got %d body=%s", rec.Code, rec.Body.String())
	}

	body := decodeEnvelope(t, rec)
	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object, got %v", body)
	}
	if got, _ := data["appended"].(float64); got != 3 {
		t.Fatalf("expected 3 appended events, got %v", data["appended"])
	}

	readReq := httptest.NewRequest(http.MethodGet, "/v1/games/new-game/projection", nil)
	readRec := httptest.NewRecorder()
	router.ServeHTTP(readRec, readReq)

	if readRec.Code != http.StatusOK {
		t.Fatalf("expected status 200 after ingest, got %d body=%s", readRec.Code, readRec.Body.String())
	}
}

func TestIngestGameEvents_UnknownFieldRejected(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/games/new-game/events", strings.NewReader(`{"bogus":true}`))
	req.Header.Set("X-Internal-Job-Token", testInternalJobToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestIngestGameEvents_MissingTypeRejected(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/games/new-game/events", strings.NewReader(`{"events":[{"payload":{}}]}`))
	req.Header.Set("X-Internal-Job-Token", testInternalJobToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestGenerateGameMedia_ReturnsBundle(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/games/"+memory.GameIDDemoOpener+"/media", nil)
	req.Header.Set("X-Internal-Job-Token", testInternalJobToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", rec.Code, rec.Body.String())
	}

	body := decodeEnvelope(t, rec)
	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object, got %v", body)
	}
	assets, ok := data["assets"].([]any)
	if !ok || len(assets) != 3 {
		t.Fatalf("expected 3 assets, got %v", data["assets"])
	}
	for _, raw := range assets {
		asset, ok := raw.(map[string]any)
		if !ok {
			t.Fatalf("expected asset object, got %v", raw)
		}
		if got, _ := asset["status"].(string); got != usecase.AssetStatusCompleted {
			t.Fatalf("expected completed asset, got %v", asset)
		}
	}
}
