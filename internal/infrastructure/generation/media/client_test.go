package media

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/gridline/gamecast/internal/platform/logging"
	"github.com/gridline/gamecast/internal/usecase"
)

func TestClientGenerate_SubmitsKindAndPollsUntilCompleted(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/v1/media/jobs":
			var req map[string]string
			if err := jsoniter.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Fatalf("decode submit body: %v", err)
			}
			if req["kind"] != usecase.AssetKindVideo {
				t.Fatalf("unexpected kind: %s", req["kind"])
			}
			if req["headline"] != "Hawks Hold On" {
				t.Fatalf("unexpected headline: %s", req["headline"])
			}
			_ = jsoniter.NewEncoder(w).Encode(map[string]string{"jobId": "job-77"})
		case r.Method == http.MethodGet && r.URL.Path == "/v1/media/jobs/job-77":
			_ = jsoniter.NewEncoder(w).Encode(map[string]string{
				"status": "completed",
				"url":    "https://cdn.example.com/video/job-77.mp4",
			})
		default:
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{
		HTTPClient:   srv.Client(),
		BaseURL:      srv.URL,
		PollInterval: 10 * time.Millisecond,
		PollTimeout:  time.Second,
		Logger:       logging.NewNop(),
	})

	asset, err := client.Generate(context.Background(), usecase.MediaRequest{
		GameID:   "game-1",
		Kind:     usecase.AssetKindVideo,
		Headline: "Hawks Hold On",
		Article:  "Ridge Hawks closed out a 7-0 win.",
	})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if asset.Kind != usecase.AssetKindVideo {
		t.Fatalf("unexpected asset kind: %s", asset.Kind)
	}
	if asset.URL != "https://cdn.example.com/video/job-77.mp4" {
		t.Fatalf("unexpected asset url: %s", asset.URL)
	}
}

func TestClientGenerate_UnsupportedKindRejected(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{BaseURL: "http://localhost:0", Logger: logging.NewNop()})

	_, err := client.Generate(context.Background(), usecase.MediaRequest{
		GameID: "game-1",
		Kind:   usecase.AssetKindAudio,
	})
	if err == nil || !strings.Contains(err.Error(), "unsupported media kind") {
		t.Fatalf("expected unsupported kind error, got %v", err)
	}
}

func TestClientGenerate_PollTimeoutMapsToDependencyUnavailable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			_ = jsoniter.NewEncoder(w).Encode(map[string]string{"jobId": "job-stuck"})
			return
		}
		_ = jsoniter.NewEncoder(w).Encode(map[string]string{"status": "queued"})
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{
		HTTPClient:   srv.Client(),
		BaseURL:      srv.URL,
		PollInterval: 10 * time.Millisecond,
		PollTimeout:  50 * time.Millisecond,
		Logger:       logging.NewNop(),
	})

	_, err := client.Generate(context.Background(), usecase.MediaRequest{GameID: "game-1", Kind: usecase.AssetKindImage})
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}
