package narrative

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	jsoniter "github.com/json-iterator/go"

	"github.com/gridline/gamecast/internal/platform/logging"
	"github.com/gridline/gamecast/internal/platform/resilience"
	"github.com/gridline/gamecast/internal/usecase"
)

func TestClientGenerateRecap_SendsPromptAndParsesResponse(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		if r.URL.Path != "/v1/recaps" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer writer-secret" {
			t.Fatalf("unexpected authorization header: %s", got)
		}

		var req map[string]string
		if err := jsoniter.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request body: %v", err)
		}
		if req["model"] != "recap-writer-1" {
			t.Fatalf("unexpected model: %s", req["model"])
		}
		if !strings.Contains(req["prompt"], "Ridge Hawks 7, Bay Sharks 0") {
			t.Fatalf("prompt is missing the final score line: %s", req["prompt"])
		}

		w.Header().Set("Content-Type", "application/json")
		_ = jsoniter.NewEncoder(w).Encode(map[string]string{
			"headline":      "Hawks Hold On",
			"article":       "Ridge Hawks closed out a 7-0 win.",
			"podcastScript": "Welcome to the recap show.",
		})
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{
		HTTPClient:     srv.Client(),
		BaseURL:        srv.URL,
		Token:          "writer-secret",
		Logger:         logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{Enabled: false},
	})

	result, err := client.GenerateRecap(context.Background(), usecase.NarrativeRequest{
		GameID:    "game-1",
		HomeTeam:  "Ridge Hawks",
		AwayTeam:  "Bay Sharks",
		HomeScore: 7,
		AwayScore: 0,
		Summary:   "Q1 Ridge Hawks: touchdown.",
	})
	if err != nil {
		t.Fatalf("generate recap failed: %v", err)
	}
	if result.Headline != "Hawks Hold On" {
		t.Fatalf("unexpected headline: %s", result.Headline)
	}
	if result.PodcastScript != "Welcome to the recap show." {
		t.Fatalf("unexpected podcast script: %s", result.PodcastScript)
	}
}

func TestClientGenerateRecap_RetriesTransientStatus(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = jsoniter.NewEncoder(w).Encode(map[string]string{
			"headline": "Second Try",
			"article":  "Recovered after a provider hiccup.",
		})
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{
		HTTPClient:     srv.Client(),
		BaseURL:        srv.URL,
		MaxRetries:     1,
		Logger:         logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{Enabled: false},
	})

	result, err := client.GenerateRecap(context.Background(), usecase.NarrativeRequest{GameID: "game-1"})
	if err != nil {
		t.Fatalf("generate recap failed: %v", err)
	}
	if result.Headline != "Second Try" {
		t.Fatalf("unexpected headline: %s", result.Headline)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected 2 upstream calls, got %d", calls.Load())
	}
}

func TestClientGenerateRecap_ExhaustedRetriesMapToDependencyUnavailable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{
		HTTPClient:     srv.Client(),
		BaseURL:        srv.URL,
		Logger:         logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{Enabled: false},
	})

	_, err := client.GenerateRecap(context.Background(), usecase.NarrativeRequest{GameID: "game-1"})
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

func TestClientGenerateRecap_NonRetryableStatusDoesNotRetry(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"prompt rejected"}`))
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{
		HTTPClient:     srv.Client(),
		BaseURL:        srv.URL,
		MaxRetries:     2,
		Logger:         logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{Enabled: false},
	})

	_, err := client.GenerateRecap(context.Background(), usecase.NarrativeRequest{GameID: "game-1"})
	if err == nil {
		t.Fatal("expected error for rejected prompt")
	}
	if errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("client error should not map to ErrDependencyUnavailable: %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("expected a single upstream call, got %d", calls.Load())
	}
}

func TestClientGenerateRecap_MissingArticleRejected(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = jsoniter.NewEncoder(w).Encode(map[string]string{"headline": "Only A Headline"})
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{
		HTTPClient:     srv.Client(),
		BaseURL:        srv.URL,
		Logger:         logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{Enabled: false},
	})

	_, err := client.GenerateRecap(context.Background(), usecase.NarrativeRequest{GameID: "game-1"})
	if err == nil || !strings.Contains(err.Error(), "missing headline or article") {
		t.Fatalf("expected incomplete payload error, got %v", err)
	}
}
