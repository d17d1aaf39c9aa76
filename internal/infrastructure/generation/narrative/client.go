package narrative

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/gridline/gamecast/internal/platform/logging"
	"github.com/gridline/gamecast/internal/platform/resilience"
	"github.com/gridline/gamecast/internal/usecase"
)

var errNarrativeTransient = crerr.New("narrative transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Token          string
	Model          string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to the recap-writing model service. Requests for the
// same game are collapsed through a single flight group so a burst of
// recap reads produces one upstream generation.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	token          string
	model          string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 30 * time.Second
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = "recap-writer-1"
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		token:          strings.TrimSpace(cfg.Token),
		model:          model,
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

type generateRequestBody struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type generateResponseBody struct {
	Headline      string `json:"headline"`
	Article       string `json:"article"`
	PodcastScript string `json:"podcastScript"`
}

func (c *Client) GenerateRecap(ctx context.Context, req usecase.NarrativeRequest) (usecase.NarrativeResult, error) {
	if strings.TrimSpace(req.GameID) == "" {
		return usecase.NarrativeResult{}, fmt.Errorf("game id is required")
	}
	if c.baseURL == "" {
		return usecase.NarrativeResult{}, fmt.Errorf("%w: narrative service is not configured", usecase.ErrDependencyUnavailable)
	}

	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "narrative circuit breaker rejected request", "state", c.breaker.State())
			return usecase.NarrativeResult{}, fmt.Errorf("%w: narrative service is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	body, err := sonic.Marshal(generateRequestBody{
		Model:  c.model,
		Prompt: buildPrompt(req),
	})
	if err != nil {
		return usecase.NarrativeResult{}, fmt.Errorf("marshal narrative request: %w", err)
	}

	fullURL := c.baseURL + "/v1/recaps"
	out, err, _ := c.flight.Do("recap:"+req.GameID, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL, body)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, errNarrativeTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		if crerr.Is(err, errNarrativeTransient) {
			return usecase.NarrativeResult{}, fmt.Errorf("%w: narrative service is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
		return usecase.NarrativeResult{}, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return usecase.NarrativeResult{}, fmt.Errorf("unexpected response payload type %T", out)
	}

	var decoded generateResponseBody
	if err := sonic.Unmarshal(raw, &decoded); err != nil {
		return usecase.NarrativeResult{}, fmt.Errorf("decode narrative payload: %w", err)
	}
	if strings.TrimSpace(decoded.Headline) == "" || strings.TrimSpace(decoded.Article) == "" {
		return usecase.NarrativeResult{}, fmt.Errorf("narrative payload missing headline or article")
	}

	return usecase.NarrativeResult{
		Headline:      strings.TrimSpace(decoded.Headline),
		Article:       strings.TrimSpace(decoded.Article),
		PodcastScript: strings.TrimSpace(decoded.PodcastScript),
	}, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string, body []byte) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, fullURL, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")
		req.Header.Set("Content-Type", "application/json")
		if c.token != "" {
			req.Header.Set("Authorization", "Bearer "+c.token)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errNarrativeTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 2<<20))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errNarrativeTransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else if isRetryableStatus(resp.StatusCode) {
				lastErr = fmt.Errorf("%w: narrative status=%d body=%s", errNarrativeTransient, resp.StatusCode, abbreviateBody(raw))
			} else {
				return nil, fmt.Errorf("narrative status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("narrative request failed")
	}
	c.logger.WarnContext(ctx, "narrative request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

// buildPrompt turns the request into the instruction text the model
// receives. Assembled through a pooled buffer since recap bursts hit
// this on every cache-less read.
func buildPrompt(req usecase.NarrativeRequest) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	appendLine := func(line string) {
		_, _ = buf.WriteString(line)
		_ = buf.WriteByte('\n')
	}

	appendLine("Write a post-game recap with a headline, a short article, and a podcast script.")
	appendLine("Game: " + req.HomeTeam + " vs " + req.AwayTeam)
	appendLine("Final: " + req.HomeTeam + " " + strconv.Itoa(req.HomeScore) + ", " + req.AwayTeam + " " + strconv.Itoa(req.AwayScore))
	if strings.TrimSpace(req.Summary) != "" {
		appendLine("Play-by-play digest:")
		appendLine(req.Summary)
	}

	return buf.String()
}

func isRetryableStatus(status int) bool {
	if status == http.StatusTooManyRequests {
		return true
	}
	return status >= 500
}

func abbreviateBody(raw []byte) string {
	text := strings.TrimSpace(string(raw))
	if len(text) > 512 {
		return text[:512] + "...(truncated)"
	}
	return text
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
