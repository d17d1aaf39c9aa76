package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/gridline/gamecast/internal/platform/logging"
	"github.com/gridline/gamecast/internal/usecase"
)

type ClientConfig struct {
	HTTPClient   *http.Client
	BaseURL      string
	Token        string
	Timeout      time.Duration
	PollInterval time.Duration
	PollTimeout  time.Duration
	Logger       *logging.Logger
}

// Client drives the image/video generation service's async job API.
// Video renders take minutes, so the poll ceiling is much wider than
// the speech client's.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	token        string
	pollInterval time.Duration
	pollTimeout  time.Duration
	logger       *logging.Logger
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
		httpClient.Timeout = 20 * time.Second
	}

	pollInterval := cfg.PollInterval
	if pollInterval <= 0 {
		pollInterval = 3 * time.Second
	}
	pollTimeout := cfg.PollTimeout
	if pollTimeout <= 0 {
		pollTimeout = 5 * time.Minute
	}

	return &Client{
		httpClient:   httpClient,
		baseURL:      strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		token:        strings.TrimSpace(cfg.Token),
		pollInterval: pollInterval,
		pollTimeout:  pollTimeout,
		logger:       logger,
	}
}

type submitRequestBody struct {
	Kind     string `json:"kind"`
	Headline string `json:"headline"`
	Article  string `json:"article"`
}

type submitResponseBody struct {
	JobID string `json:"jobId"`
}

type jobResponseBody struct {
	Status string `json:"status"`
	URL    string `json:"url"`
	Error  string `json:"error"`
}

func (c *Client) Generate(ctx context.Context, req usecase.MediaRequest) (usecase.GeneratedAsset, error) {
	kind := strings.TrimSpace(req.Kind)
	if kind != usecase.AssetKindImage && kind != usecase.AssetKindVideo {
		return usecase.GeneratedAsset{}, fmt.Errorf("unsupported media kind %q", req.Kind)
	}
	if c.baseURL == "" {
		return usecase.GeneratedAsset{}, fmt.Errorf("%w: media service is not configured", usecase.ErrDependencyUnavailable)
	}

	jobID, err := c.submit(ctx, kind, req)
	if err != nil {
		return usecase.GeneratedAsset{}, err
	}
	c.logger.InfoContext(ctx, "media job submitted", "game_id", req.GameID, "kind", kind, "job_id", jobID)

	url, err := c.await(ctx, kind, jobID)
	if err != nil {
		return usecase.GeneratedAsset{}, err
	}

	return usecase.GeneratedAsset{
		Kind:  kind,
		URL:   url,
		JobID: jobID,
	}, nil
}

func (c *Client) submit(ctx context.Context, kind string, req usecase.MediaRequest) (string, error) {
	body, err := sonic.Marshal(submitRequestBody{
		Kind:     kind,
		Headline: req.Headline,
		Article:  req.Article,
	})
	if err != nil {
		return "", fmt.Errorf("marshal media request: %w", err)
	}

	raw, err := c.doJSON(ctx, http.MethodPost, c.baseURL+"/v1/media/jobs", body)
	if err != nil {
		return "", err
	}

	var decoded submitResponseBody
	if err := sonic.Unmarshal(raw, &decoded); err != nil {
		return "", fmt.Errorf("decode media submit payload: %w", err)
	}
	if strings.TrimSpace(decoded.JobID) == "" {
		return "", fmt.Errorf("media submit payload missing job id")
	}
	return strings.TrimSpace(decoded.JobID), nil
}

func (c *Client) await(ctx context.Context, kind, jobID string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.pollTimeout)
	defer cancel()

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	jobURL := c.baseURL + "/v1/media/jobs/" + jobID
	for {
		raw, err := c.doJSON(ctx, http.MethodGet, jobURL, nil)
		if err != nil {
			return "", err
		}

		var decoded jobResponseBody
		if err := sonic.Unmarshal(raw, &decoded); err != nil {
			return "", fmt.Errorf("decode media job payload: %w", err)
		}

		switch strings.ToLower(strings.TrimSpace(decoded.Status)) {
		case "completed":
			if strings.TrimSpace(decoded.URL) == "" {
				return "", fmt.Errorf("media job kind=%s job_id=%s completed without an asset url", kind, jobID)
			}
			return strings.TrimSpace(decoded.URL), nil
		case "failed":
			reason := strings.TrimSpace(decoded.Error)
			if reason == "" {
				reason = "no reason given"
			}
			return "", fmt.Errorf("media job kind=%s job_id=%s failed: %s", kind, jobID, reason)
		}

		select {
		case <-ctx.Done():
			return "", fmt.Errorf("%w: media job kind=%s job_id=%s did not finish: %v", usecase.ErrDependencyUnavailable, kind, jobID, ctx.Err())
		case <-ticker.C:
		}
	}
}

func (c *Client) doJSON(ctx context.Context, method, fullURL string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: media request: %v", usecase.ErrDependencyUnavailable, err)
	}
	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	_ = resp.Body.Close()
	if readErr != nil {
		return nil, fmt.Errorf("%w: read media response: %v", usecase.ErrDependencyUnavailable, readErr)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("media status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
	}
	return raw, nil
}

func abbreviateBody(raw []byte) string {
	text := strings.TrimSpace(string(raw))
	if len(text) > 512 {
		return text[:512] + "...(truncated)"
	}
	return text
}
