package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"automix-bot/internal/core/domain"
)

const DefaultTimeout = 10 * time.Second

type Client struct {
	httpClient *http.Client
	url        string
}

func NewClient(url string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: NewMetricsRoundTripper(http.DefaultTransport),
		},
		url: url,
	}
}

// NewTestClient creates a client without the metrics transport for tests.
func NewTestClient(url string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		url:        url,
	}
}

// Fetch downloads the current ranking. Every failure wraps
// domain.ErrFeedUnavailable so callers can skip the cycle.
func (c *Client) Fetch(ctx context.Context) (*domain.RankingSnapshot, error) {
	var data Response
	if err := c.getAndDecode(ctx, &data); err != nil {
		return nil, fmt.Errorf("%w: get %s: %w", domain.ErrFeedUnavailable, c.url, err)
	}

	if data.Rank == nil {
		return nil, fmt.Errorf("%w: response has no rank array", domain.ErrFeedUnavailable)
	}

	snapshot := toSnapshot(data)
	slog.Debug("Fetched leaderboard feed", "rows", len(snapshot.Rows), "last_update", snapshot.LastUpdate)
	return snapshot, nil
}

func (c *Client) getAndDecode(ctx context.Context, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
