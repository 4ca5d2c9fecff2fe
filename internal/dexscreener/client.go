package dexscreener

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/wKayaa/gemfounder/internal/config"
	"github.com/wKayaa/gemfounder/internal/ratelimit"
)

// Client handles communication with the DexScreener API
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *ratelimit.Limiter
}

// NewClient creates a new DexScreener client
func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL:    cfg.DexScreenerBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    ratelimit.New(cfg.DexScreenerRPS),
	}
}

// Search fetches pairs matching a free-text query
func (c *Client) Search(ctx context.Context, query string) ([]Pair, error) {
	// Rate limit
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	u, err := url.Parse(c.baseURL + "/latest/dex/search")
	if err != nil {
		return nil, fmt.Errorf("parse URL: %w", err)
	}

	q := u.Query()
	q.Set("q", query)
	u.RawQuery = q.Encode()

	var resp SearchResponse
	if err := c.getJSON(ctx, u.String(), &resp); err != nil {
		return nil, err
	}

	return resp.Pairs, nil
}

// TokenPairs fetches all pairs for one token contract on one chain
func (c *Client) TokenPairs(ctx context.Context, chain, address string) ([]Pair, error) {
	// Rate limit
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	u := fmt.Sprintf("%s/token-pairs/v1/%s/%s", c.baseURL, url.PathEscape(chain), url.PathEscape(address))

	// This endpoint returns a bare array
	var pairs []Pair
	if err := c.getJSON(ctx, u, &pairs); err != nil {
		return nil, err
	}

	return pairs, nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, "GET", rawURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("429 Too Many Requests - reduce DEXSCREENER_RPS")
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
