package coingecko

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/wKayaa/gemfounder/internal/config"
	"github.com/wKayaa/gemfounder/internal/ratelimit"
)

// ErrNotListed is returned when CoinGecko does not know the contract. An
// unlisted token is not an error condition for the scanner, just a missing
// legitimacy signal.
var ErrNotListed = errors.New("coingecko: contract not listed")

// assetPlatforms maps DexScreener chain identifiers to CoinGecko asset
// platform identifiers.
var assetPlatforms = map[string]string{
	"ethereum":  "ethereum",
	"bsc":       "binance-smart-chain",
	"solana":    "solana",
	"base":      "base",
	"polygon":   "polygon-pos",
	"arbitrum":  "arbitrum-one",
	"avalanche": "avalanche",
	"optimism":  "optimistic-ethereum",
}

// AssetPlatform translates a chain identifier to CoinGecko's naming
func AssetPlatform(chain string) (string, bool) {
	platform, ok := assetPlatforms[chain]
	return platform, ok
}

// Client handles communication with the CoinGecko API
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *ratelimit.Limiter
}

// NewClient creates a new CoinGecko client
func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL:    cfg.CoinGeckoBaseURL,
		apiKey:     cfg.CoinGeckoAPIKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    ratelimit.New(cfg.CoinGeckoRPS),
	}
}

// GetCoinByContract fetches coin details for a contract address. Returns
// ErrNotListed when CoinGecko has no entry for it.
func (c *Client) GetCoinByContract(ctx context.Context, chain, address string) (*CoinInfo, error) {
	// Rate limit
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	platform, ok := AssetPlatform(chain)
	if !ok {
		return nil, fmt.Errorf("no CoinGecko platform for chain %s", chain)
	}

	u := fmt.Sprintf("%s/coins/%s/contract/%s", c.baseURL, url.PathEscape(platform), url.PathEscape(address))

	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	if c.apiKey != "" {
		req.Header.Set("x-cg-demo-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotListed
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("429 Too Many Requests - reduce COINGECKO_RPS")
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var info CoinInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return &info, nil
}
