package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/wKayaa/gemfounder/internal/classify"
	"github.com/wKayaa/gemfounder/internal/secrets"
)

// Config holds all application configuration
type Config struct {
	// Environment
	Environment string

	// Database
	DatabaseDSN         string
	DatabaseMaxConns    int
	DatabaseMaxIdleTime time.Duration

	// DexScreener API
	DexScreenerBaseURL string
	SearchQueries      []string

	// CoinGecko API
	CoinGeckoBaseURL string
	CoinGeckoAPIKey  string

	// Chains to scan
	Chains []string

	// Classification
	RiskProfile            string
	MinMarketCap           float64
	MaxMarketCap           float64
	MinVolume1H            float64
	MinVolumeGrowthPct     float64
	MinTokenAgeHours       int
	ScoreThresholdOverride float64 // 0 means use the profile default

	// Rate limits (requests per second)
	DexScreenerRPS float64
	CoinGeckoRPS   float64

	// Scanning
	ScanIntervalSec   int
	MaxTokensPerScan  int
	SummaryEveryScans int

	// Retention
	NotifyRetentionDays int

	// Alerts
	AlertMode        string // log, telegram, discord (comma-separated)
	TelegramBotToken string
	TelegramChatID   string
	DiscordWebURL    string

	// Metrics/Health
	MetricsPort int
	HealthPort  int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Environment:            getEnv("ENVIRONMENT", "production"),
		DatabaseDSN:            getEnv("DATABASE_DSN", "gemfounder:gemfounder@tcp(mysql:3306)/gemfounder?parseTime=true"),
		DatabaseMaxConns:       getEnvInt("DATABASE_MAX_CONNS", 25),
		DatabaseMaxIdleTime:    time.Duration(getEnvInt("DATABASE_MAX_IDLE_TIME_MINS", 5)) * time.Minute,
		DexScreenerBaseURL:     getEnv("DEXSCREENER_BASE_URL", "https://api.dexscreener.com"),
		CoinGeckoBaseURL:       getEnv("COINGECKO_BASE_URL", "https://api.coingecko.com/api/v3"),
		CoinGeckoAPIKey:        secrets.GetOptionalSecret("COINGECKO_API_KEY", ""),
		RiskProfile:            getEnv("RISK_PROFILE", "balanced"),
		MinMarketCap:           getEnvFloat("MIN_MARKET_CAP", 100000.0),
		MaxMarketCap:           getEnvFloat("MAX_MARKET_CAP", 300000.0),
		MinVolume1H:            getEnvFloat("MIN_VOLUME_1H", 10000.0),
		MinVolumeGrowthPct:     getEnvFloat("MIN_VOLUME_GROWTH_PCT", 30.0),
		MinTokenAgeHours:       getEnvInt("MIN_TOKEN_AGE_HOURS", 24),
		ScoreThresholdOverride: getEnvFloat("MIN_SCORE_OVERRIDE", 0),
		DexScreenerRPS:         getEnvFloat("DEXSCREENER_RPS", 2.0),
		CoinGeckoRPS:           getEnvFloat("COINGECKO_RPS", 0.5),
		ScanIntervalSec:        getEnvInt("SCAN_INTERVAL_SEC", 300),
		MaxTokensPerScan:       getEnvInt("MAX_TOKENS_PER_SCAN", 100),
		SummaryEveryScans:      getEnvInt("SUMMARY_EVERY_SCANS", 12),
		NotifyRetentionDays:    getEnvInt("NOTIFY_RETENTION_DAYS", 30),
		AlertMode:              getEnv("ALERT_MODE", "log"),
		TelegramBotToken:       secrets.GetOptionalSecret("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID:         getEnv("TELEGRAM_CHAT_ID", ""),
		DiscordWebURL:          secrets.GetOptionalSecret("DISCORD_WEBHOOK_URL", ""),
		MetricsPort:            getEnvInt("METRICS_PORT", 9090),
		HealthPort:             getEnvInt("HEALTH_PORT", 8080),
	}

	cfg.Chains = parseCSV(getEnv("CHAINS", "ethereum,bsc,solana,base"))
	cfg.SearchQueries = parseCSV(getEnv("SEARCH_QUERIES", "trending,new,gem"))

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks configuration for errors
func (c *Config) Validate() error {
	if c.DatabaseDSN == "" {
		return fmt.Errorf("DATABASE_DSN is required")
	}

	switch classify.Profile(c.RiskProfile) {
	case classify.ProfileConservative, classify.ProfileBalanced, classify.ProfileAggressive:
	default:
		return fmt.Errorf("invalid RISK_PROFILE: %s (must be conservative, balanced, or aggressive)", c.RiskProfile)
	}

	if c.MinMarketCap > c.MaxMarketCap {
		return fmt.Errorf("MIN_MARKET_CAP (%.0f) exceeds MAX_MARKET_CAP (%.0f)", c.MinMarketCap, c.MaxMarketCap)
	}

	if c.ScanIntervalSec < 1 {
		return fmt.Errorf("SCAN_INTERVAL_SEC must be at least 1")
	}

	if len(c.Chains) == 0 {
		return fmt.Errorf("CHAINS must name at least one chain")
	}

	// Validate alert mode (comma-separated list)
	modes := strings.Split(c.AlertMode, ",")
	hasTelegram := false
	hasDiscord := false

	for _, mode := range modes {
		mode = strings.TrimSpace(mode)
		switch mode {
		case "log", "telegram", "discord":
			if mode == "telegram" {
				hasTelegram = true
			}
			if mode == "discord" {
				hasDiscord = true
			}
		default:
			return fmt.Errorf("invalid ALERT_MODE value: %s (valid values: log, telegram, discord)", mode)
		}
	}

	if hasTelegram && (c.TelegramBotToken == "" || c.TelegramChatID == "") {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID are required when telegram is in ALERT_MODE")
	}

	if hasDiscord && c.DiscordWebURL == "" {
		return fmt.Errorf("DISCORD_WEBHOOK_URL is required when discord is in ALERT_MODE")
	}

	return nil
}

// ClassifyConfig builds the classification configuration with the built-in
// defaults for the selected profile and any environment overrides applied.
func (c *Config) ClassifyConfig() classify.Config {
	cc := classify.DefaultConfig()
	cc.Profile = classify.Profile(c.RiskProfile)
	cc.MinMarketCap = c.MinMarketCap
	cc.MaxMarketCap = c.MaxMarketCap
	cc.MinVolume1H = c.MinVolume1H
	cc.MinVolumeGrowth = c.MinVolumeGrowthPct
	cc.MinTokenAge = time.Duration(c.MinTokenAgeHours) * time.Hour
	if c.ScoreThresholdOverride > 0 {
		cc.ScoreThresholds[cc.Profile] = c.ScoreThresholdOverride
	}
	return cc
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func parseCSV(s string) []string {
	var result []string
	for _, item := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
