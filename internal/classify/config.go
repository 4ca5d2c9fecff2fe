package classify

import (
	"fmt"
	"math"
	"time"
)

// Profile identifies a built-in risk profile.
type Profile string

const (
	ProfileConservative Profile = "conservative"
	ProfileBalanced     Profile = "balanced"
	ProfileAggressive   Profile = "aggressive"
)

// Weights holds the six scoring weights for one risk profile. They must sum
// to 1.0.
type Weights struct {
	MarketCap        float64
	VolumeGrowth     float64
	LiquidityLock    float64
	ContractSecurity float64
	WhaleActivity    float64
	SocialSignals    float64
}

func (w Weights) sum() float64 {
	return w.MarketCap + w.VolumeGrowth + w.LiquidityLock +
		w.ContractSecurity + w.WhaleActivity + w.SocialSignals
}

// Config holds all thresholds and weights consumed by the classification
// pipeline. It is treated as immutable once validated.
type Config struct {
	// Filter thresholds
	MinMarketCap    float64
	MaxMarketCap    float64
	MinVolume1H     float64
	MinVolumeGrowth float64 // percent

	// Name screening. Severe patterns score a larger penalty than mild ones.
	SuspiciousNamePatterns []string
	SevereNamePatterns     []string

	// Security thresholds
	HealthyLiquidityRatio    float64
	DangerLiquidityRatio     float64
	WhaleConcentrationWarn   float64
	WhaleConcentrationSevere float64
	MinTokenAge              time.Duration

	// Scoring
	MarketCapSweetSpot float64 // 0 means midpoint of [MinMarketCap, MaxMarketCap]
	HighGrowthPct      float64 // growth at which volume_growth saturates
	GrowthBlend1H      float64 // weight on the 1h window, remainder on 24h
	CommunityHolderMin int

	// Active profile
	Profile         Profile
	ScoreThresholds map[Profile]float64
	ScoreWeights    map[Profile]Weights
}

// DefaultConfig returns the built-in configuration with all three risk
// profiles populated.
func DefaultConfig() Config {
	return Config{
		MinMarketCap:    100_000,
		MaxMarketCap:    300_000,
		MinVolume1H:     10_000,
		MinVolumeGrowth: 30,

		SuspiciousNamePatterns: []string{
			"safemoon", "babydoge", "elonmusk", "dogelon", "shibainu",
			"floki", "moon", "safe", "baby", "2.0", "v2",
		},
		SevereNamePatterns: []string{"scam", "rug", "fake", "honeypot"},

		HealthyLiquidityRatio:    0.15,
		DangerLiquidityRatio:     0.05,
		WhaleConcentrationWarn:   0.50,
		WhaleConcentrationSevere: 0.80,
		MinTokenAge:              24 * time.Hour,

		HighGrowthPct:      50,
		GrowthBlend1H:      0.6,
		CommunityHolderMin: 250,

		Profile: ProfileBalanced,
		ScoreThresholds: map[Profile]float64{
			ProfileConservative: 85,
			ProfileBalanced:     75,
			ProfileAggressive:   60,
		},
		ScoreWeights: map[Profile]Weights{
			ProfileConservative: {
				MarketCap:        0.15,
				VolumeGrowth:     0.15,
				LiquidityLock:    0.25,
				ContractSecurity: 0.25,
				WhaleActivity:    0.10,
				SocialSignals:    0.10,
			},
			ProfileBalanced: {
				MarketCap:        0.20,
				VolumeGrowth:     0.25,
				LiquidityLock:    0.20,
				ContractSecurity: 0.15,
				WhaleActivity:    0.10,
				SocialSignals:    0.10,
			},
			ProfileAggressive: {
				MarketCap:        0.20,
				VolumeGrowth:     0.35,
				LiquidityLock:    0.15,
				ContractSecurity: 0.10,
				WhaleActivity:    0.10,
				SocialSignals:    0.10,
			},
		},
	}
}

// Validate checks the configuration for structural errors. Broken weight
// tables and inverted ranges are rejected here, never at classification time.
func (c *Config) Validate() error {
	if c.MinMarketCap < 0 || c.MaxMarketCap <= 0 {
		return fmt.Errorf("market cap bounds must be positive")
	}
	if c.MinMarketCap > c.MaxMarketCap {
		return fmt.Errorf("MIN_MARKET_CAP (%.0f) exceeds MAX_MARKET_CAP (%.0f)", c.MinMarketCap, c.MaxMarketCap)
	}
	if c.MinVolume1H < 0 {
		return fmt.Errorf("MIN_VOLUME_1H must be non-negative")
	}
	if c.DangerLiquidityRatio > c.HealthyLiquidityRatio {
		return fmt.Errorf("danger liquidity ratio exceeds healthy ratio")
	}
	if c.GrowthBlend1H < 0 || c.GrowthBlend1H > 1 {
		return fmt.Errorf("growth blend weight must be in [0,1]")
	}
	if _, ok := c.ScoreWeights[c.Profile]; !ok {
		return fmt.Errorf("unknown risk profile: %s", c.Profile)
	}
	if _, ok := c.ScoreThresholds[c.Profile]; !ok {
		return fmt.Errorf("no score threshold for profile: %s", c.Profile)
	}
	for profile, w := range c.ScoreWeights {
		if math.Abs(w.sum()-1.0) > 1e-6 {
			return fmt.Errorf("score weights for profile %s sum to %.6f, want 1.0", profile, w.sum())
		}
	}
	return nil
}

// Threshold returns the notify threshold for the active profile.
func (c *Config) Threshold() float64 {
	return c.ScoreThresholds[c.Profile]
}

// ActiveWeights returns the weight table for the active profile.
func (c *Config) ActiveWeights() Weights {
	return c.ScoreWeights[c.Profile]
}

// SweetSpot returns the market cap at which the market_cap sub-score peaks.
func (c *Config) SweetSpot() float64 {
	if c.MarketCapSweetSpot > 0 {
		return c.MarketCapSweetSpot
	}
	return (c.MinMarketCap + c.MaxMarketCap) / 2
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
