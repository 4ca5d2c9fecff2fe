package classify

import (
	"math"
	"testing"

	"github.com/wKayaa/gemfounder/internal/token"
)

func TestScoreMarketCap(t *testing.T) {
	cfg := DefaultConfig() // range 100k-300k, sweet spot 200k
	e := NewScoringEngine(&cfg)

	tests := []struct {
		name      string
		marketCap float64
		want      float64
	}{
		{"at sweet spot", 200_000, 100},
		{"at minimum boundary", 100_000, 0},
		{"at maximum boundary", 300_000, 0},
		{"halfway up", 150_000, 50},
		{"halfway down", 250_000, 50},
		{"example token", 245_000, 55},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := testRecord()
			rec.MarketCap = tt.marketCap
			got := e.scoreMarketCap(rec)
			if math.Abs(got-tt.want) > 0.01 {
				t.Errorf("scoreMarketCap(%.0f) = %.2f, want %.2f", tt.marketCap, got, tt.want)
			}
		})
	}
}

func TestScoreVolumeGrowthBlendAndSaturation(t *testing.T) {
	cfg := DefaultConfig() // saturation at 50%, blend 60/40
	e := NewScoringEngine(&cfg)

	tests := []struct {
		name   string
		pc1h   float64
		pc24h  float64
		want   float64
	}{
		{"no growth", 0, 0, 0},
		{"negative growth scores zero", -30, -50, 0},
		{"1h saturated alone", 50, 0, 60},
		{"24h saturated alone", 0, 50, 40},
		{"both saturated", 200, 400, 100},
		{"example token", 45.6, 123.4, 94.72},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := testRecord()
			rec.PriceChange1H = tt.pc1h
			rec.PriceChange24H = tt.pc24h
			got := e.scoreVolumeGrowth(rec)
			if math.Abs(got-tt.want) > 0.01 {
				t.Errorf("scoreVolumeGrowth(%.1f, %.1f) = %.2f, want %.2f", tt.pc1h, tt.pc24h, got, tt.want)
			}
		})
	}
}

func TestScoreVolumeGrowthIsMonotonic(t *testing.T) {
	cfg := DefaultConfig()
	e := NewScoringEngine(&cfg)

	prev := -1.0
	for pct := -20.0; pct <= 200; pct += 2.5 {
		rec := testRecord()
		rec.PriceChange1H = pct
		got := e.scoreVolumeGrowth(rec)
		if got < prev {
			t.Fatalf("sub-score decreased from %.2f to %.2f as 1h growth rose to %.1f%%", prev, got, pct)
		}
		prev = got
	}

	prev = -1.0
	for pct := -20.0; pct <= 200; pct += 2.5 {
		rec := testRecord()
		rec.PriceChange24H = pct
		got := e.scoreVolumeGrowth(rec)
		if got < prev {
			t.Fatalf("sub-score decreased from %.2f to %.2f as 24h growth rose to %.1f%%", prev, got, pct)
		}
		prev = got
	}
}

func TestScoreLiquidityLockCaps(t *testing.T) {
	cfg := DefaultConfig()
	e := NewScoringEngine(&cfg)

	tests := []struct {
		name      string
		liquidity float64
		marketCap float64
		lock      token.LockSignal
		want      float64
	}{
		{"no liquidity", 0, 200_000, token.LockUnknown, 0},
		{"zero market cap", 45_000, 0, token.LockUnknown, 0},
		{"danger ratio capped at 20", 4_000, 200_000, token.LockLocked, 13.33},
		{"healthy locked gets full ratio score", 30_000, 200_000, token.LockLocked, 100},
		{"healthy unknown lock capped at 75", 30_000, 200_000, token.LockUnknown, 75},
		{"healthy unlocked capped at 40", 30_000, 200_000, token.LockUnlocked, 40},
		{"mid ratio locked", 15_000, 200_000, token.LockLocked, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := testRecord()
			rec.LiquidityUSD = tt.liquidity
			rec.MarketCap = tt.marketCap
			rec.Lock = tt.lock
			got := e.scoreLiquidityLock(rec)
			if math.Abs(got-tt.want) > 0.01 {
				t.Errorf("scoreLiquidityLock = %.2f, want %.2f", got, tt.want)
			}
		})
	}
}

func TestScoreWhaleActivity(t *testing.T) {
	cfg := DefaultConfig()
	e := NewScoringEngine(&cfg)

	tests := []struct {
		name          string
		hasData       bool
		concentration float64
		want          float64
	}{
		{"no data is neutral", false, 0, 50},
		{"no concentration", true, 0, 100},
		{"half concentration", true, 0.5, 50},
		{"fully concentrated", true, 1.0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := testRecord()
			rec.HasWhaleData = tt.hasData
			rec.WhaleConcentration = tt.concentration
			got := e.scoreWhaleActivity(rec)
			if math.Abs(got-tt.want) > 0.01 {
				t.Errorf("scoreWhaleActivity = %.2f, want %.2f", got, tt.want)
			}
		})
	}
}

func TestScoreSocialSignalsSteps(t *testing.T) {
	cfg := DefaultConfig()
	e := NewScoringEngine(&cfg)

	tests := []struct {
		name    string
		website bool
		socials bool
		holders int
		want    float64
	}{
		{"nothing present", false, false, 0, 0},
		{"website only", true, false, 0, 40},
		{"website and socials", true, true, 0, 80},
		{"all signals", true, true, 1_000, 100},
		{"holders below community minimum", false, false, 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := testRecord()
			rec.HasWebsite = tt.website
			rec.HasSocials = tt.socials
			rec.HolderCount = tt.holders
			got := e.scoreSocialSignals(rec)
			if math.Abs(got-tt.want) > 0.01 {
				t.Errorf("scoreSocialSignals = %.2f, want %.2f", got, tt.want)
			}
		})
	}
}

func TestCompositeStaysInRange(t *testing.T) {
	for _, profile := range []Profile{ProfileConservative, ProfileBalanced, ProfileAggressive} {
		cfg := DefaultConfig()
		cfg.Profile = profile
		e := NewScoringEngine(&cfg)

		extremes := []*token.Record{
			testRecord(),
			func() *token.Record {
				r := testRecord()
				r.PriceChange1H = 100_000
				r.PriceChange24H = 100_000
				r.LiquidityUSD = 10_000_000
				r.HasWebsite = true
				r.HasSocials = true
				r.HolderCount = 1_000_000
				return r
			}(),
			func() *token.Record {
				r := testRecord()
				r.PriceChange1H = -99
				r.LiquidityUSD = 0
				r.HasWhaleData = true
				r.WhaleConcentration = 1
				return r
			}(),
		}

		for _, rec := range extremes {
			for _, secScore := range []float64{0, 50, 100} {
				b := e.Score(rec, Assessment{SecurityScore: secScore})
				subs := []float64{b.MarketCap, b.VolumeGrowth, b.LiquidityLock, b.ContractSecurity, b.WhaleActivity, b.SocialSignals, b.CompositeScore}
				for i, s := range subs {
					if s < 0 || s > 100 {
						t.Errorf("profile %s: score[%d] = %.2f out of [0,100]", profile, i, s)
					}
				}
				if b.RiskProfile != profile {
					t.Errorf("breakdown carries profile %s, want %s", b.RiskProfile, profile)
				}
			}
		}
	}
}

func TestProfileWeightsSumToOne(t *testing.T) {
	cfg := DefaultConfig()
	for profile, w := range cfg.ScoreWeights {
		if math.Abs(w.sum()-1.0) > 1e-6 {
			t.Errorf("profile %s weights sum to %.6f, want 1.0", profile, w.sum())
		}
	}
}
