package classify

import (
	"github.com/wKayaa/gemfounder/internal/token"
)

// Breakdown holds the six sub-scores and the weighted composite. Every
// sub-score is clipped to [0,100] before weighting, so the composite stays in
// [0,100] without relying on weight-sum discipline alone.
type Breakdown struct {
	MarketCap        float64
	VolumeGrowth     float64
	LiquidityLock    float64
	ContractSecurity float64
	WhaleActivity    float64
	SocialSignals    float64

	CompositeScore float64
	RiskProfile    Profile
}

const whaleNeutralScore = 50

// ScoringEngine computes the composite opportunity score used for the
// notify/suppress decision.
type ScoringEngine struct {
	cfg *Config
}

// NewScoringEngine creates an engine over the given configuration.
func NewScoringEngine(cfg *Config) *ScoringEngine {
	return &ScoringEngine{cfg: cfg}
}

// Score produces the breakdown for one record. The security assessment feeds
// the contract_security sub-score unchanged; its weight is applied at the
// composite stage.
func (e *ScoringEngine) Score(rec *token.Record, sec Assessment) Breakdown {
	b := Breakdown{
		MarketCap:        e.scoreMarketCap(rec),
		VolumeGrowth:     e.scoreVolumeGrowth(rec),
		LiquidityLock:    e.scoreLiquidityLock(rec),
		ContractSecurity: clamp(sec.SecurityScore, 0, 100),
		WhaleActivity:    e.scoreWhaleActivity(rec),
		SocialSignals:    e.scoreSocialSignals(rec),
		RiskProfile:      e.cfg.Profile,
	}

	w := e.cfg.ActiveWeights()
	b.CompositeScore = clamp(
		w.MarketCap*b.MarketCap+
			w.VolumeGrowth*b.VolumeGrowth+
			w.LiquidityLock*b.LiquidityLock+
			w.ContractSecurity*b.ContractSecurity+
			w.WhaleActivity*b.WhaleActivity+
			w.SocialSignals*b.SocialSignals,
		0, 100)

	return b
}

// scoreMarketCap peaks at the configured sweet spot and decays linearly to 0
// at the admitted range boundaries. Values outside the range never reach this
// stage; they are already filtered.
func (e *ScoringEngine) scoreMarketCap(rec *token.Record) float64 {
	min, max := e.cfg.MinMarketCap, e.cfg.MaxMarketCap
	sweet := e.cfg.SweetSpot()
	mc := rec.MarketCap

	switch {
	case mc <= min || mc >= max:
		// Exact endpoints pass the filter but sit at the bottom of the decay.
		return 0
	case mc < sweet:
		return clamp(100*(mc-min)/(sweet-min), 0, 100)
	default:
		return clamp(100*(max-mc)/(max-sweet), 0, 100)
	}
}

// scoreVolumeGrowth blends the 1h and 24h windows, rewarding short-term
// momentum while damping noise. Each window saturates at HighGrowthPct.
func (e *ScoringEngine) scoreVolumeGrowth(rec *token.Record) float64 {
	sat := func(pct float64) float64 {
		if pct <= 0 {
			return 0
		}
		return clamp(pct/e.cfg.HighGrowthPct*100, 0, 100)
	}
	w1 := e.cfg.GrowthBlend1H
	return clamp(w1*sat(rec.PriceChange1H)+(1-w1)*sat(rec.PriceChange24H), 0, 100)
}

// scoreLiquidityLock derives a score from the liquidity ratio and the lock
// signal. An unlocked pool or a ratio below the danger threshold caps the
// sub-score low regardless of other signals; an unknown lock caps it mid-high
// since DEX feeds rarely carry lock data.
func (e *ScoringEngine) scoreLiquidityLock(rec *token.Record) float64 {
	ratio, ok := rec.LiquidityRatio()
	if !ok || ratio <= 0 {
		return 0
	}

	score := clamp(ratio/e.cfg.HealthyLiquidityRatio*100, 0, 100)

	if ratio < e.cfg.DangerLiquidityRatio {
		return clamp(score, 0, 20)
	}
	switch rec.Lock {
	case token.LockLocked:
		return score
	case token.LockUnlocked:
		return clamp(score, 0, 40)
	default:
		return clamp(score, 0, 75)
	}
}

// scoreWhaleActivity is the inverse of large-trade concentration. Absence of
// data yields a neutral mid-range value.
func (e *ScoringEngine) scoreWhaleActivity(rec *token.Record) float64 {
	if !rec.HasWhaleData {
		return whaleNeutralScore
	}
	return clamp(100*(1-rec.WhaleConcentration), 0, 100)
}

// scoreSocialSignals is a step function over presence signals, capped at 100.
func (e *ScoringEngine) scoreSocialSignals(rec *token.Record) float64 {
	score := 0.0
	if rec.HasWebsite {
		score += 40
	}
	if rec.HasSocials {
		score += 40
	}
	if rec.HolderCount >= e.cfg.CommunityHolderMin {
		score += 20
	}
	return clamp(score, 0, 100)
}
