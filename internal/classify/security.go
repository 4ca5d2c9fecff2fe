package classify

import (
	"fmt"
	"time"

	"github.com/wKayaa/gemfounder/internal/token"
)

// RiskLevel is the categorical rug-pull risk, ordered from safest to worst.
type RiskLevel string

const (
	RiskSafe     RiskLevel = "SAFE"
	RiskCaution  RiskLevel = "CAUTION"
	RiskHigh     RiskLevel = "HIGH_RISK"
	RiskVeryHigh RiskLevel = "VERY_HIGH_RISK"
	RiskAvoid    RiskLevel = "AVOID"
)

// riskLevelFor maps a security score to its risk level via fixed thresholds.
func riskLevelFor(score float64) RiskLevel {
	switch {
	case score >= 80:
		return RiskSafe
	case score >= 60:
		return RiskCaution
	case score >= 40:
		return RiskHigh
	case score >= 20:
		return RiskVeryHigh
	default:
		return RiskAvoid
	}
}

// Assessment is the security analyzer's output for one record.
type Assessment struct {
	SecurityScore     float64
	RiskLevel         RiskLevel
	LegitimacyFactors []string
	WarningFlags      []string
}

const securityBaseline = 50.0

// securityRule is one named adjustment in the additive point model. A fired
// rule contributes its points and a human-readable message; positive points
// land in LegitimacyFactors, negative in WarningFlags.
type securityRule struct {
	name string
	eval func(rec *token.Record, cfg *Config, now time.Time) (points float64, msg string, fired bool)
}

// securityRules is evaluated in this fixed order, so reported factors and
// flags come out in a stable, documented sequence.
var securityRules = []securityRule{
	{"contract_verified", func(rec *token.Record, _ *Config, _ time.Time) (float64, string, bool) {
		if rec.Verified {
			return 15, "Contract is verified", true
		}
		return -15, "Contract not verified", true
	}},
	{"liquidity_ratio", func(rec *token.Record, cfg *Config, _ time.Time) (float64, string, bool) {
		ratio, ok := rec.LiquidityRatio()
		if !ok {
			// Undefined ratio contributes neither bonus nor penalty.
			return 0, "", false
		}
		if ratio < cfg.DangerLiquidityRatio {
			return -20, fmt.Sprintf("Very low liquidity ratio: %.1f%%", ratio*100), true
		}
		if ratio >= cfg.HealthyLiquidityRatio {
			// +10 at the healthy threshold, scaling up to +20 at twice it.
			bonus := 10 + 10*clamp((ratio-cfg.HealthyLiquidityRatio)/cfg.HealthyLiquidityRatio, 0, 1)
			return bonus, fmt.Sprintf("Healthy liquidity ratio: %.1f%%", ratio*100), true
		}
		return 0, "", false
	}},
	{"audit_info", func(rec *token.Record, _ *Config, _ time.Time) (float64, string, bool) {
		if rec.AuditInfo != "" {
			return 10, "Has audit information", true
		}
		return 0, "", false
	}},
	{"website", func(rec *token.Record, _ *Config, _ time.Time) (float64, string, bool) {
		if rec.HasWebsite {
			return 5, "Has a website", true
		}
		return 0, "", false
	}},
	{"social_links", func(rec *token.Record, _ *Config, _ time.Time) (float64, string, bool) {
		if rec.HasSocials {
			return 5, "Has social links", true
		}
		return 0, "", false
	}},
	{"token_age", func(rec *token.Record, cfg *Config, now time.Time) (float64, string, bool) {
		age, known := rec.Age(now)
		if !known {
			return 0, "", false
		}
		if age < cfg.MinTokenAge {
			return -10, fmt.Sprintf("Token created %.0f hours ago", age.Hours()), true
		}
		return 5, fmt.Sprintf("Token exists for %.0f days", age.Hours()/24), true
	}},
	{"suspicious_name", func(rec *token.Record, cfg *Config, _ time.Time) (float64, string, bool) {
		pattern, severe := matchSuspiciousName(rec, cfg)
		if pattern == "" {
			return 0, "", false
		}
		if severe {
			return -25, fmt.Sprintf("Scam name pattern: contains %q", pattern), true
		}
		return -15, fmt.Sprintf("Suspicious name pattern: contains %q", pattern), true
	}},
	{"whale_concentration", func(rec *token.Record, cfg *Config, _ time.Time) (float64, string, bool) {
		if !rec.HasWhaleData {
			return 0, "", false
		}
		if rec.WhaleConcentration >= cfg.WhaleConcentrationSevere {
			return -20, fmt.Sprintf("Extreme whale concentration: %.0f%%", rec.WhaleConcentration*100), true
		}
		if rec.WhaleConcentration >= cfg.WhaleConcentrationWarn {
			return -10, fmt.Sprintf("High whale concentration: %.0f%%", rec.WhaleConcentration*100), true
		}
		return 0, "", false
	}},
}

// SecurityAnalyzer computes a rug-pull risk assessment from contract,
// liquidity and social signals. It is independent of market attractiveness.
type SecurityAnalyzer struct {
	cfg *Config
	now func() time.Time
}

// NewSecurityAnalyzer creates an analyzer over the given configuration.
func NewSecurityAnalyzer(cfg *Config) *SecurityAnalyzer {
	return &SecurityAnalyzer{cfg: cfg, now: time.Now}
}

// Analyze runs the additive point model. The score starts at a neutral
// baseline so missing data degrades the result instead of disqualifying it,
// and is clamped to [0,100] at the end.
func (a *SecurityAnalyzer) Analyze(rec *token.Record) Assessment {
	score := securityBaseline
	var legitimacy, warnings []string

	now := a.now()
	for _, rule := range securityRules {
		points, msg, fired := rule.eval(rec, a.cfg, now)
		if !fired {
			continue
		}
		score += points
		if points >= 0 {
			legitimacy = append(legitimacy, msg)
		} else {
			warnings = append(warnings, msg)
		}
	}

	score = clamp(score, 0, 100)

	return Assessment{
		SecurityScore:     score,
		RiskLevel:         riskLevelFor(score),
		LegitimacyFactors: legitimacy,
		WarningFlags:      warnings,
	}
}
