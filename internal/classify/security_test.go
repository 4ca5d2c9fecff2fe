package classify

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/wKayaa/gemfounder/internal/token"
)

func newTestAnalyzer(cfg *Config, now time.Time) *SecurityAnalyzer {
	a := NewSecurityAnalyzer(cfg)
	a.now = func() time.Time { return now }
	return a
}

func TestSecurityScorePointModel(t *testing.T) {
	cfg := DefaultConfig()
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	a := newTestAnalyzer(&cfg, now)

	tests := []struct {
		name        string
		mutate      func(r *token.Record)
		wantScore   float64
		wantLevel   RiskLevel
		description string
	}{
		{
			name: "verified only",
			mutate: func(r *token.Record) {
				r.Verified = true
				r.LiquidityUSD = 20_000 // ratio 8.2%, between danger and healthy
			},
			wantScore:   65,
			wantLevel:   RiskCaution,
			description: "50 baseline + 15 verified, neutral ratio band",
		},
		{
			name: "unverified only",
			mutate: func(r *token.Record) {
				r.Verified = false
				r.LiquidityUSD = 20_000
			},
			wantScore:   35,
			wantLevel:   RiskVeryHigh,
			description: "50 - 15 unverified",
		},
		{
			name: "healthy ratio scales bonus",
			mutate: func(r *token.Record) {
				r.Verified = true
				r.MarketCap = 200_000
				r.LiquidityUSD = 60_000 // ratio 30% = 2x healthy, max bonus
			},
			wantScore:   85,
			wantLevel:   RiskSafe,
			description: "50 + 15 + 20 capped liquidity bonus",
		},
		{
			name: "danger ratio penalized",
			mutate: func(r *token.Record) {
				r.Verified = true
				r.MarketCap = 200_000
				r.LiquidityUSD = 4_000 // ratio 2%
			},
			wantScore:   45,
			wantLevel:   RiskHigh,
			description: "50 + 15 - 20 danger liquidity",
		},
		{
			name: "zero market cap skips ratio entirely",
			mutate: func(r *token.Record) {
				r.Verified = true
				r.MarketCap = 0
				r.LiquidityUSD = 45_000
			},
			wantScore:   65,
			wantLevel:   RiskCaution,
			description: "undefined ratio contributes neither bonus nor penalty",
		},
		{
			name: "audit website and socials stack",
			mutate: func(r *token.Record) {
				r.Verified = true
				r.LiquidityUSD = 20_000
				r.AuditInfo = "CertiK"
				r.HasWebsite = true
				r.HasSocials = true
			},
			wantScore:   85,
			wantLevel:   RiskSafe,
			description: "65 + 10 audit + 5 website + 5 socials",
		},
		{
			name: "young token penalized",
			mutate: func(r *token.Record) {
				r.Verified = true
				r.LiquidityUSD = 20_000
				r.CreatedAt = now.Add(-2 * time.Hour)
			},
			wantScore:   55,
			wantLevel:   RiskHigh,
			description: "65 - 10 younger than minimum age",
		},
		{
			name: "mature token rewarded",
			mutate: func(r *token.Record) {
				r.Verified = true
				r.LiquidityUSD = 20_000
				r.CreatedAt = now.Add(-45 * 24 * time.Hour)
			},
			wantScore:   70,
			wantLevel:   RiskCaution,
			description: "65 + 5 age above minimum",
		},
		{
			name: "mild suspicious name",
			mutate: func(r *token.Record) {
				r.Verified = true
				r.LiquidityUSD = 20_000
				r.Name = "MoonRocket"
			},
			wantScore:   50,
			wantLevel:   RiskHigh,
			description: "65 - 15 mild pattern",
		},
		{
			name: "severe scam name",
			mutate: func(r *token.Record) {
				r.Verified = true
				r.LiquidityUSD = 20_000
				r.Symbol = "RUGME"
			},
			wantScore:   40,
			wantLevel:   RiskHigh,
			description: "65 - 25 severe pattern",
		},
		{
			name: "whale concentration warn band",
			mutate: func(r *token.Record) {
				r.Verified = true
				r.LiquidityUSD = 20_000
				r.HasWhaleData = true
				r.WhaleConcentration = 0.6
			},
			wantScore:   55,
			wantLevel:   RiskHigh,
			description: "65 - 10 warn-level concentration",
		},
		{
			name: "whale concentration severe band",
			mutate: func(r *token.Record) {
				r.Verified = true
				r.LiquidityUSD = 20_000
				r.HasWhaleData = true
				r.WhaleConcentration = 0.95
			},
			wantScore:   45,
			wantLevel:   RiskHigh,
			description: "65 - 20 severe concentration",
		},
		{
			name: "everything bad clamps at zero",
			mutate: func(r *token.Record) {
				r.Verified = false
				r.MarketCap = 200_000
				r.LiquidityUSD = 2_000
				r.Name = "SafeMoon Rug"
				r.HasWhaleData = true
				r.WhaleConcentration = 0.95
				r.CreatedAt = now.Add(-1 * time.Hour)
			},
			wantScore:   0,
			wantLevel:   RiskAvoid,
			description: "50 - 15 - 20 - 25 - 20 - 10 clamped to 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := testRecord()
			rec.Verified = false
			tt.mutate(rec)

			got := a.Analyze(rec)
			if math.Abs(got.SecurityScore-tt.wantScore) > 0.01 {
				t.Errorf("score = %.2f, want %.2f\nDescription: %s", got.SecurityScore, tt.wantScore, tt.description)
			}
			if got.RiskLevel != tt.wantLevel {
				t.Errorf("risk level = %s, want %s", got.RiskLevel, tt.wantLevel)
			}
		})
	}
}

func TestSecurityScoreAlwaysInRange(t *testing.T) {
	cfg := DefaultConfig()
	a := newTestAnalyzer(&cfg, time.Now())

	records := []*token.Record{
		testRecord(),
		{Chain: "eth", ContractAddress: "0xa", Symbol: "X", Name: "X", PriceUSD: 1},
		func() *token.Record {
			r := testRecord()
			r.Verified = true
			r.AuditInfo = "audited"
			r.HasWebsite = true
			r.HasSocials = true
			r.MarketCap = 100_000
			r.LiquidityUSD = 90_000
			r.CreatedAt = time.Now().Add(-365 * 24 * time.Hour)
			return r
		}(),
	}

	for _, rec := range records {
		got := a.Analyze(rec)
		if got.SecurityScore < 0 || got.SecurityScore > 100 {
			t.Errorf("security score %.2f out of [0,100] for %s", got.SecurityScore, rec.Symbol)
		}
	}
}

func TestRiskLevelThresholds(t *testing.T) {
	tests := []struct {
		score float64
		want  RiskLevel
	}{
		{100, RiskSafe},
		{80, RiskSafe},
		{79.99, RiskCaution},
		{60, RiskCaution},
		{59.99, RiskHigh},
		{40, RiskHigh},
		{39.99, RiskVeryHigh},
		{20, RiskVeryHigh},
		{19.99, RiskAvoid},
		{0, RiskAvoid},
	}

	for _, tt := range tests {
		if got := riskLevelFor(tt.score); got != tt.want {
			t.Errorf("riskLevelFor(%.2f) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestSecurityFindingsPreserveEvaluationOrder(t *testing.T) {
	cfg := DefaultConfig()
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	a := newTestAnalyzer(&cfg, now)

	rec := testRecord()
	rec.Verified = true
	rec.AuditInfo = "Hacken"
	rec.HasWebsite = true
	rec.HasSocials = true
	rec.CreatedAt = now.Add(-60 * 24 * time.Hour)

	got := a.Analyze(rec)
	want := []string{"verified", "liquidity ratio", "audit", "website", "social", "60 days"}
	if len(got.LegitimacyFactors) != len(want) {
		t.Fatalf("got %d legitimacy factors, want %d: %v", len(got.LegitimacyFactors), len(want), got.LegitimacyFactors)
	}
	for i, substr := range want {
		if !strings.Contains(strings.ToLower(got.LegitimacyFactors[i]), substr) {
			t.Errorf("factor[%d] = %q, want it to mention %q", i, got.LegitimacyFactors[i], substr)
		}
	}
	if len(got.WarningFlags) != 0 {
		t.Errorf("unexpected warning flags: %v", got.WarningFlags)
	}
}

func TestMissingOptionalFieldsNeverError(t *testing.T) {
	cfg := DefaultConfig()
	a := newTestAnalyzer(&cfg, time.Now())

	rec := testRecord()
	rec.AuditInfo = ""
	rec.HasWebsite = false
	rec.HasSocials = false
	rec.HolderCount = 0
	rec.CreatedAt = time.Time{}
	rec.HasWhaleData = false

	got := a.Analyze(rec)
	if got.SecurityScore < 0 || got.SecurityScore > 100 {
		t.Errorf("score %.2f out of range with optional fields absent", got.SecurityScore)
	}
}
