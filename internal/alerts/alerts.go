package alerts

import (
	"context"
	"time"

	"github.com/wKayaa/gemfounder/internal/classify"
)

// Severity represents alert severity
type Severity string

const (
	SeverityInfo  Severity = "INFO"
	SeverityWarn  Severity = "WARN"
	SeverityAlert Severity = "ALERT"
)

// AlertPayload contains all information for a gem alert
type AlertPayload struct {
	Severity          Severity
	Chain             string
	Symbol            string
	Name              string
	ContractAddress   string
	ContractShort     string // Shortened for display
	DEX               string
	PairURL           string
	PriceUSD          float64
	MarketCap         float64
	LiquidityUSD      float64
	CompositeScore    float64
	SecurityScore     float64
	RiskLevel         classify.RiskLevel
	RiskProfile       classify.Profile
	Scores            classify.Breakdown
	LegitimacyFactors []string
	WarningFlags      []string
	Timestamp         time.Time
	Environment       string
}

// Sender defines the interface for alert senders
type Sender interface {
	Send(ctx context.Context, payload *AlertPayload) error
}

// NewPayload builds an alert payload from a NOTIFY verdict
func NewPayload(v *classify.Verdict, environment string, now time.Time) *AlertPayload {
	rec := v.Record
	return &AlertPayload{
		Severity:          severityFor(v),
		Chain:             rec.Chain,
		Symbol:            rec.Symbol,
		Name:              rec.Name,
		ContractAddress:   rec.ContractAddress,
		ContractShort:     shortAddress(rec.ContractAddress),
		DEX:               rec.DEX,
		PairURL:           rec.URL,
		PriceUSD:          rec.PriceUSD,
		MarketCap:         rec.MarketCap,
		LiquidityUSD:      rec.LiquidityUSD,
		CompositeScore:    v.Scores.CompositeScore,
		SecurityScore:     v.Security.SecurityScore,
		RiskLevel:         v.Security.RiskLevel,
		RiskProfile:       v.Scores.RiskProfile,
		Scores:            v.Scores,
		LegitimacyFactors: v.Security.LegitimacyFactors,
		WarningFlags:      v.Security.WarningFlags,
		Timestamp:         now,
		Environment:       environment,
	}
}

// severityFor grades a notification: top-decile composites are ALERT, gems
// that still carry a CAUTION risk level are WARN, the rest INFO.
func severityFor(v *classify.Verdict) Severity {
	if v.Scores.CompositeScore >= 90 {
		return SeverityAlert
	}
	if v.Security.RiskLevel != classify.RiskSafe {
		return SeverityWarn
	}
	return SeverityInfo
}

func shortAddress(addr string) string {
	if len(addr) <= 12 {
		return addr
	}
	return addr[:6] + "…" + addr[len(addr)-4:]
}
