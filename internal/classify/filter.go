package classify

import (
	"strings"

	"github.com/wKayaa/gemfounder/internal/token"
)

// RejectReason identifies why a record was rejected by the filter.
type RejectReason string

const (
	ReasonMarketCapOutOfRange RejectReason = "MARKET_CAP_OUT_OF_RANGE"
	ReasonInsufficientVolume  RejectReason = "INSUFFICIENT_VOLUME"
	ReasonInsufficientGrowth  RejectReason = "INSUFFICIENT_GROWTH"
	ReasonSuspiciousName      RejectReason = "SUSPICIOUS_NAME"
)

// Filter is the cheap admission gate applied before any scoring. It is a
// pure function of the record and the configuration.
type Filter struct {
	cfg *Config
}

// NewFilter creates a filter over the given configuration.
func NewFilter(cfg *Config) *Filter {
	return &Filter{cfg: cfg}
}

// Check returns ("", true) when the record passes, or the reject reason and
// false otherwise. Bounds on market cap are inclusive.
func (f *Filter) Check(rec *token.Record) (RejectReason, bool) {
	if rec.MarketCap < f.cfg.MinMarketCap || rec.MarketCap > f.cfg.MaxMarketCap {
		return ReasonMarketCapOutOfRange, false
	}

	if rec.Volume1H < f.cfg.MinVolume1H {
		return ReasonInsufficientVolume, false
	}

	if !f.hasGrowth(rec) {
		return ReasonInsufficientGrowth, false
	}

	if pattern, _ := matchSuspiciousName(rec, f.cfg); pattern != "" {
		return ReasonSuspiciousName, false
	}

	return "", true
}

// hasGrowth checks short-term momentum. When no 1h data exists the 24h change
// is accepted at half the threshold, since the longer window dilutes a spike.
func (f *Filter) hasGrowth(rec *token.Record) bool {
	if rec.PriceChange1H != 0 {
		return rec.PriceChange1H >= f.cfg.MinVolumeGrowth
	}
	return rec.PriceChange24H >= f.cfg.MinVolumeGrowth/2
}

// matchSuspiciousName reports the first configured pattern found in the
// token's name or symbol, and whether it came from the severe list.
func matchSuspiciousName(rec *token.Record, cfg *Config) (string, bool) {
	name := strings.ToLower(rec.Name)
	symbol := strings.ToLower(rec.Symbol)

	for _, p := range cfg.SevereNamePatterns {
		if strings.Contains(name, p) || strings.Contains(symbol, p) {
			return p, true
		}
	}
	for _, p := range cfg.SuspiciousNamePatterns {
		if strings.Contains(name, p) || strings.Contains(symbol, p) {
			return p, false
		}
	}
	return "", false
}
