package alerts

import (
	"context"

	"github.com/sirupsen/logrus"
)

// LogSender sends alerts to the logger
type LogSender struct {
	log *logrus.Logger
}

// NewLogSender creates a new log sender
func NewLogSender(log *logrus.Logger) *LogSender {
	return &LogSender{log: log}
}

// Send logs the alert
func (s *LogSender) Send(ctx context.Context, payload *AlertPayload) error {
	s.log.WithFields(logrus.Fields{
		"severity":        payload.Severity,
		"symbol":          payload.Symbol,
		"chain":           payload.Chain,
		"contract":        payload.ContractShort,
		"price_usd":       payload.PriceUSD,
		"market_cap":      payload.MarketCap,
		"composite_score": payload.CompositeScore,
		"security_score":  payload.SecurityScore,
		"risk_level":      payload.RiskLevel,
		"risk_profile":    payload.RiskProfile,
	}).Info("Gem alert generated")
	return nil
}
