package alerts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// DiscordSender sends alerts to Discord via webhook
type DiscordSender struct {
	webhookURL string
	httpClient *http.Client
}

// NewDiscordSender creates a new Discord sender
func NewDiscordSender(webhookURL string) *DiscordSender {
	return &DiscordSender{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Send sends the alert to Discord
func (s *DiscordSender) Send(ctx context.Context, payload *AlertPayload) error {
	embed := s.buildEmbed(payload)

	webhookPayload := map[string]interface{}{
		"embeds": []interface{}{embed},
	}

	body, err := json.Marshal(webhookPayload)
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return nil
}

func (s *DiscordSender) buildEmbed(payload *AlertPayload) map[string]interface{} {
	// Determine title and color
	var title string
	var color int
	switch payload.Severity {
	case SeverityAlert:
		title = "💎 Exceptional gem found"
		color = 0xFFD700 // Gold
	case SeverityWarn:
		title = "⚠️ Gem found (elevated risk)"
		color = 0xFFA500 // Orange
	default:
		title = "💎 Gem found"
		color = 0x00C853 // Green
	}

	// Build description
	description := fmt.Sprintf("**%s** (%s) on **%s** via %s\nScore **%.1f/100** · Security **%.1f/100** (%s)",
		payload.Name,
		payload.Symbol,
		payload.Chain,
		payload.DEX,
		payload.CompositeScore,
		payload.SecurityScore,
		payload.RiskLevel,
	)

	// Build fields
	fields := []map[string]interface{}{
		{
			"name":   "Contract",
			"value":  fmt.Sprintf("`%s`", payload.ContractShort),
			"inline": true,
		},
		{
			"name":   "Price",
			"value":  fmt.Sprintf("$%.8f", payload.PriceUSD),
			"inline": true,
		},
		{
			"name":   "Market Cap",
			"value":  fmt.Sprintf("$%.0f", payload.MarketCap),
			"inline": true,
		},
		{
			"name":   "Liquidity",
			"value":  fmt.Sprintf("$%.0f", payload.LiquidityUSD),
			"inline": true,
		},
		{
			"name":   "Composite Score",
			"value":  fmt.Sprintf("**%.1f/100**", payload.CompositeScore),
			"inline": true,
		},
		{
			"name":   "Profile",
			"value":  string(payload.RiskProfile),
			"inline": true,
		},
		{
			"name":   "📊 Score Breakdown",
			"value":  s.formatScoreBreakdown(payload),
			"inline": false,
		},
	}

	if len(payload.LegitimacyFactors) > 0 {
		fields = append(fields, map[string]interface{}{
			"name":   "✅ Legitimacy",
			"value":  truncate(joinParts(payload.LegitimacyFactors), 1000),
			"inline": false,
		})
	}
	if len(payload.WarningFlags) > 0 {
		fields = append(fields, map[string]interface{}{
			"name":   "🚩 Warnings",
			"value":  truncate(joinParts(payload.WarningFlags), 1000),
			"inline": false,
		})
	}

	// Footer
	footer := map[string]interface{}{
		"text": fmt.Sprintf("Gem Founder • %s • %s", payload.Environment, payload.Timestamp.UTC().Format("2006-01-02 15:04:05 UTC")),
	}

	embed := map[string]interface{}{
		"title":       title,
		"url":         payload.PairURL,
		"description": description,
		"color":       color,
		"fields":      fields,
		"footer":      footer,
		"timestamp":   payload.Timestamp.Format(time.RFC3339),
	}

	return embed
}

func (s *DiscordSender) formatScoreBreakdown(payload *AlertPayload) string {
	b := payload.Scores
	parts := []string{
		fmt.Sprintf("Market Cap: **%.0f**", b.MarketCap),
		fmt.Sprintf("Volume Growth: **%.0f**", b.VolumeGrowth),
		fmt.Sprintf("Liquidity: **%.0f**", b.LiquidityLock),
		fmt.Sprintf("Contract Security: **%.0f**", b.ContractSecurity),
		fmt.Sprintf("Whale Activity: **%.0f**", b.WhaleActivity),
		fmt.Sprintf("Social Signals: **%.0f**", b.SocialSignals),
	}
	return truncate(joinParts(parts), 1000)
}

func joinParts(parts []string) string {
	result := ""
	for i, p := range parts {
		if i > 0 {
			result += "\n"
		}
		result += p
	}
	return result
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
