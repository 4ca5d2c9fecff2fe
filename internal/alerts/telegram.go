package alerts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// markdownV2Specials are the characters Telegram requires escaped outside of
// formatting entities.
const markdownV2Specials = "_*[]()~`>#+-=|{}.!"

// TelegramSender sends alerts via the Telegram Bot API
type TelegramSender struct {
	botToken   string
	chatID     string
	apiBaseURL string
	httpClient *http.Client
}

// NewTelegramSender creates a new Telegram sender
func NewTelegramSender(botToken, chatID string) *TelegramSender {
	return &TelegramSender{
		botToken:   botToken,
		chatID:     chatID,
		apiBaseURL: "https://api.telegram.org",
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Send sends the alert as a MarkdownV2 message
func (s *TelegramSender) Send(ctx context.Context, payload *AlertPayload) error {
	body, err := json.Marshal(map[string]interface{}{
		"chat_id":                  s.chatID,
		"text":                     s.buildMessage(payload),
		"parse_mode":               "MarkdownV2",
		"disable_web_page_preview": true,
	})
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	u := fmt.Sprintf("%s/bot%s/sendMessage", s.apiBaseURL, s.botToken)
	req, err := http.NewRequestWithContext(ctx, "POST", u, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(respBody))
	}

	return nil
}

func (s *TelegramSender) buildMessage(payload *AlertPayload) string {
	var header string
	switch payload.Severity {
	case SeverityAlert:
		header = "💎 *EXCEPTIONAL GEM FOUND*"
	case SeverityWarn:
		header = "⚠️ *GEM FOUND \\(ELEVATED RISK\\)*"
	default:
		header = "💎 *GEM FOUND*"
	}

	b := payload.Scores
	lines := []string{
		header,
		"",
		fmt.Sprintf("*%s* \\(%s\\) on %s via %s",
			EscapeMarkdownV2(payload.Name),
			EscapeMarkdownV2(payload.Symbol),
			EscapeMarkdownV2(payload.Chain),
			EscapeMarkdownV2(payload.DEX)),
		fmt.Sprintf("Contract: `%s`", payload.ContractAddress),
		"",
		fmt.Sprintf("💰 Price: %s", EscapeMarkdownV2(fmt.Sprintf("$%.8f", payload.PriceUSD))),
		fmt.Sprintf("📊 Market Cap: %s", EscapeMarkdownV2(fmt.Sprintf("$%.0f", payload.MarketCap))),
		fmt.Sprintf("💧 Liquidity: %s", EscapeMarkdownV2(fmt.Sprintf("$%.0f", payload.LiquidityUSD))),
		"",
		fmt.Sprintf("🏆 Composite Score: *%s/100* \\(%s\\)",
			EscapeMarkdownV2(fmt.Sprintf("%.1f", payload.CompositeScore)),
			EscapeMarkdownV2(string(payload.RiskProfile))),
		fmt.Sprintf("🛡 Security: %s/100 · %s",
			EscapeMarkdownV2(fmt.Sprintf("%.1f", payload.SecurityScore)),
			EscapeMarkdownV2(string(payload.RiskLevel))),
		"",
		EscapeMarkdownV2(fmt.Sprintf("MC %.0f · Vol %.0f · Liq %.0f · Sec %.0f · Whale %.0f · Social %.0f",
			b.MarketCap, b.VolumeGrowth, b.LiquidityLock, b.ContractSecurity, b.WhaleActivity, b.SocialSignals)),
	}

	for _, flag := range payload.WarningFlags {
		lines = append(lines, "🚩 "+EscapeMarkdownV2(flag))
	}

	if payload.PairURL != "" {
		lines = append(lines, "", fmt.Sprintf("[Chart](%s)", payload.PairURL))
	}

	return strings.Join(lines, "\n")
}

// EscapeMarkdownV2 escapes the characters Telegram's MarkdownV2 parser treats
// as syntax. Unescaped specials make the API reject the whole message.
func EscapeMarkdownV2(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if strings.ContainsRune(markdownV2Specials, r) {
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
