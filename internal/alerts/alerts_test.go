package alerts

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/wKayaa/gemfounder/internal/classify"
	"github.com/wKayaa/gemfounder/internal/token"
)

func testVerdict() *classify.Verdict {
	return &classify.Verdict{
		Record: &token.Record{
			Chain:           "bsc",
			ContractAddress: "0x1111111111111111111111111111111111111111",
			Symbol:          "NOVA",
			Name:            "Nova Protocol",
			PriceUSD:        0.0045,
			MarketCap:       245000,
			LiquidityUSD:    45000,
			DEX:             "pancakeswap",
			URL:             "https://dexscreener.com/bsc/0x2222",
		},
		Decision: classify.DecisionNotify,
		Security: classify.Assessment{
			SecurityScore:     97.2,
			RiskLevel:         classify.RiskSafe,
			LegitimacyFactors: []string{"Contract verified"},
		},
		Scores: classify.Breakdown{
			MarketCap:        55,
			VolumeGrowth:     94.7,
			LiquidityLock:    75,
			ContractSecurity: 97.2,
			WhaleActivity:    50,
			SocialSignals:    80,
			CompositeScore:   77.3,
			RiskProfile:      classify.ProfileBalanced,
		},
	}
}

func TestNewPayload(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	p := NewPayload(testVerdict(), "production", now)

	if p.Symbol != "NOVA" || p.Chain != "bsc" {
		t.Errorf("identity wrong: %s/%s", p.Symbol, p.Chain)
	}
	if p.ContractShort != "0x1111…1111" {
		t.Errorf("short contract = %q", p.ContractShort)
	}
	if p.CompositeScore != 77.3 || p.SecurityScore != 97.2 {
		t.Errorf("scores wrong: %.1f / %.1f", p.CompositeScore, p.SecurityScore)
	}
	if p.RiskLevel != classify.RiskSafe || p.RiskProfile != classify.ProfileBalanced {
		t.Errorf("risk fields wrong: %s / %s", p.RiskLevel, p.RiskProfile)
	}
	if !p.Timestamp.Equal(now) || p.Environment != "production" {
		t.Errorf("context fields wrong: %v / %s", p.Timestamp, p.Environment)
	}
}

func TestSeverityMapping(t *testing.T) {
	tests := []struct {
		name      string
		composite float64
		risk      classify.RiskLevel
		want      Severity
	}{
		{"safe gem is info", 77, classify.RiskSafe, SeverityInfo},
		{"caution gem is warn", 77, classify.RiskCaution, SeverityWarn},
		{"top score is alert", 92, classify.RiskSafe, SeverityAlert},
		{"top score beats caution", 95, classify.RiskCaution, SeverityAlert},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := testVerdict()
			v.Scores.CompositeScore = tt.composite
			v.Security.RiskLevel = tt.risk
			if got := severityFor(v); got != tt.want {
				t.Errorf("severity = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestEscapeMarkdownV2(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"Nova 2.0!", "Nova 2\\.0\\!"},
		{"a_b*c[d]", "a\\_b\\*c\\[d\\]"},
		{"$1,234 (est)", "$1,234 \\(est\\)"},
	}

	for _, tt := range tests {
		if got := EscapeMarkdownV2(tt.in); got != tt.want {
			t.Errorf("EscapeMarkdownV2(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTelegramMessageEscapesTokenNames(t *testing.T) {
	s := NewTelegramSender("token", "chat")
	v := testVerdict()
	v.Record.Name = "Nova 2.0 (beta)"
	p := NewPayload(v, "production", time.Now())

	msg := s.buildMessage(p)
	if strings.Contains(msg, "Nova 2.0 (beta)") {
		t.Error("token name not escaped in message")
	}
	if !strings.Contains(msg, "Nova 2\\.0 \\(beta\\)") {
		t.Errorf("escaped name missing from message:\n%s", msg)
	}
	if !strings.Contains(msg, "`0x1111111111111111111111111111111111111111`") {
		t.Error("full contract address missing from message")
	}
}

func TestDiscordEmbedFields(t *testing.T) {
	s := NewDiscordSender("https://discord.example/webhook")
	v := testVerdict()
	v.Security.WarningFlags = []string{"Liquidity below danger ratio"}
	p := NewPayload(v, "production", time.Now())

	embed := s.buildEmbed(p)
	if embed["title"] != "💎 Gem found" {
		t.Errorf("title = %v", embed["title"])
	}
	if embed["url"] != "https://dexscreener.com/bsc/0x2222" {
		t.Errorf("url = %v", embed["url"])
	}

	fields, ok := embed["fields"].([]map[string]interface{})
	if !ok {
		t.Fatal("embed fields have unexpected shape")
	}
	var names []string
	for _, f := range fields {
		names = append(names, f["name"].(string))
	}
	joined := strings.Join(names, ",")
	for _, want := range []string{"Contract", "Market Cap", "Composite Score", "🚩 Warnings"} {
		if !strings.Contains(joined, want) {
			t.Errorf("embed missing field %q (have %s)", want, joined)
		}
	}
}

func TestMultiSenderAggregatesErrors(t *testing.T) {
	ok := &stubSender{}
	bad := &stubSender{err: context.DeadlineExceeded}

	multi := NewMultiSender(ok, bad)
	err := multi.Send(context.Background(), NewPayload(testVerdict(), "test", time.Now()))
	if err == nil {
		t.Fatal("multi-sender swallowed an error")
	}
	if ok.calls != 1 || bad.calls != 1 {
		t.Errorf("send counts = %d/%d, want 1/1", ok.calls, bad.calls)
	}
}

type stubSender struct {
	calls int
	err   error
}

func (s *stubSender) Send(ctx context.Context, payload *AlertPayload) error {
	s.calls++
	return s.err
}
