package scanner

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/wKayaa/gemfounder/internal/alerts"
	"github.com/wKayaa/gemfounder/internal/classify"
	"github.com/wKayaa/gemfounder/internal/coingecko"
	"github.com/wKayaa/gemfounder/internal/config"
	"github.com/wKayaa/gemfounder/internal/dexscreener"
	"github.com/wKayaa/gemfounder/internal/metrics"
	"github.com/wKayaa/gemfounder/internal/storage"
	"github.com/wKayaa/gemfounder/internal/token"
)

// Scanner runs the scan cycle: fetch candidates, enrich, classify, alert.
type Scanner struct {
	cfg         *config.Config
	db          *storage.DB
	dexClient   *dexscreener.Client
	geckoClient *coingecko.Client
	pipeline    *classify.Pipeline
	alertSender alerts.Sender
	log         *logrus.Logger
	scanCount   int
}

// CycleStats counts the outcomes of one scan cycle
type CycleStats struct {
	TokensFetched          int
	TokensScanned          int
	RejectedByFilter       int
	RejectedBySecurityGate int
	BelowThreshold         int
	Notified               int
	AlreadyNotifiedSkipped int
	Errors                 int
}

// New creates a new scanner
func New(
	cfg *config.Config,
	db *storage.DB,
	dexClient *dexscreener.Client,
	geckoClient *coingecko.Client,
	alertSender alerts.Sender,
	log *logrus.Logger,
) (*Scanner, error) {
	pipeline, err := classify.NewPipeline(cfg.ClassifyConfig())
	if err != nil {
		return nil, err
	}

	return &Scanner{
		cfg:         cfg,
		db:          db,
		dexClient:   dexClient,
		geckoClient: geckoClient,
		pipeline:    pipeline,
		alertSender: alertSender,
		log:         log,
	}, nil
}

// LogStartupState reports where the previous run left off
func (s *Scanner) LogStartupState(ctx context.Context) {
	lastScanStr, err := s.db.GetState(ctx, "last_scan_ts")
	if err != nil {
		s.log.WithError(err).Warn("Failed to read scan checkpoint")
		return
	}
	if lastScanStr == "" {
		s.log.Info("No previous scan history, starting fresh")
		return
	}
	if ts, err := strconv.ParseInt(lastScanStr, 10, 64); err == nil {
		s.log.WithField("last_scan", time.Unix(ts, 0).UTC().Format(time.RFC3339)).
			Info("Resuming after previous scan")
	}
}

// Scan runs one full scan cycle
func (s *Scanner) Scan(ctx context.Context) error {
	start := time.Now()
	var stats CycleStats

	records, err := s.fetchCandidates(ctx, start)
	stats.TokensFetched = len(records)
	if err != nil {
		metrics.RecordScan(time.Since(start), err)
		return fmt.Errorf("fetch candidates: %w", err)
	}

	records = dedupe(records)
	if len(records) > s.cfg.MaxTokensPerScan {
		records = records[:s.cfg.MaxTokensPerScan]
	}

	for _, rec := range records {
		if ctx.Err() != nil {
			break
		}
		if err := s.processToken(ctx, rec, &stats); err != nil {
			stats.Errors++
			s.log.WithError(err).WithField("token", rec.Key()).Error("Failed to process token")
		}
	}

	s.scanCount++
	duration := time.Since(start)
	metrics.RecordScan(duration, nil)

	if err := s.db.SetState(ctx, "last_scan_ts", strconv.FormatInt(start.Unix(), 10)); err != nil {
		s.log.WithError(err).Error("Failed to update scan checkpoint")
	}

	scanRecord := &storage.ScanRecord{
		StartedTS:              start.Unix(),
		DurationMs:             duration.Milliseconds(),
		TokensFetched:          stats.TokensFetched,
		TokensScanned:          stats.TokensScanned,
		RejectedByFilter:       stats.RejectedByFilter,
		RejectedBySecurityGate: stats.RejectedBySecurityGate,
		BelowThreshold:         stats.BelowThreshold,
		Notified:               stats.Notified,
		AlreadyNotifiedSkipped: stats.AlreadyNotifiedSkipped,
		Errors:                 stats.Errors,
	}
	if err := s.db.AddScanRecord(ctx, scanRecord); err != nil {
		metrics.RecordDatabaseQuery("insert_scan_record", err)
		s.log.WithError(err).Error("Failed to store scan record")
	} else {
		metrics.RecordDatabaseQuery("insert_scan_record", nil)
	}

	s.log.WithFields(logrus.Fields{
		"duration_ms":      duration.Milliseconds(),
		"fetched":          stats.TokensFetched,
		"scanned":          stats.TokensScanned,
		"filter_rejects":   stats.RejectedByFilter,
		"security_rejects": stats.RejectedBySecurityGate,
		"below_threshold":  stats.BelowThreshold,
		"notified":         stats.Notified,
		"already_notified": stats.AlreadyNotifiedSkipped,
		"errors":           stats.Errors,
	}).Info("Scan cycle complete")

	if s.cfg.SummaryEveryScans > 0 && s.scanCount%s.cfg.SummaryEveryScans == 0 {
		s.logSummary(ctx)
	}

	return nil
}

// fetchCandidates pulls pairs from DexScreener for every configured search
// query and normalizes those on the configured chains.
func (s *Scanner) fetchCandidates(ctx context.Context, scannedAt time.Time) ([]*token.Record, error) {
	var records []*token.Record

	for _, query := range s.cfg.SearchQueries {
		apiStart := time.Now()
		pairs, err := s.dexClient.Search(ctx, query)
		metrics.RecordAPIRequest("dexscreener", "/latest/dex/search", time.Since(apiStart), err)
		if err != nil {
			// One failed query should not kill the cycle unless nothing
			// else succeeded either.
			s.log.WithError(err).WithField("query", query).Warn("DexScreener search failed")
			continue
		}

		for i := range pairs {
			if !s.chainEnabled(pairs[i].ChainID) {
				continue
			}
			records = append(records, pairs[i].Record(scannedAt))
		}
	}

	if len(records) == 0 && len(s.cfg.SearchQueries) > 0 {
		return nil, fmt.Errorf("no candidates from any search query")
	}

	return records, nil
}

// processToken enriches, classifies, and (when warranted) alerts one token
func (s *Scanner) processToken(ctx context.Context, rec *token.Record, stats *CycleStats) error {
	if err := rec.Validate(); err != nil {
		s.log.WithError(err).WithField("token", rec.Key()).Debug("Skipping malformed record")
		return nil
	}

	s.enrich(ctx, rec)

	verdict, err := s.pipeline.Classify(rec)
	if err != nil {
		return fmt.Errorf("classify: %w", err)
	}

	stats.TokensScanned++
	metrics.RecordClassification(string(verdict.Decision))

	switch verdict.Decision {
	case classify.DecisionRejectedByFilter:
		stats.RejectedByFilter++
		return nil
	case classify.DecisionRejectedBySecurityGate:
		stats.RejectedBySecurityGate++
	case classify.DecisionBelowThreshold:
		stats.BelowThreshold++
	case classify.DecisionNotify:
		// Handled below
	}

	metrics.RecordScores(verdict.Security.SecurityScore, verdict.Scores.CompositeScore)

	if !verdict.ShouldNotify() {
		return nil
	}

	return s.notify(ctx, verdict, stats)
}

// enrich folds CoinGecko listing data into the record. An unlisted or
// unreachable token keeps its DexScreener-only view.
func (s *Scanner) enrich(ctx context.Context, rec *token.Record) {
	if _, ok := coingecko.AssetPlatform(rec.Chain); !ok {
		return
	}

	apiStart := time.Now()
	info, err := s.geckoClient.GetCoinByContract(ctx, rec.Chain, rec.ContractAddress)
	if errors.Is(err, coingecko.ErrNotListed) {
		metrics.RecordAPIRequest("coingecko", "/coins/contract", time.Since(apiStart), nil)
		return
	}
	metrics.RecordAPIRequest("coingecko", "/coins/contract", time.Since(apiStart), err)
	if err != nil {
		s.log.WithError(err).WithField("token", rec.Key()).Debug("CoinGecko enrichment failed")
		return
	}

	info.Enrich(rec)
}

// notify dispatches the alert for one NOTIFY verdict, once per token ever
func (s *Scanner) notify(ctx context.Context, verdict *classify.Verdict, stats *CycleStats) error {
	rec := verdict.Record

	notified, err := s.db.IsTokenNotified(ctx, rec.Key())
	metrics.RecordDatabaseQuery("is_token_notified", err)
	if err != nil {
		return fmt.Errorf("check notified: %w", err)
	}
	if notified {
		stats.AlreadyNotifiedSkipped++
		metrics.TokensAlreadyNotified.Inc()
		return nil
	}

	payload := alerts.NewPayload(verdict, s.cfg.Environment, time.Now())

	sendStatus := "success"
	if err := s.alertSender.Send(ctx, payload); err != nil {
		sendStatus = "error"
		s.log.WithError(err).WithField("token", rec.Key()).Error("Failed to send alert")
	}
	metrics.RecordAlert(string(payload.Severity), sendStatus, s.cfg.AlertMode)

	// Mark regardless of send outcome: a flapping webhook must not cause
	// repeat alerts for the same token.
	mark := &storage.NotifiedToken{
		TokenKey:        rec.Key(),
		Chain:           rec.Chain,
		ContractAddress: rec.ContractAddress,
		Symbol:          rec.Symbol,
		Name:            rec.Name,
		PriceUSD:        rec.PriceUSD,
		MarketCap:       rec.MarketCap,
		LiquidityUSD:    rec.LiquidityUSD,
		CompositeScore:  verdict.Scores.CompositeScore,
		SecurityScore:   verdict.Security.SecurityScore,
		RiskLevel:       string(verdict.Security.RiskLevel),
		RiskProfile:     string(verdict.Scores.RiskProfile),
		DEX:             rec.DEX,
		PairURL:         rec.URL,
		NotifiedTS:      time.Now().Unix(),
	}
	if err := s.db.MarkNotified(ctx, mark); err != nil {
		metrics.RecordDatabaseQuery("mark_notified", err)
		return fmt.Errorf("mark notified: %w", err)
	}
	metrics.RecordDatabaseQuery("mark_notified", nil)

	stats.Notified++
	s.log.WithFields(logrus.Fields{
		"token":           rec.Key(),
		"symbol":          rec.Symbol,
		"composite_score": verdict.Scores.CompositeScore,
		"security_score":  verdict.Security.SecurityScore,
		"risk_level":      verdict.Security.RiskLevel,
	}).Info("Gem notified")

	return nil
}

// Cleanup removes notification records older than the retention window
func (s *Scanner) Cleanup(ctx context.Context) {
	retention := time.Duration(s.cfg.NotifyRetentionDays) * 24 * time.Hour
	removed, err := s.db.CleanupOldNotifications(ctx, retention)
	metrics.RecordDatabaseQuery("cleanup_notifications", err)
	if err != nil {
		s.log.WithError(err).Error("Failed to clean up old notifications")
		return
	}
	if removed > 0 {
		s.log.WithField("removed", removed).Info("Cleaned up old notifications")
	}
}

func (s *Scanner) logSummary(ctx context.Context) {
	stats, err := s.db.GetStatistics(ctx)
	if err != nil {
		s.log.WithError(err).Error("Failed to compute summary statistics")
		return
	}

	recent, err := s.db.RecentNotifications(ctx, 5)
	if err != nil {
		s.log.WithError(err).Error("Failed to fetch recent notifications")
		return
	}

	var symbols []string
	for _, t := range recent {
		symbols = append(symbols, fmt.Sprintf("%s(%.0f)", t.Symbol, t.CompositeScore))
	}

	s.log.WithFields(logrus.Fields{
		"total_notified":    stats.TotalNotified,
		"notified_last_24h": stats.NotifiedLast24H,
		"total_scans":       stats.TotalScans,
		"tokens_scanned":    stats.TokensScannedTotal,
		"recent_gems":       strings.Join(symbols, ", "),
	}).Info("Summary report")
}

func (s *Scanner) chainEnabled(chain string) bool {
	for _, c := range s.cfg.Chains {
		if c == chain {
			return true
		}
	}
	return false
}

// dedupe drops repeated tokens within one batch: first by chain:contract,
// then by symbol so clones of the same ticker don't flood one cycle. First
// occurrence wins, matching DexScreener's relevance ordering.
func dedupe(records []*token.Record) []*token.Record {
	seenKeys := make(map[string]bool, len(records))
	seenSymbols := make(map[string]bool, len(records))

	var out []*token.Record
	for _, rec := range records {
		key := rec.Key()
		symbol := strings.ToUpper(rec.Symbol)
		if seenKeys[key] || seenSymbols[symbol] {
			metrics.TokensDeduplicated.Inc()
			continue
		}
		seenKeys[key] = true
		seenSymbols[symbol] = true
		out = append(out, rec)
	}
	return out
}
