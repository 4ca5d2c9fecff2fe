package classify

import (
	"fmt"

	"github.com/wKayaa/gemfounder/internal/token"
)

// Decision is the pipeline's final call on one record.
type Decision string

const (
	DecisionRejectedByFilter       Decision = "REJECTED_BY_FILTER"
	DecisionRejectedBySecurityGate Decision = "REJECTED_BY_SECURITY_GATE"
	DecisionBelowThreshold         Decision = "BELOW_THRESHOLD"
	DecisionNotify                 Decision = "NOTIFY"
)

// Verdict carries the record through with the full explanatory breakdown.
// FilterReason is set only when the decision is REJECTED_BY_FILTER; Security
// and Scores are populated for every record that passed the filter.
type Verdict struct {
	Record       *token.Record
	Decision     Decision
	FilterReason RejectReason
	Security     Assessment
	Scores       Breakdown
}

// ShouldNotify reports whether this verdict surfaces the token to the user.
func (v *Verdict) ShouldNotify() bool {
	return v.Decision == DecisionNotify
}

// Pipeline orchestrates Filter -> SecurityAnalyzer -> ScoringEngine and the
// threshold decision. It is pure and stateless per call; all side effects
// (persistence, notification dispatch) belong to callers.
type Pipeline struct {
	cfg      Config
	filter   *Filter
	security *SecurityAnalyzer
	scoring  *ScoringEngine
}

// NewPipeline validates the configuration and builds the pipeline. The config
// is copied, so later mutation of the caller's value has no effect.
func NewPipeline(cfg Config) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("classify config: %w", err)
	}
	p := &Pipeline{cfg: cfg}
	p.filter = NewFilter(&p.cfg)
	p.security = NewSecurityAnalyzer(&p.cfg)
	p.scoring = NewScoringEngine(&p.cfg)
	return p, nil
}

// Classify runs the full pipeline for one record. An error is returned only
// for malformed input; uninteresting tokens are ordinary rejection verdicts.
func (p *Pipeline) Classify(rec *token.Record) (*Verdict, error) {
	if rec == nil {
		return nil, fmt.Errorf("classify: nil record")
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}

	if reason, ok := p.filter.Check(rec); !ok {
		return &Verdict{
			Record:       rec,
			Decision:     DecisionRejectedByFilter,
			FilterReason: reason,
		}, nil
	}

	sec := p.security.Analyze(rec)
	// Scoring still runs after a security-gate rejection so the report is
	// complete, but it cannot override an outright scam signal.
	scores := p.scoring.Score(rec, sec)

	v := &Verdict{
		Record:   rec,
		Security: sec,
		Scores:   scores,
	}

	switch {
	case sec.RiskLevel == RiskAvoid:
		v.Decision = DecisionRejectedBySecurityGate
	case scores.CompositeScore < p.cfg.Threshold():
		v.Decision = DecisionBelowThreshold
	default:
		v.Decision = DecisionNotify
	}

	return v, nil
}

// Config returns the pipeline's validated configuration.
func (p *Pipeline) Config() Config {
	return p.cfg
}
