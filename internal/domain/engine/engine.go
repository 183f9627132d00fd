package engine

import (
	"time"

	"go.uber.org/zap"

	"github.com/phishguard/pattern-engine/internal/domain"
)

// Engine is the phishing pattern decision engine: it extracts signals from
// an email, evaluates the five pattern rules against the baseline warning
// list, suppresses superseded baseline warnings, and merges the matches
// into one consolidated finding.
//
// An Engine is immutable after construction and safe for concurrent use;
// each Evaluate call is independent and carries no state across emails.
type Engine struct {
	cfg       Config
	extractor *Extractor
	evaluator *Evaluator
	logger    *zap.Logger
	sink      TelemetrySink
}

// Option customizes an Engine at construction time.
type Option func(*Engine)

// WithLogger attaches a logger for diagnostic and advisory output. Without
// it the engine stays silent.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithTelemetrySink attaches a sink for opt-in telemetry. Events are only
// built and emitted when the configuration enables telemetry AND a sink is
// attached.
func WithTelemetrySink(sink TelemetrySink) Option {
	return func(e *Engine) { e.sink = sink }
}

// New creates an engine from static configuration. The configuration,
// including its reference tables, is treated as read-only afterwards.
func New(cfg Config, opts ...Option) *Engine {
	e := &Engine{
		cfg:       cfg,
		extractor: NewExtractor(cfg),
		evaluator: NewEvaluator(cfg.Tables),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate runs one complete evaluation: extraction, pattern rules,
// suppression, merge. It never fails: malformed input degrades to
// no-signal, and every reachable path returns a well-formed result.
//
// Mode handling: disabled is a pure passthrough; silent mode computes
// signals and matches (for logging, telemetry, and future promotion to
// active) but returns the baseline list untouched; active mode applies
// suppression and appends the merged composite when any pattern matched.
func (e *Engine) Evaluate(email domain.EmailContext, baseline []domain.Warning) domain.EngineResult {
	start := time.Now()

	if e.cfg.Mode == ModeDisabled {
		return domain.EngineResult{
			FinalWarnings:      baseline,
			PatternsRan:        false,
			MatchedPatterns:    []domain.PatternMatch{},
			SuppressedWarnings: []domain.Warning{},
		}
	}

	signals := e.extractor.Extract(email)
	matched := e.evaluator.EvaluateAll(signals, baseline)

	if e.cfg.Mode == ModeSilent {
		if len(matched) > 0 {
			e.logger.Info("silent mode: patterns matched, baseline warnings unchanged",
				zap.Any("pattern_ids", patternIDs(matched)),
				zap.Duration("runtime", time.Since(start)),
			)
			e.emitTelemetry(email, matched, nil, true)
		}
		return domain.EngineResult{
			FinalWarnings:      baseline,
			PatternsRan:        true,
			MatchedPatterns:    matched,
			SuppressedWarnings: []domain.Warning{},
			SilentMode:         true,
			Runtime:            time.Since(start),
		}
	}

	kept, suppressed := resolveSuppression(baseline, matched, e.cfg.Tables.Suppression)

	final := make([]domain.Warning, 0, len(kept)+1)
	final = append(final, kept...)
	if len(matched) > 0 {
		final = append(final, mergeMatches(matched, suppressed))
		e.emitTelemetry(email, matched, suppressed, false)
	}

	runtime := time.Since(start)
	if runtime > e.cfg.RuntimeWarnThreshold {
		// Advisory only; slow evaluations are logged, never aborted.
		e.logger.Warn("evaluation exceeded runtime ceiling",
			zap.Duration("runtime", runtime),
			zap.Duration("ceiling", e.cfg.RuntimeWarnThreshold),
		)
	}
	if len(matched) > 0 {
		e.logger.Debug("patterns matched",
			zap.Any("pattern_ids", patternIDs(matched)),
			zap.Int("suppressed", len(suppressed)),
			zap.Duration("runtime", runtime),
		)
	}

	return domain.EngineResult{
		FinalWarnings:      final,
		PatternsRan:        true,
		MatchedPatterns:    matched,
		SuppressedWarnings: suppressed,
		Runtime:            runtime,
	}
}

func (e *Engine) emitTelemetry(email domain.EmailContext, matched []domain.PatternMatch, suppressed []domain.Warning, silent bool) {
	if !e.cfg.TelemetryEnabled || e.sink == nil || len(matched) == 0 {
		return
	}
	e.sink.Emit(buildTelemetryEvent(email, matched, suppressed, silent))
}

func patternIDs(matched []domain.PatternMatch) []domain.PatternID {
	ids := make([]domain.PatternID, 0, len(matched))
	for _, pattern := range matched {
		ids = append(ids, pattern.ID)
	}
	return ids
}
