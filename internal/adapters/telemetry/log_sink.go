package telemetry

import (
	"go.uber.org/zap"

	"github.com/phishguard/pattern-engine/internal/domain/engine"
)

// LogSink writes telemetry events to the structured log. The event payload
// is already privacy-scrubbed by the engine, so logging it whole is safe.
type LogSink struct {
	logger *zap.Logger
}

// NewLogSink creates a sink that logs events at info level
func NewLogSink(logger *zap.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// Emit logs one telemetry event
func (s *LogSink) Emit(event engine.TelemetryEvent) {
	s.logger.Info("pattern engine telemetry",
		zap.Time("timestamp", event.Timestamp),
		zap.String("version", event.Version),
		zap.String("platform", event.Platform),
		zap.Bool("silent_mode", event.SilentMode),
		zap.Any("pattern_ids", event.PatternIDs),
		zap.Any("pattern_confidences", event.PatternConfidences),
		zap.Strings("suppressed_types", event.SuppressedTypes),
		zap.Any("signals", event.Signals),
	)
}

// NopSink discards telemetry; used when telemetry is not opted in.
type NopSink struct{}

// NewNopSink creates a discarding sink
func NewNopSink() *NopSink {
	return &NopSink{}
}

// Emit discards the event
func (s *NopSink) Emit(event engine.TelemetryEvent) {}
