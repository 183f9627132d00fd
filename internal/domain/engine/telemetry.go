package engine

import (
	"time"

	"github.com/phishguard/pattern-engine/internal/domain"
)

// TelemetrySink receives privacy-scrubbed telemetry events. Implementations
// live in adapters; the engine itself performs no I/O, so a sink that ships
// events over the network keeps that concern outside the evaluation path.
type TelemetrySink interface {
	Emit(event TelemetryEvent)
}

// TelemetryEvent is the opt-in tuning payload. Privacy contract: it must be
// reconstructable with zero knowledge of the original message beyond what
// the phrase and domain tables already reveal publicly. Never the raw body,
// sender address, or attachment filenames.
type TelemetryEvent struct {
	Timestamp          time.Time           `json:"timestamp"`
	Version            string              `json:"version"`
	Platform           string              `json:"platform"`
	SilentMode         bool                `json:"silent_mode"`
	PatternIDs         []domain.PatternID  `json:"pattern_ids"`
	PatternConfidences []domain.Confidence `json:"pattern_confidences"`
	SuppressedTypes    []string            `json:"suppressed_types"`
	// Signals maps signal name to the matched table values (phrases,
	// list domains). Signals whose evidence is a filename appear with an
	// empty value list.
	Signals map[string][]string `json:"signals"`
}

// filenameSignals carry attachment filenames as evidence; their values are
// scrubbed from telemetry.
var filenameSignals = map[string]bool{
	"html_attachment":      true,
	"dangerous_attachment": true,
}

// buildTelemetryEvent assembles the event for one evaluation.
func buildTelemetryEvent(email domain.EmailContext, matched []domain.PatternMatch, suppressed []domain.Warning, silent bool) TelemetryEvent {
	platform := email.Platform
	if platform == "" {
		platform = "unknown"
	}

	event := TelemetryEvent{
		Timestamp:          time.Now().UTC(),
		Version:            Version,
		Platform:           platform,
		SilentMode:         silent,
		PatternIDs:         make([]domain.PatternID, 0, len(matched)),
		PatternConfidences: make([]domain.Confidence, 0, len(matched)),
		SuppressedTypes:    make([]string, 0, len(suppressed)),
		Signals:            make(map[string][]string),
	}

	for _, pattern := range matched {
		event.PatternIDs = append(event.PatternIDs, pattern.ID)
		event.PatternConfidences = append(event.PatternConfidences, pattern.Confidence)
		for _, ref := range pattern.Signals {
			if filenameSignals[ref.Name] {
				event.Signals[ref.Name] = nil
				continue
			}
			event.Signals[ref.Name] = ref.Matched
		}
	}
	for _, warning := range suppressed {
		event.SuppressedTypes = append(event.SuppressedTypes, warning.Type)
	}
	return event
}
