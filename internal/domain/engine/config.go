package engine

import "time"

// Version identifies the engine revision in telemetry events.
const Version = "1.0.0"

// Mode is the engine's operating mode, selected once per process from
// static configuration. It is never derived from email content.
type Mode string

const (
	// ModeDisabled is a pure passthrough: baseline warnings are returned
	// unchanged and no signals are computed.
	ModeDisabled Mode = "disabled"
	// ModeSilent computes signals and matches for observation but never
	// alters the caller-visible warning list.
	ModeSilent Mode = "silent"
	// ModeActive applies suppression and appends the merged composite.
	ModeActive Mode = "active"
)

// Config is the engine's process-wide static configuration. It is read-only
// after construction, so concurrent evaluations share it without locking.
type Config struct {
	Mode             Mode
	TelemetryEnabled bool

	// MaxURLs caps how many URLs are retained from one body.
	MaxURLs int
	// MaxBodyLengthForURLScan skips URL extraction above this body size.
	// Oversized bodies are treated as having no URLs, not as an error.
	MaxBodyLengthForURLScan int
	// RuntimeWarnThreshold triggers an advisory log when an evaluation
	// takes longer; it never aborts the evaluation.
	RuntimeWarnThreshold time.Duration

	Tables Tables
}

// DefaultConfig returns the shipped configuration: active mode, telemetry
// off (strictly opt-in), and the built-in reference tables.
func DefaultConfig() Config {
	return Config{
		Mode:                    ModeActive,
		TelemetryEnabled:        false,
		MaxURLs:                 20,
		MaxBodyLengthForURLScan: 50000,
		RuntimeWarnThreshold:    200 * time.Millisecond,
		Tables:                  DefaultTables(),
	}
}
