package baseline

import (
	"github.com/phishguard/pattern-engine/internal/domain"
)

// Detector is the upstream single-signal detector. It runs every strategy
// once, in a fixed order, and collects their warnings. Each warning covers
// exactly one weak signal; the pattern engine downstream is responsible for
// combining them into high-confidence findings and suppressing the ones a
// composite supersedes.
type Detector struct {
	strategies []Strategy
	context    *Context
}

// NewDetector creates a detector with the standard strategy set.
func NewDetector(internalDomains, brandDomains []string) *Detector {
	context := NewContext(internalDomains, brandDomains)

	// Fixed order keeps the warning list deterministic for a given email.
	strategies := []Strategy{
		NewBrandImpersonationStrategy(),
		NewUrgencyStrategy(),
		NewReplyToStrategy(),
		NewOnBehalfOfStrategy(),
		NewWireFraudStrategy(),
		NewAuthFailuresStrategy(),
	}

	return &Detector{
		strategies: strategies,
		context:    context,
	}
}

// Analyze runs all strategies on an email and returns their warnings.
func (d *Detector) Analyze(email domain.Email) []domain.Warning {
	warnings := make([]domain.Warning, 0)
	for _, strategy := range d.strategies {
		if w := strategy.Detect(email, d.context); w != nil {
			warnings = append(warnings, *w)
		}
	}
	return warnings
}
