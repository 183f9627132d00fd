package engine

import (
	"fmt"
	"strings"

	"github.com/phishguard/pattern-engine/internal/domain"
)

// multiPatternTitle is used when more than one pattern matched.
const multiPatternTitle = "Multiple Phishing Indicators Detected"

// compositePriority orders the merged warning among other warnings in a
// rendering layer: above wire-fraud keyword findings, below sender-identity
// warnings.
const compositePriority = 13

// mergeMatches builds the single consolidated warning from all matched
// patterns plus the warnings they absorbed.
//
// Tie-breaks: confidence is the highest-ranked among the matches, never
// lower than medium; the title is the pattern's own name only when exactly
// one matched; descriptions concatenate in A-E match order; the
// recommendation is the FIRST match's in that order. Callers needing the
// most urgent recommendation scan the matches themselves.
func mergeMatches(matched []domain.PatternMatch, suppressed []domain.Warning) domain.Warning {
	highest := domain.ConfidenceMedium
	for _, pattern := range matched {
		if pattern.Confidence.Rank() > highest.Rank() {
			highest = pattern.Confidence
		}
	}

	title := multiPatternTitle
	if len(matched) == 1 {
		title = matched[0].Name
	}

	descriptions := make([]string, 0, len(matched))
	for _, pattern := range matched {
		descriptions = append(descriptions, pattern.Description)
	}

	suppressedRemnants := make([]domain.SuppressedWarning, 0, len(suppressed))
	for _, warning := range suppressed {
		suppressedRemnants = append(suppressedRemnants, domain.SuppressedWarning{
			Type:    warning.Type,
			Message: warning.Message,
		})
	}

	note := ""
	if len(suppressed) > 0 {
		note = fmt.Sprintf(
			"This analysis incorporates and replaces %d individual warning(s) with this combined assessment.",
			len(suppressed),
		)
	}

	return domain.Warning{
		Type:           domain.WarningPhishingPattern,
		Severity:       string(highest),
		Title:          title,
		Message:        strings.Join(descriptions, " "),
		Recommendation: matched[0].Recommendation,
		Priority:       compositePriority,
		Composite: &domain.CompositeDetails{
			Patterns:        matched,
			Suppressed:      suppressedRemnants,
			SuppressionNote: note,
			PatternCount:    len(matched),
		},
	}
}
