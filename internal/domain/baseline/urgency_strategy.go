package baseline

import (
	"fmt"
	"strings"

	"github.com/phishguard/pattern-engine/internal/domain"
)

// UrgencyStrategy detects pressure-tactic keywords in subject and body.
type UrgencyStrategy struct{}

// NewUrgencyStrategy creates a new urgency keyword strategy
func NewUrgencyStrategy() *UrgencyStrategy {
	return &UrgencyStrategy{}
}

// Name returns the strategy name
func (s *UrgencyStrategy) Name() string {
	return "Phishing Urgency"
}

// Detect scans for urgency language
func (s *UrgencyStrategy) Detect(email domain.Email, context *Context) *domain.Warning {
	text := strings.ToLower(email.Subject + " " + email.Body)

	urgencyKeywords := []string{
		"urgent", "immediately", "asap", "right away", "time sensitive",
		"act now", "expires today", "within 24 hours", "final notice",
		"last chance", "need this now",
	}

	count := countKeywords(text, urgencyKeywords)
	// A single urgency word is common in ordinary business mail.
	if count < 2 {
		return nil
	}

	return &domain.Warning{
		Type:     domain.WarningPhishingUrgency,
		Severity: "medium",
		Message:  fmt.Sprintf("Email uses %d urgency pressure phrases", count),
	}
}
