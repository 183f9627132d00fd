package baseline

import (
	"fmt"
	"strings"

	"github.com/phishguard/pattern-engine/internal/domain"
)

// WireFraudStrategy detects the combination of urgency and financial
// transfer language typical of wire fraud attempts.
type WireFraudStrategy struct{}

// NewWireFraudStrategy creates a new wire fraud keyword strategy
func NewWireFraudStrategy() *WireFraudStrategy {
	return &WireFraudStrategy{}
}

// Name returns the strategy name
func (s *WireFraudStrategy) Name() string {
	return "Wire Fraud Keywords"
}

// Detect looks for the urgency + financial keyword combination
func (s *WireFraudStrategy) Detect(email domain.Email, context *Context) *domain.Warning {
	text := strings.ToLower(email.Subject + " " + email.Body)

	urgencyKeywords := []string{
		"urgent", "immediately", "asap", "right away", "today", "end of day", "eod",
	}
	financialKeywords := []string{
		"wire transfer", "wire instructions", "routing number", "bank account",
		"swift", "iban", "payment", "invoice", "transfer funds", "gift card",
	}
	authorityKeywords := []string{
		"ceo", "president", "director", "approved", "authorized", "confidential",
	}

	urgencyCount := countKeywords(text, urgencyKeywords)
	financialCount := countKeywords(text, financialKeywords)
	authorityCount := countKeywords(text, authorityKeywords)

	// Financial keywords weigh highest; a lone "payment" never trips this.
	score := (float64(urgencyCount) * 0.3) + (float64(financialCount) * 0.5) + (float64(authorityCount) * 0.2)
	if score <= 1.5 {
		return nil
	}

	return &domain.Warning{
		Type:     domain.WarningWireFraud,
		Severity: "high",
		Message: fmt.Sprintf(
			"Wire fraud language detected (score %.2f): %d urgency, %d financial, %d authority keywords",
			score, urgencyCount, financialCount, authorityCount,
		),
	}
}
