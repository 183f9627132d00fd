package baseline

import (
	"fmt"
	"strings"

	"github.com/phishguard/pattern-engine/internal/domain"
)

// OnBehalfOfStrategy detects messages delivered on behalf of a different
// identity: the Sender header names a domain other than the From domain, or
// the display name claims an authority title while the sender is external.
type OnBehalfOfStrategy struct{}

// NewOnBehalfOfStrategy creates a new on-behalf-of strategy
func NewOnBehalfOfStrategy() *OnBehalfOfStrategy {
	return &OnBehalfOfStrategy{}
}

// Name returns the strategy name
func (s *OnBehalfOfStrategy) Name() string {
	return "On-Behalf-Of Sender"
}

// Detect checks the Sender header and display name against the From identity
func (s *OnBehalfOfStrategy) Detect(email domain.Email, context *Context) *domain.Warning {
	fromDomain := extractDomain(email.SenderEmail)

	// Envelope sender differing from From is the literal on-behalf-of case.
	if sender := strings.ToLower(email.Headers["Sender"]); sender != "" {
		senderDomain := extractDomain(sender)
		if senderDomain != "" && senderDomain != fromDomain {
			return &domain.Warning{
				Type:     domain.WarningOnBehalfOf,
				Severity: "medium",
				Message: fmt.Sprintf(
					"Message sent by %s on behalf of %s", senderDomain, fromDomain,
				),
			}
		}
	}

	// Executive display name on an external sender suggests an assumed
	// identity even without a Sender header.
	displayName := strings.ToLower(email.SenderName)
	execTitles := []string{"ceo", "cfo", "president", "director", "chief", "vp", "vice president"}
	if containsAny(displayName, execTitles) && !isInternalDomain(fromDomain, context.InternalDomains) {
		return &domain.Warning{
			Type:     domain.WarningOnBehalfOf,
			Severity: "medium",
			Message: fmt.Sprintf(
				"Display name '%s' claims an executive title but sender domain '%s' is external",
				email.SenderName, fromDomain,
			),
		}
	}
	return nil
}
