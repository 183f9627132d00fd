package baseline

import (
	"fmt"
	"strings"

	"github.com/phishguard/pattern-engine/internal/domain"
)

// ReplyToStrategy detects Reply-To header mismatches that redirect replies
// away from the apparent sender.
type ReplyToStrategy struct{}

// NewReplyToStrategy creates a new Reply-To mismatch strategy
func NewReplyToStrategy() *ReplyToStrategy {
	return &ReplyToStrategy{}
}

// Name returns the strategy name
func (s *ReplyToStrategy) Name() string {
	return "Reply-To Mismatch"
}

// Detect checks if Reply-To differs from the sender and redirects to a free
// email service
func (s *ReplyToStrategy) Detect(email domain.Email, context *Context) *domain.Warning {
	senderEmail := strings.ToLower(email.SenderEmail)
	replyTo := strings.ToLower(email.Headers["Reply-To"])

	if replyTo == "" || replyTo == senderEmail {
		return nil
	}

	senderDomain := extractDomain(senderEmail)
	replyToDomain := extractDomain(replyTo)

	freeEmailDomains := []string{"gmail.com", "yahoo.com", "hotmail.com", "outlook.com", "aol.com"}
	isFreemail := false
	for _, freeDomain := range freeEmailDomains {
		if replyToDomain == freeDomain {
			isFreemail = true
			break
		}
	}

	// Freemail reply-to on a non-freemail sender is a strong BEC indicator.
	if isFreemail && replyToDomain != senderDomain {
		return &domain.Warning{
			Type:     domain.WarningReplyToMismatch,
			Severity: "high",
			Message: fmt.Sprintf(
				"Sender: %s, Reply-To: %s (free email service, redirects responses)",
				senderEmail, replyTo,
			),
		}
	}
	return nil
}
