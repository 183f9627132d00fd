package providers

import (
	"context"
	"log"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/phishguard/pattern-engine/internal/domain"
)

// GoogleClient implements ports.EmailProvider for the Gmail API.
// For this prototype it returns mock data to demonstrate the pipeline.
type GoogleClient struct{}

// NewGoogleClient creates a new client
func NewGoogleClient() *GoogleClient {
	return &GoogleClient{}
}

// GetEmails fetches emails for a tenant from the Gmail API.
// In production we'd batch message.get requests and use goroutines for
// concurrency; here the samples exercise credential-harvesting and
// brand-impersonation shapes.
func (c *GoogleClient) GetEmails(ctx context.Context, tenant *domain.Tenant, receivedAfter time.Time) ([]domain.Email, error) {
	emails := []domain.Email{
		{
			ID:                uuid.New(),
			TenantID:          tenant.ID,
			ProviderMessageID: "gmail-msg-001",
			Subject:           "Unusual sign-in detected on your account",
			SenderEmail:       extractEmail("PayPal Security <security@paypa1.com>"),
			SenderName:        "PayPal Security",
			RecipientEmail:    "alice@acme-corp.com",
			ReceivedAt:        time.Now().Add(-2 * time.Hour),
			Body: "We detected unusual activity on your account. Please verify your account " +
				"within 24 hours or your account will be locked. Sign in now at " +
				"https://paypal-secure-login.netlify.app/session to confirm your identity. Act now, this is urgent.",
			Headers:    map[string]string{},
			IngestedAt: time.Now(),
		},
		{
			ID:                uuid.New(),
			TenantID:          tenant.ID,
			ProviderMessageID: "gmail-msg-002",
			Subject:           "Q3 budget review",
			SenderEmail:       "finance@acme-corp.com",
			SenderName:        "Finance Team",
			RecipientEmail:    "alice@acme-corp.com",
			ReceivedAt:        time.Now().Add(-1 * time.Hour),
			Body: "Hi Alice, the Q3 budget spreadsheet is ready for review. " +
				"Let me know if the travel numbers look right before Friday's meeting.",
			Headers:    map[string]string{},
			IngestedAt: time.Now(),
		},
	}
	return emails, nil
}

// extractEmail parses addresses with net/mail.ParseAddress and returns the
// address part, or the original string if parsing fails (graceful
// degradation).
func extractEmail(s string) string {
	addr, err := mail.ParseAddress(s)
	if err != nil {
		log.Printf("Warning: failed to parse email address %q: %v", s, err)
		return s
	}
	return addr.Address
}
