package providers

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phishguard/pattern-engine/internal/domain"
)

// MicrosoftClient implements ports.EmailProvider for the Microsoft Graph API.
// For this prototype it returns mock data to demonstrate the pipeline.
type MicrosoftClient struct{}

// NewMicrosoftClient creates a new client
func NewMicrosoftClient() *MicrosoftClient {
	return &MicrosoftClient{}
}

// GetEmails fetches emails for a tenant from the Graph API.
// The samples exercise the payment-redirect and protected-attachment shapes.
func (c *MicrosoftClient) GetEmails(ctx context.Context, tenant *domain.Tenant, receivedAfter time.Time) ([]domain.Email, error) {
	emails := []domain.Email{
		{
			ID:                uuid.New(),
			TenantID:          tenant.ID,
			ProviderMessageID: "graph-msg-001",
			Subject:           "Updated wire instructions - process today",
			SenderEmail:       "j.willems@supplier-partners.com",
			SenderName:        "Jan Willems",
			RecipientEmail:    "bob@acme-corp.com",
			ReceivedAt:        time.Now().Add(-3 * time.Hour),
			Body: "Bob, our payment details have changed effective immediately. Please use the new account " +
				"for the outstanding invoice: IBAN NL91ABNA0417164300. Wire transfer must go out today. " +
				"Keep this confidential until the acquisition is announced.",
			Headers: map[string]string{
				"Reply-To": "jan.willems.payments@gmail.com",
			},
			IngestedAt: time.Now(),
		},
		{
			ID:                uuid.New(),
			TenantID:          tenant.ID,
			ProviderMessageID: "graph-msg-002",
			Subject:           "Secure document enclosed",
			SenderEmail:       "delivery@docs-transfer.net",
			SenderName:        "Document Delivery",
			RecipientEmail:    "bob@acme-corp.com",
			ReceivedAt:        time.Now().Add(-30 * time.Minute),
			Attachments: []domain.Attachment{
				{Filename: "statement_2026.pdf.exe"},
			},
			Body: "A secure document enclosed for your review. The password to open the file is Winter2026. " +
				"Download the attachment and use the password to view your statement.",
			Headers:    map[string]string{},
			IngestedAt: time.Now(),
		},
	}
	return emails, nil
}
