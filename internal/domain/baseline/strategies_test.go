package baseline

import (
	"testing"

	"github.com/phishguard/pattern-engine/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrandImpersonationStrategy(t *testing.T) {
	strategy := NewBrandImpersonationStrategy()
	context := NewContext(nil, []string{"paypal.com", "microsoft.com"})

	tests := []struct {
		name        string
		senderEmail string
		expectMatch bool
	}{
		{"Typosquatted domain", "security@paypa1.com", true},
		{"Character substitution", "support@micros0ft.com", true},
		{"Legitimate brand domain", "service@paypal.com", false},
		{"Unrelated domain", "alice@example.com", false},
		{"Malformed sender", "not-an-email", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warning := strategy.Detect(domain.Email{SenderEmail: tt.senderEmail}, context)
			if tt.expectMatch {
				require.NotNil(t, warning)
				assert.Equal(t, domain.WarningBrandImpersonation, warning.Type)
				assert.Equal(t, "high", warning.Severity)
			} else {
				assert.Nil(t, warning)
			}
		})
	}
}

func TestUrgencyStrategy(t *testing.T) {
	strategy := NewUrgencyStrategy()
	context := NewContext(nil, nil)

	tests := []struct {
		name        string
		subject     string
		body        string
		expectMatch bool
	}{
		{
			name:        "Two urgency phrases",
			subject:     "URGENT: action required",
			body:        "Please act now to avoid account closure.",
			expectMatch: true,
		},
		{
			name:        "Single urgency word is ordinary business mail",
			subject:     "Urgent question about the report",
			body:        "Can you take a look when you have a minute?",
			expectMatch: false,
		},
		{
			name:        "No urgency language",
			subject:     "Meeting notes",
			body:        "Attached are the notes from Tuesday.",
			expectMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warning := strategy.Detect(domain.Email{Subject: tt.subject, Body: tt.body}, context)
			if tt.expectMatch {
				require.NotNil(t, warning)
				assert.Equal(t, domain.WarningPhishingUrgency, warning.Type)
			} else {
				assert.Nil(t, warning)
			}
		})
	}
}

func TestReplyToStrategy(t *testing.T) {
	strategy := NewReplyToStrategy()
	context := NewContext(nil, nil)

	tests := []struct {
		name        string
		senderEmail string
		replyTo     string
		expectMatch bool
	}{
		{"Freemail redirect", "cfo@supplier.com", "payments.dept@gmail.com", true},
		{"Matching reply-to", "cfo@supplier.com", "cfo@supplier.com", false},
		{"No reply-to header", "cfo@supplier.com", "", false},
		{"Corporate reply-to", "cfo@supplier.com", "billing@supplier-invoices.com", false},
		{"Freemail sender with freemail reply-to", "someone@gmail.com", "someone@gmail.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			email := domain.Email{
				SenderEmail: tt.senderEmail,
				Headers:     map[string]string{},
			}
			if tt.replyTo != "" {
				email.Headers["Reply-To"] = tt.replyTo
			}
			warning := strategy.Detect(email, context)
			if tt.expectMatch {
				require.NotNil(t, warning)
				assert.Equal(t, domain.WarningReplyToMismatch, warning.Type)
				assert.Equal(t, "high", warning.Severity)
			} else {
				assert.Nil(t, warning)
			}
		})
	}
}

func TestOnBehalfOfStrategy(t *testing.T) {
	strategy := NewOnBehalfOfStrategy()
	context := NewContext([]string{"ourcompany.com"}, nil)

	t.Run("Sender header from a different domain", func(t *testing.T) {
		warning := strategy.Detect(domain.Email{
			SenderEmail: "ceo@ourcompany.com",
			Headers:     map[string]string{"Sender": "bulk@massmailer.io"},
		}, context)
		require.NotNil(t, warning)
		assert.Equal(t, domain.WarningOnBehalfOf, warning.Type)
	})

	t.Run("Executive display name on an external sender", func(t *testing.T) {
		warning := strategy.Detect(domain.Email{
			SenderEmail: "jsmith@randomdomain.net",
			SenderName:  "John Smith, CEO",
			Headers:     map[string]string{},
		}, context)
		require.NotNil(t, warning)
		assert.Equal(t, domain.WarningOnBehalfOf, warning.Type)
	})

	t.Run("Executive display name on an internal sender is fine", func(t *testing.T) {
		warning := strategy.Detect(domain.Email{
			SenderEmail: "jsmith@ourcompany.com",
			SenderName:  "John Smith, CEO",
			Headers:     map[string]string{},
		}, context)
		assert.Nil(t, warning)
	})

	t.Run("Plain external sender", func(t *testing.T) {
		warning := strategy.Detect(domain.Email{
			SenderEmail: "alice@vendor.com",
			SenderName:  "Alice Jones",
			Headers:     map[string]string{},
		}, context)
		assert.Nil(t, warning)
	})
}

func TestWireFraudStrategy(t *testing.T) {
	strategy := NewWireFraudStrategy()
	context := NewContext(nil, nil)

	t.Run("Urgent wire request scores above threshold", func(t *testing.T) {
		warning := strategy.Detect(domain.Email{
			Subject: "URGENT: process today",
			Body:    "Please process the wire transfer to the new bank account. This payment is confidential.",
		}, context)
		require.NotNil(t, warning)
		assert.Equal(t, domain.WarningWireFraud, warning.Type)
		assert.Equal(t, "high", warning.Severity)
	})

	t.Run("Ordinary invoice mail stays below threshold", func(t *testing.T) {
		warning := strategy.Detect(domain.Email{
			Subject: "Invoice 4021",
			Body:    "Please find attached the invoice for your payment, due at the end of the month.",
		}, context)
		assert.Nil(t, warning)
	})
}

func TestAuthFailuresStrategy(t *testing.T) {
	strategy := NewAuthFailuresStrategy()
	context := NewContext(nil, nil)

	tests := []struct {
		name        string
		headers     map[string]string
		expectMatch bool
	}{
		{
			name: "SPF and DKIM both fail",
			headers: map[string]string{
				"Received-SPF":           "fail (domain does not designate sender)",
				"Authentication-Results": "mx.example.com; dkim=fail; dmarc=pass",
			},
			expectMatch: true,
		},
		{
			name: "DKIM and DMARC both fail",
			headers: map[string]string{
				"Authentication-Results": "mx.example.com; dkim=fail; dmarc=fail",
			},
			expectMatch: true,
		},
		{
			name: "Single failure is a likely misconfiguration",
			headers: map[string]string{
				"Received-SPF":           "fail (domain does not designate sender)",
				"Authentication-Results": "mx.example.com; dkim=pass; dmarc=pass",
			},
			expectMatch: false,
		},
		{
			name:        "No authentication headers",
			headers:     map[string]string{},
			expectMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warning := strategy.Detect(domain.Email{Headers: tt.headers}, context)
			if tt.expectMatch {
				require.NotNil(t, warning)
				assert.Equal(t, domain.WarningAuthFailure, warning.Type)
			} else {
				assert.Nil(t, warning)
			}
		})
	}
}
