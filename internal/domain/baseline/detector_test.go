package baseline

import (
	"testing"

	"github.com/phishguard/pattern-engine/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetector_BenignEmail(t *testing.T) {
	detector := NewDetector([]string{"ourcompany.com"}, []string{"paypal.com"})

	warnings := detector.Analyze(domain.Email{
		Subject:     "Team lunch on Friday",
		SenderEmail: "bob@ourcompany.com",
		SenderName:  "Bob",
		Body:        "Shall we try the new place around the corner?",
		Headers:     map[string]string{},
	})

	assert.Empty(t, warnings)
}

func TestDetector_BECEmailProducesOrderedWarnings(t *testing.T) {
	detector := NewDetector([]string{"ourcompany.com"}, []string{"paypal.com", "microsoft.com"})

	email := domain.Email{
		Subject:     "URGENT wire transfer - process immediately",
		SenderEmail: "john.smith@partnerco.com",
		SenderName:  "John Smith, CEO",
		Body: "I need you to transfer funds today. Use the bank account below " +
			"and keep this confidential until the deal closes.",
		Headers: map[string]string{
			"Reply-To":               "j.smith.private@gmail.com",
			"Received-SPF":           "fail (partnerco.com does not designate sender)",
			"Authentication-Results": "mx.ourcompany.com; dkim=fail; dmarc=fail",
		},
	}

	warnings := detector.Analyze(email)

	// Strategy order is fixed, so warning order is deterministic.
	types := make([]string, 0, len(warnings))
	for _, w := range warnings {
		types = append(types, w.Type)
	}
	assert.Equal(t, []string{
		domain.WarningPhishingUrgency,
		domain.WarningReplyToMismatch,
		domain.WarningOnBehalfOf,
		domain.WarningWireFraud,
		domain.WarningAuthFailure,
	}, types)

	// Run again to confirm Analyze is a pure function of the email.
	assert.Equal(t, warnings, detector.Analyze(email))
}

func TestDetector_SingleSignalEmail(t *testing.T) {
	detector := NewDetector([]string{"ourcompany.com"}, []string{"paypal.com"})

	warnings := detector.Analyze(domain.Email{
		Subject:     "Your account statement",
		SenderEmail: "billing@paypa1.com",
		SenderName:  "PayPal Billing",
		Body:        "Your monthly statement is ready.",
		Headers:     map[string]string{},
	})

	require.Len(t, warnings, 1)
	assert.Equal(t, domain.WarningBrandImpersonation, warnings[0].Type)
}
