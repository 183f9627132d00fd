package engine

import (
	"testing"

	"github.com/phishguard/pattern-engine/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func extractFor(t *testing.T, email domain.EmailContext) SignalSet {
	t.Helper()
	return NewExtractor(DefaultConfig()).Extract(email)
}

func matchIDs(matches []domain.PatternMatch) []domain.PatternID {
	ids := make([]domain.PatternID, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, m.ID)
	}
	return ids
}

func TestPatternA_CredentialHarvesting(t *testing.T) {
	evaluator := NewEvaluator(DefaultTables())

	tests := []struct {
		name        string
		body        string
		expectMatch bool
	}{
		{
			name:        "Credential language + foreign link - fires",
			body:        "Please verify your account at http://evil-example.net/login",
			expectMatch: true,
		},
		{
			name:        "Credential language without link - does not fire",
			body:        "Please verify your account as soon as possible.",
			expectMatch: false,
		},
		{
			name:        "Link without credential language - does not fire",
			body:        "Slides are at http://evil-example.net/talk",
			expectMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			signals := extractFor(t, domain.EmailContext{
				Body:         tt.body,
				SenderDomain: "realbank.com",
			})
			match := evaluator.evaluateCredentialHarvesting(signals, nil)

			if tt.expectMatch {
				require.NotNil(t, match, "Expected Pattern A to fire")
				assert.Equal(t, domain.PatternCredentialHarvesting, match.ID)
				assert.Equal(t, domain.ConfidenceHigh, match.Confidence)
				assert.NotEmpty(t, match.Signals, "match must carry its evidence")
			} else {
				assert.Nil(t, match)
			}
		})
	}
}

func TestPatternB_BrandFreeHosting(t *testing.T) {
	evaluator := NewEvaluator(DefaultTables())
	brandWarning := domain.Warning{Type: domain.WarningBrandImpersonation, Severity: "high", Message: "typosquat"}
	urgencyWarning := domain.Warning{Type: domain.WarningPhishingUrgency, Severity: "medium", Message: "urgent"}

	t.Run("Hosting path fires high with credential language", func(t *testing.T) {
		signals := extractFor(t, domain.EmailContext{
			Body:         "verify your account at https://login.netlify.app/portal",
			SenderDomain: "paypa1.com",
		})
		match := evaluator.evaluateBrandFreeHosting(signals, []domain.Warning{brandWarning})
		require.NotNil(t, match)
		assert.Equal(t, domain.ConfidenceHigh, match.Confidence)
	})

	t.Run("Hosting path needs corroboration", func(t *testing.T) {
		signals := extractFor(t, domain.EmailContext{
			Body:         "see https://login.netlify.app/portal",
			SenderDomain: "paypa1.com",
		})
		assert.Nil(t, evaluator.evaluateBrandFreeHosting(signals, []domain.Warning{brandWarning}))
	})

	t.Run("No brand warning means no match", func(t *testing.T) {
		signals := extractFor(t, domain.EmailContext{
			Body:         "verify your account at https://login.netlify.app/portal",
			SenderDomain: "paypa1.com",
		})
		assert.Nil(t, evaluator.evaluateBrandFreeHosting(signals, nil))
	})

	t.Run("Platform path fires medium with two supporting signals", func(t *testing.T) {
		// Legit platform link is weak evidence: credential language alone
		// is one supporting signal, urgency makes two.
		signals := extractFor(t, domain.EmailContext{
			Body:         "verify your account: https://drive.google.com/file/d/abc",
			SenderDomain: "paypa1.com",
		})
		require.Nil(t, signals.SuspiciousHosting)
		require.NotNil(t, signals.LegitPlatform)

		assert.Nil(t, evaluator.evaluateBrandFreeHosting(signals, []domain.Warning{brandWarning}),
			"one supporting signal is not enough on the platform path")

		match := evaluator.evaluateBrandFreeHosting(signals, []domain.Warning{brandWarning, urgencyWarning})
		require.NotNil(t, match)
		assert.Equal(t, domain.ConfidenceMedium, match.Confidence)
	})
}

func TestPatternC_HTMLAttachmentTrap(t *testing.T) {
	evaluator := NewEvaluator(DefaultTables())
	brandWarning := domain.Warning{Type: domain.WarningBrandImpersonation, Severity: "high", Message: "typosquat"}

	htmlContext := domain.EmailContext{
		Body:         "Open the secure attachment and enter your password to view the message.",
		SenderDomain: "example.net",
		Attachments:  []domain.Attachment{{Filename: "secure-message.html"}},
	}

	t.Run("Fires with brand warning", func(t *testing.T) {
		signals := extractFor(t, htmlContext)
		match := evaluator.evaluateHTMLAttachmentTrap(signals, []domain.Warning{brandWarning})
		require.NotNil(t, match)
		assert.Equal(t, domain.ConfidenceHigh, match.Confidence)
	})

	t.Run("Does not fire without identity signal", func(t *testing.T) {
		signals := extractFor(t, htmlContext)
		assert.Nil(t, evaluator.evaluateHTMLAttachmentTrap(signals, nil))
	})

	t.Run("Does not fire without HTML attachment", func(t *testing.T) {
		ctx := htmlContext
		ctx.Attachments = []domain.Attachment{{Filename: "notes.pdf"}}
		signals := extractFor(t, ctx)
		assert.Nil(t, evaluator.evaluateHTMLAttachmentTrap(signals, []domain.Warning{brandWarning}))
	})
}

func TestPatternD_TrustedSenderGuardrail(t *testing.T) {
	evaluator := NewEvaluator(DefaultTables())
	urgencyWarning := domain.Warning{Type: domain.WarningPhishingUrgency, Severity: "medium", Message: "urgent"}

	trustedContext := domain.EmailContext{
		Body:            "password attached: 1234",
		SenderDomain:    "partner.com",
		Attachments:     []domain.Attachment{{Filename: "invoice.zip"}},
		IsKnownContact:  true,
		IsTrustedDomain: true,
	}

	t.Run("Trusted known sender with one supporting signal - no fire", func(t *testing.T) {
		signals := extractFor(t, trustedContext)
		assert.Nil(t, evaluator.evaluateDangerousAttachment(signals, []domain.Warning{urgencyWarning}))
	})

	t.Run("Trusted known sender with two supporting signals - fires", func(t *testing.T) {
		signals := extractFor(t, trustedContext)
		baseline := []domain.Warning{
			urgencyWarning,
			{Type: domain.WarningBrandImpersonation, Severity: "high", Message: "typosquat"},
		}
		match := evaluator.evaluateDangerousAttachment(signals, baseline)
		require.NotNil(t, match)
		assert.Equal(t, domain.ConfidenceHigh, match.Confidence, "archive without executable stays high")
	})

	t.Run("Unknown sender needs only one supporting signal", func(t *testing.T) {
		ctx := trustedContext
		ctx.IsKnownContact = false
		ctx.IsTrustedDomain = false
		signals := extractFor(t, ctx)
		// unknown_sender itself is the supporting signal
		match := evaluator.evaluateDangerousAttachment(signals, nil)
		require.NotNil(t, match)
	})

	t.Run("Executable attachment raises confidence to critical", func(t *testing.T) {
		ctx := trustedContext
		ctx.IsKnownContact = false
		ctx.IsTrustedDomain = false
		ctx.Attachments = []domain.Attachment{{Filename: "statement.pdf.exe"}}
		signals := extractFor(t, ctx)
		match := evaluator.evaluateDangerousAttachment(signals, nil)
		require.NotNil(t, match)
		assert.Equal(t, domain.ConfidenceCritical, match.Confidence)
	})

	t.Run("Unlock language is mandatory", func(t *testing.T) {
		ctx := trustedContext
		ctx.IsKnownContact = false
		ctx.IsTrustedDomain = false
		ctx.Body = "see attached invoice"
		signals := extractFor(t, ctx)
		assert.Nil(t, evaluator.evaluateDangerousAttachment(signals, nil))
	})
}

func TestPatternE_PaymentRedirect(t *testing.T) {
	evaluator := NewEvaluator(DefaultTables())
	replyToWarning := domain.Warning{Type: domain.WarningReplyToMismatch, Severity: "high", Message: "freemail reply-to"}
	urgencyWarning := domain.Warning{Type: domain.WarningPhishingUrgency, Severity: "medium", Message: "urgent"}

	paymentBody := "Our payment details have changed. New wire instructions: IBAN NL91ABNA0417164300."

	t.Run("Payment change + spoofed identity + secrecy - critical", func(t *testing.T) {
		signals := extractFor(t, domain.EmailContext{
			Body:         paymentBody + " Keep this confidential.",
			SenderDomain: "supplier.com",
		})
		match := evaluator.evaluatePaymentRedirect(signals, []domain.Warning{replyToWarning})
		require.NotNil(t, match)
		assert.Equal(t, domain.ConfidenceCritical, match.Confidence)
	})

	t.Run("Urgency substitutes for secrecy", func(t *testing.T) {
		signals := extractFor(t, domain.EmailContext{
			Body:         paymentBody,
			SenderDomain: "supplier.com",
		})
		match := evaluator.evaluatePaymentRedirect(signals, []domain.Warning{replyToWarning, urgencyWarning})
		require.NotNil(t, match)
	})

	t.Run("No spoofed identity warning - no fire", func(t *testing.T) {
		signals := extractFor(t, domain.EmailContext{
			Body:         paymentBody + " Keep this confidential.",
			SenderDomain: "supplier.com",
		})
		assert.Nil(t, evaluator.evaluatePaymentRedirect(signals, []domain.Warning{urgencyWarning}))
	})

	t.Run("No pressure tactic - no fire", func(t *testing.T) {
		signals := extractFor(t, domain.EmailContext{
			Body:         paymentBody,
			SenderDomain: "supplier.com",
		})
		assert.Nil(t, evaluator.evaluatePaymentRedirect(signals, []domain.Warning{replyToWarning}))
	})
}

func TestEvaluateAll_OrderAndDeterminism(t *testing.T) {
	evaluator := NewEvaluator(DefaultTables())

	// An email that trips Pattern A and Pattern E at once.
	signals := extractFor(t, domain.EmailContext{
		Body: "verify your account at http://evil-example.net/login. " +
			"Our payment details have changed: new wire instructions and bank account below. Keep this confidential.",
		SenderDomain: "realbank.com",
	})
	baseline := []domain.Warning{
		{Type: domain.WarningReplyToMismatch, Severity: "high", Message: "freemail reply-to"},
	}

	first := evaluator.EvaluateAll(signals, baseline)
	second := evaluator.EvaluateAll(signals, baseline)

	assert.Equal(t, []domain.PatternID{
		domain.PatternCredentialHarvesting,
		domain.PatternPaymentRedirect,
	}, matchIDs(first), "matches are collected in fixed A-E order")
	assert.Equal(t, first, second, "same inputs must yield identical matches")
}
