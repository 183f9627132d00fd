package domain

import (
	"time"

	"github.com/google/uuid"
)

// Provider represents email service providers we support
type Provider string

const (
	ProviderMicrosoft Provider = "microsoft"
	ProviderGoogle    Provider = "google"
)

// Tenant represents an organization using the phishing analysis service
type Tenant struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Provider  Provider  `json:"provider"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// User represents an email user within a tenant's organization
type User struct {
	ID             uuid.UUID `json:"id"`
	TenantID       uuid.UUID `json:"tenant_id"`
	ProviderUserID string    `json:"provider_user_id"`
	Email          string    `json:"email"`
	DisplayName    string    `json:"display_name"`
	CreatedAt      time.Time `json:"created_at"`
}

// Email represents an email message retrieved from provider APIs.
//
// Simplification: a single recipient_email instead of a to/cc/bcc array.
// A single recipient is sufficient to drive the baseline detector and the
// pattern engine, which only look at sender, body, headers and attachments.
type Email struct {
	ID                uuid.UUID         `json:"id"`
	TenantID          uuid.UUID         `json:"tenant_id"`
	UserID            uuid.UUID         `json:"user_id"`
	ProviderMessageID string            `json:"provider_message_id"`
	Subject           string            `json:"subject"`
	SenderEmail       string            `json:"sender_email"`
	SenderName        string            `json:"sender_name"`
	RecipientEmail    string            `json:"recipient_email"`
	ReceivedAt        time.Time         `json:"received_at"`
	Attachments       []Attachment      `json:"attachments,omitempty"`
	Body              string            `json:"body"`
	Headers           map[string]string `json:"headers"`
	IngestedAt        time.Time         `json:"ingested_at"`
	ProcessedAt       *time.Time        `json:"processed_at,omitempty"`
}

// Attachment is the minimal attachment shape the detectors need.
// Deep inspection (hashes, MIME sniffing, sandboxing) is out of scope;
// classification works on filenames only.
type Attachment struct {
	Filename string `json:"filename"`
}

// EmailContext is the immutable per-evaluation input to the pattern engine.
// SenderDomain is expected lowercased and in registrable form.
type EmailContext struct {
	Body            string       `json:"body"`
	SenderDomain    string       `json:"sender_domain"`
	Attachments     []Attachment `json:"attachments"`
	IsKnownContact  bool         `json:"is_known_contact"`
	IsTrustedDomain bool         `json:"is_trusted_domain"`
	Platform        string       `json:"platform,omitempty"` // diagnostic only
}

// Warning type vocabulary shared by the baseline detector and the engine.
// The engine matches these by exact string; unknown types are inert.
const (
	WarningBrandImpersonation = "brand-impersonation"
	WarningPhishingUrgency    = "phishing-urgency"
	WarningReplyToMismatch    = "replyto-mismatch"
	WarningOnBehalfOf         = "on-behalf-of"
	WarningWireFraud          = "wire-fraud"
	WarningAuthFailure        = "auth-failure"

	// WarningPhishingPattern is the type of the merged composite finding.
	WarningPhishingPattern = "phishing-pattern"
)

// Warning is the one canonical warning shape. Baseline warnings populate
// Type, Severity and Message only; the merged composite produced by the
// engine additionally carries Title, Recommendation, Priority and Composite.
type Warning struct {
	Type           string            `json:"type"`
	Severity       string            `json:"severity"`
	Message        string            `json:"message"`
	Title          string            `json:"title,omitempty"`
	Recommendation string            `json:"recommendation,omitempty"`
	Priority       int               `json:"priority,omitempty"`
	Composite      *CompositeDetails `json:"composite,omitempty"`
}

// IsComposite reports whether this warning is the engine's merged finding.
func (w Warning) IsComposite() bool {
	return w.Composite != nil
}

// CompositeDetails records how a merged warning was assembled so downstream
// rendering can show the full picture.
type CompositeDetails struct {
	Patterns        []PatternMatch      `json:"patterns"`
	Suppressed      []SuppressedWarning `json:"suppressed_warnings"`
	SuppressionNote string              `json:"suppression_note,omitempty"`
	PatternCount    int                 `json:"pattern_count"`
}

// SuppressedWarning is the type+message remnant of an absorbed baseline
// warning, kept for transparency.
type SuppressedWarning struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Confidence is the categorical confidence of a pattern match.
type Confidence string

const (
	ConfidenceMedium   Confidence = "medium"
	ConfidenceHigh     Confidence = "high"
	ConfidenceCritical Confidence = "critical"
)

// Rank orders confidences: critical > high > medium. Unknown values rank
// lowest and never outrank a real match.
func (c Confidence) Rank() int {
	switch c {
	case ConfidenceCritical:
		return 3
	case ConfidenceHigh:
		return 2
	case ConfidenceMedium:
		return 1
	default:
		return 0
	}
}

// PatternID identifies one of the five multi-signal pattern rules.
type PatternID string

const (
	PatternCredentialHarvesting PatternID = "pattern_a_credential_harvesting"
	PatternBrandFreeHosting     PatternID = "pattern_b_brand_free_hosting"
	PatternHTMLAttachmentTrap   PatternID = "pattern_c_html_attachment_trap"
	PatternDangerousAttachment  PatternID = "pattern_d_dangerous_attachment"
	PatternPaymentRedirect      PatternID = "pattern_e_payment_redirect"
)

// SignalRef names a signal that contributed to a pattern match, together
// with the literal matched values (phrases, hosts, filenames). Matched may
// be nil for purely boolean signals.
type SignalRef struct {
	Name    string   `json:"name"`
	Matched []string `json:"matched,omitempty"`
}

// PatternMatch is the immutable result of one pattern rule firing. A pattern
// fires at most once per evaluation and carries enough raw evidence to
// render a human-auditable explanation.
type PatternMatch struct {
	ID             PatternID   `json:"id"`
	Name           string      `json:"name"`
	Confidence     Confidence  `json:"confidence"`
	Signals        []SignalRef `json:"signals"`
	Description    string      `json:"description"`
	Recommendation string      `json:"recommendation"`
}

// EngineResult is the complete outcome of one engine evaluation. It is
// constructed fresh per email and never mutated after return.
type EngineResult struct {
	FinalWarnings      []Warning      `json:"final_warnings"`
	PatternsRan        bool           `json:"patterns_ran"`
	MatchedPatterns    []PatternMatch `json:"matched_patterns"`
	SuppressedWarnings []Warning      `json:"suppressed_warnings"`
	SilentMode         bool           `json:"silent_mode"`
	Runtime            time.Duration  `json:"runtime"`
}

// Evaluation is the persisted record of one engine run against one email.
type Evaluation struct {
	ID        uuid.UUID    `json:"id"`
	EmailID   uuid.UUID    `json:"email_id"`
	Result    EngineResult `json:"result"`
	CreatedAt time.Time    `json:"created_at"`
}
