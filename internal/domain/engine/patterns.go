package engine

import (
	"strconv"

	"github.com/phishguard/pattern-engine/internal/domain"
)

// Evaluator runs the five multi-signal pattern rules. Each rule is a pure
// function of the signal set and the baseline warning list: it either fires
// fully, returning an immutable match with its evidence, or returns nil.
// Rules are evaluated independently in fixed A-E order; more than one may
// fire for the same email, and evaluating the same inputs twice yields
// identical matches.
type Evaluator struct {
	tables Tables
}

// NewEvaluator creates a pattern evaluator bound to the given reference
// tables.
func NewEvaluator(tables Tables) *Evaluator {
	return &Evaluator{tables: tables}
}

// EvaluateAll runs every pattern rule and collects the matches in A-E order.
func (ev *Evaluator) EvaluateAll(signals SignalSet, baseline []domain.Warning) []domain.PatternMatch {
	matched := make([]domain.PatternMatch, 0)

	rules := []func(SignalSet, []domain.Warning) *domain.PatternMatch{
		ev.evaluateCredentialHarvesting,
		ev.evaluateBrandFreeHosting,
		ev.evaluateHTMLAttachmentTrap,
		ev.evaluateDangerousAttachment,
		ev.evaluatePaymentRedirect,
	}
	for _, rule := range rules {
		if m := rule(signals, baseline); m != nil {
			matched = append(matched, *m)
		}
	}
	return matched
}

// hasWarningType checks the baseline list for an exact warning type.
func hasWarningType(warnings []domain.Warning, warningType string) bool {
	for _, w := range warnings {
		if w.Type == warningType {
			return true
		}
	}
	return false
}

// Pattern A: credential harvesting: fake login pages and password reset
// traps. Requires credential language, at least one link, and a sender/link
// domain mismatch.
func (ev *Evaluator) evaluateCredentialHarvesting(signals SignalSet, baseline []domain.Warning) *domain.PatternMatch {
	if signals.Credential == nil {
		return nil
	}
	if len(signals.URLs) == 0 {
		return nil
	}
	if signals.SenderLinkMismatch == nil {
		return nil
	}

	return &domain.PatternMatch{
		ID:         domain.PatternCredentialHarvesting,
		Name:       "Credential Harvesting Attempt",
		Confidence: domain.ConfidenceHigh,
		Signals: []domain.SignalRef{
			{Name: "credential_language", Matched: signals.Credential.Phrases},
			{Name: "sender_link_mismatch", Matched: signals.SenderLinkMismatch.Domains()},
			{Name: "links_present", Matched: []string{strconv.Itoa(len(signals.URLs)) + " link(s)"}},
		},
		Description:    "This email asks for login credentials and contains links pointing to domains that don't match the sender. This is a common credential harvesting technique.",
		Recommendation: "Do NOT click any links in this email. If you need to verify your account, go directly to the website by typing the address in your browser.",
	}
}

// Pattern B: brand impersonation plus throwaway hosting. Requires a
// baseline brand-impersonation warning, then either a suspicious free
// hosting link with one more signal, or a legitimate file-sharing platform
// link with two or more supporting signals. The platform path is weaker
// evidence, so it fires at medium confidence.
func (ev *Evaluator) evaluateBrandFreeHosting(signals SignalSet, baseline []domain.Warning) *domain.PatternMatch {
	if !hasWarningType(baseline, domain.WarningBrandImpersonation) {
		return nil
	}

	hasUrgency := hasWarningType(baseline, domain.WarningPhishingUrgency)

	// Path 1: suspicious free hosting link (low threshold).
	if signals.SuspiciousHosting != nil && (signals.Credential != nil || hasUrgency) {
		refs := []domain.SignalRef{
			{Name: "brand_impersonation"},
			{Name: "suspicious_hosting_link", Matched: signals.SuspiciousHosting.Hosts()},
		}
		if signals.Credential != nil {
			refs = append(refs, domain.SignalRef{Name: "credential_language", Matched: signals.Credential.Phrases})
		}
		if hasUrgency {
			refs = append(refs, domain.SignalRef{Name: "urgency"})
		}
		return &domain.PatternMatch{
			ID:             domain.PatternBrandFreeHosting,
			Name:           "Brand Impersonation with Suspicious Link",
			Confidence:     domain.ConfidenceHigh,
			Signals:        refs,
			Description:    "This email impersonates a known brand but links to a free hosting platform. Legitimate companies do not host login pages on free platforms.",
			Recommendation: "This is almost certainly a phishing attempt. Do not click any links. Report this email as phishing.",
		}
	}

	// Path 2: legitimate platform link (high threshold, 2+ other signals).
	if signals.LegitPlatform != nil {
		var supporting []string
		if signals.Credential != nil {
			supporting = append(supporting, "credential_language")
		}
		if hasUrgency {
			supporting = append(supporting, "urgency")
		}
		if signals.SenderLinkMismatch != nil {
			supporting = append(supporting, "sender_link_mismatch")
		}
		if signals.Unlock != nil {
			supporting = append(supporting, "unlock_language")
		}

		if len(supporting) >= 2 {
			return &domain.PatternMatch{
				ID:         domain.PatternBrandFreeHosting,
				Name:       "Brand Impersonation with Suspicious Link",
				Confidence: domain.ConfidenceMedium,
				Signals: []domain.SignalRef{
					{Name: "brand_impersonation"},
					{Name: "legit_platform_link", Matched: signals.LegitPlatform.Hosts()},
					{Name: "supporting_signals", Matched: supporting},
				},
				Description:    "This email impersonates a known brand and links to a file-sharing platform with multiple other suspicious indicators. Verify directly with the sender before clicking any links.",
				Recommendation: "Contact the supposed sender through a known, trusted channel before interacting with this email.",
			}
		}
	}

	return nil
}

// Pattern C: HTML attachment trap: fake secure-message portals delivered
// as an .html attachment. Requires an HTML-category attachment, credential
// or unlock language, and either a baseline brand-impersonation warning or
// a sender/link mismatch.
func (ev *Evaluator) evaluateHTMLAttachmentTrap(signals SignalSet, baseline []domain.Warning) *domain.PatternMatch {
	if signals.Attachments == nil || !signals.Attachments.HasHTML {
		return nil
	}
	if signals.Credential == nil && signals.Unlock == nil {
		return nil
	}

	hasBrand := hasWarningType(baseline, domain.WarningBrandImpersonation)
	if !hasBrand && signals.SenderLinkMismatch == nil {
		return nil
	}

	refs := []domain.SignalRef{
		{Name: "html_attachment", Matched: signals.Attachments.HTMLFiles},
	}
	if signals.Credential != nil {
		refs = append(refs, domain.SignalRef{Name: "credential_language", Matched: signals.Credential.Phrases})
	}
	if signals.Unlock != nil {
		refs = append(refs, domain.SignalRef{Name: "unlock_language", Matched: signals.Unlock.Phrases})
	}
	if hasBrand {
		refs = append(refs, domain.SignalRef{Name: "brand_impersonation"})
	}
	if signals.SenderLinkMismatch != nil {
		refs = append(refs, domain.SignalRef{Name: "sender_link_mismatch", Matched: signals.SenderLinkMismatch.Domains()})
	}

	return &domain.PatternMatch{
		ID:             domain.PatternHTMLAttachmentTrap,
		Name:           "HTML Attachment Phishing Trap",
		Confidence:     domain.ConfidenceHigh,
		Signals:        refs,
		Description:    "This email contains an HTML file attachment that likely opens a fake login page in your browser. HTML attachments are a common way to bypass email link scanning.",
		Recommendation: "Do NOT open the HTML attachment. Delete this email. If you expected a document from this sender, contact them directly through a known channel.",
	}
}

// Pattern D: dangerous attachment delivery: encrypted or protected files
// with unlock instructions in the body. Requires a non-HTML dangerous
// attachment, unlock language, and enough supporting signals. Senders who
// are both a known contact and on a trusted domain need two supporting
// signals instead of one, reflecting their lower prior probability of
// fraud.
func (ev *Evaluator) evaluateDangerousAttachment(signals SignalSet, baseline []domain.Warning) *domain.PatternMatch {
	if signals.Attachments == nil || !signals.Attachments.HasDangerousNonHTML() {
		return nil
	}
	if signals.Unlock == nil {
		return nil
	}

	var supporting []string
	if signals.UnknownSender {
		supporting = append(supporting, "unknown_sender")
	}
	if hasWarningType(baseline, domain.WarningPhishingUrgency) {
		supporting = append(supporting, "urgency")
	}
	if hasWarningType(baseline, domain.WarningBrandImpersonation) {
		supporting = append(supporting, "brand_impersonation")
	}
	if signals.Credential != nil {
		supporting = append(supporting, "credential_language")
	}
	if signals.PaymentChange != nil {
		supporting = append(supporting, "payment_language")
	}

	required := 1
	if signals.TrustedKnownSender {
		required = 2
	}
	if len(supporting) < required {
		return nil
	}

	confidence := domain.ConfidenceHigh
	if signals.Attachments.HasExecutable || signals.Attachments.HasDiskImage {
		confidence = domain.ConfidenceCritical
	}

	var attachTypes []string
	if signals.Attachments.HasArchive {
		attachTypes = append(attachTypes, "archive")
	}
	if signals.Attachments.HasDiskImage {
		attachTypes = append(attachTypes, "disk_image")
	}
	if signals.Attachments.HasExecutable {
		attachTypes = append(attachTypes, "executable")
	}
	if signals.Attachments.HasMacroCapable {
		attachTypes = append(attachTypes, "macro_capable")
	}

	return &domain.PatternMatch{
		ID:         domain.PatternDangerousAttachment,
		Name:       "Suspicious Protected Attachment",
		Confidence: confidence,
		Signals: []domain.SignalRef{
			{Name: "dangerous_attachment", Matched: signals.Attachments.NonHTMLDangerousFiles(ev.tables.Extensions)},
			{Name: "attachment_types", Matched: attachTypes},
			{Name: "unlock_language", Matched: signals.Unlock.Phrases},
			{Name: "supporting_signals", Matched: supporting},
		},
		Description:    "This email contains a password-protected or encrypted attachment with unlock instructions in the body. Attackers use encryption to prevent email scanners from detecting malware inside attachments.",
		Recommendation: "Do NOT open the attachment or use the provided password. If you were expecting a file from this sender, confirm through a separate communication channel before opening.",
	}
}

// Pattern E: payment redirect / business email compromise. Requires
// payment-change language (which already demands a banking token), a
// spoofed-identity warning from the baseline (reply-to mismatch or
// on-behalf-of), and pressure tactics (baseline urgency or local secrecy
// language).
func (ev *Evaluator) evaluatePaymentRedirect(signals SignalSet, baseline []domain.Warning) *domain.PatternMatch {
	if signals.PaymentChange == nil {
		return nil
	}

	hasReplyTo := hasWarningType(baseline, domain.WarningReplyToMismatch)
	hasOnBehalf := hasWarningType(baseline, domain.WarningOnBehalfOf)
	if !hasReplyTo && !hasOnBehalf {
		return nil
	}

	hasUrgency := hasWarningType(baseline, domain.WarningPhishingUrgency)
	if !hasUrgency && signals.Secrecy == nil {
		return nil
	}

	refs := []domain.SignalRef{
		{Name: "payment_change_language", Matched: signals.PaymentChange.Phrases},
		{Name: "banking_tokens", Matched: signals.PaymentChange.Tokens},
	}
	if hasReplyTo {
		refs = append(refs, domain.SignalRef{Name: "reply_to_mismatch"})
	}
	if hasOnBehalf {
		refs = append(refs, domain.SignalRef{Name: "on_behalf_of"})
	}
	if hasUrgency {
		refs = append(refs, domain.SignalRef{Name: "urgency"})
	}
	if signals.Secrecy != nil {
		refs = append(refs, domain.SignalRef{Name: "secrecy_language", Matched: signals.Secrecy.Phrases})
	}

	return &domain.PatternMatch{
		ID:             domain.PatternPaymentRedirect,
		Name:           "Payment Redirect / Business Email Compromise",
		Confidence:     domain.ConfidenceCritical,
		Signals:        refs,
		Description:    "This email requests a change to payment or wire instructions while using a spoofed sender identity and pressure tactics. This is a textbook Business Email Compromise (BEC) attack.",
		Recommendation: "STOP. Do NOT process any payment changes from this email. Call the supposed sender at a KNOWN phone number (not one from this email) to verify. This type of scam costs businesses billions annually.",
	}
}
