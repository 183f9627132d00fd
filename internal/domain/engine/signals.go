package engine

import (
	"strings"

	"github.com/phishguard/pattern-engine/internal/domain"
)

// SignalSet is the normalized output of signal extraction. Every optional
// signal is a pointer: nil means "checked, found nothing" is distinguished
// from a present-but-empty value, which is never constructed. Pattern rules
// read from this set only; they never re-scan the email.
type SignalSet struct {
	Credential    *PhraseSignal
	Unlock        *PhraseSignal
	PaymentChange *PaymentChangeSignal
	Secrecy       *PhraseSignal

	URLs               []URLInfo
	SuspiciousHosting  *LinkSignal
	LegitPlatform      *LinkSignal
	SenderLinkMismatch *MismatchSignal

	Attachments *AttachmentAnalysis

	UnknownSender      bool
	TrustedKnownSender bool
}

// PhraseSignal carries the literal phrases that matched, for explanation
// text and telemetry. A constructed signal always has at least one phrase.
type PhraseSignal struct {
	Phrases []string
}

// PaymentChangeSignal fires only when a change phrase and a banking token
// co-occur; both sides are retained.
type PaymentChangeSignal struct {
	Phrases []string
	Tokens  []string
}

// LinkSignal lists URLs whose host matched a static domain list.
type LinkSignal struct {
	Matches []LinkMatch
}

// Hosts returns the matched list domains, for evidence rendering.
func (s *LinkSignal) Hosts() []string {
	hosts := make([]string, 0, len(s.Matches))
	for _, m := range s.Matches {
		hosts = append(hosts, m.Domain)
	}
	return hosts
}

// LinkMatch pairs a URL with the list domain it matched.
type LinkMatch struct {
	URL    string
	Domain string
}

// MismatchSignal lists links whose registrable domain differs from the
// sender's domain.
type MismatchSignal struct {
	Mismatches []DomainMismatch
}

// Domains returns the mismatched link domains, for evidence rendering.
func (s *MismatchSignal) Domains() []string {
	domains := make([]string, 0, len(s.Mismatches))
	for _, m := range s.Mismatches {
		domains = append(domains, m.LinkDomain)
	}
	return domains
}

// DomainMismatch records one sender/link domain disagreement.
type DomainMismatch struct {
	SenderDomain string
	LinkDomain   string
	URL          string
}

// Extractor turns raw email fields into a SignalSet. It is a pure function
// of its inputs and the injected configuration; it never raises on
// malformed input, missing or empty fields yield nil signals.
type Extractor struct {
	cfg Config
}

// NewExtractor creates a signal extractor bound to the given configuration.
func NewExtractor(cfg Config) *Extractor {
	return &Extractor{cfg: cfg}
}

// Extract runs every signal detector once. Pattern rules read from the
// returned set, so no detector runs twice per evaluation.
func (e *Extractor) Extract(email domain.EmailContext) SignalSet {
	urls := e.extractURLs(email.Body)

	return SignalSet{
		Credential:    e.detectCredentialLanguage(email.Body),
		Unlock:        e.detectPhrases(email.Body, e.cfg.Tables.UnlockPhrases),
		PaymentChange: e.detectPaymentChangeLanguage(email.Body),
		Secrecy:       e.detectPhrases(email.Body, e.cfg.Tables.SecrecyPhrases),

		URLs:               urls,
		SuspiciousHosting:  matchLinkList(urls, e.cfg.Tables.SuspiciousHostingDomains),
		LegitPlatform:      matchLinkList(urls, e.cfg.Tables.LegitPlatformDomains),
		SenderLinkMismatch: e.detectSenderLinkMismatch(email.SenderDomain, urls),

		Attachments: e.analyzeAttachments(email.Attachments),

		UnknownSender:      !email.IsKnownContact && !email.IsTrustedDomain,
		TrustedKnownSender: email.IsKnownContact && email.IsTrustedDomain,
	}
}

// detectPhrases is the generic case-insensitive substring scan shared by the
// unlock and secrecy detectors.
func (e *Extractor) detectPhrases(body string, phrases []string) *PhraseSignal {
	if body == "" {
		return nil
	}
	lower := strings.ToLower(body)

	var matched []string
	for _, phrase := range phrases {
		if strings.Contains(lower, phrase) {
			matched = append(matched, phrase)
		}
	}
	if len(matched) == 0 {
		return nil
	}
	return &PhraseSignal{Phrases: matched}
}

// detectCredentialLanguage scans for credential-request phrases. If any
// exclusion phrase (benign document-review wording) is present, two or more
// credential phrases are required before the signal fires.
func (e *Extractor) detectCredentialLanguage(body string) *PhraseSignal {
	if body == "" {
		return nil
	}
	lower := strings.ToLower(body)

	hasExclusion := false
	for _, exclusion := range e.cfg.Tables.CredentialExclusions {
		if strings.Contains(lower, exclusion) {
			hasExclusion = true
			break
		}
	}

	var matched []string
	for _, phrase := range e.cfg.Tables.CredentialPhrases {
		if strings.Contains(lower, phrase) {
			matched = append(matched, phrase)
		}
	}
	if len(matched) == 0 {
		return nil
	}
	if hasExclusion && len(matched) < 2 {
		return nil
	}
	return &PhraseSignal{Phrases: matched}
}

// detectPaymentChangeLanguage requires both a change phrase and a banking
// token; either alone is no signal.
func (e *Extractor) detectPaymentChangeLanguage(body string) *PaymentChangeSignal {
	if body == "" {
		return nil
	}
	lower := strings.ToLower(body)

	var phrases []string
	for _, phrase := range e.cfg.Tables.PaymentChangePhrases {
		if strings.Contains(lower, phrase) {
			phrases = append(phrases, phrase)
		}
	}
	if len(phrases) == 0 {
		return nil
	}

	var tokens []string
	for _, token := range e.cfg.Tables.BankingTokens {
		if strings.Contains(lower, token) {
			tokens = append(tokens, token)
		}
	}
	if len(tokens) == 0 {
		return nil
	}
	return &PaymentChangeSignal{Phrases: phrases, Tokens: tokens}
}

// matchLinkList matches each URL's host against a static domain list, exact
// or as a dot-separated suffix.
func matchLinkList(urls []URLInfo, domains []string) *LinkSignal {
	if len(urls) == 0 {
		return nil
	}

	var matches []LinkMatch
	for _, u := range urls {
		for _, d := range domains {
			if u.Host == d || strings.HasSuffix(u.Host, "."+d) {
				matches = append(matches, LinkMatch{URL: u.URL, Domain: d})
				break
			}
		}
	}
	if len(matches) == 0 {
		return nil
	}
	return &LinkSignal{Matches: matches}
}

// detectSenderLinkMismatch collects links whose registrable domain is
// neither the sender domain nor a sub/superdomain of it. Common shared
// infrastructure domains are skipped so embedded trackers and widgets do
// not trip the signal.
func (e *Extractor) detectSenderLinkMismatch(senderDomain string, urls []URLInfo) *MismatchSignal {
	if senderDomain == "" || len(urls) == 0 {
		return nil
	}
	sender := strings.ToLower(senderDomain)

	var mismatches []DomainMismatch
	for _, u := range urls {
		linkDomain := u.RegistrableDomain
		if linkDomain == "" {
			continue
		}
		if linkDomain == sender {
			continue
		}
		if strings.HasSuffix(linkDomain, "."+sender) || strings.HasSuffix(sender, "."+linkDomain) {
			continue
		}

		isInfra := false
		for _, infra := range e.cfg.Tables.InfrastructureDomains {
			if linkDomain == infra || strings.HasSuffix(linkDomain, "."+infra) {
				isInfra = true
				break
			}
		}
		if isInfra {
			continue
		}

		mismatches = append(mismatches, DomainMismatch{
			SenderDomain: sender,
			LinkDomain:   linkDomain,
			URL:          u.URL,
		})
	}
	if len(mismatches) == 0 {
		return nil
	}
	return &MismatchSignal{Mismatches: mismatches}
}
