package engine

import "github.com/phishguard/pattern-engine/internal/domain"

// Tables holds the static phrase, domain and extension reference data the
// signal extractor and pattern rules consume. It is loaded once at startup
// and treated as read-only for the process lifetime; tests substitute
// fixture tables by constructing their own value.
type Tables struct {
	CredentialPhrases    []string
	CredentialExclusions []string
	UnlockPhrases        []string
	PaymentChangePhrases []string
	BankingTokens        []string
	SecrecyPhrases       []string

	SuspiciousHostingDomains []string
	LegitPlatformDomains     []string
	InfrastructureDomains    []string

	// Extensions maps an attachment category to its filename extensions
	// (lowercase, leading dot included).
	Extensions ExtensionTable

	// Suppression maps each pattern to the baseline warning types it
	// supersedes. Suppression is additive across matched patterns.
	Suppression map[domain.PatternID][]string
}

// ExtensionTable groups dangerous attachment extensions by category.
type ExtensionTable struct {
	Archive      []string
	DiskImage    []string
	Executable   []string
	MacroCapable []string
	HTML         []string
}

// DefaultTables returns the built-in reference data. Callers that need
// different lists (other locales, tenant-specific platforms) build their own
// Tables and inject them through Config.
func DefaultTables() Tables {
	return Tables{
		// Strict list: only authentication/login related phrases. Benign
		// document-review wording is handled by the exclusion list below.
		CredentialPhrases: []string{
			"verify your account",
			"confirm your identity",
			"confirm your account",
			"confirm your email",
			"verify your email",
			"update your credentials",
			"re-authenticate",
			"login required",
			"sign in to continue",
			"sign in now",
			"log in to continue",
			"reset your password",
			"password expired",
			"password reset",
			"validate your account",
			"authentication required",
			"security verification",
			"unusual sign-in",
			"unusual activity",
			"suspicious activity",
			"unauthorized access",
			"account will be locked",
			"account suspended",
			"account disabled",
			"enter your password",
			"security code",
			"one-time code",
			"one-time password",
			"two-factor",
			"2fa",
			"verify your identity",
		},
		CredentialExclusions: []string{
			"please review",
			"review document",
			"review and sign",
			"review the document",
			"review attached",
			"review the attached",
			"for your review",
			"ready for review",
		},
		UnlockPhrases: []string{
			"password attached",
			"unlock code",
			"use this code",
			"open with password",
			"encrypted attachment",
			"secure document enclosed",
			"password is",
			"passcode is",
			"access code",
			"the password to open",
			"use the password",
			"protected document",
			"secure attachment",
			"open the attachment",
			"download the attachment",
			"password below",
			"password above",
			"enclosed password",
		},
		PaymentChangePhrases: []string{
			"updated bank",
			"new bank",
			"changed bank",
			"new account details",
			"updated account details",
			"updated payment details",
			"new payment info",
			"update your records",
			"revised wire instructions",
			"new wiring instructions",
			"please use the new account",
			"send to this account instead",
			"new routing number",
			"updated routing number",
			"payment details have changed",
			"wire to the following",
			"remit to",
			"send funds to",
		},
		// A payment-change phrase alone is weak; it must co-occur with at
		// least one banking token before the signal fires.
		BankingTokens: []string{
			"routing number",
			"account number",
			"aba",
			"swift",
			"iban",
			"beneficiary",
			"bank account",
			"wire transfer",
			"wire instructions",
			"bank details",
		},
		SecrecyPhrases: []string{
			"keep this confidential",
			"between us",
			"do not tell",
			"dont tell",
			"don't tell",
			"handle personally",
			"urgent and confidential",
			"keep this quiet",
			"off the record",
			"private matter",
			"do not share",
			"do not discuss",
		},
		// Platforms with almost no legitimate reason to appear in
		// professional transactional email.
		SuspiciousHostingDomains: []string{
			"netlify.app",
			"vercel.app",
			"github.io",
			"pages.dev",
			"firebaseapp.com",
			"web.app",
			"workers.dev",
			"glitch.me",
			"replit.app",
			"repl.co",
			"herokuapp.com",
			"bitbucket.io",
			"surge.sh",
			"ngrok-free.app",
			"ngrok.io",
			"webhook.site",
			"pipedream.net",
			"kesug.com",
			"wuaze.com",
			"rf.gd",
			"my-board.org",
			"blogspot.com",
			"weebly.com",
			"000webhostapp.com",
			"infinityfreeapp.com",
		},
		// Frequently abused but also extremely common in business, so a link
		// here is only corroborating evidence, never sufficient on its own.
		LegitPlatformDomains: []string{
			"drive.google.com",
			"docs.google.com",
			"storage.googleapis.com",
			"googleusercontent.com",
			"sharepoint.com",
			"onedrive.live.com",
			"1drv.ms",
			"dropbox.com",
			"dropboxusercontent.com",
			"box.com",
			"app.box.com",
		},
		// Shared infrastructure that shows up as trackers/widgets in
		// legitimate mail; excluded from sender/link mismatch.
		InfrastructureDomains: []string{
			"google.com",
			"gstatic.com",
			"googleapis.com",
			"microsoft.com",
			"office.com",
			"outlook.com",
			"live.com",
			"cloudflare.com",
			"akamai.net",
			"amazonaws.com",
			"azurewebsites.net",
			"doubleclick.net",
			"googlesyndication.com",
			"googleadservices.com",
			"facebook.com",
			"fbcdn.net",
			"twitter.com",
			"linkedin.com",
		},
		Extensions: ExtensionTable{
			Archive:      []string{".zip", ".rar", ".7z", ".tar", ".gz"},
			DiskImage:    []string{".iso", ".img", ".dmg"},
			Executable:   []string{".exe", ".scr", ".bat", ".cmd", ".ps1", ".vbs", ".js", ".hta", ".msi", ".com", ".pif"},
			MacroCapable: []string{".xlsm", ".docm", ".pptm", ".xlam", ".dotm"},
			HTML:         []string{".html", ".htm", ".mhtml", ".svg"},
		},
		Suppression: map[domain.PatternID][]string{
			domain.PatternCredentialHarvesting: {
				domain.WarningPhishingUrgency,
			},
			domain.PatternBrandFreeHosting: {
				domain.WarningBrandImpersonation,
				domain.WarningPhishingUrgency,
			},
			domain.PatternHTMLAttachmentTrap: {
				domain.WarningPhishingUrgency,
				domain.WarningBrandImpersonation,
			},
			domain.PatternDangerousAttachment: {
				domain.WarningWireFraud,
				domain.WarningPhishingUrgency,
			},
			domain.PatternPaymentRedirect: {
				domain.WarningReplyToMismatch,
				domain.WarningOnBehalfOf,
				domain.WarningWireFraud,
				domain.WarningPhishingUrgency,
			},
		},
	}
}
