package baseline

import (
	"fmt"

	"github.com/phishguard/pattern-engine/internal/domain"
)

// BrandImpersonationStrategy detects sender domains typosquatting known
// brand domains.
type BrandImpersonationStrategy struct{}

// NewBrandImpersonationStrategy creates a new brand impersonation strategy
func NewBrandImpersonationStrategy() *BrandImpersonationStrategy {
	return &BrandImpersonationStrategy{}
}

// Name returns the strategy name
func (s *BrandImpersonationStrategy) Name() string {
	return "Brand Impersonation"
}

// Detect checks if the sender domain is deceptively similar to a brand domain
func (s *BrandImpersonationStrategy) Detect(email domain.Email, context *Context) *domain.Warning {
	senderDomain := extractDomain(email.SenderEmail)
	if senderDomain == "" {
		return nil
	}

	for _, brandDomain := range context.BrandDomains {
		// Exact match is the legitimate sender.
		if senderDomain == brandDomain {
			continue
		}

		distance := levenshteinDistance(senderDomain, brandDomain)
		maxLen := float64(max(len(senderDomain), len(brandDomain)))
		similarity := (1.0 - float64(distance)/maxLen) * 100

		// 85% threshold catches typosquats without flagging unrelated domains.
		if similarity > 85 && similarity < 100 {
			return &domain.Warning{
				Type:     domain.WarningBrandImpersonation,
				Severity: "high",
				Message: fmt.Sprintf(
					"Sender domain '%s' is %.1f%% similar to '%s' (potential impersonation)",
					senderDomain, similarity, brandDomain,
				),
			}
		}
	}
	return nil
}
