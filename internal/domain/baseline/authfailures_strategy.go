package baseline

import (
	"fmt"
	"strings"

	"github.com/phishguard/pattern-engine/internal/domain"
)

// AuthFailuresStrategy detects email authentication failures.
//
// SPF, DKIM and DMARC verify that mail is legitimately sent from the
// claimed domain; multiple failures indicate likely spoofing. The pattern
// engine has no rule consuming this type, so the warning always passes
// through unsuppressed.
type AuthFailuresStrategy struct{}

// NewAuthFailuresStrategy creates a new authentication failures strategy
func NewAuthFailuresStrategy() *AuthFailuresStrategy {
	return &AuthFailuresStrategy{}
}

// Name returns the strategy name
func (s *AuthFailuresStrategy) Name() string {
	return "Authentication Failures"
}

// Detect checks headers for SPF, DKIM and DMARC failures
func (s *AuthFailuresStrategy) Detect(email domain.Email, context *Context) *domain.Warning {
	failures := make([]string, 0)

	if spf, ok := email.Headers["Received-SPF"]; ok {
		if strings.Contains(strings.ToLower(spf), "fail") {
			failures = append(failures, "SPF_FAIL")
		}
	}

	if authResults, ok := email.Headers["Authentication-Results"]; ok {
		lower := strings.ToLower(authResults)
		if strings.Contains(lower, "dkim=fail") {
			failures = append(failures, "DKIM_FAIL")
		}
		if strings.Contains(lower, "dmarc=fail") {
			failures = append(failures, "DMARC_FAIL")
		}
	}

	// Legitimate misconfigurations usually affect only one protocol.
	if len(failures) < 2 {
		return nil
	}

	return &domain.Warning{
		Type:     domain.WarningAuthFailure,
		Severity: "high",
		Message:  fmt.Sprintf("Email authentication failures: %s", strings.Join(failures, ", ")),
	}
}
