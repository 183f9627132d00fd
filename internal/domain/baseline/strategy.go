package baseline

import (
	"github.com/phishguard/pattern-engine/internal/domain"
)

// Strategy defines the interface that all baseline warning strategies
// implement. Each strategy inspects one aspect of the email and produces at
// most one single-signal warning; the pattern engine later combines and may
// supersede these.
//
// The Strategy pattern keeps each detection technique independently
// developed and tested, and lets the set be extended without touching
// existing strategies.
type Strategy interface {
	// Detect returns a warning when the signal is present, nil otherwise.
	Detect(email domain.Email, context *Context) *domain.Warning

	// Name returns the human-readable name of this strategy.
	Name() string
}

// Context provides shared reference data used by multiple strategies.
type Context struct {
	// InternalDomains are the organization's own domains, used to tell
	// internal from external senders.
	InternalDomains []string

	// BrandDomains are legitimate well-known domains (e.g. "microsoft.com",
	// "paypal.com") used for impersonation detection.
	BrandDomains []string
}

// NewContext creates a detection context with the provided reference data.
func NewContext(internalDomains, brandDomains []string) *Context {
	return &Context{
		InternalDomains: internalDomains,
		BrandDomains:    brandDomains,
	}
}
