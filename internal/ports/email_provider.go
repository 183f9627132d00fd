package ports

import (
	"context"
	"time"

	"github.com/phishguard/pattern-engine/internal/domain"
)

// EmailProvider defines the contract for fetching emails from external
// mail hosts. Retrieval is an external collaborator: the engine never
// reaches the network, so implementations materialize everything it needs
// (body, headers, attachments) before analysis runs.
type EmailProvider interface {
	// GetEmails fetches emails for a tenant received after the given time.
	// receivedAfter implements incremental sync.
	GetEmails(ctx context.Context, tenant *domain.Tenant, receivedAfter time.Time) ([]domain.Email, error)
}
