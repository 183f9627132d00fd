package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/phishguard/pattern-engine/internal/domain"
)

// Storage defines the contract for persisting emails and evaluation results
type Storage interface {
	// Email operations
	CreateEmail(ctx context.Context, email *domain.Email) error
	GetEmail(ctx context.Context, id uuid.UUID) (*domain.Email, error)
	GetUnprocessedEmails(ctx context.Context, limit int) ([]domain.Email, error)
	MarkEmailProcessed(ctx context.Context, emailID uuid.UUID) error

	// Evaluation operations
	CreateEvaluation(ctx context.Context, evaluation *domain.Evaluation) error
	GetFlaggedEvaluations(ctx context.Context, limit int) ([]domain.Evaluation, error)

	// Lifecycle
	Close() error
}
