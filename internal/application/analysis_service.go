package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/phishguard/pattern-engine/internal/domain"
	"github.com/phishguard/pattern-engine/internal/domain/baseline"
	"github.com/phishguard/pattern-engine/internal/domain/engine"
	"github.com/phishguard/pattern-engine/internal/ports"
)

// Directory holds the tenant's sender-trust reference data used to derive
// the engine's sender-trust inputs.
type Directory struct {
	// KnownContacts are addresses the recipient has corresponded with.
	KnownContacts []string
	// TrustedDomains are explicitly trusted sender domains.
	TrustedDomains []string
}

// IsKnownContact reports whether the sender address is a known contact.
func (d Directory) IsKnownContact(senderEmail string) bool {
	sender := strings.ToLower(senderEmail)
	for _, contact := range d.KnownContacts {
		if sender == strings.ToLower(contact) {
			return true
		}
	}
	return false
}

// IsTrustedDomain reports whether the sender domain is explicitly trusted.
func (d Directory) IsTrustedDomain(senderDomain string) bool {
	for _, trusted := range d.TrustedDomains {
		if senderDomain == strings.ToLower(trusted) {
			return true
		}
	}
	return false
}

// AnalysisService orchestrates ingestion, baseline detection and the
// pattern engine, and persists each evaluation.
type AnalysisService struct {
	storage  ports.Storage
	baseline *baseline.Detector
	engine   *engine.Engine

	// Provider registry maps domain.Provider to an EmailProvider
	// implementation, selecting per tenant without switch statements.
	providers map[domain.Provider]ports.EmailProvider

	directory Directory
	logger    *zap.Logger
}

// NewAnalysisService creates an analysis service with dependency injection
func NewAnalysisService(
	storage ports.Storage,
	baselineDetector *baseline.Detector,
	patternEngine *engine.Engine,
	providers map[domain.Provider]ports.EmailProvider,
	directory Directory,
	logger *zap.Logger,
) *AnalysisService {
	return &AnalysisService{
		storage:   storage,
		baseline:  baselineDetector,
		engine:    patternEngine,
		providers: providers,
		directory: directory,
		logger:    logger,
	}
}

// IngestEmailsForTenant fetches emails from the tenant's provider and
// stores them.
//
// Error handling: individual email failures are logged and skipped so one
// bad message doesn't halt the batch; only provider-level failures return
// an error.
func (s *AnalysisService) IngestEmailsForTenant(ctx context.Context, tenant *domain.Tenant) error {
	s.logger.Info("ingesting emails",
		zap.String("tenant", tenant.Name),
		zap.String("provider", string(tenant.Provider)),
	)

	provider, ok := s.providers[tenant.Provider]
	if !ok {
		return fmt.Errorf("unsupported provider: %s", tenant.Provider)
	}

	receivedAfter := time.Now().Add(-7 * 24 * time.Hour)
	emails, err := provider.GetEmails(ctx, tenant, receivedAfter)
	if err != nil {
		return fmt.Errorf("failed to fetch emails: %w", err)
	}

	stored := 0
	for i := range emails {
		emails[i].TenantID = tenant.ID
		if err := s.storage.CreateEmail(ctx, &emails[i]); err != nil {
			s.logger.Warn("failed to store email",
				zap.String("provider_message_id", emails[i].ProviderMessageID),
				zap.Error(err),
			)
			continue
		}
		stored++
	}

	s.logger.Info("ingestion complete", zap.Int("emails", stored))
	return nil
}

// ProcessUnprocessedEmails runs baseline detection and the pattern engine
// on every unprocessed email.
//
// Processing guarantees: emails are processed at-least-once (a failed
// evaluation leaves the email unprocessed), and individual failures don't
// block the batch.
func (s *AnalysisService) ProcessUnprocessedEmails(ctx context.Context) error {
	emails, err := s.storage.GetUnprocessedEmails(ctx, 100)
	if err != nil {
		return fmt.Errorf("failed to fetch unprocessed emails: %w", err)
	}

	s.logger.Info("processing emails", zap.Int("count", len(emails)))

	for _, email := range emails {
		result := s.AnalyzeEmail(email)

		evaluation := &domain.Evaluation{
			ID:        uuid.New(),
			EmailID:   email.ID,
			Result:    result,
			CreatedAt: time.Now(),
		}
		if err := s.storage.CreateEvaluation(ctx, evaluation); err != nil {
			s.logger.Warn("failed to store evaluation",
				zap.String("email_id", email.ID.String()),
				zap.Error(err),
			)
			continue
		}
		if err := s.storage.MarkEmailProcessed(ctx, email.ID); err != nil {
			s.logger.Warn("failed to mark email processed",
				zap.String("email_id", email.ID.String()),
				zap.Error(err),
			)
		}

		if len(result.MatchedPatterns) > 0 {
			s.logger.Info("phishing patterns matched",
				zap.String("email_id", email.ID.String()),
				zap.String("subject", email.Subject),
				zap.Int("patterns", len(result.MatchedPatterns)),
				zap.Int("suppressed", len(result.SuppressedWarnings)),
			)
		}
	}
	return nil
}

// AnalyzeEmail runs the full decision pipeline on one email: baseline
// single-signal detection, then the pattern engine.
func (s *AnalysisService) AnalyzeEmail(email domain.Email) domain.EngineResult {
	upstream := s.baseline.Analyze(email)
	return s.engine.Evaluate(s.buildEmailContext(email), upstream)
}

// buildEmailContext derives the engine's input from a stored email plus
// the tenant directory.
func (s *AnalysisService) buildEmailContext(email domain.Email) domain.EmailContext {
	senderDomain := ""
	if parts := strings.Split(email.SenderEmail, "@"); len(parts) == 2 {
		senderDomain = strings.ToLower(parts[1])
	}

	return domain.EmailContext{
		Body:            email.Body,
		SenderDomain:    senderDomain,
		Attachments:     email.Attachments,
		IsKnownContact:  s.directory.IsKnownContact(email.SenderEmail),
		IsTrustedDomain: s.directory.IsTrustedDomain(senderDomain),
	}
}

// GetFlaggedSummary returns recent evaluations where patterns matched.
func (s *AnalysisService) GetFlaggedSummary(ctx context.Context, limit int) ([]domain.Evaluation, error) {
	return s.storage.GetFlaggedEvaluations(ctx, limit)
}
