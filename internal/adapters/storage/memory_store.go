package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phishguard/pattern-engine/internal/domain"
)

// MemoryStore is an in-memory ports.Storage implementation for local runs
// and tests.
type MemoryStore struct {
	mu          sync.RWMutex
	emails      map[uuid.UUID]domain.Email
	evaluations map[uuid.UUID]domain.Evaluation
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		emails:      make(map[uuid.UUID]domain.Email),
		evaluations: make(map[uuid.UUID]domain.Evaluation),
	}
}

// Close is a no-op for the in-memory store
func (s *MemoryStore) Close() error {
	return nil
}

// CreateEmail stores an email
func (s *MemoryStore) CreateEmail(ctx context.Context, email *domain.Email) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.emails[email.ID] = *email
	return nil
}

// GetEmail retrieves an email by ID
func (s *MemoryStore) GetEmail(ctx context.Context, id uuid.UUID) (*domain.Email, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	email, ok := s.emails[id]
	if !ok {
		return nil, nil
	}
	return &email, nil
}

// GetUnprocessedEmails retrieves emails that have not been evaluated yet
func (s *MemoryStore) GetUnprocessedEmails(ctx context.Context, limit int) ([]domain.Email, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var emails []domain.Email
	for _, email := range s.emails {
		if email.ProcessedAt == nil {
			emails = append(emails, email)
		}
	}
	sort.Slice(emails, func(i, j int) bool {
		return emails[i].IngestedAt.Before(emails[j].IngestedAt)
	})
	if len(emails) > limit {
		emails = emails[:limit]
	}
	return emails, nil
}

// MarkEmailProcessed stamps an email as evaluated
func (s *MemoryStore) MarkEmailProcessed(ctx context.Context, emailID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	email, ok := s.emails[emailID]
	if !ok {
		return nil
	}
	now := time.Now()
	email.ProcessedAt = &now
	s.emails[emailID] = email
	return nil
}

// CreateEvaluation stores an engine evaluation record
func (s *MemoryStore) CreateEvaluation(ctx context.Context, evaluation *domain.Evaluation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evaluations[evaluation.ID] = *evaluation
	return nil
}

// GetFlaggedEvaluations retrieves recent evaluations where patterns matched
func (s *MemoryStore) GetFlaggedEvaluations(ctx context.Context, limit int) ([]domain.Evaluation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var flagged []domain.Evaluation
	for _, ev := range s.evaluations {
		if len(ev.Result.MatchedPatterns) > 0 {
			flagged = append(flagged, ev)
		}
	}
	sort.Slice(flagged, func(i, j int) bool {
		return flagged[i].CreatedAt.After(flagged[j].CreatedAt)
	})
	if len(flagged) > limit {
		flagged = flagged[:limit]
	}
	return flagged, nil
}
