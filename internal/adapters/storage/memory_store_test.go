package storage

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phishguard/pattern-engine/internal/domain"
)

func TestMemoryStore_EmailLifecycle(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	email := domain.Email{
		ID:         uuid.New(),
		Subject:    "hello",
		IngestedAt: time.Now(),
	}
	require.NoError(t, store.CreateEmail(ctx, &email))

	got, err := store.GetEmail(ctx, email.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "hello", got.Subject)

	unprocessed, err := store.GetUnprocessedEmails(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, unprocessed, 1)

	require.NoError(t, store.MarkEmailProcessed(ctx, email.ID))
	unprocessed, err = store.GetUnprocessedEmails(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, unprocessed)
}

func TestMemoryStore_UnprocessedOrderAndLimit(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	base := time.Now()
	for i := 0; i < 3; i++ {
		require.NoError(t, store.CreateEmail(ctx, &domain.Email{
			ID:         uuid.New(),
			Subject:    string(rune('a' + i)),
			IngestedAt: base.Add(time.Duration(2-i) * time.Minute),
		}))
	}

	emails, err := store.GetUnprocessedEmails(ctx, 2)
	require.NoError(t, err)
	require.Len(t, emails, 2)
	assert.True(t, emails[0].IngestedAt.Before(emails[1].IngestedAt), "oldest first")
}

func TestMemoryStore_FlaggedEvaluations(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	clean := domain.Evaluation{ID: uuid.New(), EmailID: uuid.New(), CreatedAt: time.Now()}
	flagged := domain.Evaluation{
		ID:      uuid.New(),
		EmailID: uuid.New(),
		Result: domain.EngineResult{
			MatchedPatterns: []domain.PatternMatch{{ID: domain.PatternCredentialHarvesting}},
		},
		CreatedAt: time.Now().Add(time.Second),
	}
	require.NoError(t, store.CreateEvaluation(ctx, &clean))
	require.NoError(t, store.CreateEvaluation(ctx, &flagged))

	got, err := store.GetFlaggedEvaluations(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, flagged.ID, got[0].ID)
}
