package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/phishguard/pattern-engine/internal/domain"
)

// PostgresStore implements ports.Storage for PostgreSQL
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new PostgreSQL storage instance
func NewPostgresStore(connStr string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Connection pool settings; in production set based on workload
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	return &PostgresStore{db: db}, nil
}

// Close closes the database connection
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// InitSchema creates database tables if they don't exist.
// In production, use proper migration tooling.
func (s *PostgresStore) InitSchema() error {
	schema := `
	-- ============================================================================
	-- EMAILS TABLE
	-- ============================================================================
	-- Stores email content for analysis.
	--
	-- Simplifications:
	-- 1. attachments and headers as JSONB: both are always read alongside the
	--    email, never queried independently in this prototype.
	-- 2. Full body stored inline; production would offload large bodies to
	--    object storage and keep a preview column in the hot table.
	CREATE TABLE IF NOT EXISTS emails (
		id UUID PRIMARY KEY,
		tenant_id UUID NOT NULL,
		provider_message_id VARCHAR(255) NOT NULL,
		subject TEXT,
		sender_email VARCHAR(254) NOT NULL,
		sender_name VARCHAR(100),
		recipient_email VARCHAR(254) NOT NULL,
		received_at TIMESTAMP NOT NULL,
		attachments JSONB,
		body TEXT,
		headers JSONB,
		ingested_at TIMESTAMP NOT NULL DEFAULT NOW(),
		processed_at TIMESTAMP,
		UNIQUE(tenant_id, provider_message_id)
	);

	-- Backs GetUnprocessedEmails
	CREATE INDEX IF NOT EXISTS idx_emails_unprocessed ON emails(ingested_at) WHERE processed_at IS NULL;
	-- Fraud investigation: all emails from one sender
	CREATE INDEX IF NOT EXISTS idx_emails_sender ON emails(tenant_id, sender_email);

	-- ============================================================================
	-- EVALUATIONS TABLE
	-- ============================================================================
	-- One row per engine run. The full EngineResult (final warnings, matched
	-- patterns with evidence, suppressed warnings) is kept as JSONB for audit;
	-- pattern_count and severity are denormalized for the dashboard query.
	CREATE TABLE IF NOT EXISTS evaluations (
		id UUID PRIMARY KEY,
		email_id UUID REFERENCES emails(id) ON DELETE CASCADE,
		pattern_count INT NOT NULL,
		severity VARCHAR(10),
		silent_mode BOOLEAN NOT NULL,
		runtime_ms DOUBLE PRECISION NOT NULL,
		result JSONB NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT NOW()
	);

	-- Backs GetFlaggedEvaluations
	CREATE INDEX IF NOT EXISTS idx_evaluations_flagged ON evaluations(created_at DESC) WHERE pattern_count > 0;
	CREATE INDEX IF NOT EXISTS idx_evaluations_email ON evaluations(email_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// CreateEmail inserts a new email
func (s *PostgresStore) CreateEmail(ctx context.Context, email *domain.Email) error {
	attachmentsJSON, err := json.Marshal(email.Attachments)
	if err != nil {
		return fmt.Errorf("failed to marshal attachments: %w", err)
	}
	headersJSON, err := json.Marshal(email.Headers)
	if err != nil {
		return fmt.Errorf("failed to marshal headers: %w", err)
	}

	query := `
		INSERT INTO emails (id, tenant_id, provider_message_id, subject, sender_email,
			sender_name, recipient_email, received_at, attachments, body, headers, ingested_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (tenant_id, provider_message_id) DO NOTHING
	`
	_, err = s.db.ExecContext(ctx, query,
		email.ID, email.TenantID, email.ProviderMessageID, email.Subject,
		email.SenderEmail, email.SenderName, email.RecipientEmail, email.ReceivedAt,
		attachmentsJSON, email.Body, headersJSON, email.IngestedAt,
	)
	return err
}

// GetEmail retrieves an email by ID
func (s *PostgresStore) GetEmail(ctx context.Context, id uuid.UUID) (*domain.Email, error) {
	query := `
		SELECT id, tenant_id, provider_message_id, subject, sender_email, sender_name,
			recipient_email, received_at, attachments, body, headers, ingested_at, processed_at
		FROM emails
		WHERE id = $1
	`
	email, err := scanEmail(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return email, err
}

// GetUnprocessedEmails retrieves emails that have not been evaluated yet
func (s *PostgresStore) GetUnprocessedEmails(ctx context.Context, limit int) ([]domain.Email, error) {
	query := `
		SELECT id, tenant_id, provider_message_id, subject, sender_email, sender_name,
			recipient_email, received_at, attachments, body, headers, ingested_at, processed_at
		FROM emails
		WHERE processed_at IS NULL
		ORDER BY ingested_at
		LIMIT $1
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var emails []domain.Email
	for rows.Next() {
		email, err := scanEmail(rows)
		if err != nil {
			return nil, err
		}
		emails = append(emails, *email)
	}
	return emails, rows.Err()
}

// MarkEmailProcessed stamps an email as evaluated
func (s *PostgresStore) MarkEmailProcessed(ctx context.Context, emailID uuid.UUID) error {
	query := `UPDATE emails SET processed_at = NOW() WHERE id = $1`
	_, err := s.db.ExecContext(ctx, query, emailID)
	return err
}

// CreateEvaluation inserts an engine evaluation record
func (s *PostgresStore) CreateEvaluation(ctx context.Context, evaluation *domain.Evaluation) error {
	resultJSON, err := json.Marshal(evaluation.Result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	severity := ""
	if n := len(evaluation.Result.MatchedPatterns); n > 0 {
		severity = string(topConfidence(evaluation.Result))
	}

	query := `
		INSERT INTO evaluations (id, email_id, pattern_count, severity, silent_mode, runtime_ms, result, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = s.db.ExecContext(ctx, query,
		evaluation.ID, evaluation.EmailID, len(evaluation.Result.MatchedPatterns),
		severity, evaluation.Result.SilentMode,
		float64(evaluation.Result.Runtime)/float64(time.Millisecond),
		resultJSON, evaluation.CreatedAt,
	)
	return err
}

// GetFlaggedEvaluations retrieves recent evaluations where patterns matched
func (s *PostgresStore) GetFlaggedEvaluations(ctx context.Context, limit int) ([]domain.Evaluation, error) {
	query := `
		SELECT id, email_id, result, created_at
		FROM evaluations
		WHERE pattern_count > 0
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var evaluations []domain.Evaluation
	for rows.Next() {
		var ev domain.Evaluation
		var resultJSON []byte
		if err := rows.Scan(&ev.ID, &ev.EmailID, &resultJSON, &ev.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(resultJSON, &ev.Result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal result: %w", err)
		}
		evaluations = append(evaluations, ev)
	}
	return evaluations, rows.Err()
}

// rowScanner abstracts sql.Row and sql.Rows for shared scanning
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEmail(row rowScanner) (*domain.Email, error) {
	email := &domain.Email{}
	var attachmentsJSON, headersJSON []byte

	err := row.Scan(
		&email.ID, &email.TenantID, &email.ProviderMessageID, &email.Subject,
		&email.SenderEmail, &email.SenderName, &email.RecipientEmail, &email.ReceivedAt,
		&attachmentsJSON, &email.Body, &headersJSON, &email.IngestedAt, &email.ProcessedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(attachmentsJSON) > 0 {
		if err := json.Unmarshal(attachmentsJSON, &email.Attachments); err != nil {
			return nil, fmt.Errorf("failed to unmarshal attachments: %w", err)
		}
	}
	if len(headersJSON) > 0 {
		if err := json.Unmarshal(headersJSON, &email.Headers); err != nil {
			return nil, fmt.Errorf("failed to unmarshal headers: %w", err)
		}
	}
	return email, nil
}

// topConfidence returns the highest-ranked confidence among matched patterns
func topConfidence(result domain.EngineResult) domain.Confidence {
	top := domain.ConfidenceMedium
	for _, pattern := range result.MatchedPatterns {
		if pattern.Confidence.Rank() > top.Rank() {
			top = pattern.Confidence
		}
	}
	return top
}
