package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/phishguard/pattern-engine/internal/domain"
)

// SQLiteStore implements ports.Storage for SQLite, for single-host
// deployments and local runs where Postgres is overkill.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite storage instance
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS emails (
		id TEXT PRIMARY KEY,
		tenant_id TEXT NOT NULL,
		provider_message_id TEXT NOT NULL,
		subject TEXT,
		sender_email TEXT NOT NULL,
		sender_name TEXT,
		recipient_email TEXT NOT NULL,
		received_at TIMESTAMP NOT NULL,
		attachments TEXT,
		body TEXT,
		headers TEXT,
		ingested_at TIMESTAMP NOT NULL,
		processed_at TIMESTAMP,
		UNIQUE(tenant_id, provider_message_id)
	);

	CREATE TABLE IF NOT EXISTS evaluations (
		id TEXT PRIMARY KEY,
		email_id TEXT REFERENCES emails(id) ON DELETE CASCADE,
		pattern_count INTEGER NOT NULL,
		severity TEXT,
		silent_mode BOOLEAN NOT NULL,
		runtime_ms REAL NOT NULL,
		result TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_emails_unprocessed ON emails(ingested_at) WHERE processed_at IS NULL;
	CREATE INDEX IF NOT EXISTS idx_evaluations_flagged ON evaluations(created_at DESC) WHERE pattern_count > 0;
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateEmail inserts a new email
func (s *SQLiteStore) CreateEmail(ctx context.Context, email *domain.Email) error {
	attachmentsJSON, err := json.Marshal(email.Attachments)
	if err != nil {
		return fmt.Errorf("failed to marshal attachments: %w", err)
	}
	headersJSON, err := json.Marshal(email.Headers)
	if err != nil {
		return fmt.Errorf("failed to marshal headers: %w", err)
	}

	query := `
		INSERT OR IGNORE INTO emails (id, tenant_id, provider_message_id, subject, sender_email,
			sender_name, recipient_email, received_at, attachments, body, headers, ingested_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = s.db.ExecContext(ctx, query,
		email.ID.String(), email.TenantID.String(), email.ProviderMessageID, email.Subject,
		email.SenderEmail, email.SenderName, email.RecipientEmail, email.ReceivedAt,
		string(attachmentsJSON), email.Body, string(headersJSON), email.IngestedAt,
	)
	return err
}

// GetEmail retrieves an email by ID
func (s *SQLiteStore) GetEmail(ctx context.Context, id uuid.UUID) (*domain.Email, error) {
	query := `
		SELECT id, tenant_id, provider_message_id, subject, sender_email, sender_name,
			recipient_email, received_at, attachments, body, headers, ingested_at, processed_at
		FROM emails
		WHERE id = ?
	`
	email, err := scanSQLiteEmail(s.db.QueryRowContext(ctx, query, id.String()))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return email, err
}

// GetUnprocessedEmails retrieves emails that have not been evaluated yet
func (s *SQLiteStore) GetUnprocessedEmails(ctx context.Context, limit int) ([]domain.Email, error) {
	query := `
		SELECT id, tenant_id, provider_message_id, subject, sender_email, sender_name,
			recipient_email, received_at, attachments, body, headers, ingested_at, processed_at
		FROM emails
		WHERE processed_at IS NULL
		ORDER BY ingested_at
		LIMIT ?
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var emails []domain.Email
	for rows.Next() {
		email, err := scanSQLiteEmail(rows)
		if err != nil {
			return nil, err
		}
		emails = append(emails, *email)
	}
	return emails, rows.Err()
}

// MarkEmailProcessed stamps an email as evaluated
func (s *SQLiteStore) MarkEmailProcessed(ctx context.Context, emailID uuid.UUID) error {
	query := `UPDATE emails SET processed_at = ? WHERE id = ?`
	_, err := s.db.ExecContext(ctx, query, time.Now(), emailID.String())
	return err
}

// CreateEvaluation inserts an engine evaluation record
func (s *SQLiteStore) CreateEvaluation(ctx context.Context, evaluation *domain.Evaluation) error {
	resultJSON, err := json.Marshal(evaluation.Result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	severity := ""
	if len(evaluation.Result.MatchedPatterns) > 0 {
		severity = string(topConfidence(evaluation.Result))
	}

	query := `
		INSERT INTO evaluations (id, email_id, pattern_count, severity, silent_mode, runtime_ms, result, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = s.db.ExecContext(ctx, query,
		evaluation.ID.String(), evaluation.EmailID.String(),
		len(evaluation.Result.MatchedPatterns), severity, evaluation.Result.SilentMode,
		float64(evaluation.Result.Runtime)/float64(time.Millisecond),
		string(resultJSON), evaluation.CreatedAt,
	)
	return err
}

// GetFlaggedEvaluations retrieves recent evaluations where patterns matched
func (s *SQLiteStore) GetFlaggedEvaluations(ctx context.Context, limit int) ([]domain.Evaluation, error) {
	query := `
		SELECT id, email_id, result, created_at
		FROM evaluations
		WHERE pattern_count > 0
		ORDER BY created_at DESC
		LIMIT ?
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var evaluations []domain.Evaluation
	for rows.Next() {
		var ev domain.Evaluation
		var idStr, emailIDStr string
		var resultJSON []byte
		if err := rows.Scan(&idStr, &emailIDStr, &resultJSON, &ev.CreatedAt); err != nil {
			return nil, err
		}
		if ev.ID, err = uuid.Parse(idStr); err != nil {
			return nil, fmt.Errorf("invalid evaluation id: %w", err)
		}
		if ev.EmailID, err = uuid.Parse(emailIDStr); err != nil {
			return nil, fmt.Errorf("invalid email id: %w", err)
		}
		if err := json.Unmarshal(resultJSON, &ev.Result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal result: %w", err)
		}
		evaluations = append(evaluations, ev)
	}
	return evaluations, rows.Err()
}

func scanSQLiteEmail(row rowScanner) (*domain.Email, error) {
	email := &domain.Email{}
	var idStr, tenantIDStr string
	var attachmentsJSON, headersJSON []byte

	err := row.Scan(
		&idStr, &tenantIDStr, &email.ProviderMessageID, &email.Subject,
		&email.SenderEmail, &email.SenderName, &email.RecipientEmail, &email.ReceivedAt,
		&attachmentsJSON, &email.Body, &headersJSON, &email.IngestedAt, &email.ProcessedAt,
	)
	if err != nil {
		return nil, err
	}

	if email.ID, err = uuid.Parse(idStr); err != nil {
		return nil, fmt.Errorf("invalid email id: %w", err)
	}
	if email.TenantID, err = uuid.Parse(tenantIDStr); err != nil {
		return nil, fmt.Errorf("invalid tenant id: %w", err)
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
