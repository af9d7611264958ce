package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"inkwell/internal/domain"
	"inkwell/internal/repository"
)

const createCompletionLogsTable = `
CREATE TABLE IF NOT EXISTS completion_logs (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	prompt TEXT NOT NULL,
	response TEXT NOT NULL DEFAULT '',
	model TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL,
	FOREIGN KEY(user_id) REFERENCES users(id)
);
CREATE INDEX IF NOT EXISTS idx_completion_logs_user_id ON completion_logs(user_id);
`

type CompletionLogRepository struct {
	db *sql.DB
}

func NewCompletionLogRepository(db *sql.DB) repository.CompletionLogRepository {
	return &CompletionLogRepository{db: db}
}

func (r *CompletionLogRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createCompletionLogsTable); err != nil {
		return fmt.Errorf("create completion_logs table: %w", err)
	}
	return nil
}

func (r *CompletionLogRepository) Create(ctx context.Context, entry *domain.CompletionLog) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	entry.CreatedAt = time.Now().UTC()

	if _, err := r.db.ExecContext(ctx, `
INSERT INTO completion_logs (id, user_id, prompt, response, model, created_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.UserID,
		entry.Prompt,
		entry.Response,
		entry.Model,
		entry.CreatedAt,
	); err != nil {
		return fmt.Errorf("insert completion log: %w", err)
	}
	return nil
}

func (r *CompletionLogRepository) ListByUser(ctx context.Context, userID string, limit int) ([]domain.CompletionLog, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, user_id, prompt, response, model, created_at
FROM completion_logs
WHERE user_id=?
ORDER BY created_at DESC
LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query completion logs: %w", err)
	}
	defer rows.Close()

	var entries []domain.CompletionLog
	for rows.Next() {
		var entry domain.CompletionLog
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.Prompt, &entry.Response, &entry.Model, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan completion log: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
