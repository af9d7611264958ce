package repository

import (
	"context"

	"inkwell/internal/domain"
)

// CompletionLogRepository stores the audit trail of AI suggestion calls.
type CompletionLogRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, entry *domain.CompletionLog) error
	ListByUser(ctx context.Context, userID string, limit int) ([]domain.CompletionLog, error)
}
