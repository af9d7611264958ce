package repository

import (
	"context"

	"inkwell/internal/domain"
)

// ArticleRepository exposes persistence operations for Article records.
type ArticleRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, article *domain.Article) error
	Get(ctx context.Context, id string) (*domain.Article, error)
	// Search returns articles whose title or content contains term
	// (case-insensitive), newest-updated first, capped at limit. An empty
	// term matches everything.
	Search(ctx context.Context, term string, limit int) ([]domain.Article, error)
	Update(ctx context.Context, article *domain.Article) error
	Delete(ctx context.Context, id string) error
}
