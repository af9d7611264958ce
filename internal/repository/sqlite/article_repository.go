package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"inkwell/internal/apperr"
	"inkwell/internal/domain"
	"inkwell/internal/repository"
)

const createArticlesTable = `
CREATE TABLE IF NOT EXISTS articles (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	content TEXT NOT NULL DEFAULT '',
	owner_id TEXT NOT NULL,
	tags TEXT NOT NULL DEFAULT '[]',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	FOREIGN KEY(owner_id) REFERENCES users(id)
);
CREATE INDEX IF NOT EXISTS idx_articles_updated_at ON articles(updated_at);
`

type ArticleRepository struct {
	db *sql.DB
}

func NewArticleRepository(db *sql.DB) repository.ArticleRepository {
	return &ArticleRepository{db: db}
}

func (r *ArticleRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createArticlesTable); err != nil {
		return fmt.Errorf("create articles table: %w", err)
	}
	return nil
}

func (r *ArticleRepository) Create(ctx context.Context, article *domain.Article) error {
	now := time.Now().UTC()
	if article.ID == "" {
		article.ID = uuid.NewString()
	}
	article.CreatedAt = now
	article.UpdatedAt = now

	tags, err := encodeTags(article.Tags)
	if err != nil {
		return err
	}

	if _, err := r.db.ExecContext(ctx, `
INSERT INTO articles (id, title, content, owner_id, tags, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		article.ID,
		article.Title,
		article.Content,
		article.OwnerID,
		tags,
		article.CreatedAt,
		article.UpdatedAt,
	); err != nil {
		return fmt.Errorf("insert article: %w", err)
	}
	return nil
}

func (r *ArticleRepository) Get(ctx context.Context, id string) (*domain.Article, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, title, content, owner_id, tags, created_at, updated_at
FROM articles
WHERE id = ?`,
		id,
	)
	return scanArticle(row)
}

func (r *ArticleRepository) Search(ctx context.Context, term string, limit int) ([]domain.Article, error) {
	query := `
SELECT id, title, content, owner_id, tags, created_at, updated_at
FROM articles`
	args := []any{}
	if term != "" {
		query += `
WHERE instr(lower(title), lower(?)) > 0 OR instr(lower(content), lower(?)) > 0`
		args = append(args, term, term)
	}
	query += `
ORDER BY updated_at DESC
LIMIT ?`
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query articles: %w", err)
	}
	defer rows.Close()

	var articles []domain.Article
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, *article)
	}
	return articles, rows.Err()
}

func (r *ArticleRepository) Update(ctx context.Context, article *domain.Article) error {
	article.UpdatedAt = time.Now().UTC()

	tags, err := encodeTags(article.Tags)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
UPDATE articles
SET title=?, content=?, tags=?, updated_at=?
WHERE id=?`,
		article.Title,
		article.Content,
		tags,
		article.UpdatedAt,
		article.ID,
	)
	if err != nil {
		return fmt.Errorf("update article: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("article %s: %w", article.ID, apperr.ErrNotFound)
	}
	return nil
}

func (r *ArticleRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM articles WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("article %s: %w", id, apperr.ErrNotFound)
	}
	return nil
}

func scanArticle(row interface {
	Scan(dest ...any) error
}) (*domain.Article, error) {
	var (
		article domain.Article
		tags    string
	)
	if err := row.Scan(
		&article.ID,
		&article.Title,
		&article.Content,
		&article.OwnerID,
		&tags,
		&article.CreatedAt,
		&article.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("article: %w", apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("scan article: %w", err)
	}
	if err := json.Unmarshal([]byte(tags), &article.Tags); err != nil {
		return nil, fmt.Errorf("decode article tags: %w", err)
	}
	return &article, nil
}

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	raw, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("encode article tags: %w", err)
	}
	return string(raw), nil
}
