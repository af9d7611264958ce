package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"inkwell/internal/apperr"
	"inkwell/internal/domain"
	"inkwell/internal/repository"
)

// listLimit caps list/search results; there is no pagination beyond it.
const listLimit = 200

// ArticleUpdate carries the fields of a partial update. A nil pointer means
// the field was absent from the request; a pointer to an empty value is an
// intentional overwrite.
type ArticleUpdate struct {
	Title   *string
	Content *string
	Tags    *[]string
}

func (u ArticleUpdate) empty() bool {
	return u.Title == nil && u.Content == nil && u.Tags == nil
}

// ArticleService coordinates article lifecycle operations and enforces
// ownership rules.
type ArticleService interface {
	Create(ctx context.Context, actor *domain.User, title, content string, tags []string) (*domain.Article, error)
	List(ctx context.Context, searchTerm string) ([]domain.Article, error)
	Get(ctx context.Context, id string) (*domain.Article, error)
	Update(ctx context.Context, actor *domain.User, id string, update ArticleUpdate) (*domain.Article, error)
	Delete(ctx context.Context, actor *domain.User, id string) error
}

type articleService struct {
	articles repository.ArticleRepository
}

func NewArticleService(articles repository.ArticleRepository) ArticleService {
	return &articleService{articles: articles}
}

func (s *articleService) Create(ctx context.Context, actor *domain.User, title, content string, tags []string) (*domain.Article, error) {
	if strings.TrimSpace(title) == "" {
		return nil, apperr.Validation("title is required")
	}

	article := &domain.Article{
		Title:   title,
		Content: content,
		OwnerID: actor.ID,
		Tags:    tags,
	}

	if err := s.articles.Create(ctx, article); err != nil {
		return nil, err
	}
	return article, nil
}

func (s *articleService) List(ctx context.Context, searchTerm string) ([]domain.Article, error) {
	return s.articles.Search(ctx, searchTerm, listLimit)
}

func (s *articleService) Get(ctx context.Context, id string) (*domain.Article, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	return s.articles.Get(ctx, id)
}

func (s *articleService) Update(ctx context.Context, actor *domain.User, id string, update ArticleUpdate) (*domain.Article, error) {
	if update.empty() {
		return nil, apperr.Validation("at least one of title, content, or tags is required")
	}
	if update.Title != nil && strings.TrimSpace(*update.Title) == "" {
		return nil, apperr.Validation("title must not be empty")
	}
	if err := validateID(id); err != nil {
		return nil, err
	}

	article, err := s.articles.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canModify(actor, article) {
		return nil, apperr.ErrForbidden
	}

	if update.Title != nil {
		article.Title = *update.Title
	}
	if update.Content != nil {
		article.Content = *update.Content
	}
	if update.Tags != nil {
		article.Tags = *update.Tags
	}

	if err := s.articles.Update(ctx, article); err != nil {
		return nil, err
	}
	return article, nil
}

func (s *articleService) Delete(ctx context.Context, actor *domain.User, id string) error {
	if err := validateID(id); err != nil {
		return err
	}

	article, err := s.articles.Get(ctx, id)
	if err != nil {
		return err
	}
	if !canModify(actor, article) {
		return apperr.ErrForbidden
	}

	return s.articles.Delete(ctx, article.ID)
}

// canModify is the single ownership predicate shared by update and delete:
// the owner or an admin may mutate an article, nobody else.
func canModify(actor *domain.User, article *domain.Article) bool {
	return actor.ID == article.OwnerID || actor.Role == domain.RoleAdmin
}

func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperr.ErrInvalidID
	}
	return nil
}
