package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/internal/apperr"
	"inkwell/internal/domain"
	"inkwell/internal/repository"
)

func createTestUser(t *testing.T, users repository.UserRepository, email string, role domain.Role) *domain.User {
	t.Helper()
	user := &domain.User{
		Name:         email,
		Email:        email,
		PasswordHash: "x",
		Role:         role,
	}
	require.NoError(t, users.Create(context.Background(), user))
	return user
}

func TestCreateArticleSetsOwner(t *testing.T) {
	_, users, articles := openTestDB(t)
	svc := NewArticleService(articles)
	owner := createTestUser(t, users, "owner@example.com", domain.RoleEditor)

	article, err := svc.Create(context.Background(), owner, "Go sqlite notes", "some content", []string{"go", "sqlite"})
	require.NoError(t, err)

	assert.NotEmpty(t, article.ID)
	assert.Equal(t, owner.ID, article.OwnerID)
	assert.Equal(t, []string{"go", "sqlite"}, article.Tags)

	fetched, err := svc.Get(context.Background(), article.ID)
	require.NoError(t, err)
	assert.Equal(t, article.Title, fetched.Title)
	assert.Equal(t, article.Content, fetched.Content)
	assert.Equal(t, article.Tags, fetched.Tags)
	assert.Equal(t, article.OwnerID, fetched.OwnerID)
}

func TestCreateArticleRequiresTitle(t *testing.T) {
	_, users, articles := openTestDB(t)
	svc := NewArticleService(articles)
	owner := createTestUser(t, users, "owner@example.com", domain.RoleEditor)

	_, err := svc.Create(context.Background(), owner, "   ", "content", nil)
	var vErr *apperr.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestGetArticleIDValidation(t *testing.T) {
	_, _, articles := openTestDB(t)
	svc := NewArticleService(articles)

	_, err := svc.Get(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, apperr.ErrInvalidID)

	_, err = svc.Get(context.Background(), "2d40a9fb-6c52-4f0e-9a5e-000000000000")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUpdateArticleOwnership(t *testing.T) {
	_, users, articles := openTestDB(t)
	svc := NewArticleService(articles)
	owner := createTestUser(t, users, "owner@example.com", domain.RoleEditor)
	stranger := createTestUser(t, users, "stranger@example.com", domain.RoleEditor)
	admin := createTestUser(t, users, "admin@example.com", domain.RoleAdmin)

	article, err := svc.Create(context.Background(), owner, "original", "original content", nil)
	require.NoError(t, err)

	title := "hijacked"
	_, err = svc.Update(context.Background(), stranger, article.ID, ArticleUpdate{Title: &title})
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	unchanged, err := svc.Get(context.Background(), article.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", unchanged.Title, "rejected update must not modify the record")

	adminTitle := "admin edit"
	updated, err := svc.Update(context.Background(), admin, article.ID, ArticleUpdate{Title: &adminTitle})
	require.NoError(t, err)
	assert.Equal(t, "admin edit", updated.Title)
	assert.Equal(t, owner.ID, updated.OwnerID, "owner never changes")
}

func TestUpdateArticlePartialFields(t *testing.T) {
	_, users, articles := openTestDB(t)
	svc := NewArticleService(articles)
	owner := createTestUser(t, users, "owner@example.com", domain.RoleEditor)

	article, err := svc.Create(context.Background(), owner, "title", "content", []string{"a"})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), owner, article.ID, ArticleUpdate{})
	var vErr *apperr.ValidationError
	require.ErrorAs(t, err, &vErr, "update with no fields is rejected")

	empty := ""
	updated, err := svc.Update(context.Background(), owner, article.ID, ArticleUpdate{Content: &empty})
	require.NoError(t, err)
	assert.Equal(t, "title", updated.Title, "absent field stays untouched")
	assert.Empty(t, updated.Content, "explicit empty content is applied")
	assert.Equal(t, []string{"a"}, updated.Tags)

	_, err = svc.Update(context.Background(), owner, article.ID, ArticleUpdate{Title: &empty})
	assert.ErrorAs(t, err, &vErr, "title may not be blanked")

	noTags := []string{}
	updated, err = svc.Update(context.Background(), owner, article.ID, ArticleUpdate{Tags: &noTags})
	require.NoError(t, err)
	assert.Empty(t, updated.Tags)
}

func TestDeleteArticleOwnership(t *testing.T) {
	_, users, articles := openTestDB(t)
	svc := NewArticleService(articles)
	owner := createTestUser(t, users, "owner@example.com", domain.RoleEditor)
	stranger := createTestUser(t, users, "stranger@example.com", domain.RoleViewer)
	admin := createTestUser(t, users, "admin@example.com", domain.RoleAdmin)

	mine, err := svc.Create(context.Background(), owner, "mine", "content", nil)
	require.NoError(t, err)
	other, err := svc.Create(context.Background(), owner, "other", "content", nil)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(context.Background(), stranger, mine.ID), apperr.ErrForbidden)

	require.NoError(t, svc.Delete(context.Background(), owner, mine.ID))
	_, err = svc.Get(context.Background(), mine.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	// Admin may delete an article it does not own.
	require.NoError(t, svc.Delete(context.Background(), admin, other.ID))

	err = svc.Delete(context.Background(), owner, "garbage-id")
	assert.ErrorIs(t, err, apperr.ErrInvalidID)
}

func TestListArticlesSearchAndOrder(t *testing.T) {
	_, users, articles := openTestDB(t)
	svc := NewArticleService(articles)
	owner := createTestUser(t, users, "owner@example.com", domain.RoleEditor)

	first, err := svc.Create(context.Background(), owner, "Brewing Coffee", "a guide to pour-over", nil)
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	_, err = svc.Create(context.Background(), owner, "Tea ceremonies", "all about COFFEE alternatives", nil)
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	_, err = svc.Create(context.Background(), owner, "Gardening", "tomatoes and soil", nil)
	require.NoError(t, err)

	// Case-insensitive match over both title and content.
	matches, err := svc.List(context.Background(), "coffee")
	require.NoError(t, err)
	require.Len(t, matches, 2)

	all, err := svc.List(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Gardening", all[0].Title, "newest updated first")

	// Touching the oldest article moves it to the front.
	content := "now with espresso"
	_, err = svc.Update(context.Background(), owner, first.ID, ArticleUpdate{Content: &content})
	require.NoError(t, err)

	all, err = svc.List(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, first.ID, all[0].ID)

	none, err := svc.List(context.Background(), "zeppelin")
	require.NoError(t, err)
	assert.Empty(t, none)
}
