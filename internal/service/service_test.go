package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"inkwell/internal/repository"
	"inkwell/internal/repository/sqlite"
)

func openTestDB(t *testing.T) (*sql.DB, repository.UserRepository, repository.ArticleRepository) {
	t.Helper()

	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	users := sqlite.NewUserRepository(db)
	require.NoError(t, users.Init(context.Background()))
	articles := sqlite.NewArticleRepository(db)
	require.NoError(t, articles.Init(context.Background()))

	return db, users, articles
}
