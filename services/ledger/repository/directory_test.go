package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/piresc/ledgersync/internal/pkg/models"
	"github.com/piresc/ledgersync/services/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userCols = []string{"id", "user_name", "email", "state", "wallet_address"}

func TestUserByAddress(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewDirectoryRepository(&models.Config{}, db)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE LOWER(wallet_address) = LOWER($1)")).
		WithArgs("0xAbC").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow("alice", "alice", "alice@example.com", "active", "0xabc"))

	user, err := repo.UserByAddress(context.Background(), "0xAbC")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.ID)
	assert.True(t, user.Contactable())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserByID_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewDirectoryRepository(&models.Config{}, db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = $1")).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.UserByID(context.Background(), "ghost")
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestArticleByContentID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewDirectoryRepository(&models.Config{}, db)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE data_hash = $1 AND author_id = $2")).
		WithArgs("bafy", "bob").
		WillReturnRows(sqlmock.NewRows([]string{"id", "author_id", "data_hash", "title"}).
			AddRow("article-1", "bob", "bafy", "Hello"))
	mock.ExpectQuery(regexp.QuoteMeta("FROM articles WHERE id = $1")).
		WithArgs("article-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "author_id", "data_hash", "title"}).
			AddRow("article-1", "bob", "bafy", "Hello"))

	article, err := repo.ArticleByContentID(context.Background(), "bafy", "bob")
	require.NoError(t, err)
	assert.Equal(t, "article-1", article.ID)

	article, err = repo.ArticleByID(context.Background(), "article-1")
	require.NoError(t, err)
	assert.Equal(t, "bafy", article.DataHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}
