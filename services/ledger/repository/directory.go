package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/piresc/ledgersync/internal/pkg/models"
)

const userColumns = `id, user_name, COALESCE(email, '') AS email, state, COALESCE(wallet_address, '') AS wallet_address`

// DirectoryRepo looks up users and articles owned by the content side of the platform
type DirectoryRepo struct {
	cfg *models.Config
	db  *sqlx.DB
}

// NewDirectoryRepository creates a new directory repository
func NewDirectoryRepository(cfg *models.Config, db *sqlx.DB) *DirectoryRepo {
	return &DirectoryRepo{cfg: cfg, db: db}
}

// UserByID retrieves a user by ID
func (r *DirectoryRepo) UserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, notFound("user", id, err)
	}
	return &user, nil
}

// UserByAddress retrieves the user owning a wallet address, ignoring checksum case
func (r *DirectoryRepo) UserByAddress(ctx context.Context, address string) (*models.User, error) {
	var user models.User
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(wallet_address) = LOWER($1)`
	if err := r.db.GetContext(ctx, &user, query, address); err != nil {
		return nil, notFound("user with wallet", address, err)
	}
	return &user, nil
}

// ArticleByID retrieves an article by ID
func (r *DirectoryRepo) ArticleByID(ctx context.Context, id string) (*models.Article, error) {
	var article models.Article
	query := `SELECT id, author_id, data_hash, title FROM articles WHERE id = $1`
	if err := r.db.GetContext(ctx, &article, query, id); err != nil {
		return nil, notFound("article", id, err)
	}
	return &article, nil
}

// ArticleByContentID retrieves the latest article by authorID published under contentID
func (r *DirectoryRepo) ArticleByContentID(ctx context.Context, contentID, authorID string) (*models.Article, error) {
	var article models.Article
	query := `
		SELECT id, author_id, data_hash, title
		FROM articles
		WHERE data_hash = $1 AND author_id = $2
		ORDER BY created_at DESC
		LIMIT 1
	`
	if err := r.db.GetContext(ctx, &article, query, contentID, authorID); err != nil {
		return nil, notFound("article with content", contentID, err)
	}
	return &article, nil
}
