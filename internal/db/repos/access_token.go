package repos

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/agoralabs/agora/internal/db/models"
)

// AccessTokenRepository handles database operations for bearer credentials
type AccessTokenRepository struct {
	db *gorm.DB
}

// NewAccessTokenRepository creates a new access token repository instance
func NewAccessTokenRepository(db *gorm.DB) *AccessTokenRepository {
	return &AccessTokenRepository{db: db}
}

// Create persists a new token row. Only the hash of the secret is stored.
func (r *AccessTokenRepository) Create(ctx context.Context, token *models.AccessToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

// GetByHash retrieves a token by the hash of its raw secret
func (r *AccessTokenRepository) GetByHash(ctx context.Context, hash string) (*models.AccessToken, error) {
	var token models.AccessToken
	err := r.db.WithContext(ctx).Where("token_hash = ?", hash).First(&token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("token not found: %w", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get token: %w", err)
	}
	return &token, nil
}

// Revoke sets the revocation timestamp on a token owned by the given user.
// The update is scoped to the owner, so a token belonging to someone else is
// indistinguishable from a missing one. Revoking twice keeps the first
// timestamp and still reports success.
func (r *AccessTokenRepository) Revoke(ctx context.Context, tokenID, ownerID uint, now time.Time) error {
	res := r.db.WithContext(ctx).Model(&models.AccessToken{}).
		Where("id = ? AND user_id = ?", tokenID, ownerID).
		Update("revoked_at", gorm.Expr("COALESCE(revoked_at, ?)", now))
	if res.Error != nil {
		return fmt.Errorf("failed to revoke token: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("token not found: %w", gorm.ErrRecordNotFound)
	}
	return nil
}

// ListByUser retrieves all tokens owned by the given user
func (r *AccessTokenRepository) ListByUser(ctx context.Context, userID uint, opts *models.ListOptions) ([]models.AccessToken, error) {
	limit := models.DefaultLimit
	offset := 0
	if opts != nil {
		if opts.Limit > 0 {
			limit = opts.Limit
		}
		offset = opts.Offset
	}
	var tokens []models.AccessToken
	err := r.db.WithContext(ctx).Model(&models.AccessToken{}).
		Where("user_id = ?", userID).
		Limit(limit).Offset(offset).
		Order("created_at DESC").
		Find(&tokens).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list tokens: %w", err)
	}
	return tokens, nil
}
