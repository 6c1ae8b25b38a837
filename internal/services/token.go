package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/agoralabs/agora/internal/db/models"
	"github.com/agoralabs/agora/internal/db/repos"
)

const (
	// tokenPrefix marks raw secrets so leaked values can be recognized in scans
	tokenPrefix = "agora_"
	// tokenBytes is the length of the random secret, 256 bits
	tokenBytes = 32

	// DefaultTokenTTLDays is the token lifetime when the caller does not pick one
	DefaultTokenTTLDays = 90
	// MaxTokenTTLDays caps the token lifetime
	MaxTokenTTLDays = 365
)

// Token provides the credential lifecycle for machine-to-machine calls
type Token struct {
	repo *repos.AccessTokenRepository
}

// NewTokenService creates a new token service instance
func NewTokenService(repo *repos.AccessTokenRepository) *Token {
	return &Token{repo: repo}
}

// HashToken computes the stored one-way hash of a raw bearer secret
func HashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// Issue generates a new bearer credential for the user and persists its hash.
// The raw secret is returned exactly once and is never stored or logged.
func (s *Token) Issue(ctx context.Context, userID uint, name string, ttlDays int) (string, *models.AccessToken, error) {
	if name == "" {
		return "", nil, fmt.Errorf("%w: token name is required", ErrInvalidInput)
	}
	if ttlDays < 0 || ttlDays > MaxTokenTTLDays {
		return "", nil, fmt.Errorf("%w: ttl_days must be between 0 and %d, 0 selects the default", ErrInvalidInput, MaxTokenTTLDays)
	}
	if ttlDays == 0 {
		ttlDays = DefaultTokenTTLDays
	}

	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}
	raw := tokenPrefix + hex.EncodeToString(buf)

	token := &models.AccessToken{
		UserID:    userID,
		Name:      name,
		TokenHash: HashToken(raw),
		ExpiresAt: time.Now().UTC().AddDate(0, 0, ttlDays),
	}
	if err := s.repo.Create(ctx, token); err != nil {
		return "", nil, errors.Join(ErrPersistence, err)
	}
	return raw, token, nil
}

// Verify resolves a presented raw secret to its owning token row. Unknown and
// malformed secrets fail with the same opaque ErrUnauthorized; expired and
// revoked tokens are reported distinctly since both require the token to have
// existed.
func (s *Token) Verify(ctx context.Context, raw string) (*models.AccessToken, error) {
	if raw == "" {
		return nil, ErrUnauthorized
	}
	token, err := s.repo.GetByHash(ctx, HashToken(raw))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, errors.Join(ErrPersistence, err)
	}
	if token.Revoked() {
		return nil, ErrTokenRevoked
	}
	if token.Expired(time.Now().UTC()) {
		return nil, ErrTokenExpired
	}
	return token, nil
}

// Revoke logically destroys a token owned by the caller. Tokens belonging to
// other users are reported as not found so their existence cannot be probed.
func (s *Token) Revoke(ctx context.Context, tokenID, ownerID uint) error {
	err := s.repo.Revoke(ctx, tokenID, ownerID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return errors.Join(ErrPersistence, err)
	}
	return nil
}

// List returns the caller's tokens, hashes excluded by the model's JSON shape
func (s *Token) List(ctx context.Context, userID uint, opts *models.ListOptions) ([]models.AccessToken, error) {
	tokens, err := s.repo.ListByUser(ctx, userID, opts)
	if err != nil {
		return nil, errors.Join(ErrPersistence, err)
	}
	return tokens, nil
}
