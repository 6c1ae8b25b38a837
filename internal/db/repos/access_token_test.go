package repos

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/agoralabs/agora/internal/db/models"
)

func (s *DBRepositoryTestSuite) createTestToken(userID uint, hash string) *models.AccessToken {
	token := &models.AccessToken{
		UserID:    userID,
		Name:      "ci",
		TokenHash: hash,
		ExpiresAt: time.Now().UTC().Add(24 * time.Hour),
	}
	s.Require().NoError(s.tokenRepo.Create(s.ctx, token))
	return token
}

func (s *DBRepositoryTestSuite) TestTokenGetByHash() {
	user := s.createTestUser()
	token := s.createTestToken(user.ID, "hash-1")

	got, err := s.tokenRepo.GetByHash(s.ctx, "hash-1")
	s.Require().NoError(err)
	s.Equal(token.ID, got.ID)
	s.Equal(user.ID, got.UserID)

	_, err = s.tokenRepo.GetByHash(s.ctx, "missing")
	s.Require().Error(err)
	s.True(errors.Is(err, gorm.ErrRecordNotFound))
}

func (s *DBRepositoryTestSuite) TestTokenHashUnique() {
	user := s.createTestUser()
	s.createTestToken(user.ID, "hash-dup")

	err := s.tokenRepo.Create(s.ctx, &models.AccessToken{
		UserID:    user.ID,
		Name:      "other",
		TokenHash: "hash-dup",
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	})
	s.Require().Error(err)
}

func (s *DBRepositoryTestSuite) TestTokenRevoke() {
	user := s.createTestUser()
	token := s.createTestToken(user.ID, "hash-revoke")

	first := time.Now().UTC()
	s.Require().NoError(s.tokenRepo.Revoke(s.ctx, token.ID, user.ID, first))

	got, err := s.tokenRepo.GetByHash(s.ctx, "hash-revoke")
	s.Require().NoError(err)
	s.Require().NotNil(got.RevokedAt)
	s.True(got.Revoked())

	// A later revoke keeps the first timestamp
	s.Require().NoError(s.tokenRepo.Revoke(s.ctx, token.ID, user.ID, first.Add(time.Hour)))
	again, err := s.tokenRepo.GetByHash(s.ctx, "hash-revoke")
	s.Require().NoError(err)
	s.Require().NotNil(again.RevokedAt)
	s.WithinDuration(*got.RevokedAt, *again.RevokedAt, time.Second)
}

func (s *DBRepositoryTestSuite) TestTokenRevokeScopedToOwner() {
	owner := s.createTestUser()
	stranger := s.createTestUser()
	token := s.createTestToken(owner.ID, "hash-foreign")

	// A token belonging to someone else looks like a missing one
	err := s.tokenRepo.Revoke(s.ctx, token.ID, stranger.ID, time.Now().UTC())
	s.Require().Error(err)
	s.True(errors.Is(err, gorm.ErrRecordNotFound))

	got, err := s.tokenRepo.GetByHash(s.ctx, "hash-foreign")
	s.Require().NoError(err)
	s.Nil(got.RevokedAt)
}

func (s *DBRepositoryTestSuite) TestTokenListByUser() {
	user := s.createTestUser()
	other := s.createTestUser()
	s.createTestToken(user.ID, "hash-a")
	s.createTestToken(user.ID, "hash-b")
	s.createTestToken(other.ID, "hash-c")

	tokens, err := s.tokenRepo.ListByUser(s.ctx, user.ID, nil)
	s.Require().NoError(err)
	s.Len(tokens, 2)
	for _, token := range tokens {
		s.Equal(user.ID, token.UserID)
	}
}
