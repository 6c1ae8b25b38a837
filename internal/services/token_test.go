package services

import (
	"strings"
	"time"

	"github.com/agoralabs/agora/internal/db/models"
)

func (s *ServiceTestSuite) TestTokenIssueAndVerify() {
	user := s.createUser("alice")

	raw, token, err := s.tokens.Issue(s.ctx, user.ID, "ci", 0)
	s.Require().NoError(err)
	s.True(strings.HasPrefix(raw, "agora_"))
	s.NotEqual(raw, token.TokenHash, "raw secret must not be stored")
	s.Equal(HashToken(raw), token.TokenHash)

	// Default lifetime applies when ttl_days is zero
	s.WithinDuration(time.Now().UTC().AddDate(0, 0, DefaultTokenTTLDays), token.ExpiresAt, time.Minute)

	got, err := s.tokens.Verify(s.ctx, raw)
	s.Require().NoError(err)
	s.Equal(token.ID, got.ID)
	s.Equal(user.ID, got.UserID)
}

func (s *ServiceTestSuite) TestTokenIssueValidation() {
	user := s.createUser("alice")

	_, _, err := s.tokens.Issue(s.ctx, user.ID, "", 0)
	s.Require().ErrorIs(err, ErrInvalidInput)

	_, _, err = s.tokens.Issue(s.ctx, user.ID, "ci", -1)
	s.Require().ErrorIs(err, ErrInvalidInput)
	s.Contains(err.Error(), "between 0 and")

	_, _, err = s.tokens.Issue(s.ctx, user.ID, "ci", MaxTokenTTLDays+1)
	s.Require().ErrorIs(err, ErrInvalidInput)
	s.Contains(err.Error(), "between 0 and")
}

func (s *ServiceTestSuite) TestTokenVerifyUnknown() {
	// Unknown and malformed secrets fail identically
	_, err := s.tokens.Verify(s.ctx, "agora_deadbeef")
	s.Require().ErrorIs(err, ErrUnauthorized)

	_, err = s.tokens.Verify(s.ctx, "")
	s.Require().ErrorIs(err, ErrUnauthorized)
}

func (s *ServiceTestSuite) TestTokenVerifyRevoked() {
	user := s.createUser("alice")
	raw, token, err := s.tokens.Issue(s.ctx, user.ID, "ci", 0)
	s.Require().NoError(err)

	s.Require().NoError(s.tokens.Revoke(s.ctx, token.ID, user.ID))

	_, err = s.tokens.Verify(s.ctx, raw)
	s.Require().ErrorIs(err, ErrTokenRevoked)
}

func (s *ServiceTestSuite) TestTokenVerifyExpired() {
	user := s.createUser("alice")
	raw := "agora_expired"
	expired := &models.AccessToken{
		UserID:    user.ID,
		Name:      "old",
		TokenHash: HashToken(raw),
		ExpiresAt: time.Now().UTC().Add(-time.Hour),
	}
	s.Require().NoError(s.db.Create(expired).Error)

	_, err := s.tokens.Verify(s.ctx, raw)
	s.Require().ErrorIs(err, ErrTokenExpired)
}

func (s *ServiceTestSuite) TestTokenRevokedBeatsExpired() {
	user := s.createUser("alice")
	raw := "agora_goner"
	revokedAt := time.Now().UTC().Add(-2 * time.Hour)
	token := &models.AccessToken{
		UserID:    user.ID,
		Name:      "old",
		TokenHash: HashToken(raw),
		ExpiresAt: time.Now().UTC().Add(-time.Hour),
		RevokedAt: &revokedAt,
	}
	s.Require().NoError(s.db.Create(token).Error)

	_, err := s.tokens.Verify(s.ctx, raw)
	s.Require().ErrorIs(err, ErrTokenRevoked)
}

func (s *ServiceTestSuite) TestTokenRevokeForeign() {
	owner := s.createUser("alice")
	stranger := s.createUser("bob")
	_, token, err := s.tokens.Issue(s.ctx, owner.ID, "ci", 0)
	s.Require().NoError(err)

	err = s.tokens.Revoke(s.ctx, token.ID, stranger.ID)
	s.Require().ErrorIs(err, ErrNotFound)

	err = s.tokens.Revoke(s.ctx, 9999, owner.ID)
	s.Require().ErrorIs(err, ErrNotFound)
}

func (s *ServiceTestSuite) TestTokenList() {
	user := s.createUser("alice")
	other := s.createUser("bob")
	_, _, err := s.tokens.Issue(s.ctx, user.ID, "one", 0)
	s.Require().NoError(err)
	_, _, err = s.tokens.Issue(s.ctx, user.ID, "two", 0)
	s.Require().NoError(err)
	_, _, err = s.tokens.Issue(s.ctx, other.ID, "theirs", 0)
	s.Require().NoError(err)

	tokens, err := s.tokens.List(s.ctx, user.ID, nil)
	s.Require().NoError(err)
	s.Len(tokens, 2)
}
