package repos

import (
	"github.com/agoralabs/agora/internal/db/models"
)

func (s *DBRepositoryTestSuite) TestUserCreateAndGet() {
	user := s.createTestUser()

	got, err := s.userRepo.GetUserByID(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Equal(user.Username, got.Username)

	got, err = s.userRepo.GetUserByUsername(s.ctx, user.Username)
	s.Require().NoError(err)
	s.Equal(user.ID, got.ID)
}

func (s *DBRepositoryTestSuite) TestUserDuplicateUsername() {
	user := s.createTestUser()

	err := s.userRepo.CreateUser(s.ctx, &models.User{Username: user.Username})
	s.Require().Error(err)
}

func (s *DBRepositoryTestSuite) TestUserNotFound() {
	_, err := s.userRepo.GetUserByID(s.ctx, 9999)
	s.Require().Error(err)

	_, err = s.userRepo.GetUserByUsername(s.ctx, "ghost")
	s.Require().Error(err)
}
