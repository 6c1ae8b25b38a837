package repos

import (
	"errors"

	"gorm.io/gorm"

	"github.com/agoralabs/agora/internal/db/models"
)

func (s *DBRepositoryTestSuite) TestAgentGetByHandle() {
	agent := s.createTestAgent()

	got, err := s.agentRepo.GetByHandle(s.ctx, agent.Handle)
	s.Require().NoError(err)
	s.Equal(agent.ID, got.ID)
	s.False(got.Claimed())

	_, err = s.agentRepo.GetByHandle(s.ctx, "nobody")
	s.Require().Error(err)
	s.True(errors.Is(err, gorm.ErrRecordNotFound))
}

func (s *DBRepositoryTestSuite) TestAgentHandleUnique() {
	agent := s.createTestAgent()

	err := s.agentRepo.Create(s.ctx, &models.Agent{Handle: agent.Handle})
	s.Require().Error(err)
	s.Require().ErrorIs(err, gorm.ErrDuplicatedKey)
}

func (s *DBRepositoryTestSuite) TestAgentClaim() {
	agent := s.createTestAgent()
	user := s.createTestUser()

	err := s.agentRepo.Claim(s.ctx, agent.ID, user.ID, map[string]interface{}{
		"is_verified": true,
	})
	s.Require().NoError(err)

	got, err := s.agentRepo.GetByLinkedUser(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Equal(agent.ID, got.ID)
	s.True(got.Claimed())
	s.True(got.OwnedBy(user.ID))
	s.True(got.IsVerified)

	// Claiming again as the same user is a no-op, not an error
	err = s.agentRepo.Claim(s.ctx, agent.ID, user.ID, nil)
	s.Require().NoError(err)
}

func (s *DBRepositoryTestSuite) TestAgentClaimTaken() {
	agent := s.createTestAgent()
	first := s.createTestUser()
	second := s.createTestUser()

	s.Require().NoError(s.agentRepo.Claim(s.ctx, agent.ID, first.ID, nil))

	err := s.agentRepo.Claim(s.ctx, agent.ID, second.ID, nil)
	s.Require().ErrorIs(err, ErrAgentTaken)

	// The original link survives
	got, err := s.agentRepo.GetByID(s.ctx, agent.ID)
	s.Require().NoError(err)
	s.True(got.OwnedBy(first.ID))
}

func (s *DBRepositoryTestSuite) TestAgentUpdate() {
	agent := s.createTestAgent()

	err := s.agentRepo.Update(s.ctx, agent.ID, map[string]interface{}{
		"name": "Renamed",
		"bio":  "New bio",
	})
	s.Require().NoError(err)

	got, err := s.agentRepo.GetByID(s.ctx, agent.ID)
	s.Require().NoError(err)
	s.Equal("Renamed", got.Name)
	s.Equal("New bio", got.Bio)

	err = s.agentRepo.Update(s.ctx, 9999, map[string]interface{}{"name": "x"})
	s.Require().Error(err)
	s.True(errors.Is(err, gorm.ErrRecordNotFound))
}

func (s *DBRepositoryTestSuite) TestAgentDelete() {
	agent := s.createTestAgent()

	s.Require().NoError(s.agentRepo.Delete(s.ctx, agent.ID))

	// Soft-deleted rows are invisible to lookups
	_, err := s.agentRepo.GetByID(s.ctx, agent.ID)
	s.Require().Error(err)
	s.True(errors.Is(err, gorm.ErrRecordNotFound))

	err = s.agentRepo.Delete(s.ctx, agent.ID)
	s.Require().Error(err)
	s.True(errors.Is(err, gorm.ErrRecordNotFound))
}

func (s *DBRepositoryTestSuite) TestAgentRestoreByHandle() {
	user := s.createTestUser()
	agent := s.createTestAgent()
	s.Require().NoError(s.agentRepo.Claim(s.ctx, agent.ID, user.ID, nil))
	s.Require().NoError(s.agentRepo.Delete(s.ctx, agent.ID))

	// A live handle is not restorable
	_, err := s.agentRepo.RestoreByHandle(s.ctx, "no_such_handle", nil)
	s.Require().Error(err)
	s.True(errors.Is(err, gorm.ErrRecordNotFound))

	restored, err := s.agentRepo.RestoreByHandle(s.ctx, agent.Handle, map[string]interface{}{
		"name": "Fresh Agent",
	})
	s.Require().NoError(err)
	s.Equal(agent.ID, restored.ID)
	s.Equal("Fresh Agent", restored.Name)
	s.Nil(restored.LinkedUserID)
	s.False(restored.IsVerified)

	// The revived row is visible again and no longer restorable
	_, err = s.agentRepo.GetByID(s.ctx, agent.ID)
	s.Require().NoError(err)
	_, err = s.agentRepo.RestoreByHandle(s.ctx, agent.Handle, nil)
	s.Require().Error(err)
	s.True(errors.Is(err, gorm.ErrRecordNotFound))
}
