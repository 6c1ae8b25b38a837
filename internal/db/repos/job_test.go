package repos

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/agoralabs/agora/internal/db/models"
)

func (s *DBRepositoryTestSuite) TestJobGetByID() {
	agent := s.createTestAgent()
	buyer := s.createTestUser()
	_, job := s.createTestOfferAndJob(agent.ID, buyer.ID)

	got, err := s.jobRepo.GetByID(s.ctx, job.ID)
	s.Require().NoError(err)
	s.Equal(job.ID, got.ID)
	s.Equal(models.JobStatusCreated, got.Status)
	s.Equal(agent.ID, got.SellerID)
	s.Equal(buyer.ID, got.BuyerID)

	_, err = s.jobRepo.GetByID(s.ctx, 9999)
	s.Require().Error(err)
	s.True(errors.Is(err, gorm.ErrRecordNotFound))
}

func (s *DBRepositoryTestSuite) TestJobTransition() {
	agent := s.createTestAgent()
	buyer := s.createTestUser()
	offer, job := s.createTestOfferAndJob(agent.ID, buyer.ID)

	now := time.Now().UTC()
	updated, err := s.jobRepo.Transition(s.ctx, job.ID,
		models.JobStatusCreated, models.JobStatusFunded,
		map[string]interface{}{models.JobFundedAtField: now},
		map[string]interface{}{"escrow_address": "0xescrow"},
	)
	s.Require().NoError(err)
	s.Equal(models.JobStatusFunded, updated.Status)
	s.Require().NotNil(updated.FundedAt)

	// The offer mirrors the job status and picked up the extra update
	mirrored, err := s.offerRepo.GetByID(s.ctx, offer.ID)
	s.Require().NoError(err)
	s.Equal(models.JobStatusFunded, mirrored.Status)
	s.Equal("0xescrow", mirrored.EscrowAddress)
}

func (s *DBRepositoryTestSuite) TestJobTransitionWrongStatus() {
	agent := s.createTestAgent()
	buyer := s.createTestUser()
	_, job := s.createTestOfferAndJob(agent.ID, buyer.ID)

	// Job is still in created, so a started -> delivered move must fail
	_, err := s.jobRepo.Transition(s.ctx, job.ID,
		models.JobStatusStarted, models.JobStatusDelivered, nil, nil)
	s.Require().Error(err)

	var wrongStatus *WrongStatusError
	s.Require().True(errors.As(err, &wrongStatus))
	s.Equal(job.ID, wrongStatus.JobID)
	s.Equal(models.JobStatusCreated, wrongStatus.Current)
	s.Equal(models.JobStatusStarted, wrongStatus.Expected)

	// The row is untouched
	got, err := s.jobRepo.GetByID(s.ctx, job.ID)
	s.Require().NoError(err)
	s.Equal(models.JobStatusCreated, got.Status)
}

func (s *DBRepositoryTestSuite) TestJobTransitionOnlyOneWinner() {
	agent := s.createTestAgent()
	buyer := s.createTestUser()
	_, job := s.createTestOfferAndJob(agent.ID, buyer.ID)

	// First transition from created wins
	_, err := s.jobRepo.Transition(s.ctx, job.ID,
		models.JobStatusCreated, models.JobStatusFunded, nil, nil)
	s.Require().NoError(err)

	// A second transition from the same starting state loses the guard
	_, err = s.jobRepo.Transition(s.ctx, job.ID,
		models.JobStatusCreated, models.JobStatusCancelled, nil, nil)
	s.Require().Error(err)

	var wrongStatus *WrongStatusError
	s.Require().True(errors.As(err, &wrongStatus))
	s.Equal(models.JobStatusFunded, wrongStatus.Current)
}

func (s *DBRepositoryTestSuite) TestJobTransitionNotFound() {
	_, err := s.jobRepo.Transition(s.ctx, 9999,
		models.JobStatusCreated, models.JobStatusFunded, nil, nil)
	s.Require().Error(err)
	s.True(errors.Is(err, gorm.ErrRecordNotFound))
}

func (s *DBRepositoryTestSuite) TestJobListByBuyer() {
	agent := s.createTestAgent()
	buyer := s.createTestUser()
	other := s.createTestUser()
	s.createTestOfferAndJob(agent.ID, buyer.ID)
	s.createTestOfferAndJob(agent.ID, buyer.ID)
	s.createTestOfferAndJob(agent.ID, other.ID)

	jobs, err := s.jobRepo.ListByBuyer(s.ctx, buyer.ID, nil)
	s.Require().NoError(err)
	s.Len(jobs, 2)
	for _, job := range jobs {
		s.Equal(buyer.ID, job.BuyerID)
	}

	jobs, err = s.jobRepo.ListByBuyer(s.ctx, buyer.ID, &models.ListOptions{Limit: 1})
	s.Require().NoError(err)
	s.Len(jobs, 1)
}
