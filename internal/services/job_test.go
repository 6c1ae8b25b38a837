package services

import (
	"github.com/agoralabs/agora/internal/db/models"
)

func (s *ServiceTestSuite) TestJobLifecycle() {
	buyer := s.createUser("buyer")
	seller := s.createUser("worker")
	job := s.createJob(buyer, seller, "worker")
	s.Equal(models.JobStatusCreated, job.Status)

	funded, err := s.jobs.Fund(s.ctx, job.ID, s.verifier.ID, "0xescrow")
	s.Require().NoError(err)
	s.Equal(models.JobStatusFunded, funded.Status)
	s.NotNil(funded.FundedAt)

	started, err := s.jobs.Start(s.ctx, job.ID, seller.ID)
	s.Require().NoError(err)
	s.Equal(models.JobStatusStarted, started.Status)
	s.NotNil(started.StartedAt)

	delivered, err := s.jobs.Deliver(s.ctx, job.ID, seller.ID, "https://example.com/result")
	s.Require().NoError(err)
	s.Equal(models.JobStatusDelivered, delivered.Status)
	s.NotNil(delivered.DeliveredAt)
	s.Equal("https://example.com/result", delivered.DeliveredURL)

	completed, err := s.jobs.Complete(s.ctx, job.ID, s.verifier.ID)
	s.Require().NoError(err)
	s.Equal(models.JobStatusCompleted, completed.Status)
	s.NotNil(completed.CompletedAt)
	s.True(completed.Status.Terminal())

	// The offer tracked every move and recorded the escrow address
	offer, err := s.offers.Get(s.ctx, completed.OfferID)
	s.Require().NoError(err)
	s.Equal(models.JobStatusCompleted, offer.Status)
	s.Equal("0xescrow", offer.EscrowAddress)
}

func (s *ServiceTestSuite) TestJobFundRequiresVerifier() {
	buyer := s.createUser("buyer")
	seller := s.createUser("worker")
	job := s.createJob(buyer, seller, "worker")

	// Neither participant may self-report funding
	_, err := s.jobs.Fund(s.ctx, job.ID, buyer.ID, "")
	s.Require().ErrorIs(err, ErrForbidden)
	s.Require().ErrorIs(err, ErrNotVerifier)
	_, err = s.jobs.Fund(s.ctx, job.ID, seller.ID, "")
	s.Require().ErrorIs(err, ErrNotVerifier)

	got, err := s.jobs.Get(s.ctx, job.ID)
	s.Require().NoError(err)
	s.Equal(models.JobStatusCreated, got.Status)
}

func (s *ServiceTestSuite) TestJobFundWrongState() {
	buyer := s.createUser("buyer")
	seller := s.createUser("worker")
	job := s.createJob(buyer, seller, "worker")

	_, err := s.jobs.Fund(s.ctx, job.ID, s.verifier.ID, "")
	s.Require().NoError(err)

	_, err = s.jobs.Fund(s.ctx, job.ID, s.verifier.ID, "")
	s.Require().ErrorIs(err, ErrInvalidState)
}

func (s *ServiceTestSuite) TestJobStartRequiresSeller() {
	buyer := s.createUser("buyer")
	seller := s.createUser("worker")
	other := s.createUser("bystander")
	job := s.createJob(buyer, seller, "worker")

	_, err := s.jobs.Fund(s.ctx, job.ID, s.verifier.ID, "")
	s.Require().NoError(err)

	// The buyer has no agent profile at all
	_, err = s.jobs.Start(s.ctx, job.ID, buyer.ID)
	s.Require().ErrorIs(err, ErrForbidden)
	s.Require().ErrorIs(err, ErrNotSeller)

	// A user with an unrelated agent profile is rejected too
	s.addProfile("bystander")
	_, _, _, err = s.offers.CreateOffer(s.ctx, buyer.ID, "bystander", 5, "USDC", "decoy")
	s.Require().NoError(err)
	_, err = s.agents.Claim(s.ctx, other.ID, other.TwitterHandle, "bystander")
	s.Require().NoError(err)
	_, err = s.jobs.Start(s.ctx, job.ID, other.ID)
	s.Require().ErrorIs(err, ErrNotSeller)

	_, err = s.jobs.Start(s.ctx, job.ID, seller.ID)
	s.Require().NoError(err)
}

func (s *ServiceTestSuite) TestJobStartWrongState() {
	buyer := s.createUser("buyer")
	seller := s.createUser("worker")
	job := s.createJob(buyer, seller, "worker")

	// Not funded yet
	_, err := s.jobs.Start(s.ctx, job.ID, seller.ID)
	s.Require().ErrorIs(err, ErrInvalidState)
}

func (s *ServiceTestSuite) TestJobDeliver() {
	buyer := s.createUser("buyer")
	seller := s.createUser("worker")
	job := s.createJob(buyer, seller, "worker")

	_, err := s.jobs.Fund(s.ctx, job.ID, s.verifier.ID, "")
	s.Require().NoError(err)

	// An empty deliverable URL is rejected before any state is touched
	_, err = s.jobs.Deliver(s.ctx, job.ID, seller.ID, "")
	s.Require().ErrorIs(err, ErrInvalidInput)

	// Delivering before starting violates the order
	_, err = s.jobs.Deliver(s.ctx, job.ID, seller.ID, "https://example.com/result")
	s.Require().ErrorIs(err, ErrInvalidState)

	_, err = s.jobs.Start(s.ctx, job.ID, seller.ID)
	s.Require().NoError(err)
	_, err = s.jobs.Deliver(s.ctx, job.ID, seller.ID, "https://example.com/result")
	s.Require().NoError(err)
}

func (s *ServiceTestSuite) TestJobCompleteGuards() {
	buyer := s.createUser("buyer")
	seller := s.createUser("worker")
	job := s.createJob(buyer, seller, "worker")

	// Completion is an attestation only the verifier can make
	_, err := s.jobs.Complete(s.ctx, job.ID, seller.ID)
	s.Require().ErrorIs(err, ErrForbidden)
	_, err = s.jobs.Complete(s.ctx, job.ID, buyer.ID)
	s.Require().ErrorIs(err, ErrForbidden)

	// And only from the delivered state
	_, err = s.jobs.Complete(s.ctx, job.ID, s.verifier.ID)
	s.Require().ErrorIs(err, ErrInvalidState)

	_, err = s.jobs.Fund(s.ctx, job.ID, s.verifier.ID, "")
	s.Require().NoError(err)
	_, err = s.jobs.Complete(s.ctx, job.ID, s.verifier.ID)
	s.Require().ErrorIs(err, ErrInvalidState)

	_, err = s.jobs.Start(s.ctx, job.ID, seller.ID)
	s.Require().NoError(err)
	_, err = s.jobs.Complete(s.ctx, job.ID, s.verifier.ID)
	s.Require().ErrorIs(err, ErrInvalidState)

	_, err = s.jobs.Deliver(s.ctx, job.ID, seller.ID, "https://example.com/result")
	s.Require().NoError(err)
	_, err = s.jobs.Complete(s.ctx, job.ID, s.verifier.ID)
	s.Require().NoError(err)

	// Terminal states stay terminal: a completed job cannot complete again,
	// and a cancelled one cannot complete at all
	_, err = s.jobs.Complete(s.ctx, job.ID, s.verifier.ID)
	s.Require().ErrorIs(err, ErrInvalidState)

	buyer2 := s.createUser("buyer2")
	cancelled := s.createJob(buyer2, seller, "worker")
	_, err = s.jobs.Cancel(s.ctx, cancelled.ID, buyer2.ID)
	s.Require().NoError(err)
	_, err = s.jobs.Complete(s.ctx, cancelled.ID, s.verifier.ID)
	s.Require().ErrorIs(err, ErrInvalidState)
}

func (s *ServiceTestSuite) TestJobCancelByBuyer() {
	buyer := s.createUser("buyer")
	seller := s.createUser("worker")
	job := s.createJob(buyer, seller, "worker")

	cancelled, err := s.jobs.Cancel(s.ctx, job.ID, buyer.ID)
	s.Require().NoError(err)
	s.Equal(models.JobStatusCancelled, cancelled.Status)
	s.NotNil(cancelled.CancelledAt)
}

func (s *ServiceTestSuite) TestJobCancelBuyerAfterFunding() {
	buyer := s.createUser("buyer")
	seller := s.createUser("worker")
	job := s.createJob(buyer, seller, "worker")

	_, err := s.jobs.Fund(s.ctx, job.ID, s.verifier.ID, "")
	s.Require().NoError(err)

	// Once money moved, cancellation is arbitration, not a buyer right
	_, err = s.jobs.Cancel(s.ctx, job.ID, buyer.ID)
	s.Require().ErrorIs(err, ErrForbidden)

	_, err = s.jobs.Cancel(s.ctx, job.ID, s.verifier.ID)
	s.Require().NoError(err)
}

func (s *ServiceTestSuite) TestJobCancelGuards() {
	buyer := s.createUser("buyer")
	seller := s.createUser("worker")
	job := s.createJob(buyer, seller, "worker")

	// Sellers cannot cancel
	_, err := s.jobs.Cancel(s.ctx, job.ID, seller.ID)
	s.Require().ErrorIs(err, ErrForbidden)

	_, err = s.jobs.Cancel(s.ctx, job.ID, s.verifier.ID)
	s.Require().NoError(err)

	// Cancelled is absorbing
	_, err = s.jobs.Cancel(s.ctx, job.ID, s.verifier.ID)
	s.Require().ErrorIs(err, ErrInvalidState)
}

func (s *ServiceTestSuite) TestJobCancelCompletedJob() {
	buyer := s.createUser("buyer")
	seller := s.createUser("worker")
	job := s.createJob(buyer, seller, "worker")

	_, err := s.jobs.Fund(s.ctx, job.ID, s.verifier.ID, "")
	s.Require().NoError(err)
	_, err = s.jobs.Start(s.ctx, job.ID, seller.ID)
	s.Require().NoError(err)
	_, err = s.jobs.Deliver(s.ctx, job.ID, seller.ID, "https://example.com/result")
	s.Require().NoError(err)
	_, err = s.jobs.Complete(s.ctx, job.ID, s.verifier.ID)
	s.Require().NoError(err)

	_, err = s.jobs.Cancel(s.ctx, job.ID, s.verifier.ID)
	s.Require().ErrorIs(err, ErrInvalidState)
}

func (s *ServiceTestSuite) TestJobNotFound() {
	_, err := s.jobs.Get(s.ctx, 9999)
	s.Require().ErrorIs(err, ErrNotFound)

	_, err = s.jobs.Fund(s.ctx, 9999, s.verifier.ID, "")
	s.Require().ErrorIs(err, ErrNotFound)
}

func (s *ServiceTestSuite) TestJobCanView() {
	buyer := s.createUser("buyer")
	seller := s.createUser("worker")
	stranger := s.createUser("stranger")
	job := s.createJob(buyer, seller, "worker")

	s.True(s.jobs.CanView(s.ctx, job, buyer.ID))
	s.True(s.jobs.CanView(s.ctx, job, seller.ID))
	s.True(s.jobs.CanView(s.ctx, job, s.verifier.ID))
	s.False(s.jobs.CanView(s.ctx, job, stranger.ID))
}
