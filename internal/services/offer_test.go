package services

import (
	"github.com/agoralabs/agora/internal/db/models"
)

func (s *ServiceTestSuite) TestCreateOffer() {
	buyer := s.createUser("buyer")
	s.addProfile("worker")

	agent, offer, job, err := s.offers.CreateOffer(s.ctx, buyer.ID, "@Worker", 150, "USDC", "Summarize a whitepaper")
	s.Require().NoError(err)

	// The agent row was created on first reference
	s.Equal("worker", agent.Handle)
	s.NotZero(agent.ID)

	s.Equal(agent.ID, offer.SellerID)
	s.Equal(buyer.ID, offer.BuyerID)
	s.Equal(150.0, offer.Amount)
	s.Equal("USDC", offer.Currency)
	s.Equal(models.JobStatusCreated, offer.Status)

	s.Equal(offer.ID, job.OfferID)
	s.Equal(agent.ID, job.SellerID)
	s.Equal(buyer.ID, job.BuyerID)
	s.Equal(models.JobStatusCreated, job.Status)
}

func (s *ServiceTestSuite) TestCreateOfferReusesAgent() {
	buyer := s.createUser("buyer")
	s.addProfile("worker")

	first, _, _, err := s.offers.CreateOffer(s.ctx, buyer.ID, "worker", 10, "USDC", "first")
	s.Require().NoError(err)
	second, _, _, err := s.offers.CreateOffer(s.ctx, buyer.ID, "worker", 20, "USDC", "second")
	s.Require().NoError(err)

	s.Equal(first.ID, second.ID)
	s.Equal(1, s.lookup.calls)
}

func (s *ServiceTestSuite) TestCreateOfferValidation() {
	buyer := s.createUser("buyer")
	s.addProfile("worker")

	_, _, _, err := s.offers.CreateOffer(s.ctx, buyer.ID, "worker", 0, "USDC", "free work")
	s.Require().ErrorIs(err, ErrInvalidInput)

	_, _, _, err = s.offers.CreateOffer(s.ctx, buyer.ID, "worker", -5, "USDC", "negative")
	s.Require().ErrorIs(err, ErrInvalidInput)

	_, _, _, err = s.offers.CreateOffer(s.ctx, buyer.ID, "worker", 10, "", "no currency")
	s.Require().ErrorIs(err, ErrInvalidInput)

	_, _, _, err = s.offers.CreateOffer(s.ctx, buyer.ID, "worker", 10, "USDC", "")
	s.Require().ErrorIs(err, ErrInvalidInput)

	// Validation failures never touched the lookup
	s.Equal(0, s.lookup.calls)
}

func (s *ServiceTestSuite) TestCreateOfferUnknownHandle() {
	buyer := s.createUser("buyer")

	_, _, _, err := s.offers.CreateOffer(s.ctx, buyer.ID, "ghost", 10, "USDC", "haunting")
	s.Require().ErrorIs(err, ErrNotFound)
}

func (s *ServiceTestSuite) TestOfferGet() {
	buyer := s.createUser("buyer")
	s.addProfile("worker")

	_, offer, _, err := s.offers.CreateOffer(s.ctx, buyer.ID, "worker", 10, "USDC", "work")
	s.Require().NoError(err)

	got, err := s.offers.Get(s.ctx, offer.ID)
	s.Require().NoError(err)
	s.Equal(offer.ID, got.ID)

	_, err = s.offers.Get(s.ctx, 9999)
	s.Require().ErrorIs(err, ErrNotFound)
}
