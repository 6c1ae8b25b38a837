package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/agoralabs/agora/internal/db/models"
	"github.com/agoralabs/agora/internal/db/repos"
)

// Offer creates paired offer and job rows when a buyer proposes a deal.
type Offer struct {
	repo   *repos.OfferRepository
	agents *Agent
}

// NewOfferService creates a new offer ledger instance
func NewOfferService(repo *repos.OfferRepository, agents *Agent) *Offer {
	return &Offer{repo: repo, agents: agents}
}

// CreateOffer resolves the seller agent (creating it on first reference) and
// then inserts the offer and its job in one transaction. Either both rows
// exist afterwards or neither does.
func (s *Offer) CreateOffer(
	ctx context.Context,
	buyerID uint,
	handle string,
	amount float64,
	currency, description string,
) (*models.Agent, *models.Offer, *models.Job, error) {
	if amount <= 0 {
		return nil, nil, nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	if currency == "" {
		return nil, nil, nil, fmt.Errorf("%w: currency is required", ErrInvalidInput)
	}
	if description == "" {
		return nil, nil, nil, fmt.Errorf("%w: description is required", ErrInvalidInput)
	}

	agent, err := s.agents.Resolve(ctx, handle, buyerID)
	if err != nil {
		return nil, nil, nil, err
	}

	offer := &models.Offer{
		SellerID:    agent.ID,
		BuyerID:     buyerID,
		Amount:      amount,
		Currency:    currency,
		Description: description,
	}
	job := &models.Job{}
	if err := s.repo.CreateWithJob(ctx, offer, job); err != nil {
		return nil, nil, nil, errors.Join(ErrPersistence, err)
	}
	return agent, offer, job, nil
}

// Get retrieves an offer by ID
func (s *Offer) Get(ctx context.Context, offerID uint) (*models.Offer, error) {
	offer, err := s.repo.GetByID(ctx, offerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, errors.Join(ErrPersistence, err)
	}
	return offer, nil
}
