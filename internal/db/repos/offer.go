package repos

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/agoralabs/agora/internal/db/models"
)

// OfferRepository handles database operations for offers
type OfferRepository struct {
	db *gorm.DB
}

// NewOfferRepository creates a new offer repository instance
func NewOfferRepository(db *gorm.DB) *OfferRepository {
	return &OfferRepository{db: db}
}

// CreateWithJob inserts the offer and its paired job in a single database
// transaction: both rows exist afterwards or neither does. The job is linked
// to the offer and both start in the created state.
func (r *OfferRepository) CreateWithJob(ctx context.Context, offer *models.Offer, job *models.Job) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		offer.Status = models.JobStatusCreated
		if err := tx.Create(offer).Error; err != nil {
			return fmt.Errorf("failed to create offer: %w", err)
		}

		job.OfferID = offer.ID
		job.SellerID = offer.SellerID
		job.BuyerID = offer.BuyerID
		job.Status = models.JobStatusCreated
		if err := tx.Create(job).Error; err != nil {
			return fmt.Errorf("failed to create job: %w", err)
		}
		return nil
	})
}

// GetByID retrieves an offer by its ID
func (r *OfferRepository) GetByID(ctx context.Context, id uint) (*models.Offer, error) {
	var offer models.Offer
	err := r.db.WithContext(ctx).First(&offer, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("offer not found: %w", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get offer: %w", err)
	}
	return &offer, nil
}
