package repos

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/agoralabs/agora/internal/db/models"
)

// WrongStatusError reports a guarded status update that found the job in a
// different state than the transition expected. Exactly one of two racing
// transitions on the same job receives this error.
type WrongStatusError struct {
	JobID    uint
	Current  models.JobStatus
	Expected models.JobStatus
}

func (e *WrongStatusError) Error() string {
	return fmt.Sprintf("job %d is in %s state, expected %s", e.JobID, e.Current, e.Expected)
}

// JobRepository handles database operations for jobs
type JobRepository struct {
	db *gorm.DB
}

// NewJobRepository creates a new job repository instance
func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db: db}
}

// GetByID retrieves a job by its ID
func (r *JobRepository) GetByID(ctx context.Context, id uint) (*models.Job, error) {
	var job models.Job
	err := r.db.WithContext(ctx).First(&job, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("job not found: %w", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return &job, nil
}

// List returns jobs the given user participates in as a buyer
func (r *JobRepository) ListByBuyer(ctx context.Context, buyerID uint, opts *models.ListOptions) ([]models.Job, error) {
	limit := models.DefaultLimit
	offset := 0
	if opts != nil {
		if opts.Limit > 0 {
			limit = opts.Limit
		}
		offset = opts.Offset
	}
	var jobs []models.Job
	err := r.db.WithContext(ctx).Model(&models.Job{}).
		Where("buyer_id = ?", buyerID).
		Limit(limit).Offset(offset).
		Order("created_at DESC").
		Find(&jobs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	return jobs, nil
}

// Transition performs the guarded status update for a job as a single
// atomically-consistent unit: the job row is advanced with a compare-and-swap
// on its current status, and the paired offer's status mirror (plus any offer
// updates) is written in the same transaction. Two callers racing to
// transition the same job cannot both succeed; the loser gets a
// WrongStatusError carrying the status it actually observed.
func (r *JobRepository) Transition(
	ctx context.Context,
	id uint,
	from, to models.JobStatus,
	jobUpdates map[string]interface{},
	offerUpdates map[string]interface{},
) (*models.Job, error) {
	var job models.Job

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{"status": to}
		for k, v := range jobUpdates {
			updates[k] = v
		}

		res := tx.Model(&models.Job{}).
			Where("id = ? AND status = ?", id, from).
			Updates(updates)
		if res.Error != nil {
			return fmt.Errorf("failed to update job status: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			// Disambiguate absent job from status guard failure.
			if err := tx.First(&job, id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("job not found: %w", err)
				}
				return fmt.Errorf("failed to get job: %w", err)
			}
			return &WrongStatusError{JobID: id, Current: job.Status, Expected: from}
		}

		if err := tx.First(&job, id).Error; err != nil {
			return fmt.Errorf("failed to reload job: %w", err)
		}

		mirror := map[string]interface{}{"status": to}
		for k, v := range offerUpdates {
			mirror[k] = v
		}
		if err := tx.Model(&models.Offer{}).Where("id = ?", job.OfferID).Updates(mirror).Error; err != nil {
			return fmt.Errorf("failed to mirror offer status: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &job, nil
}
