package repos

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/agoralabs/agora/internal/db/models"
)

// ErrAgentTaken indicates the claim lost to an existing link on the agent row.
var ErrAgentTaken = errors.New("agent already claimed")

// AgentRepository handles database operations for agent profiles
type AgentRepository struct {
	db *gorm.DB
}

// NewAgentRepository creates a new agent repository instance
func NewAgentRepository(db *gorm.DB) *AgentRepository {
	return &AgentRepository{db: db}
}

// Create inserts a new agent profile. The unique index on handle is the
// authority on duplicates; callers racing on the same handle must retry the
// lookup when this returns a duplicate key error.
func (r *AgentRepository) Create(ctx context.Context, agent *models.Agent) error {
	return r.db.WithContext(ctx).Create(agent).Error
}

// GetByHandle retrieves an agent by its unique handle
func (r *AgentRepository) GetByHandle(ctx context.Context, handle string) (*models.Agent, error) {
	var agent models.Agent
	err := r.db.WithContext(ctx).Where("handle = ?", handle).First(&agent).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("agent not found: %w", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get agent: %w", err)
	}
	return &agent, nil
}

// GetByID retrieves an agent by its ID
func (r *AgentRepository) GetByID(ctx context.Context, id uint) (*models.Agent, error) {
	var agent models.Agent
	err := r.db.WithContext(ctx).First(&agent, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("agent not found: %w", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get agent: %w", err)
	}
	return &agent, nil
}

// GetByLinkedUser retrieves the agent profile claimed by the given user
func (r *AgentRepository) GetByLinkedUser(ctx context.Context, userID uint) (*models.Agent, error) {
	var agent models.Agent
	err := r.db.WithContext(ctx).Where("linked_user_id = ?", userID).First(&agent).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("agent not found: %w", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get agent: %w", err)
	}
	return &agent, nil
}

// Claim links the agent row to the given user. The update is guarded so a
// concurrent claim by another user cannot overwrite an existing link: only an
// unclaimed row, or one already linked to the same user, is affected.
func (r *AgentRepository) Claim(ctx context.Context, agentID, userID uint, profile map[string]interface{}) error {
	updates := map[string]interface{}{"linked_user_id": userID}
	for k, v := range profile {
		updates[k] = v
	}

	res := r.db.WithContext(ctx).Model(&models.Agent{}).
		Where("id = ? AND (linked_user_id IS NULL OR linked_user_id = ?)", agentID, userID).
		Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("failed to claim agent: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrAgentTaken
	}
	return nil
}

// RestoreByHandle revives a soft-deleted agent row that still holds the given
// handle under the unique index, resetting it to an unclaimed, unverified
// profile with the supplied fields. Returns gorm.ErrRecordNotFound when no
// soft-deleted row exists for the handle.
func (r *AgentRepository) RestoreByHandle(ctx context.Context, handle string, fields map[string]interface{}) (*models.Agent, error) {
	updates := map[string]interface{}{
		"deleted_at":     nil,
		"linked_user_id": nil,
		"is_verified":    false,
	}
	for k, v := range fields {
		updates[k] = v
	}

	res := r.db.WithContext(ctx).Unscoped().Model(&models.Agent{}).
		Where("handle = ? AND deleted_at IS NOT NULL", handle).
		Updates(updates)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to restore agent: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("agent not found: %w", gorm.ErrRecordNotFound)
	}
	return r.GetByHandle(ctx, handle)
}

// Update applies owner-editable profile fields to an agent row
func (r *AgentRepository) Update(ctx context.Context, agentID uint, updates map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(&models.Agent{}).
		Where("id = ?", agentID).
		Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("failed to update agent: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("agent not found: %w", gorm.ErrRecordNotFound)
	}
	return nil
}

// Delete soft-deletes an agent profile
func (r *AgentRepository) Delete(ctx context.Context, agentID uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Agent{}, agentID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete agent: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("agent not found: %w", gorm.ErrRecordNotFound)
	}
	return nil
}
