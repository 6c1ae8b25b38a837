package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/agoralabs/agora/internal/db"
	"github.com/agoralabs/agora/internal/db/models"
	"github.com/agoralabs/agora/internal/db/repos"
	"github.com/agoralabs/agora/internal/logger"
)

// Agent is the directory of seller profiles. It resolves handles to agent
// rows, creating them on demand from external profile data, and handles
// ownership claims.
type Agent struct {
	repo   *repos.AgentRepository
	lookup ProfileLookup
}

// NewAgentService creates a new agent directory instance
func NewAgentService(repo *repos.AgentRepository, lookup ProfileLookup) *Agent {
	return &Agent{repo: repo, lookup: lookup}
}

// NormalizeHandle strips the @ prefix and lowercases a handle
func NormalizeHandle(handle string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(handle), "@"))
}

// Resolve returns the agent for the given handle, creating it from external
// profile data on first reference. A lost duplicate-insert race on the unique
// handle falls back to re-reading the winner's row, so concurrent resolves of
// the same unknown handle yield exactly one agent.
func (s *Agent) Resolve(ctx context.Context, handle string, requestedBy uint) (*models.Agent, error) {
	handle = NormalizeHandle(handle)
	if handle == "" {
		return nil, fmt.Errorf("%w: handle is required", ErrInvalidInput)
	}

	agent, err := s.repo.GetByHandle(ctx, handle)
	if err == nil {
		return agent, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Join(ErrPersistence, err)
	}

	profile, err := s.lookup.Lookup(ctx, handle)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			return nil, fmt.Errorf("%w: no profile for handle %q", ErrNotFound, handle)
		}
		return nil, fmt.Errorf("profile lookup failed: %w", err)
	}

	agent = &models.Agent{
		Handle:            handle,
		Name:              profile.Name,
		Bio:               profile.Bio,
		AvatarURL:         profile.AvatarURL,
		ExternalProfileID: profile.ExternalID,
		IsVerified:        false,
		CreatedBy:         requestedBy,
	}
	if err := s.repo.Create(ctx, agent); err != nil {
		if db.IsDuplicateKeyError(err) {
			// Another request created the row first; use theirs.
			winner, lookupErr := s.repo.GetByHandle(ctx, handle)
			if lookupErr == nil {
				return winner, nil
			}
			if !errors.Is(lookupErr, gorm.ErrRecordNotFound) {
				return nil, errors.Join(ErrPersistence, lookupErr)
			}
			// The unique index is held by a soft-deleted row from an earlier
			// owner deletion; revive it as a fresh unclaimed profile.
			restored, restoreErr := s.repo.RestoreByHandle(ctx, handle, map[string]interface{}{
				"name":                profile.Name,
				"bio":                 profile.Bio,
				"avatar_url":          profile.AvatarURL,
				"external_profile_id": profile.ExternalID,
				"created_by":          requestedBy,
			})
			if restoreErr != nil {
				return nil, errors.Join(ErrPersistence, restoreErr)
			}
			return restored, nil
		}
		return nil, errors.Join(ErrPersistence, err)
	}
	return agent, nil
}

// GetByHandle returns the agent for a handle without creating it
func (s *Agent) GetByHandle(ctx context.Context, handle string) (*models.Agent, error) {
	agent, err := s.repo.GetByHandle(ctx, NormalizeHandle(handle))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, errors.Join(ErrPersistence, err)
	}
	return agent, nil
}

// GetByLinkedUser returns the agent profile owned by the given user
func (s *Agent) GetByLinkedUser(ctx context.Context, userID uint) (*models.Agent, error) {
	agent, err := s.repo.GetByLinkedUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, errors.Join(ErrPersistence, err)
	}
	return agent, nil
}

// Claim links an agent profile to the user whose externally-linked handle
// matches it. Claiming a profile already linked to the same user succeeds
// idempotently; one linked to anyone else fails with ErrConflict. On success
// the profile fields are refreshed from the external lookup.
func (s *Agent) Claim(ctx context.Context, userID uint, userHandle, handle string) (*models.Agent, error) {
	userHandle = NormalizeHandle(userHandle)
	handle = NormalizeHandle(handle)
	if userHandle == "" {
		return nil, fmt.Errorf("%w: account has no linked handle", ErrInvalidInput)
	}
	if handle == "" {
		handle = userHandle
	}
	if userHandle != handle {
		return nil, fmt.Errorf("%w: handle does not match linked account", ErrInvalidInput)
	}

	agent, err := s.repo.GetByHandle(ctx, handle)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, errors.Join(ErrPersistence, err)
	}
	if agent.Claimed() && !agent.OwnedBy(userID) {
		return nil, fmt.Errorf("%w: agent already claimed", ErrConflict)
	}

	// Refresh profile fields from the external source. A lookup failure does
	// not block the claim; the link matters more than fresh metadata.
	refresh := map[string]interface{}{}
	if profile, err := s.lookup.Lookup(ctx, handle); err == nil {
		refresh["name"] = profile.Name
		refresh["bio"] = profile.Bio
		refresh["avatar_url"] = profile.AvatarURL
		refresh["external_profile_id"] = profile.ExternalID
	} else {
		logger.WarnWithFields("profile refresh failed during claim", map[string]interface{}{
			"handle": handle,
			"error":  err.Error(),
		})
	}

	if err := s.repo.Claim(ctx, agent.ID, userID, refresh); err != nil {
		if errors.Is(err, repos.ErrAgentTaken) {
			return nil, fmt.Errorf("%w: agent already claimed", ErrConflict)
		}
		return nil, errors.Join(ErrPersistence, err)
	}

	agent, err = s.repo.GetByID(ctx, agent.ID)
	if err != nil {
		return nil, errors.Join(ErrPersistence, err)
	}
	return agent, nil
}

// Update applies owner-editable fields to a claimed agent profile
func (s *Agent) Update(ctx context.Context, userID uint, handle string, updates map[string]interface{}) (*models.Agent, error) {
	agent, err := s.GetByHandle(ctx, handle)
	if err != nil {
		return nil, err
	}
	if !agent.OwnedBy(userID) {
		return nil, ErrForbidden
	}
	if len(updates) == 0 {
		return agent, nil
	}
	if err := s.repo.Update(ctx, agent.ID, updates); err != nil {
		return nil, errors.Join(ErrPersistence, err)
	}
	agent, err = s.repo.GetByID(ctx, agent.ID)
	if err != nil {
		return nil, errors.Join(ErrPersistence, err)
	}
	return agent, nil
}

// Delete removes a claimed agent profile at its owner's request
func (s *Agent) Delete(ctx context.Context, userID uint, handle string) error {
	agent, err := s.GetByHandle(ctx, handle)
	if err != nil {
		return err
	}
	if !agent.OwnedBy(userID) {
		return ErrForbidden
	}
	if err := s.repo.Delete(ctx, agent.ID); err != nil {
		return errors.Join(ErrPersistence, err)
	}
	return nil
}
