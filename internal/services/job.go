package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/agoralabs/agora/internal/db/models"
	"github.com/agoralabs/agora/internal/db/repos"
)

// Job owns the job lifecycle transitions and their guards.
//
// The trust model is asymmetric and must stay that way: fund and complete are
// attestations about the external payment rail, so only the configured
// verifier principal may perform them; start and deliver are attestations
// about the work itself, so only the assigned seller agent may perform them.
// Buyers and sellers never self-report funding or completion.
type Job struct {
	jobs       *repos.JobRepository
	agents     *repos.AgentRepository
	verifierID uint
}

// NewJobService creates a new job lifecycle service. verifierID is the user ID
// of the privileged verification principal, injected from configuration.
func NewJobService(jobs *repos.JobRepository, agents *repos.AgentRepository, verifierID uint) *Job {
	return &Job{jobs: jobs, agents: agents, verifierID: verifierID}
}

// VerifierID returns the configured privileged principal's user ID
func (s *Job) VerifierID() uint {
	return s.verifierID
}

// Fund records the verifier's attestation that escrow funds arrived for a
// created job. escrowAddress, when present, is recorded on the offer; it is
// never verified on-chain here.
func (s *Job) Fund(ctx context.Context, jobID, actorID uint, escrowAddress string) (*models.Job, error) {
	if actorID != s.verifierID {
		return nil, ErrNotVerifier
	}
	now := time.Now().UTC()
	var offerUpdates map[string]interface{}
	if escrowAddress != "" {
		offerUpdates = map[string]interface{}{"escrow_address": escrowAddress}
	}
	return s.transition(ctx, jobID, models.JobStatusCreated, models.JobStatusFunded,
		map[string]interface{}{models.JobFundedAtField: now}, offerUpdates)
}

// Start records the seller agent accepting a funded job. The actor is the
// user resolved from the presented access token; the job's seller agent must
// be linked to that user.
func (s *Job) Start(ctx context.Context, jobID, actorID uint) (*models.Job, error) {
	if err := s.requireSeller(ctx, jobID, actorID); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return s.transition(ctx, jobID, models.JobStatusFunded, models.JobStatusStarted,
		map[string]interface{}{models.JobStartedAtField: now}, nil)
}

// Deliver records the seller agent submitting the finished work
func (s *Job) Deliver(ctx context.Context, jobID, actorID uint, deliveredURL string) (*models.Job, error) {
	if deliveredURL == "" {
		return nil, fmt.Errorf("%w: delivered_url is required", ErrInvalidInput)
	}
	if err := s.requireSeller(ctx, jobID, actorID); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return s.transition(ctx, jobID, models.JobStatusStarted, models.JobStatusDelivered,
		map[string]interface{}{
			models.JobDeliveredAtField:  now,
			models.JobDeliveredURLField: deliveredURL,
		}, nil)
}

// Complete records the verifier's attestation that a delivered job is settled
func (s *Job) Complete(ctx context.Context, jobID, actorID uint) (*models.Job, error) {
	if actorID != s.verifierID {
		return nil, ErrNotVerifier
	}
	now := time.Now().UTC()
	return s.transition(ctx, jobID, models.JobStatusDelivered, models.JobStatusCompleted,
		map[string]interface{}{models.JobCompletedAtField: now}, nil)
}

// Cancel moves a job to the absorbing cancelled state. The verifier may cancel
// from any non-terminal state; the buyer may cancel only while the job is
// still created, before anything is escrowed. Sellers cannot cancel.
func (s *Job) Cancel(ctx context.Context, jobID, actorID uint) (*models.Job, error) {
	job, err := s.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}

	switch {
	case actorID == s.verifierID:
		// arbitration path, any non-terminal state
	case actorID == job.BuyerID:
		if job.Status != models.JobStatusCreated {
			return nil, fmt.Errorf("%w: buyers may only cancel unfunded jobs", ErrForbidden)
		}
	default:
		return nil, fmt.Errorf("%w: caller may not cancel this job", ErrForbidden)
	}

	if job.Status.Terminal() {
		return nil, fmt.Errorf("%w: job is already %s", ErrInvalidState, job.Status)
	}

	now := time.Now().UTC()
	return s.transition(ctx, jobID, job.Status, models.JobStatusCancelled,
		map[string]interface{}{models.JobCancelledAtField: now}, nil)
}

// Get retrieves a job by ID
func (s *Job) Get(ctx context.Context, jobID uint) (*models.Job, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, errors.Join(ErrPersistence, err)
	}
	return job, nil
}

// CanView reports whether the actor participates in the job: the buyer, the
// verifier, or the user owning the seller agent.
func (s *Job) CanView(ctx context.Context, job *models.Job, actorID uint) bool {
	if actorID == s.verifierID || actorID == job.BuyerID {
		return true
	}
	agent, err := s.agents.GetByLinkedUser(ctx, actorID)
	if err != nil {
		return false
	}
	return agent.ID == job.SellerID
}

// requireSeller checks that the actor owns the agent assigned to the job.
// Forbidden is reported both when the actor has no agent profile and when the
// profile is not the job's seller.
func (s *Job) requireSeller(ctx context.Context, jobID, actorID uint) error {
	job, err := s.Get(ctx, jobID)
	if err != nil {
		return err
	}
	agent, err := s.agents.GetByLinkedUser(ctx, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: no agent profile for caller", ErrNotSeller)
		}
		return errors.Join(ErrPersistence, err)
	}
	if agent.ID != job.SellerID {
		return fmt.Errorf("%w: agent is not the job's seller", ErrNotSeller)
	}
	return nil
}

func (s *Job) transition(
	ctx context.Context,
	jobID uint,
	from, to models.JobStatus,
	jobUpdates, offerUpdates map[string]interface{},
) (*models.Job, error) {
	job, err := s.jobs.Transition(ctx, jobID, from, to, jobUpdates, offerUpdates)
	if err != nil {
		var wrongStatus *repos.WrongStatusError
		switch {
		case errors.As(err, &wrongStatus):
			return nil, fmt.Errorf("%w: job is not in %s state", ErrInvalidState, from)
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, ErrNotFound
		default:
			return nil, errors.Join(ErrPersistence, err)
		}
	}
	return job, nil
}
