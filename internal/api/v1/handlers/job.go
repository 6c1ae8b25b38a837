package handlers

import (
	"errors"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/agoralabs/agora/internal/api/v1/middleware"
	"github.com/agoralabs/agora/internal/logger"
	"github.com/agoralabs/agora/internal/services"
	"github.com/agoralabs/agora/internal/types"
)

// JobHandler serves the job lifecycle endpoints
type JobHandler struct {
	jobs *services.Job
}

// NewJobHandler creates a new job handler instance
func NewJobHandler(jobs *services.Job) *JobHandler {
	return &JobHandler{jobs: jobs}
}

// FundJob handles PUT /jobs/:id/fund, the verifier's attestation that escrow
// funds arrived
func (h *JobHandler) FundJob(c *fiber.Ctx) error {
	jobID, err := c.ParamsInt("id")
	if err != nil || jobID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrMsgInvalidJobID})
	}

	// Body is optional; only an escrow address may be carried.
	var req types.FundJobRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrMsgInvalidReqBody})
		}
	}

	job, err := h.jobs.Fund(c.Context(), uint(jobID), middleware.UserID(c), req.EscrowAddress)
	if err != nil {
		return jobError(c, err, ErrMsgJobNotCreated)
	}
	return c.JSON(job)
}

// StartJob handles PUT /jobs/:id/start, the seller agent accepting the work
func (h *JobHandler) StartJob(c *fiber.Ctx) error {
	jobID, err := c.ParamsInt("id")
	if err != nil || jobID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrMsgInvalidJobID})
	}

	job, err := h.jobs.Start(c.Context(), uint(jobID), middleware.UserID(c))
	if err != nil {
		return jobError(c, err, ErrMsgJobNotFunded)
	}
	return c.JSON(job)
}

// DeliverJob handles PUT /jobs/:id/deliver, the seller agent submitting the work
func (h *JobHandler) DeliverJob(c *fiber.Ctx) error {
	jobID, err := c.ParamsInt("id")
	if err != nil || jobID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrMsgInvalidJobID})
	}

	var req types.DeliverJobRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrMsgInvalidReqBody})
	}
	if req.DeliveredURL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrMsgDeliveredURLReqd})
	}

	job, err := h.jobs.Deliver(c.Context(), uint(jobID), middleware.UserID(c), req.DeliveredURL)
	if err != nil {
		return jobError(c, err, ErrMsgJobNotStarted)
	}
	return c.JSON(types.DeliverJobResponse{
		Message: "Job delivered",
		Job:     job,
	})
}

// CompleteJob handles PUT /jobs/:id/complete, the verifier's attestation that
// the job is settled
func (h *JobHandler) CompleteJob(c *fiber.Ctx) error {
	jobID, err := c.ParamsInt("id")
	if err != nil || jobID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrMsgInvalidJobID})
	}

	job, err := h.jobs.Complete(c.Context(), uint(jobID), middleware.UserID(c))
	if err != nil {
		return jobError(c, err, ErrMsgJobNotDelivered)
	}
	return c.JSON(job)
}

// CancelJob handles PUT /jobs/:id/cancel
func (h *JobHandler) CancelJob(c *fiber.Ctx) error {
	jobID, err := c.ParamsInt("id")
	if err != nil || jobID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrMsgInvalidJobID})
	}

	job, err := h.jobs.Cancel(c.Context(), uint(jobID), middleware.UserID(c))
	if err != nil {
		return jobError(c, err, ErrMsgJobNotCancellable)
	}
	return c.JSON(job)
}

// GetJob handles GET /jobs/:id for the job's participants
func (h *JobHandler) GetJob(c *fiber.Ctx) error {
	jobID, err := c.ParamsInt("id")
	if err != nil || jobID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrMsgInvalidJobID})
	}

	job, err := h.jobs.Get(c.Context(), uint(jobID))
	if err != nil {
		return jobError(c, err, "")
	}
	if !h.jobs.CanView(c.Context(), job, middleware.UserID(c)) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": ErrMsgJobForbidden})
	}
	return c.JSON(job)
}

// jobError translates a job service error into the endpoint's response.
// invalidStateMsg carries the per-transition guard message.
func jobError(c *fiber.Ctx, err error, invalidStateMsg string) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": ErrMsgJobNotFound})
	case errors.Is(err, services.ErrInvalidState):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": invalidStateMsg})
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": forbiddenMessage(err)})
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrMsgDeliveredURLReqd})
	default:
		logger.Errorf("job operation failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": ErrMsgInternal})
	}
}

func forbiddenMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrNotVerifier):
		return ErrMsgNotVerifier
	case errors.Is(err, services.ErrNotSeller):
		return ErrMsgNotSeller
	default:
		return ErrMsgJobForbidden
	}
}
