package handlers

import (
	"errors"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/agoralabs/agora/internal/api/v1/middleware"
	"github.com/agoralabs/agora/internal/logger"
	"github.com/agoralabs/agora/internal/services"
	"github.com/agoralabs/agora/internal/types"
)

// AgentHandler serves the agent directory and offer creation endpoints
type AgentHandler struct {
	agents *services.Agent
	offers *services.Offer
}

// NewAgentHandler creates a new agent handler instance
func NewAgentHandler(agents *services.Agent, offers *services.Offer) *AgentHandler {
	return &AgentHandler{agents: agents, offers: offers}
}

// CreateOffer handles POST /agents/:handle/offers. The seller agent is
// resolved (and created on first reference), then the offer and its job are
// inserted atomically.
func (h *AgentHandler) CreateOffer(c *fiber.Ctx) error {
	handle := c.Params("handle")
	if handle == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrMsgHandleRequired})
	}

	var req types.CreateOfferRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrMsgInvalidReqBody})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	agent, offer, job, err := h.offers.CreateOffer(
		c.Context(), middleware.UserID(c), handle, req.Amount, req.Currency, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, services.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": ErrMsgProfileNotFound})
		default:
			logger.Errorf("offer creation failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": ErrMsgOfferCreateError})
		}
	}

	return c.JSON(types.CreateOfferResponse{
		AgentID: agent.ID,
		OfferID: offer.ID,
		JobID:   job.ID,
	})
}

// CreateAgent handles POST /agents, explicit creation by handle
func (h *AgentHandler) CreateAgent(c *fiber.Ctx) error {
	var req types.CreateAgentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrMsgInvalidReqBody})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	agent, err := h.agents.Resolve(c.Context(), req.Handle, middleware.UserID(c))
	if err != nil {
		return agentError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(agent)
}

// GetAgent handles GET /agents/:handle, the public profile view
func (h *AgentHandler) GetAgent(c *fiber.Ctx) error {
	handle := c.Params("handle")
	if handle == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrMsgHandleRequired})
	}

	agent, err := h.agents.GetByHandle(c.Context(), handle)
	if err != nil {
		return agentError(c, err)
	}
	return c.JSON(agent)
}

// ClaimAgent handles POST /agents/claim. The caller's externally-linked
// handle, captured at authentication, must match the claimed profile.
func (h *AgentHandler) ClaimAgent(c *fiber.Ctx) error {
	var req types.ClaimAgentRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrMsgInvalidReqBody})
		}
	}

	agent, err := h.agents.Claim(c.Context(), middleware.UserID(c), middleware.UserHandle(c), req.Handle)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrMsgNoLinkedHandle})
		case errors.Is(err, services.ErrConflict):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": ErrMsgAlreadyClaimed})
		default:
			return agentError(c, err)
		}
	}
	return c.JSON(agent)
}

// UpdateAgent handles PUT /agents/:handle for the profile's owner
func (h *AgentHandler) UpdateAgent(c *fiber.Ctx) error {
	handle := c.Params("handle")
	if handle == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrMsgHandleRequired})
	}

	var req types.UpdateAgentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrMsgInvalidReqBody})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}
	if req.AvatarURL != nil {
		updates["avatar_url"] = *req.AvatarURL
	}

	agent, err := h.agents.Update(c.Context(), middleware.UserID(c), handle, updates)
	if err != nil {
		return agentError(c, err)
	}
	return c.JSON(agent)
}

// DeleteAgent handles DELETE /agents/:handle for the profile's owner
func (h *AgentHandler) DeleteAgent(c *fiber.Ctx) error {
	handle := c.Params("handle")
	if handle == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrMsgHandleRequired})
	}

	if err := h.agents.Delete(c.Context(), middleware.UserID(c), handle); err != nil {
		return agentError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

func agentError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": ErrMsgAgentNotFound})
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": ErrMsgNotAgentOwner})
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		logger.Errorf("agent operation failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": ErrMsgInternal})
	}
}
