package handlers

import (
	"errors"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/agoralabs/agora/internal/api/v1/middleware"
	"github.com/agoralabs/agora/internal/logger"
	"github.com/agoralabs/agora/internal/services"
	"github.com/agoralabs/agora/internal/types"
)

// TokenHandler serves the bearer credential endpoints
type TokenHandler struct {
	tokens *services.Token
}

// NewTokenHandler creates a new token handler instance
func NewTokenHandler(tokens *services.Token) *TokenHandler {
	return &TokenHandler{tokens: tokens}
}

// CreateToken handles POST /tokens. The response carries the raw secret
// exactly once; only its hash is stored.
func (h *TokenHandler) CreateToken(c *fiber.Ctx) error {
	var req types.CreateTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrMsgInvalidReqBody})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	raw, token, err := h.tokens.Issue(c.Context(), middleware.UserID(c), req.Name, req.TTLDays)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrMsgTokenNameReqd})
		}
		logger.Errorf("token issuance failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": ErrMsgTokenIssueError})
	}

	return c.JSON(types.CreateTokenResponse{
		Token:     raw,
		Name:      token.Name,
		ExpiresAt: token.ExpiresAt,
	})
}

// RevokeToken handles POST /tokens/:id/revoke. A token owned by another user
// is reported as not found.
func (h *TokenHandler) RevokeToken(c *fiber.Ctx) error {
	tokenID, err := c.ParamsInt("id")
	if err != nil || tokenID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrMsgInvalidTokenID})
	}

	if err := h.tokens.Revoke(c.Context(), uint(tokenID), middleware.UserID(c)); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": ErrMsgTokenNotFound})
		}
		logger.Errorf("token revocation failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": ErrMsgInternal})
	}
	return c.JSON(types.RevokeTokenResponse{Success: true})
}

// ListTokens handles GET /tokens, metadata only
func (h *TokenHandler) ListTokens(c *fiber.Ctx) error {
	tokens, err := h.tokens.List(c.Context(), middleware.UserID(c), nil)
	if err != nil {
		logger.Errorf("token listing failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": ErrMsgInternal})
	}
	return c.JSON(types.ListTokensResponse{Tokens: tokens})
}
