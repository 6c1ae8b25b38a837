package middleware

import (
	"errors"
	"strings"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/agoralabs/agora/internal/auth"
	"github.com/agoralabs/agora/internal/services"
)

// Context local keys set by the auth middlewares
const (
	// LocalUserID is the authenticated principal's user ID
	LocalUserID = "user_id"
	// LocalUserHandle is the externally-linked handle from a session credential
	LocalUserHandle = "user_handle"
)

// BearerToken extracts the credential from the Authorization header
func BearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// UserID returns the authenticated user ID set by an auth middleware
func UserID(c *fiber.Ctx) uint {
	id, _ := c.Locals(LocalUserID).(uint)
	return id
}

// UserHandle returns the linked handle set by the session middleware
func UserHandle(c *fiber.Ctx) string {
	handle, _ := c.Locals(LocalUserHandle).(string)
	return handle
}

// RequireSession authenticates a human principal via a signed session token
func RequireSession(secret []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := BearerToken(c)
		if raw == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing bearer token",
			})
		}
		claims, err := auth.ParseSession(secret, raw)
		if err != nil {
			msg := "Invalid session token"
			if errors.Is(err, auth.ErrSessionExpired) {
				msg = "Session expired"
			}
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": msg})
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalUserHandle, claims.Handle)
		return c.Next()
	}
}

// RequireAccessToken authenticates a machine principal via an opaque access
// token. Expired and revoked tokens get distinct messages; unknown tokens get
// one opaque message.
func RequireAccessToken(tokens *services.Token) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := BearerToken(c)
		if raw == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing bearer token",
			})
		}
		token, err := tokens.Verify(c.Context(), raw)
		if err != nil {
			msg := "Invalid token"
			switch {
			case errors.Is(err, services.ErrTokenExpired):
				msg = "Token expired"
			case errors.Is(err, services.ErrTokenRevoked):
				msg = "Token revoked"
			}
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": msg})
		}
		c.Locals(LocalUserID, token.UserID)
		return c.Next()
	}
}

// RequirePrincipal authenticates either credential kind: it first tries the
// opaque access token store, then falls back to session parsing. Used on
// routes the verifier may call from automation or a browser session alike.
func RequirePrincipal(secret []byte, tokens *services.Token) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := BearerToken(c)
		if raw == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing bearer token",
			})
		}

		if token, err := tokens.Verify(c.Context(), raw); err == nil {
			c.Locals(LocalUserID, token.UserID)
			return c.Next()
		} else if errors.Is(err, services.ErrTokenExpired) || errors.Is(err, services.ErrTokenRevoked) {
			msg := "Token expired"
			if errors.Is(err, services.ErrTokenRevoked) {
				msg = "Token revoked"
			}
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": msg})
		}

		claims, err := auth.ParseSession(secret, raw)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid token",
			})
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalUserHandle, claims.Handle)
		return c.Next()
	}
}
