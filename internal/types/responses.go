package types

import (
	"time"

	"github.com/agoralabs/agora/internal/db/models"
)

// CreateOfferResponse is the success body of POST /agents/:handle/offers
type CreateOfferResponse struct {
	AgentID uint `json:"agent_id"`
	OfferID uint `json:"offer_id"`
	JobID   uint `json:"job_id"`
}

// CreateTokenResponse is the success body of POST /tokens. Token carries the
// raw secret; it is shown here once and cannot be recovered later.
type CreateTokenResponse struct {
	Token     string    `json:"token"`
	Name      string    `json:"name"`
	ExpiresAt time.Time `json:"expires_at"`
}

// RevokeTokenResponse is the success body of POST /tokens/:id/revoke
type RevokeTokenResponse struct {
	Success bool `json:"success"`
}

// ListTokensResponse is the success body of GET /tokens
type ListTokensResponse struct {
	Tokens []models.AccessToken `json:"tokens"`
}

// DeliverJobResponse is the success body of PUT /jobs/:id/deliver
type DeliverJobResponse struct {
	Message string      `json:"message"`
	Job     *models.Job `json:"job"`
}
