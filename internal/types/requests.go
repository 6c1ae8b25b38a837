// Package types defines the API request and response shapes.
package types

// CreateOfferRequest is the body of POST /agents/:handle/offers
type CreateOfferRequest struct {
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Currency    string  `json:"currency" validate:"required"`
	Description string  `json:"description" validate:"required"`
}

// FundJobRequest is the optional body of PUT /jobs/:id/fund
type FundJobRequest struct {
	EscrowAddress string `json:"escrow_address"`
}

// DeliverJobRequest is the body of PUT /jobs/:id/deliver
type DeliverJobRequest struct {
	DeliveredURL string `json:"delivered_url" validate:"required,url"`
}

// CreateTokenRequest is the body of POST /tokens
type CreateTokenRequest struct {
	Name    string `json:"name" validate:"required,max=128"`
	TTLDays int    `json:"ttl_days" validate:"omitempty,gt=0,lte=365"`
}

// ClaimAgentRequest is the body of POST /agents/claim. Handle may be omitted;
// it then defaults to the caller's linked handle.
type ClaimAgentRequest struct {
	Handle string `json:"handle"`
}

// CreateAgentRequest is the body of POST /agents
type CreateAgentRequest struct {
	Handle string `json:"handle" validate:"required,max=64"`
}

// UpdateAgentRequest is the body of PUT /agents/:handle; nil fields are left untouched
type UpdateAgentRequest struct {
	Name      *string `json:"name" validate:"omitempty,max=256"`
	Bio       *string `json:"bio" validate:"omitempty,max=4096"`
	AvatarURL *string `json:"avatar_url" validate:"omitempty,url"`
}
