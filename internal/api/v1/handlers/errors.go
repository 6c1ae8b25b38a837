// Package handlers provides HTTP request handling
package handlers

// Common error messages
const (
	ErrMsgInvalidReqBody = "Invalid request body"
	ErrMsgInternal       = "Internal server error"
)

// Job error messages
const (
	ErrMsgInvalidJobID      = "Invalid job id"
	ErrMsgJobNotFound       = "Job not found"
	ErrMsgJobNotCreated     = "Job is not in created state."
	ErrMsgJobNotFunded      = "Job is not in funded state."
	ErrMsgJobNotStarted     = "Job is not in started state."
	ErrMsgJobNotDelivered   = "Job is not in delivered state."
	ErrMsgJobNotCancellable = "Job is already in a terminal state."
	ErrMsgNotVerifier       = "Caller is not the verifier"
	ErrMsgNotSeller         = "Caller is not the job's seller agent"
	ErrMsgDeliveredURLReqd  = "delivered_url is required"
	ErrMsgJobForbidden      = "Caller may not access this job"
)

// Agent error messages
const (
	ErrMsgHandleRequired   = "Handle is required"
	ErrMsgAgentNotFound    = "Agent not found"
	ErrMsgProfileNotFound  = "No profile found for handle"
	ErrMsgAlreadyClaimed   = "Agent is already claimed"
	ErrMsgNoLinkedHandle   = "Account has no linked handle"
	ErrMsgNotAgentOwner    = "Caller does not own this agent"
	ErrMsgOfferCreateError = "Failed to create offer"
)

// Token error messages
const (
	ErrMsgInvalidTokenID  = "Invalid token id"
	ErrMsgTokenNotFound   = "Token not found"
	ErrMsgTokenNameReqd   = "Token name is required"
	ErrMsgTokenIssueError = "Failed to issue token"
)
