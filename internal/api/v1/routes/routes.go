// Package routes defines the API routes and URL structure
package routes

import (
	"fmt"
	"strings"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/agoralabs/agora/internal/api/v1/handlers"
	"github.com/agoralabs/agora/internal/api/v1/middleware"
	"github.com/agoralabs/agora/internal/services"
)

// API base configuration
const (
	// DefaultPort is the default port for the API
	DefaultPort = "8080"
	// APIv1Prefix is the prefix for all API endpoints
	APIv1Prefix = "/api/v1"
)

// DefaultBaseURL is the default base URL for the API
var DefaultBaseURL = fmt.Sprintf("http://localhost:%s", DefaultPort)

// Route names for lookup
const (
	// Health check
	HealthCheck = "HealthCheck"

	// Agent routes
	GetAgent    = "GetAgent"
	CreateAgent = "CreateAgent"
	ClaimAgent  = "ClaimAgent"
	UpdateAgent = "UpdateAgent"
	DeleteAgent = "DeleteAgent"
	CreateOffer = "CreateOffer"

	// Job routes
	GetJob      = "GetJob"
	FundJob     = "FundJob"
	StartJob    = "StartJob"
	DeliverJob  = "DeliverJob"
	CompleteJob = "CompleteJob"
	CancelJob   = "CancelJob"

	// Token routes
	CreateToken = "CreateToken"
	RevokeToken = "RevokeToken"
	ListTokens  = "ListTokens"
)

// Config carries the authentication dependencies the route middlewares need
type Config struct {
	// JWTSecret signs and verifies session tokens
	JWTSecret []byte
	// Tokens verifies opaque access tokens
	Tokens *services.Token
}

// RegisterRoutes configures all the v1 routes
//
// NOTE: route ordering is important because routes will try and match in the
// order they are registered; param routes (/:handle) go after fixed slugs so
// fiber does not interpret the slug as a param.
func RegisterRoutes(
	app *fiber.App,
	cfg Config,
	agentHandler *handlers.AgentHandler,
	jobHandler *handlers.JobHandler,
	tokenHandler *handlers.TokenHandler,
) {
	session := middleware.RequireSession(cfg.JWTSecret)
	agentToken := middleware.RequireAccessToken(cfg.Tokens)
	principal := middleware.RequirePrincipal(cfg.JWTSecret, cfg.Tokens)

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	}).Name(HealthCheck)

	// API v1 routes
	v1 := app.Group(APIv1Prefix)

	// Agent endpoints
	agents := v1.Group("/agents")
	agents.Post("/", session, agentHandler.CreateAgent).Name(CreateAgent)
	agents.Post("/claim", session, agentHandler.ClaimAgent).Name(ClaimAgent)
	agents.Get("/:handle", agentHandler.GetAgent).Name(GetAgent)
	agents.Put("/:handle", session, agentHandler.UpdateAgent).Name(UpdateAgent)
	agents.Delete("/:handle", session, agentHandler.DeleteAgent).Name(DeleteAgent)
	agents.Post("/:handle/offers", session, agentHandler.CreateOffer).Name(CreateOffer)

	// Job endpoints. Fund and complete accept either credential kind for the
	// verifier; start and deliver require a seller agent's access token.
	jobs := v1.Group("/jobs")
	jobs.Get("/:id", principal, jobHandler.GetJob).Name(GetJob)
	jobs.Put("/:id/fund", principal, jobHandler.FundJob).Name(FundJob)
	jobs.Put("/:id/start", agentToken, jobHandler.StartJob).Name(StartJob)
	jobs.Put("/:id/deliver", agentToken, jobHandler.DeliverJob).Name(DeliverJob)
	jobs.Put("/:id/complete", principal, jobHandler.CompleteJob).Name(CompleteJob)
	jobs.Put("/:id/cancel", principal, jobHandler.CancelJob).Name(CancelJob)

	// Token endpoints
	tokens := v1.Group("/tokens")
	tokens.Get("/", session, tokenHandler.ListTokens).Name(ListTokens)
	tokens.Post("/", session, tokenHandler.CreateToken).Name(CreateToken)
	tokens.Post("/:id/revoke", session, tokenHandler.RevokeToken).Name(RevokeToken)
}

// route patterns by name, for URL building without a compiled app
var routePatterns = map[string]string{
	HealthCheck: "/health",

	GetAgent:    APIv1Prefix + "/agents/:handle",
	CreateAgent: APIv1Prefix + "/agents",
	ClaimAgent:  APIv1Prefix + "/agents/claim",
	UpdateAgent: APIv1Prefix + "/agents/:handle",
	DeleteAgent: APIv1Prefix + "/agents/:handle",
	CreateOffer: APIv1Prefix + "/agents/:handle/offers",

	GetJob:      APIv1Prefix + "/jobs/:id",
	FundJob:     APIv1Prefix + "/jobs/:id/fund",
	StartJob:    APIv1Prefix + "/jobs/:id/start",
	DeliverJob:  APIv1Prefix + "/jobs/:id/deliver",
	CompleteJob: APIv1Prefix + "/jobs/:id/complete",
	CancelJob:   APIv1Prefix + "/jobs/:id/cancel",

	CreateToken: APIv1Prefix + "/tokens",
	RevokeToken: APIv1Prefix + "/tokens/:id/revoke",
	ListTokens:  APIv1Prefix + "/tokens",
}

// BuildURL builds a URL path for the given route name and parameters
func BuildURL(routeName string, params map[string]string) string {
	route := routePatterns[routeName]
	if route == "" {
		return ""
	}
	for param, value := range params {
		route = strings.ReplaceAll(route, ":"+param, value)
	}
	return route
}

// Agent route helpers

// GetAgentURL returns the URL for fetching an agent profile
func GetAgentURL(handle string) string {
	return BuildURL(GetAgent, map[string]string{"handle": handle})
}

// CreateAgentURL returns the URL for explicit agent creation
func CreateAgentURL() string {
	return BuildURL(CreateAgent, nil)
}

// ClaimAgentURL returns the URL for claiming an agent profile
func ClaimAgentURL() string {
	return BuildURL(ClaimAgent, nil)
}

// CreateOfferURL returns the URL for creating an offer against an agent
func CreateOfferURL(handle string) string {
	return BuildURL(CreateOffer, map[string]string{"handle": handle})
}

// Job route helpers

// GetJobURL returns the URL for fetching a job
func GetJobURL(id string) string {
	return BuildURL(GetJob, map[string]string{"id": id})
}

// FundJobURL returns the URL for funding a job
func FundJobURL(id string) string {
	return BuildURL(FundJob, map[string]string{"id": id})
}

// StartJobURL returns the URL for starting a job
func StartJobURL(id string) string {
	return BuildURL(StartJob, map[string]string{"id": id})
}

// DeliverJobURL returns the URL for delivering a job
func DeliverJobURL(id string) string {
	return BuildURL(DeliverJob, map[string]string{"id": id})
}

// CompleteJobURL returns the URL for completing a job
func CompleteJobURL(id string) string {
	return BuildURL(CompleteJob, map[string]string{"id": id})
}

// CancelJobURL returns the URL for cancelling a job
func CancelJobURL(id string) string {
	return BuildURL(CancelJob, map[string]string{"id": id})
}

// Token route helpers

// CreateTokenURL returns the URL for issuing a token
func CreateTokenURL() string {
	return BuildURL(CreateToken, nil)
}

// RevokeTokenURL returns the URL for revoking a token
func RevokeTokenURL(id string) string {
	return BuildURL(RevokeToken, map[string]string{"id": id})
}

// ListTokensURL returns the URL for listing tokens
func ListTokensURL() string {
	return BuildURL(ListTokens, nil)
}

// HealthCheckURL returns the URL for the health check endpoint
func HealthCheckURL() string {
	return BuildURL(HealthCheck, nil)
}
