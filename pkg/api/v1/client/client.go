// Package client provides the API client for interacting with the Agora API
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/agoralabs/agora/internal/api/v1/routes"
	"github.com/agoralabs/agora/internal/db/models"
	"github.com/agoralabs/agora/internal/types"
)

// DefaultTimeout is the default timeout for API requests
const DefaultTimeout = 30 * time.Second

// Client is the interface for API client
type Client interface {
	// Health check
	HealthCheck(ctx context.Context) (map[string]string, error)

	// Agent endpoints
	GetAgent(ctx context.Context, handle string) (*models.Agent, error)
	CreateAgent(ctx context.Context, handle string) (*models.Agent, error)
	ClaimAgent(ctx context.Context, handle string) (*models.Agent, error)
	CreateOffer(ctx context.Context, handle string, req types.CreateOfferRequest) (*types.CreateOfferResponse, error)

	// Job endpoints
	GetJob(ctx context.Context, id uint) (*models.Job, error)
	FundJob(ctx context.Context, id uint, escrowAddress string) (*models.Job, error)
	StartJob(ctx context.Context, id uint) (*models.Job, error)
	DeliverJob(ctx context.Context, id uint, deliveredURL string) (*types.DeliverJobResponse, error)
	CompleteJob(ctx context.Context, id uint) (*models.Job, error)
	CancelJob(ctx context.Context, id uint) (*models.Job, error)

	// Token endpoints
	CreateToken(ctx context.Context, req types.CreateTokenRequest) (*types.CreateTokenResponse, error)
	RevokeToken(ctx context.Context, id uint) error
	ListTokens(ctx context.Context) ([]models.AccessToken, error)
}

var _ Client = &APIClient{}

// Options contains configuration options for the API client
type Options struct {
	// BaseURL is the base URL of the API
	BaseURL string

	// Timeout is the request timeout
	Timeout time.Duration

	// AuthToken is sent as the bearer credential on every request. It may be a
	// session token or a raw access token; the server decides per route which
	// kinds it accepts.
	AuthToken string
}

// DefaultOptions returns the default client options
func DefaultOptions() *Options {
	return &Options{
		BaseURL: routes.DefaultBaseURL,
		Timeout: DefaultTimeout,
	}
}

// APIClient implements the Client interface
type APIClient struct {
	baseURL   string
	timeout   time.Duration
	AuthToken string
}

// NewClient creates a new API client with the given options
func NewClient(opts *Options) (Client, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	if _, err := url.Parse(opts.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	return &APIClient{
		baseURL:   opts.BaseURL,
		timeout:   opts.Timeout,
		AuthToken: opts.AuthToken,
	}, nil
}

// createAgent creates a new Fiber Agent for the given method and endpoint
func (c *APIClient) createAgent(ctx context.Context, method, endpoint string, body interface{}) (*fiber.Agent, error) {
	fullURL := c.baseURL + endpoint

	var agent *fiber.Agent
	switch method {
	case http.MethodGet:
		agent = fiber.Get(fullURL)
	case http.MethodPost:
		agent = fiber.Post(fullURL)
	case http.MethodPut:
		agent = fiber.Put(fullURL)
	case http.MethodDelete:
		agent = fiber.Delete(fullURL)
	default:
		return nil, fmt.Errorf("unsupported HTTP method: %s", method)
	}

	// Set timeout from context or client default
	if deadline, ok := ctx.Deadline(); ok {
		agent.Timeout(time.Until(deadline))
	} else {
		agent.Timeout(c.timeout)
	}

	agent.Set("Content-Type", "application/json")
	agent.Set("Accept", "application/json")
	if c.AuthToken != "" {
		agent.Set(fiber.HeaderAuthorization, "Bearer "+c.AuthToken)
	}

	if body != nil {
		agent.JSON(body)
	}

	return agent, nil
}

// doRequest sends the HTTP request and processes the response
func (c *APIClient) doRequest(agent *fiber.Agent, v interface{}) error {
	statusCode, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("error sending request: %w", errs[0])
	}

	if statusCode < 200 || statusCode >= 300 {
		// If we can't decode the error response, return an error with the raw body as the message
		return &fiber.Error{
			Code:    statusCode,
			Message: string(body),
		}
	}

	if v != nil && len(body) > 0 {
		if err := json.Unmarshal(body, v); err != nil {
			return fmt.Errorf("error decoding response: %w", err)
		}
	}

	return nil
}

// executeRequest creates an agent, sends the request, and processes the response
func (c *APIClient) executeRequest(ctx context.Context, method, endpoint string, body, response interface{}) error {
	agent, err := c.createAgent(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	return c.doRequest(agent, response)
}

// HealthCheck checks the API server's health
func (c *APIClient) HealthCheck(ctx context.Context) (map[string]string, error) {
	var response map[string]string
	err := c.executeRequest(ctx, http.MethodGet, routes.HealthCheckURL(), nil, &response)
	return response, err
}

// GetAgent fetches an agent profile by handle
func (c *APIClient) GetAgent(ctx context.Context, handle string) (*models.Agent, error) {
	var agent models.Agent
	err := c.executeRequest(ctx, http.MethodGet, routes.GetAgentURL(handle), nil, &agent)
	if err != nil {
		return nil, err
	}
	return &agent, nil
}

// CreateAgent explicitly creates an agent profile for a handle
func (c *APIClient) CreateAgent(ctx context.Context, handle string) (*models.Agent, error) {
	var agent models.Agent
	err := c.executeRequest(ctx, http.MethodPost, routes.CreateAgentURL(),
		types.CreateAgentRequest{Handle: handle}, &agent)
	if err != nil {
		return nil, err
	}
	return &agent, nil
}

// ClaimAgent claims the agent profile matching the caller's linked handle
func (c *APIClient) ClaimAgent(ctx context.Context, handle string) (*models.Agent, error) {
	var agent models.Agent
	err := c.executeRequest(ctx, http.MethodPost, routes.ClaimAgentURL(),
		types.ClaimAgentRequest{Handle: handle}, &agent)
	if err != nil {
		return nil, err
	}
	return &agent, nil
}

// CreateOffer creates an offer and its paired job against an agent
func (c *APIClient) CreateOffer(ctx context.Context, handle string, req types.CreateOfferRequest) (*types.CreateOfferResponse, error) {
	var response types.CreateOfferResponse
	err := c.executeRequest(ctx, http.MethodPost, routes.CreateOfferURL(handle), req, &response)
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// GetJob fetches a job by ID
func (c *APIClient) GetJob(ctx context.Context, id uint) (*models.Job, error) {
	var job models.Job
	err := c.executeRequest(ctx, http.MethodGet, routes.GetJobURL(formatID(id)), nil, &job)
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// FundJob marks a job as funded, optionally recording the escrow address
func (c *APIClient) FundJob(ctx context.Context, id uint, escrowAddress string) (*models.Job, error) {
	var job models.Job
	var body interface{}
	if escrowAddress != "" {
		body = types.FundJobRequest{EscrowAddress: escrowAddress}
	}
	err := c.executeRequest(ctx, http.MethodPut, routes.FundJobURL(formatID(id)), body, &job)
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// StartJob marks a job as started
func (c *APIClient) StartJob(ctx context.Context, id uint) (*models.Job, error) {
	var job models.Job
	err := c.executeRequest(ctx, http.MethodPut, routes.StartJobURL(formatID(id)), nil, &job)
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// DeliverJob marks a job as delivered with the artifact URL
func (c *APIClient) DeliverJob(ctx context.Context, id uint, deliveredURL string) (*types.DeliverJobResponse, error) {
	var response types.DeliverJobResponse
	err := c.executeRequest(ctx, http.MethodPut, routes.DeliverJobURL(formatID(id)),
		types.DeliverJobRequest{DeliveredURL: deliveredURL}, &response)
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// CompleteJob marks a job as completed
func (c *APIClient) CompleteJob(ctx context.Context, id uint) (*models.Job, error) {
	var job models.Job
	err := c.executeRequest(ctx, http.MethodPut, routes.CompleteJobURL(formatID(id)), nil, &job)
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// CancelJob cancels a job
func (c *APIClient) CancelJob(ctx context.Context, id uint) (*models.Job, error) {
	var job models.Job
	err := c.executeRequest(ctx, http.MethodPut, routes.CancelJobURL(formatID(id)), nil, &job)
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// CreateToken issues a new access token; the response carries the raw secret once
func (c *APIClient) CreateToken(ctx context.Context, req types.CreateTokenRequest) (*types.CreateTokenResponse, error) {
	var response types.CreateTokenResponse
	err := c.executeRequest(ctx, http.MethodPost, routes.CreateTokenURL(), req, &response)
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// RevokeToken revokes an access token owned by the caller
func (c *APIClient) RevokeToken(ctx context.Context, id uint) error {
	var response types.RevokeTokenResponse
	return c.executeRequest(ctx, http.MethodPost, routes.RevokeTokenURL(formatID(id)), nil, &response)
}

// ListTokens lists the caller's access tokens, metadata only
func (c *APIClient) ListTokens(ctx context.Context) ([]models.AccessToken, error) {
	var response types.ListTokensResponse
	err := c.executeRequest(ctx, http.MethodGet, routes.ListTokensURL(), nil, &response)
	if err != nil {
		return nil, err
	}
	return response.Tokens, nil
}

func formatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
