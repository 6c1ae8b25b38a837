// Package twitter implements the external profile lookup against the
// Twitter-compatible user API. Only the single by-username read the directory
// needs is implemented.
package twitter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/agoralabs/agora/internal/services"
)

// DefaultTimeout is the default timeout for lookup requests
const DefaultTimeout = 10 * time.Second

// Client fetches public profile data by handle
type Client struct {
	baseURL string
	bearer  string
	timeout time.Duration
}

var _ services.ProfileLookup = (*Client)(nil)

// NewClient creates a profile lookup client. baseURL points at the API root,
// bearer is the app-only credential.
func NewClient(baseURL, bearer string) *Client {
	return &Client{
		baseURL: baseURL,
		bearer:  bearer,
		timeout: DefaultTimeout,
	}
}

type userResponse struct {
	Data *struct {
		ID              string `json:"id"`
		Name            string `json:"name"`
		Username        string `json:"username"`
		Description     string `json:"description"`
		ProfileImageURL string `json:"profile_image_url"`
	} `json:"data"`
	Errors []struct {
		Title  string `json:"title"`
		Detail string `json:"detail"`
	} `json:"errors"`
}

// Lookup fetches the profile for a handle. A missing user is reported as
// services.ErrProfileNotFound; anything else is a transient error.
func (c *Client) Lookup(ctx context.Context, handle string) (*services.Profile, error) {
	endpoint := fmt.Sprintf("%s/2/users/by/username/%s?user.fields=description,profile_image_url", c.baseURL, handle)

	agent := fiber.Get(endpoint)
	agent.Set("Authorization", "Bearer "+c.bearer)
	agent.Timeout(c.timeout)
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < c.timeout {
			agent.Timeout(remaining)
		}
	}

	status, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return nil, fmt.Errorf("profile lookup request failed: %w", errs[0])
	}
	if status == http.StatusNotFound {
		return nil, services.ErrProfileNotFound
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("profile lookup returned status %d", status)
	}

	var resp userResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse profile response: %w", err)
	}
	// The API reports unknown usernames as 200 with an errors array.
	if resp.Data == nil {
		if len(resp.Errors) > 0 {
			return nil, services.ErrProfileNotFound
		}
		return nil, fmt.Errorf("profile response missing data")
	}

	return &services.Profile{
		Name:       resp.Data.Name,
		Bio:        resp.Data.Description,
		AvatarURL:  resp.Data.ProfileImageURL,
		ExternalID: resp.Data.ID,
	}, nil
}
