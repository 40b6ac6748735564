package statuspage

import (
	"context"
	"fmt"
	"time"
)

// containerPage is the envelope key page bodies are wrapped under.
const containerPage = "page"

// Page is the status page profile itself.
type Page struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	URL        string    `json:"url"`
	Subdomain  string    `json:"subdomain"`
	Domain     string    `json:"domain"`
	SupportURL string    `json:"support_url"`
	TimeZone   string    `json:"time_zone"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// PageParams carries the writable fields of the page profile.
// Zero-valued fields are left out of the request body.
type PageParams struct {
	Name       string `json:"name,omitempty"`
	URL        string `json:"url,omitempty"`
	SupportURL string `json:"support_url,omitempty"`
	TimeZone   string `json:"time_zone,omitempty"`
}

// GetPage returns the configured page's profile.
func (c *Client) GetPage(ctx context.Context) (*Page, error) {
	path, err := c.pagePath("")
	if err != nil {
		return nil, err
	}

	resp, err := c.Get(ctx, path, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get page: %w", err)
	}

	return decodeOne[Page](resp)
}

// UpdatePage updates the page profile.
func (c *Client) UpdatePage(ctx context.Context, params PageParams) (*Page, error) {
	path, err := c.pagePath("")
	if err != nil {
		return nil, err
	}

	resp, err := c.Patch(ctx, path, params, &RequestOptions{Container: containerPage})
	if err != nil {
		return nil, fmt.Errorf("failed to update page: %w", err)
	}

	c.logger.Info().Msg("Updated page")
	return decodeOne[Page](resp)
}
