package statuspage

import (
	"context"
	"fmt"
	"time"
)

// containerComponent is the envelope key component bodies are wrapped under.
const containerComponent = "component"

// ComponentStatus is the operational state a component reports.
type ComponentStatus string

// Component statuses recognized by the API.
const (
	StatusOperational         ComponentStatus = "operational"
	StatusDegradedPerformance ComponentStatus = "degraded_performance"
	StatusPartialOutage       ComponentStatus = "partial_outage"
	StatusMajorOutage         ComponentStatus = "major_outage"
	StatusUnderMaintenance    ComponentStatus = "under_maintenance"
)

// IsOperational reports whether the status is the healthy baseline.
func (s ComponentStatus) IsOperational() bool {
	return s == StatusOperational
}

// Component is a single entry on the page's component list.
type Component struct {
	ID                 string          `json:"id"`
	PageID             string          `json:"page_id"`
	GroupID            string          `json:"group_id"`
	Name               string          `json:"name"`
	Description        string          `json:"description"`
	Status             ComponentStatus `json:"status"`
	Position           int             `json:"position"`
	Group              bool            `json:"group"`
	Showcase           bool            `json:"showcase"`
	OnlyShowIfDegraded bool            `json:"only_show_if_degraded"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// ComponentParams carries the writable fields of a component.
// Zero-valued fields are left out of the request body.
type ComponentParams struct {
	Name               string          `json:"name,omitempty"`
	Description        string          `json:"description,omitempty"`
	Status             ComponentStatus `json:"status,omitempty"`
	GroupID            string          `json:"group_id,omitempty"`
	Showcase           bool            `json:"showcase,omitempty"`
	OnlyShowIfDegraded bool            `json:"only_show_if_degraded,omitempty"`
}

// ListComponents returns all components on the configured page.
func (c *Client) ListComponents(ctx context.Context) ([]Component, error) {
	path, err := c.pagePath("/components")
	if err != nil {
		return nil, err
	}

	resp, err := c.Get(ctx, path, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list components: %w", err)
	}

	components, err := decodeList[Component](resp)
	if err != nil {
		return nil, fmt.Errorf("failed to decode components: %w", err)
	}

	c.logger.Debug().Int("count", len(components)).Msg("Retrieved components")
	return components, nil
}

// GetComponent returns a single component by ID.
func (c *Client) GetComponent(ctx context.Context, componentID string) (*Component, error) {
	path, err := c.pagePath("/components/" + componentID)
	if err != nil {
		return nil, err
	}

	resp, err := c.Get(ctx, path, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get component %s: %w", componentID, err)
	}

	return decodeOne[Component](resp)
}

// CreateComponent creates a new component on the page.
func (c *Client) CreateComponent(ctx context.Context, params ComponentParams) (*Component, error) {
	path, err := c.pagePath("/components")
	if err != nil {
		return nil, err
	}

	resp, err := c.Post(ctx, path, params, &RequestOptions{Container: containerComponent})
	if err != nil {
		return nil, fmt.Errorf("failed to create component: %w", err)
	}

	c.logger.Info().Str("name", params.Name).Msg("Created component")
	return decodeOne[Component](resp)
}

// UpdateComponent updates an existing component.
func (c *Client) UpdateComponent(ctx context.Context, componentID string, params ComponentParams) (*Component, error) {
	path, err := c.pagePath("/components/" + componentID)
	if err != nil {
		return nil, err
	}

	resp, err := c.Patch(ctx, path, params, &RequestOptions{Container: containerComponent})
	if err != nil {
		return nil, fmt.Errorf("failed to update component %s: %w", componentID, err)
	}

	c.logger.Info().Str("component_id", componentID).Msg("Updated component")
	return decodeOne[Component](resp)
}

// DeleteComponent removes a component from the page.
func (c *Client) DeleteComponent(ctx context.Context, componentID string) error {
	path, err := c.pagePath("/components/" + componentID)
	if err != nil {
		return err
	}

	if _, err := c.Delete(ctx, path, nil, nil); err != nil {
		return fmt.Errorf("failed to delete component %s: %w", componentID, err)
	}

	c.logger.Info().Str("component_id", componentID).Msg("Deleted component")
	return nil
}
