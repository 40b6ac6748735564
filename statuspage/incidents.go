package statuspage

import (
	"context"
	"fmt"
	"time"
)

// containerIncident is the envelope key incident bodies are wrapped under.
const containerIncident = "incident"

// IncidentStatus is the lifecycle state of an incident.
type IncidentStatus string

// Realtime incident statuses.
const (
	IncidentInvestigating IncidentStatus = "investigating"
	IncidentIdentified    IncidentStatus = "identified"
	IncidentMonitoring    IncidentStatus = "monitoring"
	IncidentResolved      IncidentStatus = "resolved"
)

// Scheduled maintenance statuses.
const (
	IncidentScheduled  IncidentStatus = "scheduled"
	IncidentInProgress IncidentStatus = "in_progress"
	IncidentVerifying  IncidentStatus = "verifying"
	IncidentCompleted  IncidentStatus = "completed"
)

// IsResolved reports whether the incident reached a terminal state.
func (s IncidentStatus) IsResolved() bool {
	return s == IncidentResolved || s == IncidentCompleted
}

// IncidentImpact is the severity the incident displays with.
type IncidentImpact string

// Incident impacts recognized by the API.
const (
	ImpactNone     IncidentImpact = "none"
	ImpactMinor    IncidentImpact = "minor"
	ImpactMajor    IncidentImpact = "major"
	ImpactCritical IncidentImpact = "critical"
)

// Incident is a single incident or scheduled maintenance on the page.
type Incident struct {
	ID              string           `json:"id"`
	PageID          string           `json:"page_id"`
	Name            string           `json:"name"`
	Status          IncidentStatus   `json:"status"`
	Impact          IncidentImpact   `json:"impact"`
	Shortlink       string           `json:"shortlink"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
	MonitoringAt    *time.Time       `json:"monitoring_at"`
	ResolvedAt      *time.Time       `json:"resolved_at"`
	ScheduledFor    *time.Time       `json:"scheduled_for"`
	ScheduledUntil  *time.Time       `json:"scheduled_until"`
	IncidentUpdates []IncidentUpdate `json:"incident_updates"`
}

// IncidentUpdate is one progress entry in an incident's history.
type IncidentUpdate struct {
	ID         string         `json:"id"`
	IncidentID string         `json:"incident_id"`
	Status     IncidentStatus `json:"status"`
	Body       string         `json:"body"`
	CreatedAt  time.Time      `json:"created_at"`
	DisplayAt  time.Time      `json:"display_at"`
}

// IncidentParams carries the writable fields of an incident.
// Zero-valued fields are left out of the request body.
type IncidentParams struct {
	Name           string         `json:"name,omitempty"`
	Status         IncidentStatus `json:"status,omitempty"`
	ImpactOverride IncidentImpact `json:"impact_override,omitempty"`
	Body           string         `json:"body,omitempty"`
	ComponentIDs   []string       `json:"component_ids,omitempty"`
	ScheduledFor   *time.Time     `json:"scheduled_for,omitempty"`
	ScheduledUntil *time.Time     `json:"scheduled_until,omitempty"`
}

// ListIncidents returns all incidents on the configured page, newest
// first as the API orders them.
func (c *Client) ListIncidents(ctx context.Context) ([]Incident, error) {
	return c.listIncidents(ctx, "/incidents")
}

// ListUnresolvedIncidents returns only incidents that are still open.
func (c *Client) ListUnresolvedIncidents(ctx context.Context) ([]Incident, error) {
	return c.listIncidents(ctx, "/incidents/unresolved")
}

// ListScheduledIncidents returns upcoming scheduled maintenances.
func (c *Client) ListScheduledIncidents(ctx context.Context) ([]Incident, error) {
	return c.listIncidents(ctx, "/incidents/scheduled")
}

func (c *Client) listIncidents(ctx context.Context, sub string) ([]Incident, error) {
	path, err := c.pagePath(sub)
	if err != nil {
		return nil, err
	}

	resp, err := c.Get(ctx, path, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list incidents: %w", err)
	}

	incidents, err := decodeList[Incident](resp)
	if err != nil {
		return nil, fmt.Errorf("failed to decode incidents: %w", err)
	}

	c.logger.Debug().Int("count", len(incidents)).Str("path", sub).Msg("Retrieved incidents")
	return incidents, nil
}

// CreateIncident opens a new incident on the page.
func (c *Client) CreateIncident(ctx context.Context, params IncidentParams) (*Incident, error) {
	path, err := c.pagePath("/incidents")
	if err != nil {
		return nil, err
	}

	resp, err := c.Post(ctx, path, params, &RequestOptions{Container: containerIncident})
	if err != nil {
		return nil, fmt.Errorf("failed to create incident: %w", err)
	}

	c.logger.Info().Str("name", params.Name).Msg("Created incident")
	return decodeOne[Incident](resp)
}

// UpdateIncident updates an existing incident, typically to advance its
// status and append an update body.
func (c *Client) UpdateIncident(ctx context.Context, incidentID string, params IncidentParams) (*Incident, error) {
	path, err := c.pagePath("/incidents/" + incidentID)
	if err != nil {
		return nil, err
	}

	resp, err := c.Patch(ctx, path, params, &RequestOptions{Container: containerIncident})
	if err != nil {
		return nil, fmt.Errorf("failed to update incident %s: %w", incidentID, err)
	}

	c.logger.Info().Str("incident_id", incidentID).Str("status", string(params.Status)).Msg("Updated incident")
	return decodeOne[Incident](resp)
}

// DeleteIncident removes an incident from the page.
func (c *Client) DeleteIncident(ctx context.Context, incidentID string) error {
	path, err := c.pagePath("/incidents/" + incidentID)
	if err != nil {
		return err
	}

	if _, err := c.Delete(ctx, path, nil, nil); err != nil {
		return fmt.Errorf("failed to delete incident %s: %w", incidentID, err)
	}

	c.logger.Info().Str("incident_id", incidentID).Msg("Deleted incident")
	return nil
}
