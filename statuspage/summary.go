package statuspage

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// PageSummary aggregates the page profile, its component list and any
// unresolved incidents.
type PageSummary struct {
	Page       Page
	Components []Component
	Unresolved []Incident
}

// DegradedComponents returns the components that are not operational.
func (s *PageSummary) DegradedComponents() []Component {
	var degraded []Component
	for _, component := range s.Components {
		if !component.Status.IsOperational() && !component.Group {
			degraded = append(degraded, component)
		}
	}
	return degraded
}

// Summary fetches the page profile, components and unresolved incidents
// concurrently. The client configuration is immutable, so the three
// requests can safely share one instance; each goroutine writes a
// distinct field of the result.
func (c *Client) Summary(ctx context.Context) (*PageSummary, error) {
	g, ctx := errgroup.WithContext(ctx)
	summary := &PageSummary{}

	g.Go(func() error {
		page, err := c.GetPage(ctx)
		if err != nil {
			return err
		}
		summary.Page = *page
		return nil
	})

	g.Go(func() error {
		components, err := c.ListComponents(ctx)
		if err != nil {
			return err
		}
		summary.Components = components
		return nil
	})

	g.Go(func() error {
		incidents, err := c.ListUnresolvedIncidents(ctx)
		if err != nil {
			return err
		}
		summary.Unresolved = incidents
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return summary, nil
}
