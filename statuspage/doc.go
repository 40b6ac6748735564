// Package statuspage provides a client for a statuspage.io style REST API.
//
// The client understands the API's envelope conventions: request bodies are
// wrapped under a named container key, and collection responses are unwrapped
// from their items key into an ordered slice. Failed requests are classified
// by HTTP status into a typed error taxonomy that callers can dispatch on
// with errors.As.
//
// # Features
//
//   - Generic Request/Get/Post/Put/Patch/Delete operations against relative
//     sub-paths, with the base URL and API version prefix handled internally
//   - Raw mode to bypass envelope wrapping and unwrapping per request
//   - Typed endpoints for components, incidents, subscribers, metrics and
//     the page itself
//   - Concurrent page summary aggregation
//   - Context-aware operations for cancellation
//
// # Usage
//
//	client, err := statuspage.NewClient(url, apiKey, pageID, logger)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// List all components on the page
//	components, err := client.ListComponents(ctx)
//
//	// Open an incident
//	incident, err := client.CreateIncident(ctx, statuspage.IncidentParams{
//	    Name:   "API latency",
//	    Status: statuspage.IncidentInvestigating,
//	})
//
// The client never retries. Callers that want backoff can dispatch on
// *RateLimitError and decide their own policy.
package statuspage
