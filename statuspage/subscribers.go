package statuspage

import (
	"context"
	"fmt"
	"time"
)

// containerSubscriber is the envelope key subscriber bodies are wrapped under.
const containerSubscriber = "subscriber"

// Subscriber is a single notification subscription on the page.
type Subscriber struct {
	ID            string     `json:"id"`
	Mode          string     `json:"mode"`
	Email         string     `json:"email"`
	PhoneNumber   string     `json:"phone_number"`
	PhoneCountry  string     `json:"phone_country"`
	Endpoint      string     `json:"endpoint"`
	QuarantinedAt *time.Time `json:"quarantined_at"`
	CreatedAt     time.Time  `json:"created_at"`
}

// Address returns whichever contact detail the subscription uses.
func (s Subscriber) Address() string {
	switch {
	case s.Email != "":
		return s.Email
	case s.PhoneNumber != "":
		return s.PhoneNumber
	default:
		return s.Endpoint
	}
}

// SubscriberParams carries the writable fields of a subscriber. Exactly
// one of email, phone number or webhook endpoint should be set.
type SubscriberParams struct {
	Email        string `json:"email,omitempty"`
	PhoneNumber  string `json:"phone_number,omitempty"`
	PhoneCountry string `json:"phone_country,omitempty"`
	Endpoint     string `json:"endpoint,omitempty"`
}

// ListSubscribers returns all subscribers on the configured page.
func (c *Client) ListSubscribers(ctx context.Context) ([]Subscriber, error) {
	path, err := c.pagePath("/subscribers")
	if err != nil {
		return nil, err
	}

	resp, err := c.Get(ctx, path, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscribers: %w", err)
	}

	subscribers, err := decodeList[Subscriber](resp)
	if err != nil {
		return nil, fmt.Errorf("failed to decode subscribers: %w", err)
	}

	c.logger.Debug().Int("count", len(subscribers)).Msg("Retrieved subscribers")
	return subscribers, nil
}

// CreateSubscriber subscribes a new email, SMS or webhook target.
func (c *Client) CreateSubscriber(ctx context.Context, params SubscriberParams) (*Subscriber, error) {
	path, err := c.pagePath("/subscribers")
	if err != nil {
		return nil, err
	}

	resp, err := c.Post(ctx, path, params, &RequestOptions{Container: containerSubscriber})
	if err != nil {
		return nil, fmt.Errorf("failed to create subscriber: %w", err)
	}

	c.logger.Info().Msg("Created subscriber")
	return decodeOne[Subscriber](resp)
}

// DeleteSubscriber removes a subscription from the page.
func (c *Client) DeleteSubscriber(ctx context.Context, subscriberID string) error {
	path, err := c.pagePath("/subscribers/" + subscriberID)
	if err != nil {
		return err
	}

	if _, err := c.Delete(ctx, path, nil, nil); err != nil {
		return fmt.Errorf("failed to delete subscriber %s: %w", subscriberID, err)
	}

	c.logger.Info().Str("subscriber_id", subscriberID).Msg("Deleted subscriber")
	return nil
}
