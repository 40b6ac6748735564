package statuspage

import (
	"net/http"
	"time"
)

// DefaultTimeout is the per-request timeout applied when no timeout
// option is given.
const DefaultTimeout = 30 * time.Second

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds construction-time options for the Client.
type clientOptions struct {
	timeout    time.Duration
	userAgent  string
	verifyCert bool
	httpClient *http.Client
}

func defaultOptions() *clientOptions {
	return &clientOptions{
		timeout:    DefaultTimeout,
		verifyCert: true,
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(o *clientOptions) {
		o.userAgent = userAgent
	}
}

// WithInsecureSkipVerify disables certificate verification.
// Use with caution and only for development/testing.
func WithInsecureSkipVerify() Option {
	return func(o *clientOptions) {
		o.verifyCert = false
	}
}

// WithHTTPClient supplies a pre-configured HTTP client. It takes
// precedence over WithTimeout and WithInsecureSkipVerify.
func WithHTTPClient(client *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = client
	}
}
