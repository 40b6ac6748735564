package statuspage

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
)

// apiVersion is the REST API version prefix prepended to every path.
const apiVersion = "/v1"

// Client talks to a status page API using its envelope conventions.
// Configuration is immutable after construction, so a single instance
// is safe to share between goroutines.
type Client struct {
	baseURL    string
	apiKey     string
	pageID     string
	userAgent  string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a new API client. The base URL and API key are
// validated before any network call is attempted. The page ID scopes
// the typed resource endpoints and may be empty when only Request and
// the verb helpers are used.
func NewClient(baseURL, apiKey, pageID string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, &ConfigurationError{Message: "base URL is required"}
	}
	if apiKey == "" {
		return nil, &ConfigurationError{Message: "API key is required"}
	}

	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, &ConfigurationError{Message: fmt.Sprintf("invalid base URL: %q", baseURL)}
	}

	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	httpClient := options.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: options.timeout}
		if !options.verifyCert {
			httpClient.Transport = &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			}
		}
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		pageID:     pageID,
		userAgent:  options.userAgent,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// RequestOptions adjusts the encoding and decoding of a single request.
// A nil pointer applies all defaults.
type RequestOptions struct {
	// Headers are merged over the default request headers and override
	// them on collision. Default: none.
	Headers map[string]string

	// Raw disables envelope wrapping of the request body and envelope
	// unwrapping of the response body. Default: false.
	Raw bool

	// Container names the envelope key the request body is wrapped
	// under, e.g. "component". Required whenever a body is supplied and
	// Raw is false. Default: "".
	Container string
}

// Response is the outcome of a successful API exchange. At most one of
// Resource, Resources and Body is populated: a single decoded object,
// an unwrapped items collection, or the verbatim payload of a non-JSON
// response.
type Response struct {
	StatusCode int
	Header     http.Header
	Resource   Resource
	Resources  []Resource
	Body       []byte
}

// Get sends a GET request to the given sub-path.
func (c *Client) Get(ctx context.Context, path string, params url.Values, opts *RequestOptions) (*Response, error) {
	return c.Request(ctx, http.MethodGet, path, params, nil, opts)
}

// Post sends a POST request with the given body to the given sub-path.
func (c *Client) Post(ctx context.Context, path string, body any, opts *RequestOptions) (*Response, error) {
	return c.Request(ctx, http.MethodPost, path, nil, body, opts)
}

// Put sends a PUT request with the given body to the given sub-path.
func (c *Client) Put(ctx context.Context, path string, body any, opts *RequestOptions) (*Response, error) {
	return c.Request(ctx, http.MethodPut, path, nil, body, opts)
}

// Patch sends a PATCH request with the given body to the given sub-path.
func (c *Client) Patch(ctx context.Context, path string, body any, opts *RequestOptions) (*Response, error) {
	return c.Request(ctx, http.MethodPatch, path, nil, body, opts)
}

// Delete sends a DELETE request to the given sub-path.
func (c *Client) Delete(ctx context.Context, path string, params url.Values, opts *RequestOptions) (*Response, error) {
	return c.Request(ctx, http.MethodDelete, path, params, nil, opts)
}

// Request performs a single HTTP exchange. The path is relative;
// callers must include neither the base URL nor the API version
// prefix. A non-nil body is wrapped under opts.Container unless raw
// mode is on, and JSON responses are unwrapped from their envelope the
// same way. Non-2xx responses are classified into the typed error
// taxonomy and returned as an error, never retried.
func (c *Client) Request(ctx context.Context, method, path string, params url.Values, body any, opts *RequestOptions) (*Response, error) {
	if opts == nil {
		opts = &RequestOptions{}
	}

	requestURL := c.baseURL + apiVersion + path
	if len(params) > 0 {
		requestURL += "?" + params.Encode()
	}

	headers := map[string]string{
		"Content-Type":  "application/x-www-form-urlencoded",
		"Authorization": "OAuth " + c.apiKey,
	}
	if c.userAgent != "" {
		headers["User-Agent"] = c.userAgent
	}
	for name, value := range opts.Headers {
		headers[name] = value
	}

	var reqBody io.Reader
	if body != nil {
		headers["Content-Type"] = "application/json"
		payload := body
		if !opts.Raw {
			if opts.Container == "" {
				return nil, ErrContainerRequired
			}
			payload = wrapEnvelope(opts.Container, body)
		}
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for name, value := range headers {
		req.Header.Set(name, value)
	}

	c.logger.Debug().
		Str("method", method).
		Str("url", requestURL).
		Msg("Sending API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, classifyError(resp.StatusCode, data)
	}

	out := &Response{StatusCode: resp.StatusCode, Header: resp.Header}
	switch {
	case !strings.Contains(resp.Header.Get("Content-Type"), "json"):
		out.Body = data
	case opts.Raw:
		var resource Resource
		if err := json.Unmarshal(data, &resource); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}
		out.Resource = resource
	default:
		if err := unwrapEnvelope(data, out); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return out, nil
}

// pagePath prefixes a sub-path with the configured page scope.
func (c *Client) pagePath(sub string) (string, error) {
	if c.pageID == "" {
		return "", &ConfigurationError{Message: "page ID is required for page-scoped endpoints"}
	}
	return "/pages/" + c.pageID + sub, nil
}

// wrapEnvelope nests a request body under the container key the API
// expects, e.g. {"component": {...}}.
func wrapEnvelope(container string, body any) map[string]any {
	return map[string]any{container: body}
}

// unwrapEnvelope decodes a JSON response body into out. A body with an
// items key yields the collection in order; anything else yields a
// single resource.
func unwrapEnvelope(data []byte, out *Response) error {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}

	if items, ok := probe["items"]; ok {
		var resources []Resource
		if err := json.Unmarshal(items, &resources); err != nil {
			return err
		}
		out.Resources = resources
		return nil
	}

	var resource Resource
	if err := json.Unmarshal(data, &resource); err != nil {
		return err
	}
	out.Resource = resource
	return nil
}
