package statuspage

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, serverURL string, opts ...Option) *Client {
	t.Helper()
	client, err := NewClient(serverURL, "test-key", "pg1", zerolog.Nop(), opts...)
	require.NoError(t, err)
	return client
}

func TestNewClient(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name    string
		baseURL string
		apiKey  string
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid config",
			baseURL: "https://api.example.com",
			apiKey:  "test-key",
			wantErr: false,
		},
		{
			name:    "missing base URL",
			baseURL: "",
			apiKey:  "test-key",
			wantErr: true,
			errMsg:  "base URL is required",
		},
		{
			name:    "missing API key",
			baseURL: "https://api.example.com",
			apiKey:  "",
			wantErr: true,
			errMsg:  "API key is required",
		},
		{
			name:    "relative base URL",
			baseURL: "api.example.com",
			apiKey:  "test-key",
			wantErr: true,
			errMsg:  "invalid base URL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.baseURL, tt.apiKey, "pg1", logger)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)

				var cfgErr *ConfigurationError
				assert.ErrorAs(t, err, &cfgErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "https://api.example.com", client.baseURL)
		})
	}

	t.Run("trailing slash trimmed", func(t *testing.T) {
		client, err := NewClient("https://api.example.com/", "test-key", "pg1", logger)
		require.NoError(t, err)
		assert.Equal(t, "https://api.example.com", client.baseURL)
	})
}

func TestClientOptions(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("default timeout", func(t *testing.T) {
		client, err := NewClient("https://api.example.com", "test-key", "pg1", logger)
		require.NoError(t, err)
		assert.Equal(t, DefaultTimeout, client.httpClient.Timeout)
	})

	t.Run("with timeout", func(t *testing.T) {
		client, err := NewClient("https://api.example.com", "test-key", "pg1", logger, WithTimeout(5*time.Second))
		require.NoError(t, err)
		assert.Equal(t, 5*time.Second, client.httpClient.Timeout)
	})

	t.Run("with custom http client", func(t *testing.T) {
		customClient := &http.Client{Timeout: 10 * time.Second}
		client, err := NewClient("https://api.example.com", "test-key", "pg1", logger, WithHTTPClient(customClient))
		require.NoError(t, err)
		assert.Equal(t, customClient, client.httpClient)
	})

	t.Run("with insecure skip verify", func(t *testing.T) {
		client, err := NewClient("https://api.example.com", "test-key", "pg1", logger, WithInsecureSkipVerify())
		require.NoError(t, err)

		transport, ok := client.httpClient.Transport.(*http.Transport)
		require.True(t, ok)
		assert.True(t, transport.TLSClientConfig.InsecureSkipVerify)
	})
}

func TestRequestURLComposition(t *testing.T) {
	var gotPath, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	ctx := context.Background()

	t.Run("version prefix prepended", func(t *testing.T) {
		_, err := client.Get(ctx, "/components", nil, nil)
		require.NoError(t, err)
		assert.Equal(t, "/v1/components", gotPath)
		assert.Empty(t, gotQuery)
	})

	t.Run("query parameters encoded", func(t *testing.T) {
		params := url.Values{}
		params.Set("page", "2")
		_, err := client.Get(ctx, "/components", params, nil)
		require.NoError(t, err)
		assert.Equal(t, "/v1/components", gotPath)
		assert.Equal(t, "page=2", gotQuery)
	})
}

func TestRequestHeaders(t *testing.T) {
	var gotHeader http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Clone()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, WithUserAgent("statusctl/test"))
	ctx := context.Background()

	t.Run("defaults", func(t *testing.T) {
		_, err := client.Get(ctx, "/components", nil, nil)
		require.NoError(t, err)
		assert.Equal(t, "OAuth test-key", gotHeader.Get("Authorization"))
		assert.Equal(t, "application/x-www-form-urlencoded", gotHeader.Get("Content-Type"))
		assert.Equal(t, "statusctl/test", gotHeader.Get("User-Agent"))
	})

	t.Run("caller headers override defaults", func(t *testing.T) {
		opts := &RequestOptions{Headers: map[string]string{
			"Content-Type": "text/plain",
			"X-Custom":     "yes",
		}}
		_, err := client.Get(ctx, "/components", nil, opts)
		require.NoError(t, err)
		assert.Equal(t, "text/plain", gotHeader.Get("Content-Type"))
		assert.Equal(t, "yes", gotHeader.Get("X-Custom"))
	})

	t.Run("body forces json content type", func(t *testing.T) {
		opts := &RequestOptions{Container: "component"}
		_, err := client.Post(ctx, "/components", map[string]any{"name": "x"}, opts)
		require.NoError(t, err)
		assert.Equal(t, "application/json", gotHeader.Get("Content-Type"))
	})
}

func TestRequestBodyEnvelope(t *testing.T) {
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	ctx := context.Background()

	t.Run("body wrapped under container", func(t *testing.T) {
		opts := &RequestOptions{Container: "component"}
		_, err := client.Post(ctx, "/components", map[string]any{"name": "x"}, opts)
		require.NoError(t, err)
		assert.Equal(t, `{"component":{"name":"x"}}`, string(gotBody))
	})

	t.Run("container required", func(t *testing.T) {
		_, err := client.Post(ctx, "/components", map[string]any{"name": "x"}, nil)
		require.ErrorIs(t, err, ErrContainerRequired)
	})

	t.Run("raw body sent as-is", func(t *testing.T) {
		opts := &RequestOptions{Raw: true}
		_, err := client.Post(ctx, "/components", map[string]any{"name": "x"}, opts)
		require.NoError(t, err)
		assert.Equal(t, `{"name":"x"}`, string(gotBody))
	})
}

func TestResponseUnwrap(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantList int
	}{
		{
			name:     "items key yields ordered collection",
			body:     `{"items":[{"id":"a"},{"id":"b"},{"id":"c"}]}`,
			wantList: 3,
		},
		{
			name:     "empty items key yields empty collection",
			body:     `{"items":[]}`,
			wantList: 0,
		},
		{
			name: "no items key yields single resource",
			body: `{"id":"a","name":"x"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := newTestClient(t, server.URL)
			resp, err := client.Get(context.Background(), "/things", nil, nil)
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, resp.StatusCode)

			if tt.wantList > 0 || tt.body == `{"items":[]}` {
				require.NotNil(t, resp.Resources)
				require.Len(t, resp.Resources, tt.wantList)
				assert.Nil(t, resp.Resource)
				for i, id := range []string{"a", "b", "c"}[:tt.wantList] {
					assert.Equal(t, id, resp.Resources[i].String("id"))
				}
				return
			}

			require.NotNil(t, resp.Resource)
			assert.Nil(t, resp.Resources)
			assert.Equal(t, "a", resp.Resource.String("id"))
			assert.Equal(t, "x", resp.Resource.String("name"))
		})
	}
}

func TestResponseRawMode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items":[{"id":"a"}],"page":1}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	resp, err := client.Get(context.Background(), "/things", nil, &RequestOptions{Raw: true})
	require.NoError(t, err)

	// The items key stays in place, no unwrapping happens.
	assert.Nil(t, resp.Resources)
	require.NotNil(t, resp.Resource)
	items, ok := resp.Resource.Get("items")
	require.True(t, ok)
	assert.Len(t, items, 1)
	assert.Equal(t, int64(1), resp.Resource.Int("page"))
}

func TestResponseNonJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("pong"))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	resp, err := client.Get(context.Background(), "/ping", nil, nil)
	require.NoError(t, err)

	assert.Equal(t, []byte("pong"), resp.Body)
	assert.Nil(t, resp.Resource)
	assert.Nil(t, resp.Resources)
}

func TestResponseHeadersReturned(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Request-Id", "req-1")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	resp, err := client.Get(context.Background(), "/things", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "req-1", resp.Header.Get("X-Request-Id"))
}

func TestRequestMethods(t *testing.T) {
	var gotMethod string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	ctx := context.Background()
	opts := &RequestOptions{Container: "thing"}
	body := map[string]any{"name": "x"}

	tests := []struct {
		name string
		call func() (*Response, error)
		want string
	}{
		{"get", func() (*Response, error) { return client.Get(ctx, "/t", nil, nil) }, http.MethodGet},
		{"post", func() (*Response, error) { return client.Post(ctx, "/t", body, opts) }, http.MethodPost},
		{"put", func() (*Response, error) { return client.Put(ctx, "/t", body, opts) }, http.MethodPut},
		{"patch", func() (*Response, error) { return client.Patch(ctx, "/t", body, opts) }, http.MethodPatch},
		{"delete", func() (*Response, error) { return client.Delete(ctx, "/t", nil, nil) }, http.MethodDelete},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.call()
			require.NoError(t, err)
			assert.Equal(t, tt.want, gotMethod)
		})
	}
}

func TestRequestContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Get(ctx, "/slow", nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestErrorClassificationEndToEnd(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		contentType string
		body        string
		check       func(t *testing.T, err error)
	}{
		{
			name:        "422 resource error with payload",
			status:      422,
			contentType: "application/json",
			body:        `[{"code":"invalid","field":"name"}]`,
			check: func(t *testing.T, err error) {
				var resErr *ResourceError
				require.ErrorAs(t, err, &resErr)
				assert.Equal(t, 422, resErr.StatusCode)
				require.Len(t, resErr.Payload, 1)
				assert.Equal(t, "invalid", resErr.Payload[0].Code)
				assert.Equal(t, "name", resErr.Payload[0].Field)
			},
		},
		{
			name:        "420 rate limit with json body",
			status:      420,
			contentType: "application/json",
			body:        `[{"code":"slow_down"}]`,
			check: func(t *testing.T, err error) {
				var rateErr *RateLimitError
				require.ErrorAs(t, err, &rateErr)
			},
		},
		{
			name:        "420 rate limit with non-json body",
			status:      420,
			contentType: "text/plain",
			body:        "enhance your calm",
			check: func(t *testing.T, err error) {
				var rateErr *RateLimitError
				require.ErrorAs(t, err, &rateErr)
			},
		},
		{
			name:        "404 request error",
			status:      404,
			contentType: "application/json",
			body:        `[{"code":"not_found","message":"no such component"}]`,
			check: func(t *testing.T, err error) {
				var reqErr *RequestError
				require.ErrorAs(t, err, &reqErr)
				assert.Equal(t, 404, reqErr.StatusCode)
				assert.Equal(t, "not_found", reqErr.Payload[0].Code)
			},
		},
		{
			name:        "503 server error",
			status:      503,
			contentType: "application/json",
			body:        `[{"code":"unavailable"}]`,
			check: func(t *testing.T, err error) {
				var srvErr *ServerError
				require.ErrorAs(t, err, &srvErr)
				assert.Equal(t, 503, srvErr.StatusCode)
			},
		},
		{
			name:        "500 with non-json body",
			status:      500,
			contentType: "text/plain",
			body:        "Internal Error",
			check: func(t *testing.T, err error) {
				var unkErr *UnknownError
				require.ErrorAs(t, err, &unkErr)
				assert.Equal(t, 500, unkErr.StatusCode)
				assert.Equal(t, "Internal Error", unkErr.Body)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", tt.contentType)
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := newTestClient(t, server.URL)
			resp, err := client.Get(context.Background(), "/things", nil, nil)
			require.Error(t, err)
			assert.Nil(t, resp)
			tt.check(t, err)
		})
	}
}

func TestEnvelopeWrapUnwrapRoundTrip(t *testing.T) {
	wrapped := wrapEnvelope("component", map[string]any{"name": "x"})
	data, err := json.Marshal(wrapped)
	require.NoError(t, err)
	assert.Equal(t, `{"component":{"name":"x"}}`, string(data))

	var out Response
	require.NoError(t, unwrapEnvelope(data, &out))
	require.NotNil(t, out.Resource)
	inner, ok := out.Resource.Get("component")
	require.True(t, ok)
	assert.Equal(t, map[string]any{"name": "x"}, inner)
}
