// Package nws is a minimal client for the National Weather Service API. It
// covers the two lookups the weather tools need: point forecasts and active
// alerts by state.
package nws

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const (
	// DefaultBaseURL is the public NWS API endpoint.
	DefaultBaseURL = "https://api.weather.gov"

	// DefaultUserAgent identifies this server to the NWS API, which rejects
	// requests without a User-Agent.
	DefaultUserAgent = "weather-mcp-server/1.0"

	// acceptHeader is the GeoJSON media type the NWS API serves.
	acceptHeader = "application/geo+json"
)

// APIError reports a failed round trip to the NWS API: either a non-2xx
// response (StatusCode set) or a network or decode failure (StatusCode zero,
// Err set).
type APIError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.StatusCode)
	}

	return fmt.Sprintf("GET %s: %v", e.URL, e.Err)
}

func (e *APIError) Unwrap() error { return e.Err }

// TransportError marks APIError as an upstream transport failure for the
// dispatcher's envelope formatting.
func (e *APIError) TransportError() {}

// Client issues requests against the NWS API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

// New creates a Client. An empty baseURL or userAgent falls back to the NWS
// defaults; a nil httpClient gets a 30 second timeout.
func New(baseURL, userAgent string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &Client{httpClient: httpClient, baseURL: baseURL, userAgent: userAgent}
}

// get performs a single GET against url and decodes the JSON response into
// out. No retries: any failure is reported as an *APIError and left to the
// caller.
func (c *Client) get(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("nws: create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", acceptHeader)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &APIError{URL: url, Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close on read

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{URL: url, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &APIError{URL: url, Err: fmt.Errorf("decode response: %w", err)}
	}

	return nil
}
