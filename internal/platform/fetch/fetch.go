// Package fetch downloads small text resources (installer scripts, ad-list
// blobs) over HTTP. Bodies are treated as opaque text; only a 200 response
// is considered a successful fetch.
package fetch

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/louisbranch/holectl/internal/platform/timeouts"
)

// StatusError reports a response with a non-200 status code.
type StatusError struct {
	URL        string
	StatusCode int
}

// Error formats the failed URL and status code.
func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
}

// Client fetches text resources over HTTP.
type Client struct {
	httpClient *http.Client
}

// NewClient returns a fetch client with the shared download timeout.
func NewClient() *Client {
	return &Client{httpClient: &http.Client{Timeout: timeouts.HTTPFetch}}
}

// Fetch downloads url and returns the response body as text.
//
// A non-200 status returns a *StatusError so callers can surface the code;
// the body is not substituted or defaulted. Network-level faults return the
// transport error unwrapped beyond the usual context.
func (c *Client) Fetch(ctx context.Context, url string) (string, error) {
	if c == nil || c.httpClient == nil {
		return "", fmt.Errorf("fetch client is not configured")
	}
	if url == "" {
		return "", fmt.Errorf("fetch url is required")
	}

	log.Printf("fetching %s", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request for %s: %w", url, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return "", &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body of %s: %w", url, err)
	}
	return string(body), nil
}
