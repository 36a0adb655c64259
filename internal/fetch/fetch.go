// Package fetch retrieves raw text resources over HTTP with a bounded wait.
//
// The CSV sources behind the landing page are edited up to the last minute,
// so every request bypasses intermediate caches. Failures are surfaced as
// typed errors so callers can distinguish a slow origin from a missing
// resource from a transport fault.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout bounds a single resource fetch, including the body read.
const DefaultTimeout = 8 * time.Second

// ErrTimeout is returned when a fetch exceeds the configured bound.
// The in-flight request is cancelled before the error is returned.
var ErrTimeout = errors.New("fetch: deadline exceeded")

// HTTPError is returned for a non-2xx response status.
type HTTPError struct {
	StatusCode int
	Status     string
	Location   string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("fetch %s: %s", e.Location, e.Status)
}

// Client fetches text resources with a per-request timeout.
type Client struct {
	http    *http.Client
	timeout time.Duration
}

// NewClient returns a Client with the given per-request timeout.
// A non-positive timeout falls back to DefaultTimeout.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		http:    &http.Client{},
		timeout: timeout,
	}
}

// Text fetches the resource at location and returns its body as a string.
//
// The request carries cache-bypass headers so the latest published data is
// always read. On failure the error is ErrTimeout (wrapped), an *HTTPError,
// or the wrapped transport error.
func (c *Client) Text(ctx context.Context, location string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", location, err)
	}
	req.Header.Set("Cache-Control", "no-store")
	req.Header.Set("Pragma", "no-cache")

	res, err := c.http.Do(req)
	if err != nil {
		return "", c.wrap(location, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return "", &HTTPError{
			StatusCode: res.StatusCode,
			Status:     res.Status,
			Location:   location,
		}
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", c.wrap(location, err)
	}
	return string(body), nil
}

// wrap maps a deadline expiry to ErrTimeout and wraps everything else as a
// transport error.
func (c *Client) wrap(location string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w after %s: %s", ErrTimeout, c.timeout, location)
	}
	return fmt.Errorf("fetch %s: %w", location, err)
}
