// Package upstream provides a shared HTTP helper for the external services
// the app depends on (geocoder, archive and forecast weather APIs). Each
// client carries its own fixed timeout and a circuit breaker; failed calls
// are never retried automatically.
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"
)

var (
	errRateLimited = errors.New("rate limited")
	errServerError = errors.New("server error")
	errUnexpected  = errors.New("unexpected status code")
	errCircuitOpen = errors.New("circuit breaker open")
)

// Client wraps an http.Client with a per-service circuit breaker.
type Client struct {
	http      *http.Client
	breaker   *gobreaker.CircuitBreaker
	userAgent string
}

// NewClient creates a client for one upstream service. The name identifies
// the breaker in its state-change callbacks and error messages.
func NewClient(name string, timeout time.Duration, userAgent string) *Client {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Client{
		http:      &http.Client{Timeout: timeout},
		breaker:   cb,
		userAgent: userAgent,
	}
}

// GetRaw issues a GET against baseURL with the given query parameters and
// returns the response body bytes.
func (c *Client) GetRaw(ctx context.Context, baseURL string, params url.Values) ([]byte, error) {
	u := baseURL
	if len(params) > 0 {
		u = fmt.Sprintf("%s?%s", baseURL, params.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		resp, execErr := c.http.Do(req)
		if execErr != nil {
			return nil, execErr
		}
		defer resp.Body.Close()

		// Surface rate limiting and server errors explicitly so the
		// breaker counts them.
		if resp.StatusCode == http.StatusTooManyRequests {
			return nil, errRateLimited
		}
		if resp.StatusCode >= 500 {
			return nil, errServerError
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("%w: %d", errUnexpected, resp.StatusCode)
		}

		body, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return nil, readErr
		}
		return body, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", errCircuitOpen, err)
		}
		return nil, err
	}

	body, ok := result.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected result type from circuit breaker")
	}
	return body, nil
}

// GetJSON issues a GET and decodes the JSON response into out.
func (c *Client) GetJSON(ctx context.Context, baseURL string, params url.Values, out interface{}) error {
	body, err := c.GetRaw(ctx, baseURL, params)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, out)
}
