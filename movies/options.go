package movies

import (
	"net/http"
	"time"
)

const (
	// DefaultTimeout bounds a single API call
	DefaultTimeout = 30 * time.Second
	// DefaultConcurrency bounds parallel detail lookups
	DefaultConcurrency = 4
	// DefaultUserAgent identifies the client to the API
	DefaultUserAgent = "cinerecomenda"
	// apiPrefix is where the recommendation endpoints are mounted
	apiPrefix = "/api/movies"
)

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// WithConcurrency sets how many detail lookups may run at once.
func WithConcurrency(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.concurrency = n
		}
	}
}
