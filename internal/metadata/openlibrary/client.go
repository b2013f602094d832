// Package openlibrary provides a rate-limited client for the OpenLibrary API.
package openlibrary

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/bookdiscoveryapp/bookdiscovery-server/internal/logger"
)

const (
	defaultBaseURL      = "https://openlibrary.org"
	defaultCoverBaseURL = "https://covers.openlibrary.org"
)

// Client provides access to the OpenLibrary search and works APIs.
type Client struct {
	httpClient   *http.Client
	rateLimiter  *rate.Limiter
	baseURL      string
	coverBaseURL string
	log          *logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL. Used by tests.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithCoverBaseURL overrides the cover image base URL.
func WithCoverBaseURL(u string) Option {
	return func(c *Client) {
		c.coverBaseURL = strings.TrimRight(u, "/")
	}
}

// WithRequestsPerSecond overrides the request rate.
func WithRequestsPerSecond(rps float64) Option {
	return func(c *Client) {
		c.rateLimiter = rate.NewLimiter(rate.Limit(rps), 3)
	}
}

// WithTimeout overrides the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// NewClient creates a new OpenLibrary client.
// Rate limited to 1 request per second, the polite rate for the public API.
func NewClient(log *logger.Logger, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		rateLimiter:  rate.NewLimiter(rate.Limit(1), 3),
		baseURL:      defaultBaseURL,
		coverBaseURL: defaultCoverBaseURL,
		log:          log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// wait blocks until the rate limiter allows a request.
func (c *Client) wait(ctx context.Context) error {
	return c.rateLimiter.Wait(ctx)
}

// CoverURL renders a cover ID as a large image URL.
func (c *Client) CoverURL(coverID int) string {
	return fmt.Sprintf("%s/b/id/%d-L.jpg", c.coverBaseURL, coverID)
}

// trimWorkKey strips the "/works/" prefix from a work key.
func trimWorkKey(key string) string {
	return strings.TrimPrefix(key, "/works/")
}

// trimAuthorKey strips the "/authors/" prefix from an author key.
func trimAuthorKey(key string) string {
	return strings.TrimPrefix(key, "/authors/")
}
