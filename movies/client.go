package movies

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// Client represents a recommendation API client
type Client struct {
	baseURL     string
	httpClient  *http.Client
	userAgent   string
	concurrency int
	logger      zerolog.Logger
}

// NewClient creates a new recommendation API client
func NewClient(baseURL string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("%w: API URL is required", ErrInvalidConfig)
	}

	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: API URL %q must be absolute", ErrInvalidConfig, baseURL)
	}

	client := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		userAgent:   DefaultUserAgent,
		concurrency: DefaultConcurrency,
		logger:      logger,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// BaseURL returns the API root the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// doRequest performs a GET request and decodes a JSON answer into out.
// It reports whether the body was a JSON null.
func (c *Client) doRequest(ctx context.Context, endpoint string, params url.Values, out any) (bool, error) {
	reqURL := c.baseURL + apiPrefix + endpoint
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := requestIDFromContext(ctx)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, fmt.Errorf("failed to read response body: %w", err)
	}

	c.logger.Debug().
		Str("request_id", requestID).
		Str("url", reqURL).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("Recommendation API request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false, newAPIError(resp, endpoint, body)
	}

	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" || trimmed == "null" {
		return true, nil
	}

	if err := json.Unmarshal(body, out); err != nil {
		return false, fmt.Errorf("failed to parse response: %w", err)
	}

	return false, nil
}

// GetRecommendations retrieves one page of recommendations
func (c *Client) GetRecommendations(ctx context.Context, filters Filters) (*RecommendationsResponse, error) {
	filters = filters.Normalize()
	if err := filters.Validate(); err != nil {
		return nil, fmt.Errorf("invalid filters: %w", err)
	}

	var response RecommendationsResponse
	empty, err := c.doRequest(ctx, "/recommendations", filters.Values(), &response)
	if err != nil {
		return nil, fmt.Errorf("error fetching recommendations: %w", err)
	}
	if empty {
		response = RecommendationsResponse{}
	}
	if response.Page == 0 {
		response.Page = max(filters.Page, 1)
	}

	c.logger.Debug().
		Int("page", response.Page).
		Int("count", len(response.Results)).
		Int("total_pages", response.TotalPages).
		Int("total_results", response.TotalResults).
		Msg("Retrieved recommendations")

	return &response, nil
}

// GetRandomRecommendation retrieves a single random movie
func (c *Client) GetRandomRecommendation(ctx context.Context, filters Filters) (*Movie, error) {
	filters = filters.Normalize()
	filters.Page = 0
	if err := filters.Validate(); err != nil {
		return nil, fmt.Errorf("invalid filters: %w", err)
	}

	var movie Movie
	empty, err := c.doRequest(ctx, "/recommendations/random", filters.RandomValues(), &movie)
	if err != nil {
		return nil, fmt.Errorf("error fetching random recommendation: %w", err)
	}
	if empty || movie.ID == 0 {
		return nil, ErrNoResults
	}

	c.logger.Debug().Int64("id", movie.ID).Str("title", movie.Title).Msg("Retrieved random recommendation")
	return &movie, nil
}

// GetMovieDetails retrieves the details of one movie
func (c *Client) GetMovieDetails(ctx context.Context, id int64) (*MovieDetails, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMovieID, id)
	}

	var details MovieDetails
	empty, err := c.doRequest(ctx, fmt.Sprintf("/%d", id), nil, &details)
	if err != nil {
		return nil, fmt.Errorf("error fetching movie details: %w", err)
	}
	if empty {
		return nil, fmt.Errorf("error fetching movie details: %w", &APIError{
			StatusCode: http.StatusNotFound,
			Status:     http.StatusText(http.StatusNotFound),
			Endpoint:   fmt.Sprintf("/%d", id),
		})
	}

	return &details, nil
}

// IsNotFound reports whether err wraps a 404 from the API
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.IsNotFound()
}
