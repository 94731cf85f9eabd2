// Package serpapi implements the visual search capability on top of the
// SerpAPI Google Lens engine.
package serpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/klydo/pricelens/internal/domain"
	"golang.org/x/time/rate"
)

const requestTimeout = 60 * time.Second

// Client handles communication with the SerpAPI search endpoint.
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	country     string
	language    string
	rateLimiter *rate.Limiter
}

// NewClient creates a new SerpAPI client. One request per second with a small
// burst stays well inside every SerpAPI plan; the batch runner adds its own
// inter-product pacing on top.
func NewClient(apiKey, baseURL, country, language string) *Client {
	limiter := rate.NewLimiter(rate.Limit(1), 2)

	return &Client{
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		apiKey:      apiKey,
		baseURL:     baseURL,
		country:     country,
		language:    language,
		rateLimiter: limiter,
	}
}

// lensResponse is the slice of the SerpAPI envelope this engine consumes.
type lensResponse struct {
	VisualMatches []domain.RawMatch `json:"visual_matches"`
}

// VisualSearch runs a pure image search: no text query, fresh data.
func (c *Client) VisualSearch(ctx context.Context, imageURL string) ([]domain.RawMatch, error) {
	return c.search(ctx, imageURL, "")
}

// VisualSearchWithQuery runs an image search with an auxiliary text query.
// The provider returns everything it associates with the query; filtering is
// the caller's job.
func (c *Client) VisualSearchWithQuery(ctx context.Context, imageURL, query string) ([]domain.RawMatch, error) {
	return c.search(ctx, imageURL, query)
}

// search executes one Google Lens request. There is no retry here: a failed
// call simply costs the caller one pass, and the two-pass strategy is the
// recovery mechanism.
func (c *Client) search(ctx context.Context, imageURL, query string) ([]domain.RawMatch, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	params := url.Values{}
	params.Add("engine", "google_lens")
	params.Add("url", imageURL)
	params.Add("api_key", c.apiKey)
	params.Add("country", c.country)
	params.Add("hl", c.language)
	params.Add("no_cache", "true")
	if query != "" {
		params.Add("q", query)
	}

	reqURL := fmt.Sprintf("%s/search?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "pricelens/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrLensAPIFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status %d, body: %s", domain.ErrLensAPIFailure, resp.StatusCode, string(body))
	}

	var lens lensResponse
	if err := json.NewDecoder(resp.Body).Decode(&lens); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	log.Printf("[LENS] got %d visual match(es) (query=%q)", len(lens.VisualMatches), query)
	return lens.VisualMatches, nil
}
