// Package edgar implements the retrieval collaborator against the SEC EDGAR
// company facts API.
package edgar

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultBaseURL is the production EDGAR data host.
const DefaultBaseURL = "https://data.sec.gov"

// Client fetches company facts documents over HTTP.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the EDGAR host, mainly for tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient injects a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates an EDGAR client. The SEC's fair-access policy requires a
// descriptive User-Agent identifying the caller (e.g. "Name contact@host"),
// so userAgent must not be empty.
func New(userAgent string, opts ...Option) (*Client, error) {
	if userAgent == "" {
		return nil, errors.New("edgar: a descriptive user agent is required")
	}

	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    DefaultBaseURL,
		userAgent:  userAgent,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Fetch retrieves the company facts JSON for a validated, zero-padded CIK.
// Cancelling ctx aborts the in-flight request.
func (c *Client) Fetch(ctx context.Context, cik string) (string, error) {
	url := fmt.Sprintf("%s/api/xbrl/companyfacts/CIK%s.json", c.baseURL, cik)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request to edgar failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("edgar returned status %d for cik %s", resp.StatusCode, cik)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	return string(body), nil
}
