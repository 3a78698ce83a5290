// Package nasa resolves illustration queries against the NASA image and
// video archive: search, per-item manifest fetch, and quality-tiered URL
// selection.
package nasa

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cosmusapp/cosmus-go/internal/metrics"
)

// DefaultBaseURL is the public archive endpoint.
const DefaultBaseURL = "https://images-api.nasa.gov"

// Client is a thin HTTP client for the archive's search and manifest
// endpoints.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	collector  *metrics.Collector
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client. Used by tests to
// point the archive client at a local fake.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates an archive client. An empty baseURL uses the public
// archive.
func NewClient(baseURL string, logger *slog.Logger, collector *metrics.Collector, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
		collector:  collector,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search queries the archive and returns the result items in archive order.
func (c *Client) Search(ctx context.Context, query string, pageSize int) ([]Item, error) {
	searchURL := fmt.Sprintf("%s/search?q=%s&page_size=%d", c.baseURL, url.QueryEscape(query), pageSize)

	start := time.Now()
	var result searchResponse
	err := c.getJSON(ctx, searchURL, &result)
	if c.collector != nil {
		c.collector.Record(metrics.OpArchiveSearch, time.Since(start), err)
	}
	if err != nil {
		return nil, fmt.Errorf("archive search %q: %w", query, err)
	}

	c.logger.Debug("archive search complete", "query", query, "items", len(result.Collection.Items))
	return result.Collection.Items, nil
}

// Manifest fetches an item's manifest: a flat list of candidate file links.
// The href is upgraded to HTTPS before fetching.
func (c *Client) Manifest(ctx context.Context, href string) ([]string, error) {
	secure := ForceHTTPS(href)

	start := time.Now()
	var links []string
	err := c.getJSON(ctx, secure, &links)
	if c.collector != nil {
		c.collector.Record(metrics.OpManifestFetch, time.Since(start), err)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch manifest: %w", err)
	}
	return links, nil
}

// getJSON performs a GET request and decodes the JSON body into result.
func (c *Client) getJSON(ctx context.Context, rawURL string, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("archive error: %s - %s", resp.Status, truncateBody(body))
	}

	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}

func truncateBody(body []byte) string {
	const max = 200
	if len(body) > max {
		return string(body[:max]) + "..."
	}
	return string(body)
}

// ForceHTTPS upgrades a plain-HTTP archive link. The archive still publishes
// http:// hrefs in search results.
func ForceHTTPS(rawURL string) string {
	if strings.HasPrefix(rawURL, "http:") {
		return "https:" + strings.TrimPrefix(rawURL, "http:")
	}
	return rawURL
}
