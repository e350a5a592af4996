// Package taxonomy fetches the remote species reference table used to attach
// scientific and common names to rarity report rows.
package taxonomy

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/bird-rarity-etl/internal/domain"
)

// Client retrieves the taxonomy reference CSV over HTTP.
type Client struct {
	url        string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a taxonomy client for the given source URL.
func NewClient(url string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Fetch downloads and parses the reference table.
//
// Fetch failure is not fatal to a run: the caller degrades to an empty table
// and report enrichment falls back to "Unknown" names. FetchOrEmpty wraps
// that policy.
func (c *Client) Fetch(ctx context.Context) (domain.ReferenceTable, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("taxonomy request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("taxonomy source error: status %d: %s", resp.StatusCode, body)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read taxonomy body: %w", err)
	}

	return domain.ParseReferenceTable(string(raw)), nil
}

// FetchOrEmpty applies the degrade-on-failure policy: any fetch error is
// logged as a warning and an empty table is returned, so enrichment proceeds
// with sentinel names instead of aborting the run.
func (c *Client) FetchOrEmpty(ctx context.Context) domain.ReferenceTable {
	table, err := c.Fetch(ctx)
	if err != nil {
		c.logger.Warn("taxonomy fetch failed, species names will read Unknown", "url", c.url, "error", err)
		return domain.ReferenceTable{}
	}
	c.logger.Info("taxonomy reference loaded", "entries", len(table))
	return table
}
