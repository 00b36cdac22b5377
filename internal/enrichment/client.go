package enrichment

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"salescli/internal/config"
	"salescli/pkg/contracts/domain"
)

// Client fetches product entries from the remote catalog.
//
// The catalog is a best-effort collaborator: on any transport failure or
// non-success status the client returns an empty slice and logs the cause.
// The core pipeline never sees raw transport errors, only "zero products
// available", and enrichment degrades to all-unmatched.
type Client struct {
	baseURL    string
	limit      int
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a catalog client from configuration
func NewClient(cfg config.CatalogConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	limit := cfg.Limit
	if limit <= 0 {
		limit = 100
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		limit:      limit,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// FetchAllProducts performs a single catalog query for up to the configured
// number of products. Failures are degraded to an empty result.
func (c *Client) FetchAllProducts(ctx context.Context) []domain.CatalogProduct {
	url := fmt.Sprintf("%s?limit=%d", c.baseURL, c.limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		c.logger.Error("failed to build catalog request",
			slog.String("url", url),
			slog.String("error", err.Error()))
		return nil
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("catalog unreachable, continuing without enrichment data",
			slog.String("url", url),
			slog.String("error", err.Error()))
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("catalog returned non-success status",
			slog.String("url", url),
			slog.Int("status", resp.StatusCode))
		return nil
	}

	var payload domain.CatalogResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.logger.Warn("failed to decode catalog response",
			slog.String("url", url),
			slog.String("error", err.Error()))
		return nil
	}

	c.logger.Info("catalog fetch complete",
		slog.Int("product_count", len(payload.Products)))

	return payload.Products
}
