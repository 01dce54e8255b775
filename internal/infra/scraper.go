package infra

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// ImportRow is one product from the external catalog feed.
type ImportRow struct {
	Name     string          `json:"name"`
	SKU      string          `json:"sku"`
	Price    decimal.Decimal `json:"price"`
	ImageURL string          `json:"image_url"`
}

// ImportClient fetches the external product catalog. All calls go through
// the circuit breaker: while the source site is down the import endpoint
// fast-fails instead of tying up request goroutines on timeouts.
type ImportClient struct {
	defaultURL string
	httpClient *http.Client
	cb         *CircuitBreaker
}

func NewImportClient(defaultURL string, cb *CircuitBreaker) *ImportClient {
	return &ImportClient{
		defaultURL: defaultURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		cb:         cb,
	}
}

// Breaker exposes the circuit breaker state for the health endpoint.
func (c *ImportClient) Breaker() *CircuitBreaker { return c.cb }

// Fetch downloads and decodes the feed. An empty url falls back to the
// configured default source.
func (c *ImportClient) Fetch(ctx context.Context, url string) ([]ImportRow, error) {
	if url == "" {
		url = c.defaultURL
	}
	if url == "" {
		return nil, errors.New("import: no source URL configured")
	}

	var rows []ImportRow
	err := c.cb.Execute(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return fmt.Errorf("import: create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("import: source unreachable: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("import: source returned %d", resp.StatusCode)
		}
		if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
			return fmt.Errorf("import: decode feed: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}
