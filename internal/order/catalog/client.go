// Package catalog implements the HTTP client for the product service's stock
// lookup endpoint. The product service is a separate failure domain: every
// transport-level failure collapses to order.ErrCatalogUnavailable so business
// logic never reasons about network error types.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/lucashsu95/microshop/internal/order/domain/order"
)

// DefaultTimeout bounds a single stock lookup.
const DefaultTimeout = 5 * time.Second

var _ order.Catalog = (*Client)(nil)

// Config holds the catalog client configuration.
type Config struct {
	// BaseURL is the product service root, e.g. "http://product-service:8001".
	BaseURL string
	// Timeout bounds each lookup; DefaultTimeout when zero.
	Timeout time.Duration
}

// Client fetches product stock snapshots from the product service.
// It is read-only and safe for concurrent use.
type Client struct {
	base   string
	client *http.Client
}

// NewClient creates a catalog client with an instrumented transport.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		base: strings.TrimRight(cfg.BaseURL, "/"),
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// stockPayload mirrors the data field of the stock endpoint envelope.
// decimal.Decimal accepts the price both as a JSON string and as a number.
type stockPayload struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
	Available     bool            `json:"available"`
}

// Fetch issues a bounded-time read of one product's stock snapshot.
// It returns order.ErrCatalogNotFound for a well-formed not-found response and
// order.ErrCatalogUnavailable for timeouts, transport errors, non-success
// statuses, and malformed bodies.
func (c *Client) Fetch(ctx context.Context, productID int64) (*order.Snapshot, error) {
	url := fmt.Sprintf("%s/api/products/%d/stock/", c.base, productID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, order.ErrCatalogUnavailable
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, order.ErrCatalogUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, order.ErrCatalogNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, order.ErrCatalogUnavailable
	}

	var env struct {
		Success bool          `json:"success"`
		Data    *stockPayload `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, order.ErrCatalogUnavailable
	}
	if !env.Success || env.Data == nil {
		return nil, order.ErrCatalogNotFound
	}

	return &order.Snapshot{
		ProductID:     env.Data.ID,
		Name:          env.Data.Name,
		Price:         env.Data.Price,
		StockQuantity: env.Data.StockQuantity,
		Available:     env.Data.Available,
	}, nil
}
