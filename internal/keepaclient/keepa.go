// Package keepaclient implements the Keepa product endpoint client.
package keepaclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/huangsam/keepwatch/internal/contract"
	"github.com/huangsam/keepwatch/schema"
)

// DefaultEndpoint is the Keepa product API endpoint.
const DefaultEndpoint = "https://api.keepa.com/product"

// DefaultTimeout bounds a single product request. The endpoint owns the
// network timeout policy; the core computation has no timeout of its own.
const DefaultTimeout = 30 * time.Second

// Client fetches products over HTTP with history, stats and buybox holder
// data included in one call.
type Client struct {
	endpoint string
	apiKey   string
	domain   int
	client   *http.Client
}

var _ contract.ProductSource = &Client{} // Compile-time check

// Option configures a Client.
type Option func(*Client)

// WithEndpoint overrides the API endpoint, mainly for tests.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

// WithHTTPClient sets a custom http.Client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

// New creates a product client for the given API key and Amazon domain.
func New(apiKey string, domain int, opts ...Option) *Client {
	c := &Client{
		endpoint: DefaultEndpoint,
		apiKey:   apiKey,
		domain:   domain,
		client:   &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetProduct fetches one product by ASIN.
func (c *Client) GetProduct(ctx context.Context, asin string) (*schema.Product, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("domain", strconv.Itoa(c.domain))
	params.Set("asin", asin)
	params.Set("history", "1")
	params.Set("stats", "1")
	params.Set("buybox", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build product request for %s: %w", asin, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("product request for %s failed: %w", asin, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read product response for %s: %w", asin, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("product request for %s returned HTTP %d: %s", asin, resp.StatusCode, decodeAPIError(body))
	}

	var envelope schema.ProductResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode product response for %s: %w", asin, err)
	}
	if envelope.Error != nil {
		return nil, fmt.Errorf("API error for %s: %s", asin, envelope.Error.Message)
	}
	if len(envelope.Products) == 0 {
		return nil, fmt.Errorf("no product data found for ASIN %s", asin)
	}

	return &envelope.Products[0], nil
}

// decodeAPIError extracts the API error message from an error response body,
// falling back to the raw body when it is not the usual envelope.
func decodeAPIError(body []byte) string {
	var envelope schema.ProductResponse
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != nil {
		return envelope.Error.Message
	}
	const maxRaw = 200
	if len(body) > maxRaw {
		body = body[:maxRaw]
	}
	return string(body)
}
