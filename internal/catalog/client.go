package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// ErrNotFound is returned when the collaborator reports no product for an ID.
var ErrNotFound = errors.New("product not found")

// Source is the read port for product data. The HTTP client, the cached
// wrapper, and test fakes all implement it.
type Source interface {
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id string) (Product, error)
	Stock(ctx context.Context, id string) (int, error)
}

// Client talks to the remote catalog collaborator over HTTP.
// Catalog reads are short-lived; anything slower than readTimeout is treated
// as a failure and the caller falls back to the built-in sample set.
type Client struct {
	baseURL string
	http    *http.Client
}

const readTimeout = 10 * time.Second

var _ Source = (*Client)(nil)

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   readTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

func (c *Client) List(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := c.getJSON(ctx, "/products", &products); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (c *Client) Get(ctx context.Context, id string) (Product, error) {
	var p Product
	if err := c.getJSON(ctx, "/products/"+url.PathEscape(id), &p); err != nil {
		if errors.Is(err, ErrNotFound) {
			return Product{}, ErrNotFound
		}
		return Product{}, fmt.Errorf("get product %s: %w", id, err)
	}
	return p, nil
}

func (c *Client) Stock(ctx context.Context, id string) (int, error) {
	var out struct {
		Stock int `json:"stock"`
	}
	if err := c.getJSON(ctx, "/products/"+url.PathEscape(id)+"/stock", &out); err != nil {
		return 0, fmt.Errorf("check stock for %s: %w", id, err)
	}
	return out.Stock, nil
}

func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d", res.StatusCode)
	}

	return json.NewDecoder(res.Body).Decode(v)
}
