package order

import (
	"bytes"
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

var (
	// ErrSystemBusy is the overload signal from the order collaborator
	// (it answers HTTP 400 when its processing queue is full). Distinct from
	// generic transport failure so the surface can tell the user to retry later.
	ErrSystemBusy = errors.New("order system busy")

	// ErrInvalidResponse marks a 2xx reply that carries no server-assigned
	// order ID. The ID is the actual success signal, not the HTTP status.
	ErrInvalidResponse = errors.New("order response missing id")

	// ErrNotFound is returned when the collaborator knows no such order.
	ErrNotFound = errors.New("order not found")
)

// Submission can take minutes: the webhook runs an asynchronous workflow on
// its side, not a simple database write. Reads stay on a short budget.
const (
	createTimeout = 3 * time.Minute
	lookupTimeout = 15 * time.Second
)

// Client talks to the remote order collaborator. Orders are POSTed to the
// webhook base URL itself; lookups use /orders/{id} and /orders/{id}/status.
type Client struct {
	baseURL string
	create  *http.Client
	lookup  *http.Client
}

func NewClient(baseURL string) *Client {
	transport := otelhttp.NewTransport(http.DefaultTransport)
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		create:  &http.Client{Timeout: createTimeout, Transport: transport},
		lookup:  &http.Client{Timeout: lookupTimeout, Transport: transport},
	}
}

// Create submits the order and returns the server-assigned ID plus the
// initial status (defaulting to pending when the reply omits one).
func (c *Client) Create(ctx context.Context, o Order) (string, Status, error) {
	body, err := json.Marshal(newOrderPayload(o))
	if err != nil {
		return "", "", fmt.Errorf("encode order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", "", err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.create.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("submit order: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusBadRequest {
		return "", "", ErrSystemBusy
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return "", "", fmt.Errorf("submit order: unexpected status %d", res.StatusCode)
	}

	var out createResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if out.Data.ID == "" {
		return "", "", ErrInvalidResponse
	}

	status := StatusPending
	if out.Data.Status != "" {
		status = Status(out.Data.Status)
	}
	return out.Data.ID, status, nil
}

// Get fetches the full order by its server-assigned ID.
func (c *Client) Get(ctx context.Context, id string) (Order, error) {
	var p orderPayload
	if err := c.getJSON(ctx, "/orders/"+url.PathEscape(id), &p); err != nil {
		if errors.Is(err, ErrNotFound) {
			return Order{}, ErrNotFound
		}
		return Order{}, fmt.Errorf("get order %s: %w", id, err)
	}
	return mapPayloadToOrder(p), nil
}

// Status fetches just the order status.
func (c *Client) Status(ctx context.Context, id string) (Status, error) {
	var out statusResponse
	if err := c.getJSON(ctx, "/orders/"+url.PathEscape(id)+"/status", &out); err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("get status for %s: %w", id, err)
	}
	return Status(out.Status), nil
}

func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.lookup.Do(req)
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
