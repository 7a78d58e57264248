// Package client is a typed HTTP client for the driver dashboard API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/kendall-kelly/driver-dashboard-api/models"
)

var (
	// ErrUnauthorized is returned when the API answers 401
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound is returned when the API answers 404
	ErrNotFound = errors.New("not found")
)

// TransportError covers network failures and any other non-2xx response.
// StatusCode is zero when no response was received.
type TransportError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
	}
	return fmt.Sprintf("%s %s: unexpected status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// TokenSource supplies the bearer token attached to each request.
// An empty token means the request is sent without an Authorization header.
type TokenSource interface {
	Token() string
}

// StaticToken is a TokenSource that always returns the same token
type StaticToken string

// Token returns t
func (t StaticToken) Token() string {
	return string(t)
}

// Client talks to the driver dashboard API
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces http.DefaultClient
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTokenSource sets where the bearer token comes from
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) {
		c.tokens = ts
	}
}

// New creates a client for the API served at baseURL, e.g. http://localhost:3000
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type updateOrderRequest struct {
	OrderID       uint   `json:"orderId"`
	Status        string `json:"status"`
	CustomerEmail string `json:"customerEmail,omitempty"`
}

type locationRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type notifyRequest struct {
	OrderID       uint   `json:"orderId"`
	Event         string `json:"event"`
	CustomerEmail string `json:"customerEmail,omitempty"`
}

type successResponse struct {
	Success bool `json:"success"`
}

// Login checks staff credentials. Rejected credentials yield ErrUnauthorized.
func (c *Client) Login(ctx context.Context, username, password string) (bool, error) {
	var resp successResponse
	if err := c.do(ctx, http.MethodPost, "/api/login", loginRequest{Username: username, Password: password}, &resp); err != nil {
		return false, err
	}
	return resp.Success, nil
}

// GetOrders returns every order
func (c *Client) GetOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := c.do(ctx, http.MethodGet, "/api/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// GetOrderByID returns one order or ErrNotFound
func (c *Client) GetOrderByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := c.do(ctx, http.MethodGet, "/api/orders/"+strconv.FormatUint(uint64(id), 10), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrderStatus sets an order's status. customerEmail may be empty, in
// which case the server notifies the address stored on the order.
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID uint, status, customerEmail string) error {
	req := updateOrderRequest{OrderID: orderID, Status: status, CustomerEmail: customerEmail}
	return c.do(ctx, http.MethodPost, "/api/update-order", req, nil)
}

// SendLocation reports the driver's current position
func (c *Client) SendLocation(ctx context.Context, latitude, longitude float64) error {
	return c.do(ctx, http.MethodPost, "/api/send-location", locationRequest{Latitude: latitude, Longitude: longitude}, nil)
}

// NotifyCustomer asks the server to emit an arbitrary order event
func (c *Client) NotifyCustomer(ctx context.Context, orderID uint, event, customerEmail string) error {
	req := notifyRequest{OrderID: orderID, Event: event, CustomerEmail: customerEmail}
	return c.do(ctx, http.MethodPost, "/api/trigger-webhook", req, nil)
}

// do sends a JSON request and decodes a 2xx response into out, if non-nil
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &TransportError{Method: method, Path: path, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Method: method, Path: path, StatusCode: resp.StatusCode, Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return &TransportError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(respBody)),
			Err:        fmt.Errorf("status %d", resp.StatusCode),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return &TransportError{Method: method, Path: path, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}
