// Package backend is the console's HTTP client for the texttopay API.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/fatflowers/texttopay/internal/app/service/gateway"
	"github.com/fatflowers/texttopay/pkg/apperr"
	"github.com/fatflowers/texttopay/pkg/logctx"
)

// Client calls the /api routes. It satisfies gateway.Gateway so the
// reconciliation store can drive either the backend or the provider.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.SugaredLogger
}

var _ gateway.Gateway = (*Client)(nil)

func New(serverURL string, httpClient *http.Client, log *zap.SugaredLogger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(serverURL, "/") + "/api", http: httpClient, log: log}
}

// PusherConfig is the public subscription config served by the backend.
type PusherConfig struct {
	Key     string `json:"key"`
	Cluster string `json:"cluster"`
}

type Health struct {
	Status      string `json:"status"`
	Timestamp   string `json:"timestamp"`
	Environment struct {
		HasWorldpayKey  bool `json:"hasWorldpayKey"`
		HasWorldpayMid  bool `json:"hasWorldpayMid"`
		HasPusherConfig bool `json:"hasPusherConfig"`
	} `json:"environment"`
}

func (c *Client) CreateCustomer(ctx context.Context, name, phone string) (*gateway.Customer, error) {
	raw, err := c.do(ctx, http.MethodPost, "/customers", map[string]string{"name": name, "phone": phone}, "Failed to create customer")
	if err != nil {
		return nil, err
	}
	cust := &gateway.Customer{Raw: raw}
	if err := json.Unmarshal(raw, &cust.Customer); err != nil {
		return nil, fmt.Errorf("decode customer: %w", err)
	}
	return cust, nil
}

func (c *Client) CreatePayment(ctx context.Context, req *gateway.PaymentRequest) (*gateway.Payment, error) {
	raw, err := c.do(ctx, http.MethodPost, "/payments", req, "Failed to create payment")
	if err != nil {
		return nil, err
	}
	p := &gateway.Payment{Raw: raw}
	if err := json.Unmarshal(raw, p); err != nil {
		return nil, fmt.Errorf("decode payment: %w", err)
	}
	return p, nil
}

func (c *Client) GetCustomer(ctx context.Context, customerID string) (*gateway.Customer, error) {
	raw, err := c.do(ctx, http.MethodGet, "/customers/"+url.PathEscape(customerID), nil, "Failed to fetch customer")
	if err != nil {
		return nil, err
	}
	cust := &gateway.Customer{Raw: raw}
	if err := json.Unmarshal(raw, &cust.Customer); err != nil {
		return nil, fmt.Errorf("decode customer: %w", err)
	}
	return cust, nil
}

func (c *Client) PusherConfig(ctx context.Context) (*PusherConfig, error) {
	raw, err := c.do(ctx, http.MethodGet, "/pusher-config", nil, "Failed to load pusher config")
	if err != nil {
		return nil, err
	}
	var out PusherConfig
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode pusher config: %w", err)
	}
	return &out, nil
}

func (c *Client) Health(ctx context.Context) (*Health, error) {
	raw, err := c.do(ctx, http.MethodGet, "/health", nil, "Health check failed")
	if err != nil {
		return nil, err
	}
	var out Health
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode health: %w", err)
	}
	return &out, nil
}

// do returns the body of a 2xx response. Otherwise the backend's {error}
// message becomes the error, or fallback when there is none; a 400 comes
// back as a validation error.
func (c *Client) do(ctx context.Context, method, path string, body any, fallback string) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		logctx.FromCtx(ctx, c.log).Errorw("backend_request_failed", "method", method, "path", path, "error", err.Error())
		return nil, err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		return raw, nil
	}

	var eb struct {
		Error string `json:"error"`
	}
	msg := fallback
	if json.Unmarshal(raw, &eb) == nil && eb.Error != "" {
		msg = eb.Error
	}
	logctx.FromCtx(ctx, c.log).Warnw("backend_error", "method", method, "path", path, "status", resp.StatusCode, "error", msg)
	if resp.StatusCode == http.StatusBadRequest {
		return nil, apperr.Validation("%s", msg)
	}
	return nil, errors.New(msg)
}
