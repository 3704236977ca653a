package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fatflowers/texttopay/pkg/apperr"
	"github.com/fatflowers/texttopay/pkg/config"
	"github.com/fatflowers/texttopay/pkg/logctx"
	"github.com/fatflowers/texttopay/pkg/metrics"
	"github.com/fatflowers/texttopay/pkg/tool"
	"github.com/fatflowers/texttopay/pkg/types"
)

const (
	HeaderCorrelationID = "X-WP-Diagnostics-CorrelationId"
	HeaderCallerID      = "X-WP-Diagnostics-CallerId"
	HeaderTimestamp     = "X-WP-Timestamp"

	Currency       = "USD"
	PaymentMessage = "Thank you for your business. Please pay your invoice."

	timestampLayout = "2006-01-02T15:04:05.000Z07:00"
)

var phonePattern = regexp.MustCompile(`^\+\d{10,15}$`)

// ValidPhone reports whether phone is a leading + followed by 10 to 15 digits.
func ValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// Client is the Worldpay Text-to-Pay implementation of Gateway.
type Client struct {
	baseURL  string
	callerID string
	creds    CredentialSource
	http     *http.Client
	log      *zap.SugaredLogger

	now   func() time.Time
	newID func() string
}

var _ Gateway = (*Client)(nil)

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.http = h } }

func WithCredentials(src CredentialSource) Option { return func(c *Client) { c.creds = src } }

func WithClock(now func() time.Time) Option { return func(c *Client) { c.now = now } }

func WithCorrelationIDs(fn func() string) Option { return func(c *Client) { c.newID = fn } }

func NewClient(cfg *config.Config, log *zap.SugaredLogger, opts ...Option) *Client {
	c := &Client{
		baseURL:  strings.TrimRight(cfg.Worldpay.BaseURL, "/"),
		callerID: cfg.Worldpay.CallerID,
		creds:    EnvCredentials(cfg.Worldpay),
		// zero Timeout: the provider call is bounded only by the caller's context
		http:  &http.Client{Timeout: cfg.Worldpay.Timeout},
		log:   log,
		now:   time.Now,
		newID: tool.NewCorrelationID,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) CreateCustomer(ctx context.Context, name, phone string) (*Customer, error) {
	if name == "" || phone == "" {
		return nil, apperr.Validation("Name and phone are required")
	}
	if !ValidPhone(phone) {
		return nil, apperr.Validation("Invalid phone number format. Use +1234567890")
	}

	body := customerPayload{Name: name, Contact: types.Contact{Phone: phone}}
	raw, err := c.do(ctx, "create_customer", http.MethodPost, func(mid string) string {
		return fmt.Sprintf("/v1/merchants/%s/customers", url.PathEscape(mid))
	}, body)
	if err != nil {
		return nil, err
	}
	return decodeCustomer(raw)
}

func (c *Client) CreatePayment(ctx context.Context, req *PaymentRequest) (*Payment, error) {
	if req == nil || req.CustomerID == "" || req.Amount == 0 || req.Title == "" {
		return nil, apperr.Validation("Customer ID, amount, and title are required")
	}
	if req.Amount <= 0 {
		return nil, apperr.Validation("Amount must be greater than 0")
	}

	now := c.now()
	reference := req.Reference
	if reference == "" {
		reference = tool.InvoiceReference(now)
	}
	body := paymentPayload{
		TotalAmount: req.Amount,
		Currency:    Currency,
		Invoices: []invoiceLine{{
			Title:       req.Title,
			Reference:   reference,
			InvoiceDate: now.UTC().Format(time.DateOnly),
			Amount:      req.Amount,
		}},
		Message: messageText{Text: PaymentMessage},
	}

	raw, err := c.do(ctx, "create_payment", http.MethodPost, func(mid string) string {
		return fmt.Sprintf("/v1/merchants/%s/customers/%s/payments", url.PathEscape(mid), url.PathEscape(req.CustomerID))
	}, body)
	if err != nil {
		return nil, err
	}
	var p Payment
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode payment response: %w", err)
	}
	p.Raw = raw
	return &p, nil
}

func (c *Client) GetCustomer(ctx context.Context, customerID string) (*Customer, error) {
	if customerID == "" {
		return nil, apperr.Validation("Customer ID is required")
	}
	raw, err := c.do(ctx, "get_customer", http.MethodGet, func(mid string) string {
		return fmt.Sprintf("/v1/merchants/%s/customers/%s", url.PathEscape(mid), url.PathEscape(customerID))
	}, nil)
	if err != nil {
		return nil, err
	}
	return decodeCustomer(raw)
}

// do sends one authenticated request and returns the 2xx body. Credentials
// are resolved first so a misconfigured process never touches the network.
func (c *Client) do(ctx context.Context, op, method string, path func(mid string) string, body any) ([]byte, error) {
	creds, err := c.creds()
	if err != nil {
		return nil, err
	}
	if !creds.Complete() {
		return nil, apperr.Configuration("Worldpay credentials not configured")
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s request: %w", op, err)
		}
		reader = bytes.NewReader(b)
	}

	endpoint := c.baseURL + path(creds.MerchantID)
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", op, err)
	}
	correlationID := c.newID()
	req.Header.Set("accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+creds.APIKey)
	req.Header.Set(HeaderCorrelationID, correlationID)
	req.Header.Set(HeaderCallerID, c.callerID)
	req.Header.Set(HeaderTimestamp, c.now().UTC().Format(timestampLayout))

	log := logctx.FromCtx(ctx, c.log).With("op", op, "correlation_id", correlationID)
	log.Infow("worldpay_request", "method", method, "url", endpoint)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.ObserveProviderRequest(op, 0, start)
		log.Errorw("worldpay_request_failed", "error", err)
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()
	metrics.ObserveProviderRequest(op, resp.StatusCode, start)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", op, err)
	}
	log.Infow("worldpay_response", "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Errorw("worldpay_api_error", "status", resp.StatusCode, "body", string(respBody))
		return nil, &apperr.ProviderError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}
	return respBody, nil
}

func decodeCustomer(raw []byte) (*Customer, error) {
	var cust Customer
	if err := json.Unmarshal(raw, &cust.Customer); err != nil {
		return nil, fmt.Errorf("decode customer response: %w", err)
	}
	cust.Raw = raw
	return &cust, nil
}
