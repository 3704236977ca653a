package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fatflowers/texttopay/pkg/apperr"
	"github.com/fatflowers/texttopay/pkg/config"
)

var fixedNow = time.Date(2025, 3, 14, 23, 30, 0, 123_000_000, time.UTC)

type capturedRequest struct {
	method string
	path   string
	header http.Header
	body   []byte
}

// fakeProvider records each request and answers with status/body.
func fakeProvider(t *testing.T, status int, body string) (*httptest.Server, *capturedRequest, *int32) {
	t.Helper()
	var hits int32
	captured := &capturedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		b, _ := io.ReadAll(r.Body)
		*captured = capturedRequest{method: r.Method, path: r.URL.Path, header: r.Header.Clone(), body: b}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, captured, &hits
}

func newTestClient(baseURL string, creds Credentials) *Client {
	cfg := &config.Config{Worldpay: config.WorldpayConfig{BaseURL: baseURL + "/", CallerID: "text-to-pay-poc"}}
	return NewClient(cfg, zap.NewNop().Sugar(),
		WithCredentials(StaticCredentials(creds)),
		WithClock(func() time.Time { return fixedNow }),
		WithCorrelationIDs(func() string { return "corr-1" }),
	)
}

var okCreds = Credentials{APIKey: "key-123", MerchantID: "mid-9"}

func TestCreateCustomer_SendsAuthenticatedRequest(t *testing.T) {
	srv, got, _ := fakeProvider(t, http.StatusOK, `{"id":"cus_1","name":"Jane Doe","contact":{"phone":"+12125551234"},"extra":true}`)
	c := newTestClient(srv.URL, okCreds)

	cust, err := c.CreateCustomer(context.Background(), "Jane Doe", "+12125551234")
	require.NoError(t, err)
	require.Equal(t, "cus_1", cust.ID)
	require.Equal(t, "+12125551234", cust.Contact.Phone)
	require.Contains(t, string(cust.Raw), `"extra":true`)

	require.Equal(t, http.MethodPost, got.method)
	require.Equal(t, "/v1/merchants/mid-9/customers", got.path)
	require.Equal(t, "Bearer key-123", got.header.Get("Authorization"))
	require.Equal(t, "application/json", got.header.Get("Accept"))
	require.Equal(t, "application/json", got.header.Get("Content-Type"))
	require.Equal(t, "corr-1", got.header.Get(HeaderCorrelationID))
	require.Equal(t, "text-to-pay-poc", got.header.Get(HeaderCallerID))
	require.Equal(t, "2025-03-14T23:30:00.123Z", got.header.Get(HeaderTimestamp))
	require.JSONEq(t, `{"name":"Jane Doe","contact":{"phone":"+12125551234"}}`, string(got.body))
}

func TestCreateCustomer_PhoneValidation(t *testing.T) {
	cases := map[string]bool{
		"+12125551234":       true,
		"+1234567890":        true,
		"+123456789012345":   true,
		"+123456789":         false, // 9 digits
		"+1234567890123456":  false, // 16 digits
		"12125551234":        false,
		"+1 212 555 1234":    false,
		"+1212555123a":       false,
		"++12125551234":      false,
		"+12125551234\n":     false,
		"+١٢٣٤٥٦٧٨٩٠":        false, // non-ASCII digits
	}
	srv, _, hits := fakeProvider(t, http.StatusOK, `{"id":"cus_1"}`)
	c := newTestClient(srv.URL, okCreds)

	for phone, valid := range cases {
		require.Equal(t, valid, ValidPhone(phone), phone)
		_, err := c.CreateCustomer(context.Background(), "Jane", phone)
		if valid {
			require.NoError(t, err, phone)
		} else {
			require.True(t, apperr.IsValidation(err), phone)
		}
	}
	var want int32
	for _, v := range cases {
		if v {
			want++
		}
	}
	require.Equal(t, want, atomic.LoadInt32(hits))
}

func TestCreateCustomer_MissingFields(t *testing.T) {
	c := newTestClient("http://unused", okCreds)
	_, err := c.CreateCustomer(context.Background(), "", "+12125551234")
	require.EqualError(t, err, "Name and phone are required")
	_, err = c.CreateCustomer(context.Background(), "Jane", "")
	require.True(t, apperr.IsValidation(err))
}

func TestCreatePayment_BuildsInvoicePayload(t *testing.T) {
	srv, got, _ := fakeProvider(t, http.StatusCreated, `{"id":"pay_1","status":"Pending"}`)
	c := newTestClient(srv.URL, okCreds)

	p, err := c.CreatePayment(context.Background(), &PaymentRequest{CustomerID: "cus_1", Amount: 2500, Title: "Consulting"})
	require.NoError(t, err)
	require.Equal(t, "pay_1", p.ID)
	require.JSONEq(t, `{"id":"pay_1","status":"Pending"}`, string(p.Raw))

	require.Equal(t, "/v1/merchants/mid-9/customers/cus_1/payments", got.path)
	require.JSONEq(t, `{
		"totalAmount": 2500,
		"currency": "USD",
		"invoices": [{"title":"Consulting","reference":"INV-1741995000123","invoiceDate":"2025-03-14","amount":2500}],
		"message": {"text":"Thank you for your business. Please pay your invoice."}
	}`, string(got.body))
}

func TestCreatePayment_ForwardsAmountAndReference(t *testing.T) {
	srv, got, _ := fakeProvider(t, http.StatusOK, `{"id":"pay_2"}`)
	c := newTestClient(srv.URL, okCreds)

	for _, amount := range []int64{1, 99, 2500, 123456789} {
		_, err := c.CreatePayment(context.Background(), &PaymentRequest{CustomerID: "cus_1", Amount: amount, Title: "t", Reference: "INV-42"})
		require.NoError(t, err)

		var body paymentPayload
		require.NoError(t, json.Unmarshal(got.body, &body))
		require.Equal(t, amount, body.TotalAmount)
		require.Equal(t, amount, body.Invoices[0].Amount)
		require.Equal(t, "INV-42", body.Invoices[0].Reference)
	}
}

func TestCreatePayment_RejectsNonPositiveAmounts(t *testing.T) {
	srv, _, hits := fakeProvider(t, http.StatusOK, `{}`)
	c := newTestClient(srv.URL, okCreds)

	_, err := c.CreatePayment(context.Background(), &PaymentRequest{CustomerID: "cus_1", Amount: 0, Title: "t"})
	require.EqualError(t, err, "Customer ID, amount, and title are required")

	for _, amount := range []int64{-1, -2500} {
		_, err := c.CreatePayment(context.Background(), &PaymentRequest{CustomerID: "cus_1", Amount: amount, Title: "t"})
		require.EqualError(t, err, "Amount must be greater than 0")
	}

	_, err = c.CreatePayment(context.Background(), &PaymentRequest{Amount: 10, Title: "t"})
	require.True(t, apperr.IsValidation(err))
	_, err = c.CreatePayment(context.Background(), &PaymentRequest{CustomerID: "c", Amount: 10})
	require.True(t, apperr.IsValidation(err))
	_, err = c.CreatePayment(context.Background(), nil)
	require.True(t, apperr.IsValidation(err))

	require.Zero(t, atomic.LoadInt32(hits))
}

func TestMissingCredentials_FailBeforeNetwork(t *testing.T) {
	srv, _, hits := fakeProvider(t, http.StatusOK, `{}`)
	c := newTestClient(srv.URL, Credentials{APIKey: "key-only"})

	_, err := c.CreateCustomer(context.Background(), "Jane", "+12125551234")
	var cfgErr *apperr.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	require.Equal(t, "Worldpay credentials not configured", err.Error())

	_, err = c.CreatePayment(context.Background(), &PaymentRequest{CustomerID: "c", Amount: 1, Title: "t"})
	require.True(t, errors.As(err, &cfgErr))
	require.Zero(t, atomic.LoadInt32(hits))
}

func TestProviderError_CarriesStatusAndBody(t *testing.T) {
	srv, _, _ := fakeProvider(t, http.StatusUnprocessableEntity, `{"message":"invalid phone"}`)
	c := newTestClient(srv.URL, okCreds)

	_, err := c.CreateCustomer(context.Background(), "Jane", "+12125551234")
	var pe *apperr.ProviderError
	require.True(t, errors.As(err, &pe))
	require.Equal(t, http.StatusUnprocessableEntity, pe.StatusCode)
	require.Equal(t, `{"message":"invalid phone"}`, pe.Body)
	require.Equal(t, `Worldpay API error: 422 - {"message":"invalid phone"}`, err.Error())
}

func TestGetCustomer(t *testing.T) {
	srv, got, _ := fakeProvider(t, http.StatusOK, `{"id":"cus 7","name":"Jo"}`)
	c := newTestClient(srv.URL, okCreds)

	cust, err := c.GetCustomer(context.Background(), "cus 7")
	require.NoError(t, err)
	require.Equal(t, "Jo", cust.Name)
	require.Equal(t, http.MethodGet, got.method)
	require.Equal(t, "/v1/merchants/mid-9/customers/cus 7", got.path)
	require.Empty(t, got.body)
}

func TestEnvCredentials_PrefersProcessEnv(t *testing.T) {
	src := EnvCredentials(config.WorldpayConfig{APIKey: "cfg-key", MerchantID: "cfg-mid"})

	t.Setenv("WORLDPAY_API_KEY", "env-key")
	c, err := src()
	require.NoError(t, err)
	require.Equal(t, "env-key", c.APIKey)
	require.Equal(t, "cfg-mid", c.MerchantID)

	// read again at request time
	t.Setenv("WORLDPAY_MID", "env-mid")
	c, err = src()
	require.NoError(t, err)
	require.Equal(t, "env-mid", c.MerchantID)
}
