package gateway

import (
	"context"
	"encoding/json"

	"github.com/fatflowers/texttopay/pkg/types"
)

// Customer is a provider customer. Raw keeps the provider body so the API can
// relay it without dropping fields it does not model.
type Customer struct {
	types.Customer
	Raw json.RawMessage `json:"-"`
}

// Payment is the provider's answer to a payment request. Only the id is
// modelled; everything else travels in Raw.
type Payment struct {
	ID  string          `json:"id"`
	Raw json.RawMessage `json:"-"`
}

// PaymentRequest is what a caller supplies to create a payment. Reference
// defaults to INV-<epoch millis>.
type PaymentRequest struct {
	CustomerID string `json:"customerId"`
	Amount     int64  `json:"amount"`
	Title      string `json:"title"`
	Reference  string `json:"reference,omitempty"`
}

// Gateway talks to the text-to-pay provider.
type Gateway interface {
	// Create a customer from a display name and an E.164-like phone.
	CreateCustomer(ctx context.Context, name, phone string) (*Customer, error)
	// Create a single-invoice payment request for an existing customer.
	CreatePayment(ctx context.Context, req *PaymentRequest) (*Payment, error)
	// Fetch a customer by provider id.
	GetCustomer(ctx context.Context, customerID string) (*Customer, error)
}

// Provider request bodies.

type customerPayload struct {
	Name    string        `json:"name"`
	Contact types.Contact `json:"contact"`
}

type invoiceLine struct {
	Title       string `json:"title"`
	Reference   string `json:"reference"`
	InvoiceDate string `json:"invoiceDate"`
	Amount      int64  `json:"amount"`
}

type messageText struct {
	Text string `json:"text"`
}

type paymentPayload struct {
	TotalAmount int64         `json:"totalAmount"`
	Currency    string        `json:"currency"`
	Invoices    []invoiceLine `json:"invoices"`
	Message     messageText   `json:"message"`
}
