package types

import "time"

// Status values the provider and the console agree on. Any other provider
// string is carried through verbatim.
const (
	PaymentStatusPending   = "Pending"
	PaymentStatusCompleted = "Completed"

	// ProviderStatusCompleted is the provider's raw spelling of a finished payment.
	ProviderStatusCompleted = "completed"
)

type Contact struct {
	Phone string `json:"phone"`
}

// Customer is a provider customer as cached by the console.
type Customer struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Contact Contact `json:"contact"`
}

// Payment is the console's record of one text-to-pay request. ID is the join
// key for broadcast updates and never changes once assigned.
type Payment struct {
	ID               string    `json:"id"`
	CustomerID       string    `json:"customerId"`
	CustomerName     string    `json:"customerName"`
	CustomerPhone    string    `json:"customerPhone"`
	InvoiceTitle     string    `json:"invoiceTitle"`
	InvoiceReference string    `json:"invoiceReference"`
	Amount           int64     `json:"amount"`
	Status           string    `json:"status"`
	Date             time.Time `json:"date"`
}

// Invoice is the in-progress invoice shown right after a send.
type Invoice struct {
	ID        string `json:"id,omitempty"`
	Title     string `json:"title"`
	Amount    int64  `json:"amount"`
	Reference string `json:"reference"`
	Date      string `json:"date"`
	Status    string `json:"status"`
}

// PaymentUpdate is the payload broadcast on every processed status webhook.
type PaymentUpdate struct {
	PaymentID           string `json:"paymentId"`
	CustomerID          string `json:"customerId"`
	MerchantID          string `json:"merchantId"`
	Status              string `json:"status"`
	LastUpdatedDateTime string `json:"lastUpdatedDateTime"`
	EventType           string `json:"eventType"`
}

// DisplayStatus maps the provider's raw status to what the console shows.
// Only the exact lowercase "completed" is rewritten.
func DisplayStatus(status string) string {
	if status == ProviderStatusCompleted {
		return PaymentStatusCompleted
	}
	return status
}
