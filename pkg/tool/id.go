package tool

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

func GenerateUUIDV7() string {
	return uuid.Must(uuid.NewV7()).String()
}

// NewCorrelationID returns the per-request token sent to the provider.
func NewCorrelationID() string {
	return uuid.NewString()
}

// InvoiceReference builds the default client reference, INV-<epoch millis>.
func InvoiceReference(now time.Time) string {
	return fmt.Sprintf("INV-%d", now.UnixMilli())
}
