// Package reconcile keeps the merchant console's session state: the cached
// customers, payments and activity log, the invoice just sent, and the
// payment currently opened for detail. Broadcast status updates are merged
// into that state by payment id.
package reconcile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/fatflowers/texttopay/internal/app/service/gateway"
	"github.com/fatflowers/texttopay/internal/platform/broadcast"
	"github.com/fatflowers/texttopay/pkg/apperr"
	"github.com/fatflowers/texttopay/pkg/tool"
	"github.com/fatflowers/texttopay/pkg/types"
)

const (
	msgInvalidInvoice  = "Please enter a valid title and amount greater than $0.00"
	msgMissingCustomer = "Please enter customer name and phone number"
	msgInvalidPhone    = "Please enter a valid phone number with country code (e.g., +1234567890)"
	msgSent            = "Text-to-Pay invoice sent successfully!"
	msgCleared         = "All data cleared successfully"
	msgDisconnected    = "Disconnected from real-time updates"
)

// Notifier shows transient feedback to the merchant.
type Notifier interface {
	Notify(level types.ActivityType, message string)
	// Celebrate marks a completed payment.
	Celebrate()
}

// InvoiceForm is the raw send form. Amount is in dollars.
type InvoiceForm struct {
	Title  string
	Amount string
	Name   string
	Phone  string
}

// ExportData is the document written by Export.
type ExportData struct {
	Customers  []types.Customer `json:"customers"`
	Payments   []types.Payment  `json:"payments"`
	Activities []types.Activity `json:"activities"`
	ExportDate time.Time        `json:"exportDate"`
}

// Stats summarises the cached payments. TotalAmount is in minor units.
type Stats struct {
	Total       int   `json:"total"`
	Completed   int   `json:"completed"`
	Pending     int   `json:"pending"`
	TotalAmount int64 `json:"totalAmount"`
}

// Store is safe for concurrent use. All mutations are serialised and each one
// persists the collections it touched before returning.
type Store struct {
	mu       sync.Mutex
	storage  Storage
	backend  gateway.Gateway
	notifier Notifier
	log      *zap.SugaredLogger
	now      func() time.Time
	newID    func() string

	payments        []types.Payment
	customers       []types.Customer
	activities      []types.Activity
	currentInvoice  *types.Invoice
	currentCustomer *types.Customer
	selected        *types.Payment
	connected       bool
}

type Option func(*Store)

func WithNotifier(n Notifier) Option { return func(s *Store) { s.notifier = n } }

func WithClock(now func() time.Time) Option { return func(s *Store) { s.now = now } }

func WithIDs(fn func() string) Option { return func(s *Store) { s.newID = fn } }

func New(storage Storage, backend gateway.Gateway, log *zap.SugaredLogger, opts ...Option) *Store {
	s := &Store{
		storage: storage,
		backend: backend,
		log:     log,
		now:     time.Now,
		newID:   tool.GenerateUUIDV7,
	}
	s.notifier = logNotifier{log: log}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Load replaces the in-memory collections with what storage holds. Missing
// entries load as empty.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var payments []types.Payment
	var customers []types.Customer
	var activities []types.Activity
	for key, dst := range map[string]any{KeyPayments: &payments, KeyCustomers: &customers, KeyActivity: &activities} {
		raw, ok, err := s.storage.Get(ctx, key)
		if err != nil {
			return fmt.Errorf("load %s: %w", key, err)
		}
		if !ok || raw == "" {
			continue
		}
		if err := json.Unmarshal([]byte(raw), dst); err != nil {
			return fmt.Errorf("decode %s: %w", key, err)
		}
	}
	s.payments, s.customers, s.activities = payments, customers, activities
	return nil
}

// Run applies broadcast messages carrying event to the store until ctx is
// done or the subscription ends. Connection signals toggle Connected.
func (s *Store) Run(ctx context.Context, sub *broadcast.Subscription, event string) error {
	msgs, signals := sub.Messages, sub.Signals
	for msgs != nil || signals != nil {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case sig, ok := <-signals:
			if !ok {
				signals = nil
				continue
			}
			s.SetConnected(ctx, sig == broadcast.SignalConnected)
		case msg, ok := <-msgs:
			if !ok {
				msgs = nil
				continue
			}
			if msg.Event != event {
				continue
			}
			var update types.PaymentUpdate
			if err := json.Unmarshal(msg.Data, &update); err != nil {
				s.log.Warnw("payment_update_decode_failed", "error", err.Error())
				continue
			}
			s.ApplyUpdate(ctx, update)
		}
	}
	return nil
}

// SetConnected records the subscription state. Losing the connection is
// logged as a warning activity.
func (s *Store) SetConnected(ctx context.Context, connected bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connected = connected
	if !connected {
		s.addActivity(ctx, msgDisconnected, types.ActivityTypeWarning)
	}
}

func (s *Store) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}

// ApplyUpdate merges one broadcast status update. It reports false, and
// changes nothing, when no cached payment has the update's id.
func (s *Store) ApplyUpdate(ctx context.Context, u types.PaymentUpdate) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, idx, found := lo.FindIndexOf(s.payments, func(p types.Payment) bool { return p.ID == u.PaymentID })
	if !found {
		s.log.Debugw("payment_update_unmatched", "payment_id", u.PaymentID, "status", u.Status)
		return false
	}

	status := types.DisplayStatus(u.Status)
	s.payments[idx].Status = status
	if s.currentInvoice != nil && s.currentInvoice.ID == u.PaymentID {
		s.currentInvoice.Status = status
	}
	if s.selected != nil && s.selected.ID == u.PaymentID {
		s.selected.Status = status
	}
	s.persist(ctx, KeyPayments)

	name := s.payments[idx].CustomerName
	if u.Status == types.ProviderStatusCompleted {
		s.notifier.Celebrate()
		s.addActivity(ctx, fmt.Sprintf("🎉 Payment completed for %s!", name), types.ActivityTypeSuccess)
	} else {
		msg := fmt.Sprintf("Payment status updated to %s for %s", u.Status, name)
		s.notifier.Notify(types.ActivityTypeInfo, msg)
		s.addActivity(ctx, msg, types.ActivityTypeInfo)
	}
	s.log.Infow("payment_status_applied", "payment_id", u.PaymentID, "status", status)
	return true
}

// SubmitInvoice validates the form, creates the customer and then the
// payment through the backend, and records both. Validation failures are
// only notified; backend failures are also logged as an error activity.
func (s *Store) SubmitInvoice(ctx context.Context, form InvoiceForm) (*types.Payment, error) {
	dollars, err := ParseAmount(form.Amount)
	if form.Title == "" || err != nil || !dollars.IsPositive() {
		return nil, s.reject(msgInvalidInvoice)
	}
	amount, ok := ToMinorUnits(dollars)
	if !ok {
		return nil, s.reject(msgInvalidInvoice)
	}
	phone := NormalizePhone(form.Phone)
	if form.Name == "" || phone == "" {
		return nil, s.reject(msgMissingCustomer)
	}
	if !gateway.ValidPhone(phone) {
		return nil, s.reject(msgInvalidPhone)
	}

	now := s.now().UTC()
	reference := tool.InvoiceReference(now)

	cust, err := s.backend.CreateCustomer(ctx, form.Name, phone)
	if err != nil {
		return nil, s.failSubmit(ctx, err)
	}
	s.mu.Lock()
	s.customers = append(s.customers, cust.Customer)
	c := cust.Customer
	s.currentCustomer = &c
	s.persist(ctx, KeyCustomers)
	s.mu.Unlock()

	p, err := s.backend.CreatePayment(ctx, &gateway.PaymentRequest{
		CustomerID: cust.ID,
		Amount:     amount,
		Title:      form.Title,
		Reference:  reference,
	})
	if err != nil {
		return nil, s.failSubmit(ctx, err)
	}

	id := p.ID
	if id == "" {
		id = fmt.Sprintf("pay_%d", s.now().UnixMilli())
	}
	record := types.Payment{
		ID:               id,
		CustomerID:       cust.ID,
		CustomerName:     form.Name,
		CustomerPhone:    phone,
		InvoiceTitle:     form.Title,
		InvoiceReference: reference,
		Amount:           amount,
		Status:           types.PaymentStatusPending,
		Date:             now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.payments = append(s.payments, record)
	s.currentInvoice = &types.Invoice{
		ID:        id,
		Title:     form.Title,
		Amount:    amount,
		Reference: reference,
		Date:      now.Format(time.DateOnly),
		Status:    types.PaymentStatusPending,
	}
	s.persist(ctx, KeyPayments)

	s.notifier.Notify(types.ActivityTypeSuccess, msgSent)
	s.addActivity(ctx, fmt.Sprintf("Text-to-Pay sent to %s (%s) - %s $%s", form.Name, phone, form.Title, dollars.StringFixed(2)), types.ActivityTypeSuccess)
	return &record, nil
}

func (s *Store) reject(msg string) error {
	s.notifier.Notify(types.ActivityTypeError, msg)
	return apperr.Validation("%s", msg)
}

func (s *Store) failSubmit(ctx context.Context, err error) error {
	s.log.Errorw("submit_invoice_failed", "error", err.Error())
	s.notifier.Notify(types.ActivityTypeError, "Error: "+err.Error())

	s.mu.Lock()
	defer s.mu.Unlock()
	s.addActivity(ctx, "Error sending payment request: "+err.Error(), types.ActivityTypeError)
	return err
}

// ViewPayment opens the detail view for id. It reports false for an unknown id.
func (s *Store) ViewPayment(id string) (types.Payment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := lo.Find(s.payments, func(p types.Payment) bool { return p.ID == id })
	if !ok {
		return types.Payment{}, false
	}
	s.selected = &p
	return p, true
}

func (s *Store) CloseView() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = nil
}

// Selected returns the payment open in the detail view, if any.
func (s *Store) Selected() (types.Payment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil {
		return types.Payment{}, false
	}
	return *s.selected, true
}

// ClearAll drops every collection and the current selections, and removes the
// storage entries.
func (s *Store) ClearAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.payments, s.customers, s.activities = nil, nil, nil
	s.currentInvoice, s.currentCustomer, s.selected = nil, nil, nil

	var errs []error
	for _, key := range []string{KeyPayments, KeyCustomers, KeyActivity} {
		if err := s.storage.Remove(ctx, key); err != nil {
			errs = append(errs, fmt.Errorf("remove %s: %w", key, err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}
	s.notifier.Notify(types.ActivityTypeSuccess, msgCleared)
	return nil
}

func (s *Store) Export() ExportData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ExportData{
		Customers:  cloneOrEmpty(s.customers),
		Payments:   cloneOrEmpty(s.payments),
		Activities: cloneOrEmpty(s.activities),
		ExportDate: s.now().UTC(),
	}
}

func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{
		Total:       len(s.payments),
		Completed:   lo.CountBy(s.payments, func(p types.Payment) bool { return p.Status == types.PaymentStatusCompleted }),
		Pending:     lo.CountBy(s.payments, func(p types.Payment) bool { return p.Status == types.PaymentStatusPending }),
		TotalAmount: lo.SumBy(s.payments, func(p types.Payment) int64 { return p.Amount }),
	}
}

func (s *Store) Payments() []types.Payment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneOrEmpty(s.payments)
}

func (s *Store) Customers() []types.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneOrEmpty(s.customers)
}

// Activities returns the log newest first.
func (s *Store) Activities() []types.Activity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneOrEmpty(s.activities)
}

func (s *Store) CurrentInvoice() (types.Invoice, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentInvoice == nil {
		return types.Invoice{}, false
	}
	return *s.currentInvoice, true
}

func (s *Store) CurrentCustomer() (types.Customer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentCustomer == nil {
		return types.Customer{}, false
	}
	return *s.currentCustomer, true
}

// addActivity prepends to the log and keeps the newest MaxActivities.
// Callers hold s.mu.
func (s *Store) addActivity(ctx context.Context, message string, typ types.ActivityType) {
	a := types.Activity{ID: s.newID(), Message: message, Type: typ, Timestamp: s.now().UTC()}
	s.activities = append([]types.Activity{a}, s.activities...)
	if len(s.activities) > types.MaxActivities {
		s.activities = s.activities[:types.MaxActivities]
	}
	s.persist(ctx, KeyActivity)
}

// persist writes the named collections. Callers hold s.mu. Write errors are
// logged; the in-memory state stays authoritative for the session.
func (s *Store) persist(ctx context.Context, keys ...string) {
	for _, key := range keys {
		var v any
		switch key {
		case KeyPayments:
			v = cloneOrEmpty(s.payments)
		case KeyCustomers:
			v = cloneOrEmpty(s.customers)
		case KeyActivity:
			v = cloneOrEmpty(s.activities)
		}
		b, err := json.Marshal(v)
		if err != nil {
			s.log.Errorw("storage_encode_failed", "key", key, "error", err.Error())
			continue
		}
		if err := s.storage.Set(ctx, key, string(b)); err != nil {
			s.log.Errorw("storage_write_failed", "key", key, "error", err.Error())
		}
	}
}

func cloneOrEmpty[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}

type logNotifier struct{ log *zap.SugaredLogger }

func (n logNotifier) Notify(level types.ActivityType, message string) {
	n.log.Infow("notification", "level", level, "message", message)
}

func (n logNotifier) Celebrate() {}
