// Package order implements the checkout side of the storefront: the order
// entities, the webhook client that submits orders to the remote
// collaborator, the submission flow, and the status tracker.
package order

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jcmexdev/bakehouse-storefront/internal/cart"
)

type DeliveryMethod string

const (
	DeliveryPickup   DeliveryMethod = "pickup"
	DeliveryDelivery DeliveryMethod = "delivery"
)

func ParseDeliveryMethod(s string) (DeliveryMethod, error) {
	switch DeliveryMethod(s) {
	case DeliveryPickup, DeliveryDelivery:
		return DeliveryMethod(s), nil
	}
	return "", fmt.Errorf("unknown delivery method %q", s)
}

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentCard     PaymentMethod = "card"
	PaymentTransfer PaymentMethod = "transfer"
)

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(s) {
	case PaymentCash, PaymentCard, PaymentTransfer:
		return PaymentMethod(s), nil
	}
	return "", fmt.Errorf("unknown payment method %q", s)
}

// Status is owned exclusively by the remote system after submission; the
// client only ever sets the initial "pending".
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusReady      Status = "ready"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// Terminal reports whether the status can no longer change.
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

type Customer struct {
	Name    string
	Phone   string
	Email   string
	Address string // required only for delivery
}

var (
	phoneRe = regexp.MustCompile(`^[0-9]{9,}$`)
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// Validate checks the required customer fields for the given delivery method
// and returns a *ValidationError carrying one message per invalid field.
func (c Customer) Validate(method DeliveryMethod) error {
	fields := make(map[string]string)

	if strings.TrimSpace(c.Name) == "" {
		fields["name"] = "name is required"
	}
	switch {
	case strings.TrimSpace(c.Phone) == "":
		fields["phone"] = "phone is required"
	case !phoneRe.MatchString(c.Phone):
		fields["phone"] = "phone must be at least 9 digits"
	}
	switch {
	case strings.TrimSpace(c.Email) == "":
		fields["email"] = "email is required"
	case !emailRe.MatchString(c.Email):
		fields["email"] = "email is not valid"
	}
	if method == DeliveryDelivery && strings.TrimSpace(c.Address) == "" {
		fields["address"] = "address is required for delivery"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// ValidationError carries field-level messages for form display.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return "invalid customer data: " + strings.Join(keys, ", ")
}

// Order is an immutable snapshot of the cart plus customer, delivery, and
// payment data, frozen at submission time. The ID is assigned only by the
// remote collaborator; the client never invents one.
type Order struct {
	ID             string
	Customer       Customer
	Lines          []cart.Line
	Total          decimal.Decimal
	DeliveryMethod DeliveryMethod
	PaymentMethod  PaymentMethod
	Notes          string
	Status         Status
	CreatedAt      time.Time
}
