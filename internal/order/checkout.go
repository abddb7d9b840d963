package order

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/jcmexdev/bakehouse-storefront/internal/cart"
	"github.com/jcmexdev/bakehouse-storefront/internal/order/auditlog"
)

// ErrEmptyCart rejects checkout before any network call is made.
var ErrEmptyCart = errors.New("empty cart")

// Submitter is the outbound port the checkout flow submits through.
type Submitter interface {
	Create(ctx context.Context, o Order) (id string, status Status, err error)
}

// Checkout converts the current cart plus customer input into an Order,
// submits it, and reconciles the cart store with the outcome.
type Checkout struct {
	orders Submitter
	audit  auditlog.Repository // nil-safe: auditing skipped if nil
}

// NewCheckout wires the flow. audit may be nil — in that case checkout
// attempts are not persisted to the audit log.
func NewCheckout(orders Submitter, audit auditlog.Repository) *Checkout {
	return &Checkout{orders: orders, audit: audit}
}

// Submit runs one checkout attempt.
//
// The cart must be non-empty and the customer data valid, otherwise the call
// fails without touching the network. The submitted order is a frozen
// snapshot of the cart taken before the call, so cart edits during the
// (potentially minutes-long) submission cannot corrupt it. The store is
// cleared exactly once, only after the collaborator confirmed the order;
// on any failure it is left untouched so the user can retry.
//
// No automatic retry: retrying is a manual user action.
func (c *Checkout) Submit(
	ctx context.Context,
	store *cart.Store,
	customer Customer,
	delivery DeliveryMethod,
	payment PaymentMethod,
	notes string,
) (string, error) {
	state := store.State()
	if state.Empty() {
		return "", ErrEmptyCart
	}

	if err := customer.Validate(delivery); err != nil {
		return "", err
	}
	if delivery == DeliveryPickup {
		// The address is irrelevant for pickup and is not sent.
		customer.Address = ""
	}

	o := Order{
		Customer:       customer,
		Lines:          slices.Clone(state.Lines),
		Total:          state.Total,
		DeliveryMethod: delivery,
		PaymentMethod:  payment,
		Notes:          notes,
		Status:         StatusPending,
		CreatedAt:      time.Now().UTC(),
	}

	total := o.Total.InexactFloat64()
	c.record(ctx, auditlog.NewEntry(ctx, store.SessionID(), "", auditlog.OutcomeSubmitted, "", total))

	id, _, err := c.orders.Create(ctx, o)
	switch {
	case errors.Is(err, ErrSystemBusy):
		c.record(ctx, auditlog.NewEntry(ctx, store.SessionID(), "", auditlog.OutcomeBusy, err.Error(), total))
		return "", err
	case err != nil:
		c.record(ctx, auditlog.NewEntry(ctx, store.SessionID(), "", auditlog.OutcomeFailed, err.Error(), total))
		return "", fmt.Errorf("create order: %w", err)
	}

	store.Clear(ctx)
	c.record(ctx, auditlog.NewEntry(ctx, store.SessionID(), id, auditlog.OutcomeAccepted, "", total))

	slog.InfoContext(ctx, "order accepted", "order_id", id, "session_id", store.SessionID(), "total", total)
	return id, nil
}

func (c *Checkout) record(ctx context.Context, entry *auditlog.Entry) {
	if c.audit == nil {
		return
	}
	if err := c.audit.Save(ctx, entry); err != nil {
		slog.WarnContext(ctx, "checkout audit write failed", "session_id", entry.SessionID, "error", err)
	}
}
