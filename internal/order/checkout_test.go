package order

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/bakehouse-storefront/internal/cart"
	"github.com/jcmexdev/bakehouse-storefront/internal/catalog"
	"github.com/jcmexdev/bakehouse-storefront/internal/order/auditlog"
)

type fakeSubmitter struct {
	id     string
	status Status
	err    error

	calls int
	got   Order
}

func (f *fakeSubmitter) Create(ctx context.Context, o Order) (string, Status, error) {
	f.calls++
	f.got = o
	return f.id, f.status, f.err
}

type recordingAudit struct {
	entries []*auditlog.Entry
}

func (r *recordingAudit) Save(ctx context.Context, entry *auditlog.Entry) error {
	r.entries = append(r.entries, entry)
	return nil
}

func validCustomer() Customer {
	return Customer{Name: "Ana Gómez", Phone: "612345678", Email: "ana@example.com"}
}

func storeWithBaguettes(t *testing.T) *cart.Store {
	t.Helper()
	ctx := context.Background()
	store := cart.NewStore(ctx, "s1", cart.NewMemorySnapshots())
	p := catalog.Product{
		ID:    "3",
		Name:  "Baguette Francesa",
		Price: decimal.NewFromFloat(4.75),
		Stock: 10,
	}
	require.NoError(t, store.AddItem(ctx, p, 3))
	return store
}

func TestSubmitEmptyCartNeverCallsRemote(t *testing.T) {
	ctx := context.Background()
	store := cart.NewStore(ctx, "s1", cart.NewMemorySnapshots())
	submitter := &fakeSubmitter{}
	checkout := NewCheckout(submitter, nil)

	_, err := checkout.Submit(ctx, store, validCustomer(), DeliveryPickup, PaymentCash, "")

	require.ErrorIs(t, err, ErrEmptyCart)
	assert.Zero(t, submitter.calls)
}

func TestSubmitSuccessClearsCart(t *testing.T) {
	ctx := context.Background()
	store := storeWithBaguettes(t)
	submitter := &fakeSubmitter{id: "ord_1", status: StatusPending}
	audit := &recordingAudit{}
	checkout := NewCheckout(submitter, audit)

	id, err := checkout.Submit(ctx, store, validCustomer(), DeliveryPickup, PaymentCash, "sin sal")

	require.NoError(t, err)
	assert.Equal(t, "ord_1", id)
	assert.True(t, store.State().Empty(), "cart must be cleared after confirmed success")

	// The submitted order froze the cart before it was cleared.
	require.Len(t, submitter.got.Lines, 1)
	assert.Equal(t, 3, submitter.got.Lines[0].Quantity)
	assert.True(t, submitter.got.Total.Equal(decimal.NewFromFloat(14.25)))
	assert.Equal(t, StatusPending, submitter.got.Status)
	assert.Equal(t, "sin sal", submitter.got.Notes)
	assert.False(t, submitter.got.CreatedAt.IsZero())

	require.Len(t, audit.entries, 2)
	assert.Equal(t, auditlog.OutcomeSubmitted, audit.entries[0].Outcome)
	assert.Equal(t, auditlog.OutcomeAccepted, audit.entries[1].Outcome)
	assert.Equal(t, "ord_1", audit.entries[1].OrderID)
}

func TestSubmitFailureLeavesCartUntouched(t *testing.T) {
	ctx := context.Background()
	store := storeWithBaguettes(t)
	before := store.State()
	submitter := &fakeSubmitter{err: errors.New("connection reset")}
	audit := &recordingAudit{}
	checkout := NewCheckout(submitter, audit)

	_, err := checkout.Submit(ctx, store, validCustomer(), DeliveryPickup, PaymentCash, "")

	require.Error(t, err)
	after := store.State()
	require.Len(t, after.Lines, len(before.Lines))
	assert.True(t, after.Total.Equal(before.Total))

	require.Len(t, audit.entries, 2)
	assert.Equal(t, auditlog.OutcomeFailed, audit.entries[1].Outcome)
}

func TestSubmitBusyIsDistinctFromGenericFailure(t *testing.T) {
	ctx := context.Background()
	store := storeWithBaguettes(t)
	submitter := &fakeSubmitter{err: ErrSystemBusy}
	audit := &recordingAudit{}
	checkout := NewCheckout(submitter, audit)

	_, err := checkout.Submit(ctx, store, validCustomer(), DeliveryPickup, PaymentCash, "")

	require.ErrorIs(t, err, ErrSystemBusy)
	assert.False(t, store.State().Empty())
	assert.Equal(t, auditlog.OutcomeBusy, audit.entries[1].Outcome)
}

func TestSubmitValidatesCustomerBeforeRemoteCall(t *testing.T) {
	ctx := context.Background()
	store := storeWithBaguettes(t)
	submitter := &fakeSubmitter{id: "ord_1"}
	checkout := NewCheckout(submitter, nil)

	// Delivery without an address fails field validation.
	_, err := checkout.Submit(ctx, store, validCustomer(), DeliveryDelivery, PaymentCard, "")

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "address")
	assert.Zero(t, submitter.calls)
	assert.False(t, store.State().Empty())
}

func TestSubmitPickupDropsAddress(t *testing.T) {
	ctx := context.Background()
	store := storeWithBaguettes(t)
	submitter := &fakeSubmitter{id: "ord_1"}
	checkout := NewCheckout(submitter, nil)

	customer := validCustomer()
	customer.Address = "Calle Mayor 1"

	_, err := checkout.Submit(ctx, store, customer, DeliveryPickup, PaymentCash, "")

	require.NoError(t, err)
	assert.Empty(t, submitter.got.Customer.Address)
}

func TestCustomerValidate(t *testing.T) {
	tests := []struct {
		name     string
		customer Customer
		method   DeliveryMethod
		fields   []string
	}{
		{
			name:     "valid pickup",
			customer: validCustomer(),
			method:   DeliveryPickup,
		},
		{
			name: "valid delivery",
			customer: Customer{
				Name: "Ana", Phone: "612345678",
				Email: "ana@example.com", Address: "Calle Mayor 1",
			},
			method: DeliveryDelivery,
		},
		{
			name:     "everything missing",
			customer: Customer{},
			method:   DeliveryPickup,
			fields:   []string{"name", "phone", "email"},
		},
		{
			name: "short phone and bad email",
			customer: Customer{
				Name: "Ana", Phone: "1234", Email: "not-an-email",
			},
			method: DeliveryPickup,
			fields: []string{"phone", "email"},
		},
		{
			name:     "delivery requires address",
			customer: validCustomer(),
			method:   DeliveryDelivery,
			fields:   []string{"address"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.customer.Validate(tt.method)
			if len(tt.fields) == 0 {
				require.NoError(t, err)
				return
			}

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			require.Len(t, verr.Fields, len(tt.fields))
			for _, f := range tt.fields {
				assert.Contains(t, verr.Fields, f)
			}
		})
	}
}

func TestParseMethods(t *testing.T) {
	_, err := ParseDeliveryMethod("drone")
	require.Error(t, err)

	m, err := ParseDeliveryMethod("delivery")
	require.NoError(t, err)
	assert.Equal(t, DeliveryDelivery, m)

	_, err = ParsePaymentMethod("iou")
	require.Error(t, err)

	p, err := ParsePaymentMethod("transfer")
	require.NoError(t, err)
	assert.Equal(t, PaymentTransfer, p)
}
