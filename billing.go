package stripehelper

import (
	"context"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	stripe "github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/client"
)

// BillingClient wraps the Stripe SDK. It is constructed explicitly and passed
// into the pipeline rather than held as an ambient global, so tests can point
// it at a fake backend.
type BillingClient struct {
	api        *client.API
	backendURL string
	pageLimit  int64
	fetchCap   int
	debug      *DebugLogger
}

// BillingOption configures a BillingClient.
type BillingOption func(*BillingClient)

// WithBackendURL overrides the Stripe API base URL (stripe-mock, httptest).
func WithBackendURL(url string) BillingOption {
	return func(b *BillingClient) { b.backendURL = url }
}

// WithPageLimit sets the per-page size for list requests.
func WithPageLimit(n int64) BillingOption {
	return func(b *BillingClient) {
		if n > 0 {
			b.pageLimit = n
		}
	}
}

// WithDebugLogger attaches a debug logger.
func WithDebugLogger(l *DebugLogger) BillingOption {
	return func(b *BillingClient) { b.debug = l }
}

// NewBillingClient creates a Stripe API client authenticated with apiKey.
func NewBillingClient(apiKey string, opts ...BillingOption) *BillingClient {
	b := &BillingClient{
		pageLimit: DefaultPageLimit,
		fetchCap:  FetchCap,
	}
	for _, opt := range opts {
		opt(b)
	}

	var backends *stripe.Backends
	if b.backendURL != "" {
		backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
			URL:               stripe.String(b.backendURL),
			MaxNetworkRetries: stripe.Int64(0),
		})
		backends = &stripe.Backends{API: backend, Connect: backend, Uploads: backend}
	}

	api := &client.API{}
	api.Init(apiKey, backends)
	b.api = api

	return b
}

// FetchSubscriptions retrieves every subscription for planID created inside
// the inclusive [gte, lte] window, with the customer expanded inline. It
// pages through the full result set, stopping at the fetch cap; hitting the
// cap is reported via FetchResult.Truncated, not an error.
func (b *BillingClient) FetchSubscriptions(ctx context.Context, planID string, gte, lte time.Time) (*FetchResult, error) {
	if planID == "" {
		return nil, ErrEmptyPlan
	}
	if gte.After(lte) {
		return nil, ErrInvalidDateRange
	}

	params := &stripe.SubscriptionListParams{
		Price: stripe.String(planID),
		// Stripe filters on whole-second epoch timestamps, both bounds
		// inclusive. Unix() floors sub-second fractions.
		CreatedRange: &stripe.RangeQueryParams{
			GreaterThanOrEqual: gte.Unix(),
			LesserThanOrEqual:  lte.Unix(),
		},
	}
	params.Context = ctx
	params.Limit = stripe.Int64(b.pageLimit)
	params.AddExpand("data.customer")

	result := &FetchResult{}
	iter := b.api.Subscriptions.List(params)
	for iter.Next() {
		if len(result.Records) >= b.fetchCap {
			result.Truncated = true
			break
		}
		result.Records = append(result.Records, newSubscriptionRecord(iter.Subscription()))
	}
	if err := iter.Err(); err != nil {
		b.debug.LogError("list subscriptions", err)
		return nil, fmt.Errorf("billing: list subscriptions for plan %s: %w", planID, err)
	}

	b.debug.LogFetch(planID, len(result.Records), result.Truncated)
	return result, nil
}

// newSubscriptionRecord flattens a Stripe subscription into the pipeline's
// record shape. Expandable references that came back unexpanded still carry
// their IDs.
func newSubscriptionRecord(sub *stripe.Subscription) SubscriptionRecord {
	rec := SubscriptionRecord{
		ID:      sub.ID,
		Created: time.Unix(sub.Created, 0).UTC(),
	}

	if sub.LatestInvoice != nil {
		rec.LatestInvoiceID = sub.LatestInvoice.ID
	}

	if sub.Items != nil && len(sub.Items.Data) > 0 && sub.Items.Data[0].Price != nil {
		rec.PlanID = sub.Items.Data[0].Price.ID
	}

	if cus := sub.Customer; cus != nil {
		snapshot := &CustomerSnapshot{Email: cus.Email}
		if sh := cus.Shipping; sh != nil {
			info := &ShippingInfo{Name: sh.Name}
			if addr := sh.Address; addr != nil {
				info.Line1 = addr.Line1
				info.Line2 = addr.Line2
				info.City = addr.City
				info.State = addr.State
				info.PostalCode = addr.PostalCode
				info.Country = addr.Country
			}
			snapshot.Shipping = info
		}
		rec.Customer = snapshot
	}

	return rec
}

// Default test card used by CreatePaymentMethod, carried over from the
// original helper payload.
var testCard = struct {
	Number   string
	ExpMonth int64
	ExpYear  int64
	CVC      string
}{
	Number:   "4242424242424242",
	ExpMonth: 7,
	ExpYear:  2031,
	CVC:      "314",
}

// CreatePaymentMethod creates a card payment method from the default test card.
func (b *BillingClient) CreatePaymentMethod(ctx context.Context) (*stripe.PaymentMethod, error) {
	params := &stripe.PaymentMethodParams{
		Type: stripe.String("card"),
		Card: &stripe.PaymentMethodCardParams{
			Number:   stripe.String(testCard.Number),
			ExpMonth: stripe.Int64(testCard.ExpMonth),
			ExpYear:  stripe.Int64(testCard.ExpYear),
			CVC:      stripe.String(testCard.CVC),
		},
	}
	params.Context = ctx
	params.IdempotencyKey = stripe.String(idempotencyKey())

	return b.api.PaymentMethods.New(params)
}

// GetPaymentMethod retrieves a payment method by ID.
func (b *BillingClient) GetPaymentMethod(ctx context.Context, id string) (*stripe.PaymentMethod, error) {
	params := &stripe.PaymentMethodParams{}
	params.Context = ctx
	return b.api.PaymentMethods.Get(id, params)
}

// DetachPaymentMethod detaches a payment method from its customer.
func (b *BillingClient) DetachPaymentMethod(ctx context.Context, id string) (*stripe.PaymentMethod, error) {
	params := &stripe.PaymentMethodDetachParams{}
	params.Context = ctx
	return b.api.PaymentMethods.Detach(id, params)
}

// AttachPaymentMethod attaches a payment method to a customer.
func (b *BillingClient) AttachPaymentMethod(ctx context.Context, id, customerID string) (*stripe.PaymentMethod, error) {
	params := &stripe.PaymentMethodAttachParams{
		Customer: stripe.String(customerID),
	}
	params.Context = ctx
	return b.api.PaymentMethods.Attach(id, params)
}

// CancelSubscription cancels a subscription immediately.
func (b *BillingClient) CancelSubscription(ctx context.Context, id string) (*stripe.Subscription, error) {
	params := &stripe.SubscriptionCancelParams{}
	params.Context = ctx
	return b.api.Subscriptions.Cancel(id, params)
}

// GetSubscription retrieves a subscription by ID.
func (b *BillingClient) GetSubscription(ctx context.Context, id string) (*stripe.Subscription, error) {
	params := &stripe.SubscriptionParams{}
	params.Context = ctx
	return b.api.Subscriptions.Get(id, params)
}

// OneTimePayment bills a customer once for a plan's price via an invoice item.
func (b *BillingClient) OneTimePayment(ctx context.Context, planID, customerID string) (*stripe.InvoiceItem, error) {
	params := &stripe.InvoiceItemParams{
		Customer: stripe.String(customerID),
		Pricing:  &stripe.InvoiceItemPricingParams{Price: stripe.String(planID)},
	}
	params.Context = ctx
	params.IdempotencyKey = stripe.String(idempotencyKey())

	return b.api.InvoiceItems.New(params)
}

// CreateCustomer creates a customer with the given email.
func (b *BillingClient) CreateCustomer(ctx context.Context, email string) (*stripe.Customer, error) {
	params := &stripe.CustomerParams{
		Email: stripe.String(email),
	}
	params.Context = ctx
	params.IdempotencyKey = stripe.String(idempotencyKey())

	return b.api.Customers.New(params)
}

// DeleteCustomer permanently deletes a customer.
func (b *BillingClient) DeleteCustomer(ctx context.Context, id string) (*stripe.Customer, error) {
	params := &stripe.CustomerParams{}
	params.Context = ctx
	return b.api.Customers.Del(id, params)
}

// GetCustomer retrieves a customer by ID.
func (b *BillingClient) GetCustomer(ctx context.Context, id string) (*stripe.Customer, error) {
	params := &stripe.CustomerParams{}
	params.Context = ctx
	return b.api.Customers.Get(id, params)
}

// GetBalance retrieves the account balance.
func (b *BillingClient) GetBalance(ctx context.Context) (*stripe.Balance, error) {
	params := &stripe.BalanceParams{}
	params.Context = ctx
	return b.api.Balance.Get(params)
}

// idempotencyKey returns a fresh ULID for mutating requests, so an operator
// re-running a command after a network blip cannot double-create resources.
func idempotencyKey() string {
	return ulid.Make().String()
}
