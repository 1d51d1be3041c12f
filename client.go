package stripehelper

import (
	"context"
	"fmt"

	stripe "github.com/stripe/stripe-go/v83"
)

// Client is the main entry point. It owns a Stripe billing client and,
// when a DSN is configured, the enrichment store. Both are constructed
// explicitly here and injected into the pipeline; nothing is process-global.
type Client struct {
	billing *BillingClient
	store   *Store
	config  Config
	debug   *DebugLogger
}

// New creates a stripehelper client from configuration.
func New(cfg Config) (*Client, error) {
	cfg = cfg.WithDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	debug, err := NewDebugLogger(cfg.Debug, cfg.DebugLogPath)
	if err != nil {
		return nil, fmt.Errorf("client: %w", err)
	}

	opts := []BillingOption{
		WithPageLimit(cfg.PageLimit),
		WithDebugLogger(debug),
	}
	if cfg.BackendURL != "" {
		opts = append(opts, WithBackendURL(cfg.BackendURL))
	}

	c := &Client{
		billing: NewBillingClient(cfg.APIKey, opts...),
		config:  cfg,
		debug:   debug,
	}

	// The store stays nil without a DSN; only the export pipeline needs it.
	if cfg.DatabaseDSN != "" {
		store, err := NewStore(cfg.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("client: %w", err)
		}
		store.debug = debug
		c.store = store
	}

	return c, nil
}

// NewWithDependencies creates a client around pre-built collaborators.
// Intended for tests that fake the billing backend or the store.
func NewWithDependencies(billing *BillingClient, store *Store) *Client {
	return &Client{billing: billing, store: store}
}

// Billing exposes the underlying billing client.
func (c *Client) Billing() *BillingClient { return c.billing }

// CreatePaymentMethod creates a card payment method from the default test card.
func (c *Client) CreatePaymentMethod(ctx context.Context) (*stripe.PaymentMethod, error) {
	return c.billing.CreatePaymentMethod(ctx)
}

// GetPaymentMethod retrieves a payment method by ID.
func (c *Client) GetPaymentMethod(ctx context.Context, id string) (*stripe.PaymentMethod, error) {
	return c.billing.GetPaymentMethod(ctx, id)
}

// DetachPaymentMethod detaches a payment method from its customer.
func (c *Client) DetachPaymentMethod(ctx context.Context, id string) (*stripe.PaymentMethod, error) {
	return c.billing.DetachPaymentMethod(ctx, id)
}

// AttachPaymentMethod attaches a payment method to a customer.
func (c *Client) AttachPaymentMethod(ctx context.Context, id, customerID string) (*stripe.PaymentMethod, error) {
	return c.billing.AttachPaymentMethod(ctx, id, customerID)
}

// CancelSubscription cancels a subscription immediately.
func (c *Client) CancelSubscription(ctx context.Context, id string) (*stripe.Subscription, error) {
	return c.billing.CancelSubscription(ctx, id)
}

// GetSubscription retrieves a subscription by ID.
func (c *Client) GetSubscription(ctx context.Context, id string) (*stripe.Subscription, error) {
	return c.billing.GetSubscription(ctx, id)
}

// OneTimePayment bills a customer once for a plan's price.
func (c *Client) OneTimePayment(ctx context.Context, planID, customerID string) (*stripe.InvoiceItem, error) {
	return c.billing.OneTimePayment(ctx, planID, customerID)
}

// CreateCustomer creates a customer with the given email.
func (c *Client) CreateCustomer(ctx context.Context, email string) (*stripe.Customer, error) {
	return c.billing.CreateCustomer(ctx, email)
}

// DeleteCustomer permanently deletes a customer.
func (c *Client) DeleteCustomer(ctx context.Context, id string) (*stripe.Customer, error) {
	return c.billing.DeleteCustomer(ctx, id)
}

// GetCustomer retrieves a customer by ID.
func (c *Client) GetCustomer(ctx context.Context, id string) (*stripe.Customer, error) {
	return c.billing.GetCustomer(ctx, id)
}

// GetBalance retrieves the account balance.
func (c *Client) GetBalance(ctx context.Context) (*stripe.Balance, error) {
	return c.billing.GetBalance(ctx)
}

// Close releases the enrichment store connection and the debug log file.
func (c *Client) Close() error {
	var firstErr error
	if c.store != nil {
		if err := c.store.Close(); err != nil {
			firstErr = err
		}
	}
	if err := c.debug.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
