package stripehelper

import "time"

// SubscriptionRecord is a subscription fetched from Stripe, with the
// customer sub-resource expanded inline. Records are immutable once fetched.
type SubscriptionRecord struct {
	ID              string            `json:"id"`
	Created         time.Time         `json:"created"`
	PlanID          string            `json:"plan_id,omitempty"`
	Customer        *CustomerSnapshot `json:"customer,omitempty"`
	LatestInvoiceID string            `json:"latest_invoice_id,omitempty"`
}

// CustomerSnapshot is the customer state embedded in a fetched subscription.
type CustomerSnapshot struct {
	Email    string        `json:"email"`
	Shipping *ShippingInfo `json:"shipping,omitempty"`
}

// ShippingInfo is the shipping name and address from the customer snapshot.
type ShippingInfo struct {
	Name       string `json:"name"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// EnrichmentRow is the order/user metadata held in the relational store,
// keyed by Stripe subscription ID. Rows are read-only to this pipeline.
type EnrichmentRow struct {
	SubscriptionID string    `json:"subscription_id"`
	OrderDate      time.Time `json:"order_date"`
	UserID         int64     `json:"user_id"`
	ParseID        string    `json:"parse_id"`
}

// MergedRecord pairs a subscription with its enrichment row, if one exists.
// Enrichment is nil when the relational store has no match; the record still
// produces an output row.
type MergedRecord struct {
	SubscriptionRecord
	Enrichment *EnrichmentRow `json:"enrichment,omitempty"`
}

// FetchResult is the outcome of paginating the subscription list endpoint.
type FetchResult struct {
	Records []SubscriptionRecord `json:"records"`
	// Truncated is set when more matches existed than FetchCap allows.
	// The fetch itself still succeeds with exactly FetchCap records.
	Truncated bool `json:"truncated"`
}

// ExportParams configures a subscription CSV export run.
type ExportParams struct {
	PlanName string    `json:"plan_name"`
	GTE      time.Time `json:"gte"`
	LTE      time.Time `json:"lte"`
}

// ExportResult is the materialized output of an export run.
type ExportResult struct {
	CSV       string `json:"csv"`
	Count     int    `json:"count"`
	Truncated bool   `json:"truncated"`
}

// Fetch limits.
const (
	// FetchCap bounds how many subscriptions a single export will hold in
	// memory. The fetcher stops at the cap without error; FetchResult.Truncated
	// reports that more data existed.
	FetchCap = 10000

	// DefaultPageLimit is the per-page size requested from the list endpoint.
	DefaultPageLimit = 100
)

// Export column constants. The exported product line is fixed: every row
// carries the same product label and a quantity of one.
const (
	ProductLabel    = "v10 blue"
	ProductQuantity = 1
)
