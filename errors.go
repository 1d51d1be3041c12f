package stripehelper

import (
	"errors"
	"fmt"
)

// Common errors returned by the stripehelper client.
var (
	// ErrMissingAPIKey is returned when no Stripe secret key is configured.
	ErrMissingAPIKey = errors.New("stripe secret key not configured")

	// ErrNoEnrichmentStore is returned when an export runs without a
	// relational store configured.
	ErrNoEnrichmentStore = errors.New("enrichment store not configured")

	// ErrStoreClosed is returned when querying a closed enrichment store.
	ErrStoreClosed = errors.New("enrichment store is closed")

	// ErrInvalidDateRange is returned when an export window has its lower
	// bound after its upper bound.
	ErrInvalidDateRange = errors.New("date range lower bound is after upper bound")

	// ErrEmptyPlan is returned when an export is requested without a plan.
	ErrEmptyPlan = errors.New("plan name cannot be empty")
)

// ValidationError is returned when configuration validation fails.
// Extractable via errors.As().
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

// DataIntegrityError is returned when a fetched record is missing a field
// the formatter requires, such as the embedded customer snapshot. Malformed
// records abort the run rather than being silently skipped.
// Extractable via errors.As().
type DataIntegrityError struct {
	SubscriptionID string
	Field          string
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("format: subscription %s: missing %s", e.SubscriptionID, e.Field)
}
