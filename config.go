package stripehelper

import "os"

// Config configures the stripehelper client.
type Config struct {
	// APIKey is the Stripe secret key (sk_test_... or sk_live_...).
	APIKey string

	// DatabaseDSN points at the relational store holding order/user
	// enrichment data. DSNs starting with postgres:// or postgresql://
	// use the Postgres driver; anything else is treated as a SQLite path.
	// Only the export pipeline needs it; proxy commands work without.
	DatabaseDSN string

	// BackendURL overrides the Stripe API base URL. Used to point at
	// stripe-mock or a test server; empty means the real API.
	BackendURL string

	// PageLimit is the per-page size for list requests.
	// Defaults to DefaultPageLimit.
	PageLimit int64

	// Debug enables verbose logging of API pagination, SQL lookups,
	// and pipeline stage timings.
	Debug bool

	// DebugLogPath is the path to write debug logs.
	// Defaults to stderr if empty.
	DebugLogPath string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		PageLimit: DefaultPageLimit,
	}
}

// ConfigFromEnv reads configuration from environment variables.
//
//	STRIPE_SECRET            → APIKey
//	STRIPE_HELPER_DB         → DatabaseDSN
//	STRIPE_API_BASE          → BackendURL
//	STRIPE_HELPER_DEBUG      → Debug (any non-empty value enables)
//	STRIPE_HELPER_DEBUG_LOG  → DebugLogPath
func ConfigFromEnv() Config {
	return Config{
		APIKey:       os.Getenv("STRIPE_SECRET"),
		DatabaseDSN:  os.Getenv("STRIPE_HELPER_DB"),
		BackendURL:   os.Getenv("STRIPE_API_BASE"),
		Debug:        os.Getenv("STRIPE_HELPER_DEBUG") != "",
		DebugLogPath: os.Getenv("STRIPE_HELPER_DEBUG_LOG"),
	}
}

// Validate checks the configuration for errors.
// Returns *ValidationError for invalid fields.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return &ValidationError{Field: "APIKey", Message: "required: set STRIPE_SECRET or --api-key"}
	}
	if c.PageLimit < 0 {
		return &ValidationError{Field: "PageLimit", Message: "must be non-negative"}
	}
	return nil
}

// WithDefaults fills in default values for unset fields.
func (c Config) WithDefaults() Config {
	if c.PageLimit == 0 {
		c.PageLimit = DefaultPageLimit
	}
	return c
}
