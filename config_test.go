package stripehelper

import (
	"errors"
	"testing"
)

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("STRIPE_SECRET", "sk_test_env")
	t.Setenv("STRIPE_HELPER_DB", "postgres://localhost/billing")
	t.Setenv("STRIPE_API_BASE", "http://localhost:12111")
	t.Setenv("STRIPE_HELPER_DEBUG", "1")
	t.Setenv("STRIPE_HELPER_DEBUG_LOG", "/tmp/helper.log")

	cfg := ConfigFromEnv()
	if cfg.APIKey != "sk_test_env" {
		t.Errorf("APIKey = %s", cfg.APIKey)
	}
	if cfg.DatabaseDSN != "postgres://localhost/billing" {
		t.Errorf("DatabaseDSN = %s", cfg.DatabaseDSN)
	}
	if cfg.BackendURL != "http://localhost:12111" {
		t.Errorf("BackendURL = %s", cfg.BackendURL)
	}
	if !cfg.Debug {
		t.Error("Debug should be enabled")
	}
	if cfg.DebugLogPath != "/tmp/helper.log" {
		t.Errorf("DebugLogPath = %s", cfg.DebugLogPath)
	}
}

func TestConfigFromEnv_Empty(t *testing.T) {
	t.Setenv("STRIPE_SECRET", "")
	t.Setenv("STRIPE_HELPER_DEBUG", "")

	cfg := ConfigFromEnv()
	if cfg.APIKey != "" {
		t.Errorf("APIKey = %s, want empty", cfg.APIKey)
	}
	if cfg.Debug {
		t.Error("Debug should be disabled")
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.APIKey = "sk_test_abc"
	if err := cfg.Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	cfg.APIKey = ""
	err := cfg.Validate()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %v, want *ValidationError", err)
	}
	if verr.Field != "APIKey" {
		t.Errorf("Field = %s, want APIKey", verr.Field)
	}

	cfg.APIKey = "sk_test_abc"
	cfg.PageLimit = -1
	err = cfg.Validate()
	if !errors.As(err, &verr) || verr.Field != "PageLimit" {
		t.Errorf("error = %v, want PageLimit validation error", err)
	}
}

func TestConfigWithDefaults(t *testing.T) {
	cfg := Config{APIKey: "sk_test_abc"}.WithDefaults()
	if cfg.PageLimit != DefaultPageLimit {
		t.Errorf("PageLimit = %d, want %d", cfg.PageLimit, DefaultPageLimit)
	}

	cfg = Config{APIKey: "sk_test_abc", PageLimit: 25}.WithDefaults()
	if cfg.PageLimit != 25 {
		t.Errorf("PageLimit = %d, explicit value must survive", cfg.PageLimit)
	}
}

func TestNew_RejectsMissingAPIKey(t *testing.T) {
	_, err := New(Config{})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %v, want *ValidationError", err)
	}
}
