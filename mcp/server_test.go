package mcp

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/billdeck/stripehelper"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *Server {
	t.Helper()
	backend := httptest.NewServer(handler)
	t.Cleanup(backend.Close)

	billing := stripehelper.NewBillingClient("sk_test_fake", stripehelper.WithBackendURL(backend.URL))
	return NewServer(stripehelper.NewWithDependencies(billing, nil))
}

func TestListTools(t *testing.T) {
	server := NewServer(nil)

	tools := server.ListTools()
	if len(tools) != 4 {
		t.Fatalf("tool count = %d, want 4", len(tools))
	}

	names := map[string]bool{}
	for _, tool := range tools {
		names[tool.Name] = true
		if tool.Description == "" {
			t.Errorf("tool %s has no description", tool.Name)
		}
	}
	for _, want := range []string{
		"stripe_get_balance",
		"stripe_get_customer",
		"stripe_get_subscription",
		"stripe_export_subscriptions",
	} {
		if !names[want] {
			t.Errorf("tool %s not listed", want)
		}
	}
}

func TestCallTool_UnknownTool(t *testing.T) {
	server := NewServer(nil)

	result, err := server.CallTool(context.Background(), "stripe_delete_everything", nil)
	if err != nil {
		t.Fatalf("CallTool failed: %v", err)
	}
	if !result.IsError {
		t.Error("unknown tool must produce an error result")
	}
	if !strings.Contains(result.Content, "unknown tool") {
		t.Errorf("Content = %q", result.Content)
	}
}

func TestCallTool_ValidatesArguments(t *testing.T) {
	server := NewServer(nil)
	ctx := context.Background()

	cases := []struct {
		tool string
		args map[string]any
		want string
	}{
		{"stripe_get_customer", map[string]any{}, "id is required"},
		{"stripe_get_subscription", map[string]any{"id": ""}, "id is required"},
		{"stripe_export_subscriptions", map[string]any{}, "plan is required"},
		{"stripe_export_subscriptions", map[string]any{"plan": "plan_A"}, "gte is required"},
		{"stripe_export_subscriptions", map[string]any{"plan": "plan_A", "gte": "2021-01-01"}, "lte is required"},
		{"stripe_export_subscriptions", map[string]any{"plan": "plan_A", "gte": "nope", "lte": "2021-06-30"}, "gte"},
	}

	for _, tc := range cases {
		result, err := server.CallTool(ctx, tc.tool, tc.args)
		if err != nil {
			t.Fatalf("CallTool(%s) failed: %v", tc.tool, err)
		}
		if !result.IsError {
			t.Errorf("CallTool(%s, %v) should produce an error result", tc.tool, tc.args)
			continue
		}
		if !strings.Contains(result.Content, tc.want) {
			t.Errorf("CallTool(%s) content = %q, want mention of %q", tc.tool, result.Content, tc.want)
		}
	}
}

func TestCallTool_GetBalance(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"object":"balance","available":[{"amount":12345,"currency":"usd"}]}`)
	})

	result, err := server.CallTool(context.Background(), "stripe_get_balance", nil)
	if err != nil {
		t.Fatalf("CallTool failed: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error result: %s", result.Content)
	}
	if !strings.Contains(result.Content, "12345") {
		t.Errorf("Content = %q, want balance amount", result.Content)
	}
}

func TestCallTool_RemoteErrorBecomesToolError(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error": {"type": "invalid_request_error", "message": "no such customer"}}`)
	})

	result, err := server.CallTool(context.Background(), "stripe_get_customer", map[string]any{"id": "cus_missing"})
	if err != nil {
		t.Fatalf("CallTool failed: %v", err)
	}
	if !result.IsError {
		t.Error("remote failure must produce an error result, not a protocol error")
	}
	if !strings.Contains(result.Content, "cus_missing") {
		t.Errorf("Content = %q, want the customer ID named", result.Content)
	}
}

func TestCallTool_ExportWithoutStore(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"object":"list","has_more":false,"data":[]}`)
	})

	result, err := server.CallTool(context.Background(), "stripe_export_subscriptions", map[string]any{
		"plan": "plan_A",
		"gte":  "2021-01-01",
		"lte":  "2021-06-30",
	})
	if err != nil {
		t.Fatalf("CallTool failed: %v", err)
	}
	if !result.IsError {
		t.Error("export without a store must produce an error result")
	}
}

func TestParseToolDate(t *testing.T) {
	args := map[string]any{
		"gte": "2021-01-01",
		"lte": "2021-06-30T23:59:59Z",
	}

	gte, err := parseToolDate(args, "gte")
	if err != nil {
		t.Fatalf("parseToolDate(gte) failed: %v", err)
	}
	if !gte.Equal(time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("gte = %v", gte)
	}

	lte, err := parseToolDate(args, "lte")
	if err != nil {
		t.Fatalf("parseToolDate(lte) failed: %v", err)
	}
	if !lte.Equal(time.Date(2021, 6, 30, 23, 59, 59, 0, time.UTC)) {
		t.Errorf("lte = %v", lte)
	}

	if _, err := parseToolDate(map[string]any{"gte": 42}, "gte"); err == nil {
		t.Error("non-string date must fail")
	}
}
