package stripehelper

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"
)

func TestEnrich_PreservesOrderAndCount(t *testing.T) {
	subs := []SubscriptionRecord{{ID: "sub_1"}, {ID: "sub_2"}, {ID: "sub_3"}}
	rows := map[string]EnrichmentRow{
		"sub_2": {SubscriptionID: "sub_2", UserID: 43, ParseID: "def"},
	}

	merged := Enrich(subs, rows)
	if len(merged) != 3 {
		t.Fatalf("merged count = %d, want 3", len(merged))
	}
	for i, sub := range subs {
		if merged[i].ID != sub.ID {
			t.Errorf("position %d = %s, want %s", i, merged[i].ID, sub.ID)
		}
	}
	if merged[0].Enrichment != nil || merged[2].Enrichment != nil {
		t.Error("unmatched records must carry nil enrichment")
	}
	if merged[1].Enrichment == nil || merged[1].Enrichment.UserID != 43 {
		t.Errorf("matched record enrichment = %+v", merged[1].Enrichment)
	}
}

func TestExportSubscriptionsByPlan_EndToEnd(t *testing.T) {
	client, _ := newFakeBilling(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, listJSON(false,
			subscriptionJSON("sub_1", 1614556800, "in_1", "one@example.com", ""),
			subscriptionJSON("sub_2", 1614643200, "in_2", "two@example.com", ""),
		))
	})
	store, _ := newFixtureStore(t)

	helper := NewWithDependencies(client, store)
	result, err := helper.ExportSubscriptionsByPlan(context.Background(), ExportParams{
		PlanName: "plan_A",
		GTE:      time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
		LTE:      time.Date(2021, 6, 30, 23, 59, 59, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	if result.Count != 2 {
		t.Errorf("Count = %d, want 2", result.Count)
	}
	if result.Truncated {
		t.Error("export should not be truncated")
	}

	lines := strings.Split(strings.TrimSuffix(result.CSV, "\r\n"), "\r\n")
	if len(lines) != 3 {
		t.Fatalf("line count = %d, want header + 2 rows", len(lines))
	}

	// sub_1 has a fixture order, sub_2 does not.
	first := strings.Split(lines[1], ",")
	if first[5] != "sub_1" || first[2] != "42" || first[3] != "abc" {
		t.Errorf("enriched row = %v", first)
	}
	if first[1] != "2021-03-01T00:00:00Z" {
		t.Errorf("order date = %s, want 2021-03-01T00:00:00Z", first[1])
	}

	second := strings.Split(lines[2], ",")
	if second[5] != "sub_2" || second[1] != "" || second[2] != "" {
		t.Errorf("unmatched row = %v", second)
	}
}

func TestExportSubscriptionsByPlan_EmptyWindowYieldsHeaderOnly(t *testing.T) {
	client, _ := newFakeBilling(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, listJSON(false))
	})
	store, _ := newFixtureStore(t)

	helper := NewWithDependencies(client, store)
	result, err := helper.ExportSubscriptionsByPlan(context.Background(), ExportParams{
		PlanName: "plan_A",
		GTE:      time.Unix(1609459200, 0),
		LTE:      time.Unix(1625093999, 0),
	})
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	if result.Count != 0 {
		t.Errorf("Count = %d, want 0", result.Count)
	}
	if got := strings.Count(result.CSV, "\r\n"); got != 1 {
		t.Errorf("CRLF count = %d, want header line only", got)
	}
}

func TestExportSubscriptionsByPlan_RequiresStore(t *testing.T) {
	client, _ := newFakeBilling(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, listJSON(false))
	})

	helper := NewWithDependencies(client, nil)
	_, err := helper.ExportSubscriptionsByPlan(context.Background(), ExportParams{
		PlanName: "plan_A",
		GTE:      time.Unix(0, 0),
		LTE:      time.Unix(1, 0),
	})
	if !errors.Is(err, ErrNoEnrichmentStore) {
		t.Errorf("error = %v, want ErrNoEnrichmentStore", err)
	}
}

func TestExportSubscriptionsByPlan_StoreFailureIsFatal(t *testing.T) {
	client, _ := newFakeBilling(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, listJSON(false,
			subscriptionJSON("sub_1", 1614556800, "in_1", "one@example.com", ""),
		))
	})
	store, _ := newFixtureStore(t)
	if err := store.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	helper := NewWithDependencies(client, store)
	_, err := helper.ExportSubscriptionsByPlan(context.Background(), ExportParams{
		PlanName: "plan_A",
		GTE:      time.Unix(1609459200, 0),
		LTE:      time.Unix(1625093999, 0),
	})
	if !errors.Is(err, ErrStoreClosed) {
		t.Errorf("error = %v, want ErrStoreClosed", err)
	}
}

func TestExportSubscriptionsByPlan_FetchFailureIsFatal(t *testing.T) {
	client, _ := newFakeBilling(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"error": {"type": "api_error", "message": "boom"}}`)
	})
	store, _ := newFixtureStore(t)

	helper := NewWithDependencies(client, store)
	_, err := helper.ExportSubscriptionsByPlan(context.Background(), ExportParams{
		PlanName: "plan_A",
		GTE:      time.Unix(1609459200, 0),
		LTE:      time.Unix(1625093999, 0),
	})
	if err == nil {
		t.Fatal("expected fetch error to abort the export")
	}
}
