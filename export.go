package stripehelper

import (
	"context"
	"time"
)

// Enrich overlays enrichment rows onto fetched subscriptions. Every input
// record yields exactly one output record in the same order; records without
// a matching row pass through with Enrichment left nil.
func Enrich(subs []SubscriptionRecord, rows map[string]EnrichmentRow) []MergedRecord {
	merged := make([]MergedRecord, len(subs))
	for i, sub := range subs {
		merged[i] = MergedRecord{SubscriptionRecord: sub}
		if row, ok := rows[sub.ID]; ok {
			merged[i].Enrichment = &row
		}
	}
	return merged
}

// ExportSubscriptionsByPlan runs the full export pipeline: fetch every
// subscription for the plan inside the date window, enrich the batch with a
// single relational lookup, and flatten to CSV. Each stage materializes its
// output before the next begins; a failure at any stage aborts the whole run
// with no partial output.
func (c *Client) ExportSubscriptionsByPlan(ctx context.Context, params ExportParams) (*ExportResult, error) {
	if c.store == nil {
		return nil, ErrNoEnrichmentStore
	}

	start := time.Now()
	fetched, err := c.billing.FetchSubscriptions(ctx, params.PlanName, params.GTE, params.LTE)
	if err != nil {
		return nil, err
	}
	c.debug.LogStage("fetch", time.Since(start))

	start = time.Now()
	ids := make([]string, len(fetched.Records))
	for i, rec := range fetched.Records {
		ids[i] = rec.ID
	}
	rows, err := c.store.Lookup(ctx, ids)
	if err != nil {
		return nil, err
	}
	c.debug.LogStage("enrich", time.Since(start))

	start = time.Now()
	text, err := FormatCSV(params.PlanName, Enrich(fetched.Records, rows))
	if err != nil {
		return nil, err
	}
	c.debug.LogStage("format", time.Since(start))

	return &ExportResult{
		CSV:       text,
		Count:     len(fetched.Records),
		Truncated: fetched.Truncated,
	}, nil
}
