package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/billdeck/stripehelper"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "getSubscriptionsByPlanName <planName> <gte> <lte> [outputfile]",
	Short: "Export a plan's subscriptions to CSV, enriched from the order store",
	Long: `Fetch every subscription for a plan created inside the inclusive [gte, lte]
window, enrich each record with order and user metadata from the relational
store, and flatten the batch into a fixed-schema CSV.

Dates accept YYYY-MM-DD or RFC 3339. Without an output file the CSV goes to
stdout; with one it is written to that path.

Examples:
  stripehelper getSubscriptionsByPlanName price_1Hxyz 2021-01-01 2021-06-30
  stripehelper getSubscriptionsByPlanName price_1Hxyz 2021-01-01T00:00:00Z 2021-06-30T23:59:59Z subs.csv`,
	Args: cobra.RangeArgs(3, 4),
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	planName := args[0]
	errOut := cmd.ErrOrStderr()

	gte, err := parseDate(args[1])
	if err != nil {
		return fmt.Errorf("invalid gte date %q: %w", args[1], err)
	}
	lte, err := parseDate(args[2])
	if err != nil {
		return fmt.Errorf("invalid lte date %q: %w", args[2], err)
	}

	cfg := loadConfig()
	if cfg.DatabaseDSN == "" {
		return fmt.Errorf("enrichment store required: set STRIPE_HELPER_DB or --db")
	}

	client, err := stripehelper.New(cfg)
	if err != nil {
		return fmt.Errorf("initialize client: %w", err)
	}
	defer func() { _ = client.Close() }()

	printInfo(errOut, "Exporting subscriptions for plan %s (%s .. %s)", planName, args[1], args[2])

	var result *stripehelper.ExportResult
	err = runWithSpinner(errOut, "Fetching and enriching subscriptions", func() error {
		var exportErr error
		result, exportErr = client.ExportSubscriptionsByPlan(cmd.Context(), stripehelper.ExportParams{
			PlanName: planName,
			GTE:      gte,
			LTE:      lte,
		})
		return exportErr
	})
	if err != nil {
		return err
	}

	if result.Truncated {
		printWarning(errOut, "More subscriptions matched than the %d-record cap; output is truncated", stripehelper.FetchCap)
	}

	if len(args) == 4 {
		return emitToFile(cmd, planName, result, args[3])
	}

	// Console sink: CSV on stdout, status on stderr.
	fmt.Fprint(cmd.OutOrStdout(), result.CSV)
	printSuccess(errOut, "Exported %d subscriptions", result.Count)
	return nil
}

func emitToFile(cmd *cobra.Command, planName string, result *stripehelper.ExportResult, path string) error {
	if err := writeExportFile(path, result.CSV); err != nil {
		return err
	}

	var summary strings.Builder
	summary.WriteString(fmt.Sprintf("Plan:          %s\n", planName))
	summary.WriteString(fmt.Sprintf("Subscriptions: %d\n", result.Count))
	summary.WriteString(fmt.Sprintf("Output:        %s", path))

	errOut := cmd.ErrOrStderr()
	fmt.Fprintln(errOut, renderPanel("Export Summary", summary.String()))
	printSuccess(errOut, "Export complete")
	return nil
}

// writeExportFile writes the CSV text to path, creating or overwriting it.
// The parent directory is created if missing and the file is synced before
// returning, so a reported success means the bytes are on disk.
func writeExportFile(path, text string) error {
	if err := ensureParentDir(path); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(text); err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("write output file: %w", err)
	}

	if err := f.Sync(); err != nil {
		return fmt.Errorf("sync output file: %w", err)
	}
	return nil
}

// ensureParentDir creates the parent directory of path if it doesn't exist.
func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	return nil
}

// exportDateLayouts are the accepted CLI date formats, tried in order.
var exportDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseDate parses a CLI date argument into a UTC timestamp. Sub-second
// fractions are kept here; the fetcher floors to whole seconds when building
// the creation-window filter.
func parseDate(s string) (time.Time, error) {
	for _, layout := range exportDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("expected YYYY-MM-DD or RFC 3339")
}
