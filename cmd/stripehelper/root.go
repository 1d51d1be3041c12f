package main

import (
	"fmt"

	"github.com/billdeck/stripehelper"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	cfgAPIKey  string
	cfgDSN     string
	cfgDebug   bool
	outputJSON bool
)

var rootCmd = &cobra.Command{
	Use:   "stripehelper",
	Short: "Stripe Helper - operator CLI for the Stripe billing API",
	Long: `Stripe Helper is an operator CLI for direct calls against the Stripe
billing API: payment methods, subscriptions, customers, and balance.

It also exports subscriptions for a plan to CSV, enriched with order and
user metadata from a relational store (getSubscriptionsByPlanName).`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), renderBannerWithTagline())
		fmt.Fprintln(cmd.OutOrStdout())
		_ = cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgAPIKey, "api-key", "", "Stripe secret key (default: STRIPE_SECRET)")
	rootCmd.PersistentFlags().StringVar(&cfgDSN, "db", "", "Enrichment store DSN (default: STRIPE_HELPER_DB)")
	rootCmd.PersistentFlags().BoolVar(&cfgDebug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "Machine-readable JSON output")

	rootCmd.AddCommand(createPaymentMethodCmd)
	rootCmd.AddCommand(getPaymentMethodCmd)
	rootCmd.AddCommand(detachPaymentMethodCmd)
	rootCmd.AddCommand(attachPaymentMethodCmd)
	rootCmd.AddCommand(cancelSubscriptionCmd)
	rootCmd.AddCommand(getSubscriptionCmd)
	rootCmd.AddCommand(oneTimePaymentCmd)
	rootCmd.AddCommand(createCustomerCmd)
	rootCmd.AddCommand(delCustomerCmd)
	rootCmd.AddCommand(getCustomerCmd)
	rootCmd.AddCommand(getBalanceCmd)
	rootCmd.AddCommand(exportCmd)
}

// loadConfig builds client configuration from .env, environment, and flags,
// with flags taking precedence.
func loadConfig() stripehelper.Config {
	// Best-effort: a missing .env file is not an error.
	_ = godotenv.Load()

	cfg := stripehelper.ConfigFromEnv()

	if cfgAPIKey != "" {
		cfg.APIKey = cfgAPIKey
	}
	if cfgDSN != "" {
		cfg.DatabaseDSN = cfgDSN
	}
	if cfgDebug {
		cfg.Debug = true
	}

	return cfg
}

// newClient creates a validated client; command RunE funcs map errors to
// exit code 1 via main.
func newClient() (*stripehelper.Client, error) {
	client, err := stripehelper.New(loadConfig())
	if err != nil {
		return nil, fmt.Errorf("initialize client: %w", err)
	}
	return client, nil
}
