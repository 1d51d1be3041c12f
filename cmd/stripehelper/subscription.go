package main

import (
	"context"

	"github.com/spf13/cobra"
)

var cancelSubscriptionCmd = &cobra.Command{
	Use:   "cancelSubscription <id>",
	Short: "Cancel a subscription immediately",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }()

		return runProxy(cmd, "Canceling subscription "+args[0], func(ctx context.Context) (interface{}, error) {
			return client.CancelSubscription(ctx, args[0])
		})
	},
}

var getSubscriptionCmd = &cobra.Command{
	Use:   "getSubscription <id>",
	Short: "Retrieve a subscription",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }()

		return runProxy(cmd, "Getting subscription "+args[0], func(ctx context.Context) (interface{}, error) {
			return client.GetSubscription(ctx, args[0])
		})
	},
}

var oneTimePaymentCmd = &cobra.Command{
	Use:   "oneTimePayment <planId> <customer>",
	Short: "Bill a customer once for a plan's price",
	Long: `Create an invoice item charging the customer the plan's price a single time.

Example:
  stripehelper oneTimePayment price_1Hxyz cus_JAbc`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }()

		return runProxy(cmd, "Paying plan "+args[0]+" one time", func(ctx context.Context) (interface{}, error) {
			return client.OneTimePayment(ctx, args[0], args[1])
		})
	},
}
