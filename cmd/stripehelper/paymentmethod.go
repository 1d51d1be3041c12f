package main

import (
	"context"

	"github.com/spf13/cobra"
)

var createPaymentMethodCmd = &cobra.Command{
	Use:   "createPaymentMethod",
	Short: "Create a payment method from the built-in test card",
	Long: `Create a card payment method on Stripe using the built-in 4242 test card.

Example:
  stripehelper createPaymentMethod`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }()

		return runProxy(cmd, "Creating payment method", func(ctx context.Context) (interface{}, error) {
			return client.CreatePaymentMethod(ctx)
		})
	},
}

var getPaymentMethodCmd = &cobra.Command{
	Use:   "getPaymentMethod <id>",
	Short: "Retrieve a payment method",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }()

		return runProxy(cmd, "Getting payment method "+args[0], func(ctx context.Context) (interface{}, error) {
			return client.GetPaymentMethod(ctx, args[0])
		})
	},
}

var detachPaymentMethodCmd = &cobra.Command{
	Use:   "detachPaymentMethod <id>",
	Short: "Detach a payment method from its customer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }()

		return runProxy(cmd, "Detaching payment method "+args[0], func(ctx context.Context) (interface{}, error) {
			return client.DetachPaymentMethod(ctx, args[0])
		})
	},
}

var attachPaymentMethodCmd = &cobra.Command{
	Use:   "attachPaymentMethod <id> <customer>",
	Short: "Attach a payment method to a customer",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }()

		return runProxy(cmd, "Attaching payment method "+args[0]+" to "+args[1], func(ctx context.Context) (interface{}, error) {
			return client.AttachPaymentMethod(ctx, args[0], args[1])
		})
	},
}
