package main

import (
	"context"

	"github.com/spf13/cobra"
)

var createCustomerCmd = &cobra.Command{
	Use:   "createCustomer <email>",
	Short: "Create a customer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }()

		return runProxy(cmd, "Creating customer "+args[0], func(ctx context.Context) (interface{}, error) {
			return client.CreateCustomer(ctx, args[0])
		})
	},
}

var delCustomerCmd = &cobra.Command{
	Use:   "delCustomer <id>",
	Short: "Delete a customer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }()

		return runProxy(cmd, "Deleting customer "+args[0], func(ctx context.Context) (interface{}, error) {
			return client.DeleteCustomer(ctx, args[0])
		})
	},
}

var getCustomerCmd = &cobra.Command{
	Use:   "getCustomer <id>",
	Short: "Retrieve a customer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }()

		return runProxy(cmd, "Getting customer "+args[0], func(ctx context.Context) (interface{}, error) {
			return client.GetCustomer(ctx, args[0])
		})
	},
}
