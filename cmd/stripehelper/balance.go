package main

import (
	"context"

	"github.com/spf13/cobra"
)

var getBalanceCmd = &cobra.Command{
	Use:   "getBalance",
	Short: "Retrieve the account balance",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }()

		return runProxy(cmd, "Getting account balance", func(ctx context.Context) (interface{}, error) {
			return client.GetBalance(ctx)
		})
	},
}
