package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// printPayload writes an API response payload as indented JSON to stdout.
// Progress and status lines go to stderr, so piped output stays clean.
func printPayload(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError prints an error to stderr, ensuring the API key never leaks.
func outputError(w io.Writer, err error) {
	msg := scrubSensitiveData(err.Error())
	printError(w, "%s", msg)
}

// scrubSensitiveData removes the configured API key from error messages.
// The SDK already avoids including keys, but this is defense in depth.
func scrubSensitiveData(msg string) string {
	if cfgAPIKey != "" && strings.Contains(msg, cfgAPIKey) {
		msg = strings.ReplaceAll(msg, cfgAPIKey, "[REDACTED]")
	}
	return msg
}

// runProxy drives a one-to-one proxy command: announce the call, perform it,
// print the response payload, confirm. Any error maps to exit code 1 in main.
func runProxy(cmd *cobra.Command, action string, call func(ctx context.Context) (interface{}, error)) error {
	errOut := cmd.ErrOrStderr()

	var payload interface{}
	err := runWithSpinner(errOut, action, func() error {
		var callErr error
		payload, callErr = call(cmd.Context())
		return callErr
	})
	if err != nil {
		return err
	}

	if err := printPayload(cmd.OutOrStdout(), payload); err != nil {
		return fmt.Errorf("encode response: %w", err)
	}

	printSuccess(errOut, "Everything ran smooth. Bye!")
	return nil
}
