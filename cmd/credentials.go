package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCredentialsCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "credentials",
		Short: "Manage the ledger RPC token",
	}

	cmd.AddCommand(
		newCredentialsSetCmd(app),
		newCredentialsRemoveCmd(app),
	)

	return cmd
}

func newCredentialsSetCmd(app *app) *cobra.Command {
	var key string
	var value string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Store the bearer token sent to the JSON-RPC node",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if key == "" {
				key = app.tokenKey()
			}
			if err := app.secretStore.Put(cmd.Context(), key, value); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "stored credential %s\n", key)
			return err
		},
	}

	cmd.Flags().StringVar(&key, "key", "", "credential key (defaults to ledger.token_ref)")
	cmd.Flags().StringVar(&value, "value", "", "credential value")
	_ = cmd.MarkFlagRequired("value")

	return cmd
}

func newCredentialsRemoveCmd(app *app) *cobra.Command {
	var key string

	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove a stored credential",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if key == "" {
				key = app.tokenKey()
			}
			if err := app.secretStore.Delete(cmd.Context(), key); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "removed credential %s\n", key)
			return err
		},
	}

	cmd.Flags().StringVar(&key, "key", "", "credential key (defaults to ledger.token_ref)")
	return cmd
}
