package cmd

import (
	"fmt"

	"github.com/bnema/sensor-access-cli/internal/adapters/ledger/evm"
	"github.com/bnema/sensor-access-cli/internal/application"
	"github.com/spf13/cobra"
)

func newWalletCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "wallet",
		Short: "Connect the wallet and print the selected account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			desc, err := app.configLoader().Load(ctx)
			if err != nil {
				return err
			}

			client, err := app.rpcClient(ctx)
			if err != nil {
				return err
			}

			identity, err := application.NewWalletSession(evm.NewWalletProvider(client), app.log()).Connect(ctx, desc)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "account: %s\n", identity.Account)
			return err
		},
	}
}
