package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/sensor-access-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newVerifyCmd(app *app) *cobra.Command {
	var txHash string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify access for a past purchase transaction",
		RunE: func(cmd *cobra.Command, _ []string) error {
			hash := domain.TxHash(strings.TrimSpace(txHash))
			if hash == "" {
				return errors.New("--tx must not be empty")
			}

			var grant domain.AccessGrant
			err := runWithSpinner(cmd.Context(), cmd.ErrOrStderr(), "Verifying access...", func(ctx context.Context) error {
				var verifyErr error
				grant, verifyErr = app.verifier().Verify(ctx, hash)
				return verifyErr
			})
			if err != nil {
				return err
			}

			if err := app.history.RecordVerdict(cmd.Context(), grant); err != nil {
				return fmt.Errorf("record verification: %w", err)
			}

			if !grant.Granted {
				if grant.Reason == "" {
					return domain.ErrAccessDenied
				}
				return fmt.Errorf("%w: %s", domain.ErrAccessDenied, grant.Reason)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "access granted for %s\n", grant.TxHash)
			return err
		},
	}

	cmd.Flags().StringVar(&txHash, "tx", "", "purchase transaction hash")
	_ = cmd.MarkFlagRequired("tx")

	return cmd
}
