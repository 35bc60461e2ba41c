package cmd

import (
	"encoding/json"
	"fmt"

	sessionrender "github.com/bnema/sensor-access-cli/internal/adapters/render/session"
	"github.com/bnema/sensor-access-cli/internal/application"
	"github.com/bnema/sensor-access-cli/internal/domain"
	"github.com/spf13/cobra"
)

type statusOutput struct {
	Session      application.SessionView `json:"session"`
	LastPurchase *domain.PurchaseRecord  `json:"last_purchase,omitempty"`
}

func newStatusCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check the contract and wallet and show the last purchase",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			orchestrator, err := app.newOrchestrator(ctx, nil)
			if err != nil {
				return err
			}
			defer func() { _ = orchestrator.Shutdown() }()

			// failures land in the view's LastError
			if err := orchestrator.Start(ctx); err == nil {
				_ = orchestrator.ConnectWallet(ctx)
			}

			output := statusOutput{Session: orchestrator.View()}
			last, err := lastPurchase(cmd, app, output.Session.Account)
			if err != nil {
				return err
			}
			output.LastPurchase = last

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(output)
			}

			return writeStatus(cmd, output)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print status as JSON")
	return cmd
}

// lastPurchase returns the newest recorded purchase, preferring the
// connected account's.
func lastPurchase(cmd *cobra.Command, app *app, account domain.Address) (*domain.PurchaseRecord, error) {
	records, err := app.history.List(cmd.Context())
	if err != nil {
		return nil, fmt.Errorf("load purchase history: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	for _, record := range records {
		if account != "" && record.Account == account {
			return &record, nil
		}
	}

	return &records[0], nil
}

func writeStatus(cmd *cobra.Command, output statusOutput) error {
	rendered, err := sessionrender.Render(output.Session, sessionrender.RenderOptions{})
	if err != nil {
		return fmt.Errorf("render status: %w", err)
	}
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), rendered); err != nil {
		return err
	}

	if output.LastPurchase == nil {
		return nil
	}

	history, err := sessionrender.RenderHistory([]domain.PurchaseRecord{*output.LastPurchase}, sessionrender.RenderOptions{})
	if err != nil {
		return fmt.Errorf("render last purchase: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), history)
	return err
}
