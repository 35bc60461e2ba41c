package cmd

import (
	"encoding/json"
	"fmt"

	sessionrender "github.com/bnema/sensor-access-cli/internal/adapters/render/session"
	"github.com/spf13/cobra"
)

func newHistoryCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded purchases",
		RunE: func(cmd *cobra.Command, _ []string) error {
			records, err := app.history.List(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(records)
			}

			rendered, err := sessionrender.RenderHistory(records, sessionrender.RenderOptions{})
			if err != nil {
				return fmt.Errorf("render history: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print purchases as JSON")
	return cmd
}
