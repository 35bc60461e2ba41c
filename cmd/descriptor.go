package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
)

func newDescriptorCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "descriptor",
		Short: "Show the deployed access contract",
		RunE: func(cmd *cobra.Command, _ []string) error {
			desc, err := app.configLoader().Load(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(struct {
					Address string          `json:"address"`
					ABI     json.RawMessage `json:"abi"`
				}{Address: string(desc.Address), ABI: desc.ABI})
			}

			names := []string{}
			for _, name := range gjson.GetBytes(desc.ABI, `#(type=="function")#.name`).Array() {
				names = append(names, name.String())
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "address: %s\n", desc.Address)
			_, _ = fmt.Fprintf(out, "source: %s\n", app.cfg.DescriptorSource)
			_, err = fmt.Fprintf(out, "functions: %s\n", strings.Join(names, ", "))
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the descriptor as JSON")
	return cmd
}
