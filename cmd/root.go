package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:           "sa",
		Short:         "Sensor Access CLI (sa): buy access and stream sensor data",
		Long:          "sa (Sensor Access CLI) loads the deployed access contract, connects a wallet through a JSON-RPC node, purchases access, verifies it with the backend and streams live sensor records.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log.level (debug, info, warn, error)")

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		rootCmd.AddCommand(newVersionCmd())
		return rootCmd
	}

	rootCmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		if logLevel == "" {
			return nil
		}
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("parse --log-level: %w", err)
		}
		app.logger.SetLevel(level)
		return nil
	}

	rootCmd.PersistentPostRun = func(_ *cobra.Command, _ []string) {
		app.close()
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newAccessCmd(app),
		newDescriptorCmd(app),
		newWalletCmd(app),
		newVerifyCmd(app),
		newHistoryCmd(app),
		newStatusCmd(app),
		newCredentialsCmd(app),
	)

	return rootCmd
}
