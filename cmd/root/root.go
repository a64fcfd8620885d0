// Package root contains the root command for the application
package root

import (
	"fmt"

	"fjacquet/ledger-csv/internal/config"
	"fjacquet/ledger-csv/internal/container"
	"fjacquet/ledger-csv/internal/logging"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input        string
	Output       string
	Format       string
	ViewCurrency string
	Config       string
}

var (
	// Log is the shared logger instance for commands
	Log = logging.OrDefault(nil)

	// AppContainer is built before any subcommand runs.
	AppContainer *container.Container

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "ledger-csv",
		Short: "A CLI tool to analyze credit card statement exports.",
		Long: `ledger-csv loads a directory of credit card statement CSV exports, repairs
column-shifted files, enriches every row (dates, amounts, installments, spend
type) and reports monthly spend, future installment commitments and history.`,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to ledger-csv!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.LoadEnv()

			cfg, err := config.InitializeConfigFrom(SharedFlags.Config)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if SharedFlags.Input != "" {
				cfg.Data.Directory = SharedFlags.Input
			}

			c, err := container.NewContainer(cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}
			AppContainer = c
			Log = c.GetLogger()
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if AppContainer != nil {
				if err := AppContainer.Close(); err != nil {
					Log.WithError(err).Warn("Failed to close application container")
				}
			}
		},
	}

	// Common flags accessible to all commands
	SharedFlags = CommonFlags{}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input directory of CSV exports (default: data.directory)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file (default: stdout)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.Format, "format", "text", "Output format: text, json, yaml or csv")
	Cmd.PersistentFlags().StringVar(&SharedFlags.ViewCurrency, "view-currency", "", "Display currency (default: the base currency)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.Config, "config", "", "Config file (default: config.yaml in $HOME/.ledger-csv, .ledger-csv or .)")
}
