// Package main provides the entry point for the ledger-csv CLI application.
package main

import (
	"fmt"
	"os"

	"fjacquet/ledger-csv/cmd/compare"
	"fjacquet/ledger-csv/cmd/history"
	"fjacquet/ledger-csv/cmd/load"
	"fjacquet/ledger-csv/cmd/project"
	"fjacquet/ledger-csv/cmd/root"
	"fjacquet/ledger-csv/cmd/serve"
	"fjacquet/ledger-csv/cmd/summary"
	"fjacquet/ledger-csv/internal/config"
)

func init() {
	// Environment first so LEDGER_* variables from .env reach viper
	config.LoadEnv()

	root.Init()

	root.Cmd.AddCommand(load.Cmd)
	root.Cmd.AddCommand(summary.Cmd)
	root.Cmd.AddCommand(project.Cmd)
	root.Cmd.AddCommand(history.Cmd)
	root.Cmd.AddCommand(compare.Cmd)
	root.Cmd.AddCommand(serve.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
