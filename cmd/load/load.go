// Package load handles the load command
package load

import (
	"io"

	"fjacquet/ledger-csv/cmd/common"
	"fjacquet/ledger-csv/cmd/root"
	"fjacquet/ledger-csv/internal/ledger"
	"fjacquet/ledger-csv/internal/logging"
	"fjacquet/ledger-csv/internal/report"

	"github.com/spf13/cobra"
)

var month string

// Cmd represents the load command
var Cmd = &cobra.Command{
	Use:   "load",
	Short: "Load and enrich the statement exports",
	Long: `Load every CSV export in the input directory, repair column-shifted files,
enrich the rows and print the build statistics with the resulting transactions.
Use --format csv or json to export the enriched ledger.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := common.Open(root.AppContainer, root.SharedFlags)
		if err != nil {
			return err
		}
		return Run(s, month, cmd.OutOrStdout())
	},
}

func init() {
	Cmd.Flags().StringVarP(&month, "month", "m", "", "Only include this month (YYYY-MM)")
}

// Run renders the ledger, optionally restricted to one month.
func Run(s *common.Session, month string, out io.Writer) error {
	txs := s.Ledger.Transactions()
	if month != "" {
		m, err := s.Month(month)
		if err != nil {
			return err
		}
		txs = s.Ledger.ForMonth(m)
	}

	stats := s.Ledger.Stats()
	s.Container.GetLogger().Info("Ledger loaded",
		logging.F("files", stats.Files),
		logging.F(logging.FieldCount, len(txs)))

	return s.Render(report.LedgerDocument(stats, ledger.ViewOf(txs, s.View)), out)
}
