// Package project handles the project command
package project

import (
	"io"

	"fjacquet/ledger-csv/cmd/common"
	"fjacquet/ledger-csv/cmd/root"
	"fjacquet/ledger-csv/internal/projection"
	"fjacquet/ledger-csv/internal/report"

	"github.com/spf13/cobra"
)

var month string

// Cmd represents the project command
var Cmd = &cobra.Command{
	Use:   "project",
	Short: "Project future installment commitments",
	Long: `List the installment purchases of a month that still have installments to
bill, and the amount due in each following month.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := common.Open(root.AppContainer, root.SharedFlags)
		if err != nil {
			return err
		}
		return Run(s, month, cmd.OutOrStdout())
	},
}

func init() {
	Cmd.Flags().StringVarP(&month, "month", "m", "", "Anchor month (YYYY-MM, default: latest)")
}

// Run renders the projection anchored at month.
func Run(s *common.Session, month string, out io.Writer) error {
	m, err := s.Month(month)
	if err != nil {
		return err
	}

	txs := s.Ledger.ForMonth(m)
	p := projection.Project(txs, m).Scale(s.View)
	if p.Empty() {
		s.Container.GetLogger().Info("No active installment purchases")
	}
	return s.Render(report.ProjectionDocument(p, projection.Snapshot(txs).Scale(s.View)), out)
}
