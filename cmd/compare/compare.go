// Package compare handles the compare command
package compare

import (
	"io"

	"fjacquet/ledger-csv/cmd/common"
	"fjacquet/ledger-csv/cmd/root"
	"fjacquet/ledger-csv/internal/history"
	"fjacquet/ledger-csv/internal/report"

	"github.com/spf13/cobra"
)

// Cmd represents the compare command
var Cmd = &cobra.Command{
	Use:   "compare MONTH_A MONTH_B",
	Short: "Compare category spend between two months",
	Long: `Print the spend per category in two months and the difference B - A,
largest increase first.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := common.Open(root.AppContainer, root.SharedFlags)
		if err != nil {
			return err
		}
		return Run(s, args[0], args[1], cmd.OutOrStdout())
	},
}

// Run renders the comparison of a and b.
func Run(s *common.Session, a, b string, out io.Writer) error {
	monthA, err := s.Month(a)
	if err != nil {
		return err
	}
	monthB, err := s.Month(b)
	if err != nil {
		return err
	}

	deltas := history.New(s.Ledger.Transactions()).Compare(monthA, monthB).Scale(s.View)
	return s.Render(report.CompareDocument(monthA, monthB, deltas, s.View.Code), out)
}
