// Package history handles the history command
package history

import (
	"io"

	"fjacquet/ledger-csv/cmd/common"
	"fjacquet/ledger-csv/cmd/root"
	"fjacquet/ledger-csv/internal/history"
	"fjacquet/ledger-csv/internal/report"
	"fjacquet/ledger-csv/internal/validation"

	"github.com/spf13/cobra"
)

var (
	month  string
	window int
)

// Cmd represents the history command
var Cmd = &cobra.Command{
	Use:   "history",
	Short: "Compare a month with the months before it",
	Long: `Show a month's spend against the previous month and the trailing mean, the
last six months of totals and the average spend per category over the
preceding window.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := common.Open(root.AppContainer, root.SharedFlags)
		if err != nil {
			return err
		}
		return Run(s, month, window, cmd.OutOrStdout())
	},
}

func init() {
	Cmd.Flags().StringVarP(&month, "month", "m", "", "Reference month (YYYY-MM, default: latest)")
	Cmd.Flags().IntVarP(&window, "window", "w", 0, "Months averaged per category (default: history.window_months)")
}

// Run renders the history of month.
func Run(s *common.Session, month string, window int, out io.Writer) error {
	if err := validation.ValidateQuery(validation.Query{Window: window}); err != nil {
		return err
	}
	m, err := s.Month(month)
	if err != nil {
		return err
	}

	agg := history.New(s.Ledger.Transactions()).WithWindow(s.Container.HistoryWindow())
	doc := report.HistoryDocument(
		agg.Context(m).Scale(s.View),
		agg.Trailing(m).Scale(s.View),
		agg.CategoryAverages(m, window).Scale(s.View),
	)
	return s.Render(doc, out)
}
