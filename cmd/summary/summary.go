// Package summary handles the summary command
package summary

import (
	"io"

	"fjacquet/ledger-csv/cmd/common"
	"fjacquet/ledger-csv/cmd/root"
	"fjacquet/ledger-csv/internal/history"
	"fjacquet/ledger-csv/internal/projection"
	"fjacquet/ledger-csv/internal/report"

	"github.com/spf13/cobra"
)

var (
	month      string
	categories []string
)

// Cmd represents the summary command
var Cmd = &cobra.Command{
	Use:   "summary",
	Short: "Summarize one month of spend",
	Long: `Print the KPIs of a month (total, item count, liability created, essential
share) with its category, spend type, establishment, weekday and subcategory
breakdowns. Defaults to the latest month in the ledger.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := common.Open(root.AppContainer, root.SharedFlags)
		if err != nil {
			return err
		}
		return Run(s, month, categories, cmd.OutOrStdout())
	},
}

func init() {
	Cmd.Flags().StringVarP(&month, "month", "m", "", "Month to summarize (YYYY-MM, default: latest)")
	Cmd.Flags().StringSliceVarP(&categories, "category", "c", nil, "Limit the subcategory breakdown to these categories")
}

// Run renders the summary of month.
func Run(s *common.Session, month string, categories []string, out io.Writer) error {
	m, err := s.Month(month)
	if err != nil {
		return err
	}

	agg := history.New(s.Ledger.Transactions()).WithWindow(s.Container.HistoryWindow())
	summary := agg.Summary(m, categories...).Scale(s.View)
	snapshot := projection.Snapshot(s.Ledger.ForMonth(m)).Scale(s.View)

	return s.Render(report.SummaryDocument(summary, snapshot), out)
}
