package report

import (
	"fmt"
	"sort"
	"strconv"

	"fjacquet/ledger-csv/internal/currencyutils"
	"fjacquet/ledger-csv/internal/dateutils"
	"fjacquet/ledger-csv/internal/history"
	"fjacquet/ledger-csv/internal/ledger"
	"fjacquet/ledger-csv/internal/models"
	"fjacquet/ledger-csv/internal/projection"

	"github.com/shopspring/decimal"
)

type transactionRow struct {
	ID                  string `csv:"id"`
	Date                string `csv:"date"`
	MonthKey            string `csv:"month_key"`
	Establishment       string `csv:"establishment"`
	Category            string `csv:"category"`
	Subcategory         string `csv:"subcategory"`
	Amount              string `csv:"amount"`
	Currency            string `csv:"currency"`
	AmountView          string `csv:"amount_view"`
	CurrentInstallment  int    `csv:"current_installment"`
	TotalInstallments   int    `csv:"total_installments"`
	IsInstallment       bool   `csv:"is_installment"`
	FutureLiability     string `csv:"future_liability"`
	FutureLiabilityView string `csv:"future_liability_view"`
	SpendType           string `csv:"spend_type"`
	SourceFile          string `csv:"source_file"`
}

type projectionRow struct {
	Establishment     string `csv:"establishment"`
	Category          string `csv:"category"`
	InstallmentAmount string `csv:"installment_amount"`
	TotalAmount       string `csv:"total_amount"`
	Current           int    `csv:"current"`
	Total             int    `csv:"total"`
	RemainingMonths   int    `csv:"remaining_months"`
	RemainingAmount   string `csv:"remaining_amount"`
	FinalMonth        string `csv:"final_month"`
	Currency          string `csv:"currency"`
}

type trendRow struct {
	Month    string `csv:"month"`
	Amount   string `csv:"amount"`
	Currency string `csv:"currency"`
}

type deltaRow struct {
	Category   string `csv:"category"`
	MonthA     string `csv:"month_a"`
	AmountA    string `csv:"amount_a"`
	MonthB     string `csv:"month_b"`
	AmountB    string `csv:"amount_b"`
	Difference string `csv:"difference"`
	Currency   string `csv:"currency"`
}

type breakdownRow struct {
	Month    string `csv:"month"`
	Section  string `csv:"section"`
	Name     string `csv:"name"`
	Amount   string `csv:"amount"`
	Currency string `csv:"currency"`
}

// LedgerPayload is the structured form of a loaded ledger.
type LedgerPayload struct {
	Stats        ledger.Stats        `json:"stats" yaml:"stats"`
	Transactions []models.ViewRecord `json:"transactions" yaml:"transactions"`
}

// ProjectionPayload pairs the installment schedule with the debt snapshot.
type ProjectionPayload struct {
	Projection projection.Projection   `json:"projection" yaml:"projection"`
	Snapshot   projection.DebtSnapshot `json:"snapshot" yaml:"snapshot"`
}

// HistoryPayload is a month placed against its history.
type HistoryPayload struct {
	Context          history.ContextMetrics `json:"context" yaml:"context"`
	Trailing         history.Trend          `json:"trailing" yaml:"trailing"`
	CategoryAverages history.Averages       `json:"category_averages" yaml:"category_averages"`
}

// ComparePayload holds a month-to-month comparison.
type ComparePayload struct {
	MonthA models.MonthKey `json:"month_a" yaml:"month_a"`
	MonthB models.MonthKey `json:"month_b" yaml:"month_b"`
	Deltas history.Deltas  `json:"deltas" yaml:"deltas"`
}

// SummaryPayload is a monthly summary with its debt snapshot.
type SummaryPayload struct {
	Summary  history.MonthSummary    `json:"summary" yaml:"summary"`
	Snapshot projection.DebtSnapshot `json:"snapshot" yaml:"snapshot"`
}

func money(d decimal.Decimal, currency string) string {
	return currencyutils.FormatGrouped(d, currency)
}

func fixed(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// LedgerDocument describes a load: build statistics, one line per month and
// every transaction in the view currency.
func LedgerDocument(stats ledger.Stats, records []models.ViewRecord) Document {
	currency := ""
	if len(records) > 0 {
		currency = records[0].Currency
	}

	rows := make([]transactionRow, 0, len(records))
	counts := make(map[models.MonthKey]int)
	totals := make(map[models.MonthKey]decimal.Decimal)
	for _, r := range records {
		rows = append(rows, transactionRow{
			ID:                  r.ID,
			Date:                dateutils.FormatDate(r.Date, dateutils.DateLayoutISO),
			MonthKey:            r.MonthKey.String(),
			Establishment:       r.Establishment,
			Category:            r.Category,
			Subcategory:         r.Subcategory,
			Amount:              fixed(r.Amount),
			Currency:            r.Currency,
			AmountView:          fixed(r.AmountView),
			CurrentInstallment:  r.CurrentInstallment,
			TotalInstallments:   r.TotalInstallments,
			IsInstallment:       r.IsInstallment,
			FutureLiability:     fixed(r.FutureLiability),
			FutureLiabilityView: fixed(r.FutureLiabilityView),
			SpendType:           string(r.SpendType),
			SourceFile:          r.SourceFile,
		})
		counts[r.MonthKey]++
		totals[r.MonthKey] = totals[r.MonthKey].Add(r.AmountView)
	}

	months := make([]models.MonthKey, 0, len(counts))
	for m := range counts {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i] > months[j] })

	monthRows := make([][]string, 0, len(months))
	for _, m := range months {
		monthRows = append(monthRows, []string{m.String(), strconv.Itoa(counts[m]), money(totals[m], currency)})
	}

	facts := []Fact{
		{"Files", strconv.Itoa(stats.Files)},
		{"Skipped files", strconv.Itoa(stats.SkippedFiles)},
		{"Repaired (shifted) files", strconv.Itoa(stats.ShiftedFiles)},
		{"Ambiguous files", strconv.Itoa(stats.AmbiguousFiles)},
		{"Rows read", strconv.Itoa(stats.Input)},
		{"Transactions", strconv.Itoa(stats.Enriched)},
		{"Dropped rows", strconv.Itoa(stats.DroppedRows)},
		{"Defaulted amounts", strconv.Itoa(stats.DefaultedAmounts)},
		{"Clamped installments", strconv.Itoa(stats.ClampedRows)},
	}

	return Document{
		Title:   "Ledger",
		Payload: LedgerPayload{Stats: stats, Transactions: records},
		Records: rows,
		Facts:   facts,
		Tables: []Table{{
			Title:  "Months",
			Header: []string{"MONTH", "TRANSACTIONS", "TOTAL"},
			Rows:   monthRows,
		}},
	}
}

// ProjectionDocument describes future installment commitments.
func ProjectionDocument(p projection.Projection, snapshot projection.DebtSnapshot) Document {
	currency := p.Currency

	rows := make([]projectionRow, 0, len(p.Items))
	itemRows := make([][]string, 0, len(p.Items))
	for _, item := range p.Items {
		rows = append(rows, projectionRow{
			Establishment:     item.Establishment,
			Category:          item.Category,
			InstallmentAmount: fixed(item.InstallmentAmount),
			TotalAmount:       fixed(item.TotalAmount),
			Current:           item.Current,
			Total:             item.Total,
			RemainingMonths:   item.RemainingMonths,
			RemainingAmount:   fixed(item.RemainingAmount),
			FinalMonth:        item.FinalMonth.String(),
			Currency:          currency,
		})
		itemRows = append(itemRows, []string{
			item.Establishment,
			item.Category,
			money(item.InstallmentAmount, currency),
			fmt.Sprintf("%d/%d", item.Current, item.Total),
			money(item.RemainingAmount, currency),
			item.FinalMonth.String(),
		})
	}

	bucketRows := make([][]string, 0, len(p.Buckets))
	for _, b := range p.Buckets {
		bucketRows = append(bucketRows, []string{b.Month.String(), strconv.Itoa(b.MonthsAhead), money(b.Amount, currency)})
	}

	return Document{
		Title:   fmt.Sprintf("Installment projection from %s", p.Anchor),
		Payload: ProjectionPayload{Projection: p, Snapshot: snapshot},
		Records: rows,
		Facts: []Fact{
			{"Active purchases", strconv.Itoa(len(p.Items))},
			{"Total committed", money(p.TotalCommitted(), currency)},
			{"Future liability", money(snapshot.FutureLiability, snapshot.Currency)},
			{"Paid in installments", money(snapshot.PaidInInstallments, snapshot.Currency)},
			{"New purchases", money(snapshot.NewPurchases, snapshot.Currency)},
		},
		Tables: []Table{
			{
				Title:  "Active installments",
				Header: []string{"ESTABLISHMENT", "CATEGORY", "INSTALLMENT", "PROGRESS", "REMAINING", "FINAL MONTH"},
				Rows:   itemRows,
			},
			{
				Title:  "Monthly commitments",
				Header: []string{"MONTH", "AHEAD", "AMOUNT"},
				Rows:   bucketRows,
			},
		},
	}
}

// HistoryDocument describes a month against the months before it.
func HistoryDocument(ctx history.ContextMetrics, trend history.Trend, averages history.Averages) Document {
	currency := ctx.Currency

	rows := make([]trendRow, 0, len(trend))
	trendRows := make([][]string, 0, len(trend))
	for _, mt := range trend {
		rows = append(rows, trendRow{Month: mt.Month.String(), Amount: fixed(mt.Amount), Currency: currency})
		trendRows = append(trendRows, []string{mt.Month.String(), money(mt.Amount, currency)})
	}

	avgRows := make([][]string, 0, len(averages))
	for _, avg := range averages {
		avgRows = append(avgRows, []string{avg.Category, money(avg.Average, currency), strconv.Itoa(avg.Months)})
	}

	return Document{
		Title: fmt.Sprintf("History for %s", ctx.Month),
		Payload: HistoryPayload{
			Context:          ctx,
			Trailing:         trend,
			CategoryAverages: averages,
		},
		Records: rows,
		Facts: []Fact{
			{"Spend", money(ctx.Current, currency)},
			{"Previous month", money(ctx.Previous, currency)},
			{"Change vs previous", money(ctx.DeltaPrevious, currency)},
			{"Trailing mean", money(ctx.TrailingMean, currency)},
			{"Change vs mean", money(ctx.DeltaMean, currency)},
		},
		Tables: []Table{
			{Title: "Trailing months", Header: []string{"MONTH", "TOTAL"}, Rows: trendRows},
			{Title: "Category averages", Header: []string{"CATEGORY", "AVERAGE", "MONTHS"}, Rows: avgRows},
		},
	}
}

// CompareDocument describes per-category changes between two months.
func CompareDocument(a, b models.MonthKey, deltas history.Deltas, currency string) Document {
	rows := make([]deltaRow, 0, len(deltas))
	tableRows := make([][]string, 0, len(deltas))
	totalA, totalB := decimal.Zero, decimal.Zero
	for _, d := range deltas {
		totalA = totalA.Add(d.A)
		totalB = totalB.Add(d.B)
		rows = append(rows, deltaRow{
			Category:   d.Category,
			MonthA:     a.String(),
			AmountA:    fixed(d.A),
			MonthB:     b.String(),
			AmountB:    fixed(d.B),
			Difference: fixed(d.Difference),
			Currency:   currency,
		})
		tableRows = append(tableRows, []string{
			d.Category, money(d.A, currency), money(d.B, currency), money(d.Difference, currency),
		})
	}

	return Document{
		Title:   fmt.Sprintf("Comparison %s vs %s", a, b),
		Payload: ComparePayload{MonthA: a, MonthB: b, Deltas: deltas},
		Records: rows,
		Facts: []Fact{
			{a.String(), money(totalA, currency)},
			{b.String(), money(totalB, currency)},
			{"Difference", money(totalB.Sub(totalA), currency)},
		},
		Tables: []Table{{
			Header: []string{"CATEGORY", a.String(), b.String(), "DIFFERENCE"},
			Rows:   tableRows,
		}},
	}
}

// SummaryDocument describes one month's KPIs and breakdowns.
func SummaryDocument(s history.MonthSummary, snapshot projection.DebtSnapshot) Document {
	currency := s.Currency
	month := s.Month.String()

	var rows []breakdownRow
	section := func(title string, totals []history.NamedTotal) Table {
		t := Table{Title: title, Header: []string{"NAME", "AMOUNT"}}
		for _, nt := range totals {
			rows = append(rows, breakdownRow{Month: month, Section: title, Name: nt.Name, Amount: fixed(nt.Amount), Currency: currency})
			t.Rows = append(t.Rows, []string{nt.Name, money(nt.Amount, currency)})
		}
		return t
	}

	spendTypes := make([]history.NamedTotal, len(s.BySpendType))
	for i, nt := range s.BySpendType {
		spendTypes[i] = history.NamedTotal{Name: models.SpendType(nt.Name).Label(), Amount: nt.Amount}
	}

	tables := []Table{
		section("Categories", s.ByCategory),
		section("Spend type", spendTypes),
		section("Top establishments", s.TopEstablishments),
		section("Weekdays", s.ByWeekday),
		section("Subcategories", s.Subcategories),
	}

	return Document{
		Title:   fmt.Sprintf("Summary for %s", month),
		Payload: SummaryPayload{Summary: s, Snapshot: snapshot},
		Records: rows,
		Facts: []Fact{
			{"Total", money(s.Total, currency)},
			{"Transactions", strconv.Itoa(s.Count)},
			{"Liability created", money(s.LiabilityCreated, currency)},
			{"Essential share", s.EssentialShare.StringFixed(1) + "%"},
			{"Paid in installments", money(snapshot.PaidInInstallments, snapshot.Currency)},
			{"New purchases", money(snapshot.NewPurchases, snapshot.Currency)},
		},
		Tables: tables,
	}
}
