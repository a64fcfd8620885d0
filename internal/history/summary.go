package history

import (
	"sort"

	"fjacquet/ledger-csv/internal/currencyutils"
	"fjacquet/ledger-csv/internal/dateutils"
	"fjacquet/ledger-csv/internal/models"

	"github.com/shopspring/decimal"
)

const topEstablishments = 5

// NamedTotal is a label with the amount spent under it.
type NamedTotal struct {
	Name   string          `json:"name" yaml:"name"`
	Amount decimal.Decimal `json:"amount" yaml:"amount"`
}

// MonthSummary holds the KPIs and breakdowns of one month.
type MonthSummary struct {
	Month            models.MonthKey `json:"month" yaml:"month"`
	Currency         string          `json:"currency,omitempty" yaml:"currency,omitempty"`
	Total            decimal.Decimal `json:"total" yaml:"total"`
	Count            int             `json:"count" yaml:"count"`
	LiabilityCreated decimal.Decimal `json:"liability_created" yaml:"liability_created"`
	// EssentialShare is the essential spend as a percentage of Total.
	EssentialShare    decimal.Decimal `json:"essential_share" yaml:"essential_share"`
	ByCategory        []NamedTotal    `json:"by_category" yaml:"by_category"`
	BySpendType       []NamedTotal    `json:"by_spend_type" yaml:"by_spend_type"`
	TopEstablishments []NamedTotal    `json:"top_establishments" yaml:"top_establishments"`
	// ByWeekday always has seven entries, Monday first.
	ByWeekday []NamedTotal `json:"by_weekday" yaml:"by_weekday"`
	// Subcategories breaks down the categories passed to Summary, or every
	// category when none were passed.
	Subcategories []NamedTotal `json:"subcategories" yaml:"subcategories"`
}

// Summary computes the MonthSummary of month. When categories are given, the
// subcategory breakdown is limited to them.
func (a *Aggregator) Summary(month models.MonthKey, categories ...string) MonthSummary {
	txs := a.inMonth(month)

	s := MonthSummary{
		Month:            month,
		Total:            decimal.Zero,
		Count:            len(txs),
		LiabilityCreated: decimal.Zero,
	}

	filter := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		filter[c] = struct{}{}
	}

	essential := decimal.Zero
	byCategory := make(map[string]decimal.Decimal)
	bySpend := make(map[string]decimal.Decimal)
	byPlace := make(map[string]decimal.Decimal)
	bySub := make(map[string]decimal.Decimal)
	var weekdays [7]decimal.Decimal

	for _, tx := range txs {
		s.Total = s.Total.Add(tx.Amount)
		s.LiabilityCreated = s.LiabilityCreated.Add(tx.FutureLiability)
		if tx.SpendType == models.SpendEssential {
			essential = essential.Add(tx.Amount)
		}
		byCategory[tx.Category] = byCategory[tx.Category].Add(tx.Amount)
		bySpend[string(tx.SpendType)] = bySpend[string(tx.SpendType)].Add(tx.Amount)
		byPlace[tx.Establishment] = byPlace[tx.Establishment].Add(tx.Amount)

		day := dateutils.MondayFirstIndex(tx.Date.Weekday())
		weekdays[day] = weekdays[day].Add(tx.Amount)

		if _, ok := filter[tx.Category]; ok || len(filter) == 0 {
			bySub[tx.Subcategory] = bySub[tx.Subcategory].Add(tx.Amount)
		}
	}

	s.EssentialShare = decimal.Zero
	if s.Total.IsPositive() {
		s.EssentialShare = currencyutils.Percent(essential, s.Total)
	}

	s.ByCategory = ranked(byCategory, 0)
	s.BySpendType = ranked(bySpend, 0)
	s.TopEstablishments = ranked(byPlace, topEstablishments)
	s.Subcategories = ranked(bySub, 0)

	s.ByWeekday = make([]NamedTotal, len(weekdays))
	for i, amount := range weekdays {
		s.ByWeekday[i] = NamedTotal{Name: dateutils.WeekdayNames[i], Amount: amount}
	}
	return s
}

// ranked sorts totals by amount, largest first, ties by name, keeping at most
// limit entries when limit > 0.
func ranked(totals map[string]decimal.Decimal, limit int) []NamedTotal {
	out := make([]NamedTotal, 0, len(totals))
	for name, amount := range totals {
		out = append(out, NamedTotal{Name: name, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Amount.Equal(out[j].Amount) {
			return out[i].Amount.GreaterThan(out[j].Amount)
		}
		return out[i].Name < out[j].Name
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Scale converts every amount to the view currency. EssentialShare is a ratio
// and is left as is.
func (s MonthSummary) Scale(view models.CurrencyView) MonthSummary {
	out := s
	out.Currency = view.Code
	out.Total = view.Convert(s.Total)
	out.LiabilityCreated = view.Convert(s.LiabilityCreated)
	out.ByCategory = scaleNamed(s.ByCategory, view)
	out.BySpendType = scaleNamed(s.BySpendType, view)
	out.TopEstablishments = scaleNamed(s.TopEstablishments, view)
	out.ByWeekday = scaleNamed(s.ByWeekday, view)
	out.Subcategories = scaleNamed(s.Subcategories, view)
	return out
}

func scaleNamed(in []NamedTotal, view models.CurrencyView) []NamedTotal {
	out := make([]NamedTotal, len(in))
	for i, nt := range in {
		out[i] = NamedTotal{Name: nt.Name, Amount: view.Convert(nt.Amount)}
	}
	return out
}
