package models

// Canonical column names. Loader header aliases resolve to these.
const (
	ColumnDate             = "date"
	ColumnEstablishment    = "establishment"
	ColumnCategory         = "category"
	ColumnSubcategory      = "subcategory"
	ColumnAmount           = "amount"
	ColumnMonthKey         = "month_key"
	ColumnInstallmentFlag  = "installment_flag"
	ColumnCurrentInstall   = "current_installment"
	ColumnTotalInstall     = "total_installments"
	ColumnInstallmentCombo = "installment"
)

// ShiftTargets lists the columns rewritten by the column-shift repair, in order.
var ShiftTargets = []string{
	ColumnAmount,
	ColumnInstallmentFlag,
	ColumnCurrentInstall,
	ColumnTotalInstall,
}

// DefaultMaxInstallments is the ceiling above which an installment total is
// considered corrupt.
const DefaultMaxInstallments = 60

// Currency codes
const (
	CurrencyBRL = "BRL"
	CurrencyUSD = "USD"
	CurrencyEUR = "EUR"
)

// File permissions
const (
	PermissionConfigFile = 0600
	PermissionDirectory  = 0750
	PermissionReportFile = 0644
)
