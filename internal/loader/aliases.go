package loader

import (
	"fjacquet/ledger-csv/internal/models"
	"fjacquet/ledger-csv/internal/textutils"
)

// headerAliases maps HeaderKey-normalized header names to canonical columns.
var headerAliases = map[string]string{
	"data": models.ColumnDate,
	"date": models.ColumnDate,

	"estabelecimento": models.ColumnEstablishment,
	"establishment":   models.ColumnEstablishment,
	"descricao":       models.ColumnEstablishment,
	"description":     models.ColumnEstablishment,

	"categoria": models.ColumnCategory,
	"category":  models.ColumnCategory,

	"subcategoria": models.ColumnSubcategory,
	"subcategory":  models.ColumnSubcategory,

	"valorr": models.ColumnAmount,
	"valor":  models.ColumnAmount,
	"amount": models.ColumnAmount,

	"mesano":   models.ColumnMonthKey,
	"monthkey": models.ColumnMonthKey,

	"parcelado":     models.ColumnInstallmentFlag,
	"eparcelado":    models.ColumnInstallmentFlag,
	"isinstallment": models.ColumnInstallmentFlag,

	"parcelaatual":       models.ColumnCurrentInstall,
	"currentinstallment": models.ColumnCurrentInstall,

	"totalparcelas":     models.ColumnTotalInstall,
	"totalinstallments": models.ColumnTotalInstall,

	"parcela":     models.ColumnInstallmentCombo,
	"parcelas":    models.ColumnInstallmentCombo,
	"installment": models.ColumnInstallmentCombo,
}

// CanonicalColumn resolves a raw header cell to its canonical column name.
func CanonicalColumn(header string) (string, bool) {
	column, ok := headerAliases[textutils.HeaderKey(header)]
	return column, ok
}
