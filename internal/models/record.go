package models

// Optional is a raw cell value that may be absent from the source row.
type Optional struct {
	Value   string
	Present bool
}

// Some returns a present Optional holding v.
func Some(v string) Optional {
	return Optional{Value: v, Present: true}
}

// None is the absent value.
var None = Optional{}

// Or returns the value when present and fallback otherwise.
func (o Optional) Or(fallback string) string {
	if !o.Present {
		return fallback
	}
	return o.Value
}

// RawRecord is one input row after header mapping and shift repair, before any
// value has been interpreted.
type RawRecord struct {
	SourceFile string
	Row        int

	Date          Optional
	Establishment Optional
	Category      Optional
	Subcategory   Optional
	Amount        Optional
	MonthKey      Optional

	InstallmentFlag    Optional
	CurrentInstallment Optional
	TotalInstallments  Optional
	// Installment is the combined "01/10" column some exports carry instead of
	// the split current/total columns.
	Installment Optional
}

// RecordFromCells builds a RawRecord from a canonical-column lookup.
func RecordFromCells(source string, row int, get func(column string) Optional) RawRecord {
	return RawRecord{
		SourceFile:         source,
		Row:                row,
		Date:               get(ColumnDate),
		Establishment:      get(ColumnEstablishment),
		Category:           get(ColumnCategory),
		Subcategory:        get(ColumnSubcategory),
		Amount:             get(ColumnAmount),
		MonthKey:           get(ColumnMonthKey),
		InstallmentFlag:    get(ColumnInstallmentFlag),
		CurrentInstallment: get(ColumnCurrentInstall),
		TotalInstallments:  get(ColumnTotalInstall),
		Installment:        get(ColumnInstallmentCombo),
	}
}
