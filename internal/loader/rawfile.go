package loader

import (
	"fjacquet/ledger-csv/internal/models"
)

// RawFile is one input file read positionally: the header as written plus rows
// padded or truncated to the header width. Cells past the end of a short row are
// absent rather than empty.
type RawFile struct {
	Path      string
	Name      string
	Delimiter rune
	Header    []string
	// Columns maps canonical column names to header positions.
	Columns map[string]int
	// Unknown lists header cells that matched no canonical column.
	Unknown []string
	Rows    [][]models.Optional
}

// Column returns the header position of a canonical column.
func (f RawFile) Column(name string) (int, bool) {
	i, ok := f.Columns[name]
	return i, ok
}

// Cell returns the value of a canonical column in row i.
func (f RawFile) Cell(i int, column string) models.Optional {
	idx, ok := f.Columns[column]
	if !ok || i < 0 || i >= len(f.Rows) || idx >= len(f.Rows[i]) {
		return models.None
	}
	return f.Rows[i][idx]
}

// Values returns every cell of a canonical column, absent cells included.
func (f RawFile) Values(column string) []models.Optional {
	if _, ok := f.Columns[column]; !ok {
		return nil
	}
	values := make([]models.Optional, len(f.Rows))
	for i := range f.Rows {
		values[i] = f.Cell(i, column)
	}
	return values
}

// Records maps every row to a RawRecord. Row numbers are 1-based data rows.
func (f RawFile) Records() []models.RawRecord {
	records := make([]models.RawRecord, len(f.Rows))
	for i := range f.Rows {
		row := i
		records[i] = models.RecordFromCells(f.Name, row+1, func(column string) models.Optional {
			return f.Cell(row, column)
		})
	}
	return records
}

// Clone returns a deep copy so repairs never touch the loaded file.
func (f RawFile) Clone() RawFile {
	out := f
	out.Header = append([]string(nil), f.Header...)
	out.Unknown = append([]string(nil), f.Unknown...)
	out.Columns = make(map[string]int, len(f.Columns))
	for k, v := range f.Columns {
		out.Columns[k] = v
	}
	out.Rows = make([][]models.Optional, len(f.Rows))
	for i, row := range f.Rows {
		out.Rows[i] = append([]models.Optional(nil), row...)
	}
	return out
}
