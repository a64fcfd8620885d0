// Package schemashift detects and repairs exports whose columns were shifted one
// position to the left, leaving the amount in the month-key column.
//
// The decision is made once per file. A file is either repaired as a whole or
// left untouched; individual rows are never corrected.
package schemashift

import (
	"strings"

	"fjacquet/ledger-csv/internal/loader"
	"fjacquet/ledger-csv/internal/logging"
	"fjacquet/ledger-csv/internal/models"
)

// DefaultThreshold is the invalid month-key ratio above which a file is shifted.
const DefaultThreshold = 0.5

// Verdict is the outcome of inspecting one file.
type Verdict struct {
	Shifted bool
	Invalid int
	Total   int
	Ratio   float64
	// Threshold is the ratio the file was compared against.
	Threshold float64
}

// Ambiguous reports a ratio sitting exactly on the threshold. Such files are
// not shifted, but the result is worth a warning.
func (v Verdict) Ambiguous() bool {
	return v.Total > 0 && v.Ratio == v.Threshold
}

// Detector inspects and repairs RawFiles.
type Detector struct {
	logger    logging.Logger
	threshold float64
}

// New creates a Detector. A threshold outside (0, 1) falls back to DefaultThreshold.
func New(logger logging.Logger, threshold float64) *Detector {
	if threshold <= 0 || threshold >= 1 {
		threshold = DefaultThreshold
	}
	return &Detector{
		logger:    logging.OrDefault(logger),
		threshold: threshold,
	}
}

// Detect counts month-key cells that do not look like YYYY-MM. Empty and absent
// cells count as invalid. Files without a month-key column or without rows are
// never shifted.
func (d *Detector) Detect(file loader.RawFile) Verdict {
	v := Verdict{Threshold: d.threshold}
	values := file.Values(models.ColumnMonthKey)
	if values == nil {
		return v
	}

	v.Total = len(values)
	for _, cell := range values {
		if !models.IsMonthKey(strings.TrimSpace(cell.Value)) {
			v.Invalid++
		}
	}
	if v.Total == 0 {
		return v
	}

	v.Ratio = float64(v.Invalid) / float64(v.Total)
	v.Shifted = v.Ratio > d.threshold
	return v
}

// Repair returns a copy of file with the shift undone: each of amount, flag,
// current and total installments takes the value found one header position to
// its left, and the month-key column is cleared so it is re-derived from the date.
// Targets missing from the header are skipped.
func Repair(file loader.RawFile) loader.RawFile {
	out := file.Clone()

	for _, target := range models.ShiftTargets {
		idx, ok := file.Column(target)
		if !ok {
			continue
		}
		for i, row := range file.Rows {
			if idx == 0 {
				out.Rows[i][idx] = models.None
				continue
			}
			out.Rows[i][idx] = row[idx-1]
		}
	}

	if idx, ok := file.Column(models.ColumnMonthKey); ok {
		for i := range out.Rows {
			out.Rows[i][idx] = models.None
		}
	}

	return out
}

// Apply detects the shift in file and repairs it when needed, logging the
// verdict. It returns the file to enrich and the verdict.
func (d *Detector) Apply(file loader.RawFile) (loader.RawFile, Verdict) {
	v := d.Detect(file)
	fields := []logging.Field{
		logging.F(logging.FieldFile, file.Path),
		logging.F(logging.FieldCount, v.Invalid),
		logging.F(logging.FieldRatio, v.Ratio),
	}

	switch {
	case v.Shifted:
		d.logger.Info("Column shift detected, repairing file", fields...)
		return Repair(file), v
	case v.Ambiguous():
		d.logger.Warn("Month-key validity is exactly at the shift threshold, leaving file as is", fields...)
	case v.Invalid > 0:
		d.logger.Debug("Some month keys are invalid, file not shifted", fields...)
	}
	return file, v
}
