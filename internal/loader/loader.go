// Package loader discovers statement exports in a directory and reads each one
// into a positional RawFile. Files that cannot be read are skipped with a
// warning; the rest of the batch continues.
package loader

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/ledger-csv/internal/fileutils"
	"fjacquet/ledger-csv/internal/logging"
	"fjacquet/ledger-csv/internal/models"
	"fjacquet/ledger-csv/internal/parsererror"
)

const expectedFormat = "delimited text with a header row"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Result is the outcome of loading a directory.
type Result struct {
	Files    []RawFile
	Warnings []error
}

// Empty reports whether no file was loaded. This is the empty-dataset signal,
// not an error.
func (r Result) Empty() bool {
	return len(r.Files) == 0
}

// RowCount is the number of data rows across all loaded files.
func (r Result) RowCount() int {
	n := 0
	for _, f := range r.Files {
		n += len(f.Rows)
	}
	return n
}

// Loader reads CSV exports from disk.
type Loader struct {
	logger  logging.Logger
	pattern string
}

// New creates a Loader that matches file base names against pattern
// ("*.csv" when empty).
func New(logger logging.Logger, pattern string) *Loader {
	if pattern == "" {
		pattern = "*.csv"
	}
	return &Loader{
		logger:  logging.OrDefault(logger),
		pattern: pattern,
	}
}

// Pattern returns the glob used to match files.
func (l *Loader) Pattern() string {
	return l.pattern
}

// Load reads every matching file in dir in lexical order. A missing directory is
// an error; a directory with no matching files is an empty Result.
func (l *Loader) Load(dir string) (Result, error) {
	files, err := fileutils.ListMatching(dir, l.pattern)
	if err != nil {
		return Result{}, fmt.Errorf("failed to list input files: %w", err)
	}

	l.logger.Info("Loading statement exports",
		logging.F(logging.FieldDirectory, dir),
		logging.F(logging.FieldCount, len(files)))

	var result Result
	for _, path := range files {
		file, err := l.LoadFile(path)
		if err != nil {
			l.logger.WithError(err).Warn("Skipping unreadable file",
				logging.F(logging.FieldFile, path))
			result.Warnings = append(result.Warnings, err)
			continue
		}
		result.Files = append(result.Files, file)
	}

	if result.Empty() {
		l.logger.Warn("No usable input files found",
			logging.F(logging.FieldDirectory, dir))
	}
	return result, nil
}

// LoadFile reads a single export. Every failure is returned as a
// *parsererror.InvalidFormatError.
func (l *Loader) LoadFile(path string) (RawFile, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the configured input directory
	if err != nil {
		return RawFile{}, invalidFormat(path, "cannot read file", "", err)
	}
	return l.Parse(path, data)
}

// Parse reads already loaded file content.
func (l *Loader) Parse(path string, data []byte) (RawFile, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if len(bytes.TrimSpace(data)) == 0 {
		return RawFile{}, invalidFormat(path, "file is empty", "", nil)
	}

	content := string(data)
	delimiter := SniffDelimiter(firstLine(content))

	reader := csv.NewReader(strings.NewReader(content))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return RawFile{}, invalidFormat(path, "cannot read header", parsererror.Snippet(firstLine(content), 80), err)
	}

	file := RawFile{
		Path:      path,
		Name:      filepath.Base(path),
		Delimiter: delimiter,
		Header:    make([]string, len(header)),
		Columns:   make(map[string]int),
	}
	for i, cell := range header {
		name := strings.TrimSpace(cell)
		file.Header[i] = name
		canonical, ok := CanonicalColumn(name)
		if !ok {
			if name != "" {
				file.Unknown = append(file.Unknown, name)
			}
			continue
		}
		if _, dup := file.Columns[canonical]; !dup {
			file.Columns[canonical] = i
		}
	}
	if len(file.Columns) == 0 {
		return RawFile{}, invalidFormat(path, "no recognized columns in header",
			parsererror.Snippet(firstLine(content), 80), nil)
	}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return RawFile{}, invalidFormat(path, "malformed row", "", err)
		}
		if blankRow(record) {
			continue
		}
		file.Rows = append(file.Rows, padRow(record, len(file.Header)))
	}

	if len(file.Unknown) > 0 {
		l.logger.Debug("Preserving unrecognized columns",
			logging.F(logging.FieldFile, path),
			logging.F(logging.FieldColumn, strings.Join(file.Unknown, ",")))
	}
	l.logger.Debug("Loaded file",
		logging.F(logging.FieldFile, path),
		logging.F(logging.FieldDelimiter, string(delimiter)),
		logging.F(logging.FieldCount, len(file.Rows)))

	return file, nil
}

// padRow fits a record to the header width. Missing trailing cells are absent;
// extra cells are dropped.
func padRow(record []string, width int) []models.Optional {
	row := make([]models.Optional, width)
	for i := 0; i < width && i < len(record); i++ {
		row[i] = models.Some(record[i])
	}
	return row
}

func blankRow(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func invalidFormat(path, msg, snippet string, err error) error {
	return &parsererror.InvalidFormatError{
		FilePath:             path,
		ExpectedFormat:       expectedFormat,
		ActualContentSnippet: snippet,
		Msg:                  msg,
		Err:                  err,
	}
}
