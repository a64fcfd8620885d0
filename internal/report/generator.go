// Package report renders ledger results as JSON, YAML, CSV or aligned text.
package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"fjacquet/ledger-csv/internal/fileutils"
	"fjacquet/ledger-csv/internal/logging"
	"fjacquet/ledger-csv/internal/validation"

	"github.com/gocarina/gocsv"
	"gopkg.in/yaml.v3"
)

// Fact is one labelled headline figure of a text report.
type Fact struct {
	Label string
	Value string
}

// Table is a titled grid of preformatted cells.
type Table struct {
	Title  string
	Header []string
	Rows   [][]string
}

// Document is a report ready to be rendered. Payload feeds the structured
// formats, Records (a slice of csv-tagged structs) feeds CSV, and Facts plus
// Tables feed the text layout.
type Document struct {
	Title   string
	Payload any
	Records any
	Facts   []Fact
	Tables  []Table
}

// Generator renders Documents.
type Generator struct {
	logger logging.Logger
}

// NewGenerator creates a new Generator.
func NewGenerator(logger logging.Logger) *Generator {
	return &Generator{logger: logging.OrDefault(logger)}
}

// GenerateReport renders doc in the given format.
func (g *Generator) GenerateReport(doc Document, format string) ([]byte, error) {
	if err := validation.IsValidOutputFormat(format); err != nil {
		return nil, err
	}

	var (
		out []byte
		err error
	)
	switch format {
	case validation.FormatJSON:
		out, err = g.generateJSONReport(doc)
	case validation.FormatYAML:
		out, err = g.generateYAMLReport(doc)
	case validation.FormatCSV:
		out, err = g.generateCSVReport(doc)
	default:
		out, err = g.generateTextReport(doc)
	}
	if err != nil {
		g.logger.WithError(err).Error("Failed to generate report",
			logging.F("title", doc.Title),
			logging.F("format", format))
		return nil, err
	}
	return out, nil
}

// Write renders doc to w.
func (g *Generator) Write(w io.Writer, doc Document, format string) error {
	out, err := g.GenerateReport(doc, format)
	if err != nil {
		return err
	}
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// WriteFile renders doc into path, creating parent directories as needed.
func (g *Generator) WriteFile(path string, doc Document, format string) error {
	out, err := g.GenerateReport(doc, format)
	if err != nil {
		return err
	}
	file, err := fileutils.CreateFile(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			g.logger.WithError(closeErr).Warn("Failed to close report file",
				logging.F(logging.FieldOutputFile, path))
		}
	}()

	if _, err := file.Write(out); err != nil {
		return fmt.Errorf("failed to write report to %s: %w", path, err)
	}
	g.logger.Info("Report written",
		logging.F(logging.FieldOutputFile, path),
		logging.F("format", format))
	return nil
}

func (g *Generator) generateJSONReport(doc Document) ([]byte, error) {
	out, err := json.MarshalIndent(doc.Payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return append(out, '\n'), nil
}

func (g *Generator) generateYAMLReport(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc.Payload); err != nil {
		return nil, fmt.Errorf("failed to marshal YAML report: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to marshal YAML report: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *Generator) generateCSVReport(doc Document) ([]byte, error) {
	if doc.Records == nil {
		return nil, fmt.Errorf("report %q has no tabular form", doc.Title)
	}
	var buf bytes.Buffer
	if err := gocsv.MarshalCSV(doc.Records, gocsv.NewSafeCSVWriter(csv.NewWriter(&buf))); err != nil {
		return nil, fmt.Errorf("error writing CSV data: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *Generator) generateTextReport(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	if doc.Title != "" {
		fmt.Fprintf(&buf, "%s\n%s\n", doc.Title, strings.Repeat("=", len([]rune(doc.Title))))
	}

	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	for _, f := range doc.Facts {
		fmt.Fprintf(tw, "%s:\t%s\n", f.Label, f.Value)
	}
	if err := tw.Flush(); err != nil {
		return nil, err
	}

	for _, table := range doc.Tables {
		buf.WriteString("\n")
		if table.Title != "" {
			fmt.Fprintf(&buf, "%s\n", table.Title)
		}
		if len(table.Rows) == 0 {
			buf.WriteString("(none)\n")
			continue
		}
		tw = tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, strings.Join(table.Header, "\t"))
		for _, row := range table.Rows {
			fmt.Fprintln(tw, strings.Join(row, "\t"))
		}
		if err := tw.Flush(); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}
