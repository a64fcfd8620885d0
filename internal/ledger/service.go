package ledger

import (
	"fmt"

	"fjacquet/ledger-csv/internal/enricher"
	"fjacquet/ledger-csv/internal/loader"
	"fjacquet/ledger-csv/internal/logging"
	"fjacquet/ledger-csv/internal/models"
	"fjacquet/ledger-csv/internal/schemashift"
)

// Service wires the pipeline stages together.
type Service struct {
	loader   *loader.Loader
	detector *schemashift.Detector
	enricher *enricher.Enricher
	logger   logging.Logger
}

// NewService creates a Service from its stages.
func NewService(l *loader.Loader, d *schemashift.Detector, e *enricher.Enricher, logger logging.Logger) *Service {
	return &Service{
		loader:   l,
		detector: d,
		enricher: e,
		logger:   logging.OrDefault(logger),
	}
}

// Pattern is the file glob used by the loader.
func (s *Service) Pattern() string {
	return s.loader.Pattern()
}

// Load reads dir and returns the merged Ledger. Unreadable files become warnings;
// only a missing directory is an error. No matching files yields an empty Ledger.
func (s *Service) Load(dir string) (*Ledger, error) {
	result, err := s.loader.Load(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", dir, err)
	}

	stats := Stats{
		Files:        len(result.Files),
		SkippedFiles: len(result.Warnings),
	}
	for _, w := range result.Warnings {
		stats.Warnings = append(stats.Warnings, w.Error())
	}

	var all []models.Transaction
	for _, file := range result.Files {
		repaired, verdict := s.detector.Apply(file)
		if verdict.Shifted {
			stats.ShiftedFiles++
		}
		if verdict.Ambiguous() {
			stats.AmbiguousFiles++
		}

		txs, fileStats := s.enricher.Enrich(repaired.Records())
		stats.Stats.Add(fileStats)
		all = append(all, txs...)
	}

	s.logger.Info("Ledger loaded",
		logging.F(logging.FieldDirectory, dir),
		logging.F("files", stats.Files),
		logging.F("skipped_files", stats.SkippedFiles),
		logging.F("rows", result.RowCount()),
		logging.F("shifted_files", stats.ShiftedFiles),
		logging.F(logging.FieldCount, len(all)),
		logging.F("dropped_rows", stats.DroppedRows))

	return New(all, stats), nil
}
