// Package store loads the optional categories file that overrides the
// essential-category set from the main configuration.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/ledger-csv/internal/fileutils"
	"fjacquet/ledger-csv/internal/logging"

	"gopkg.in/yaml.v3"
)

// CategoriesConfig is the layout of categories.yaml.
type CategoriesConfig struct {
	Essential []string `yaml:"essential"`
}

// CategoryProvider supplies the essential-category set.
type CategoryProvider interface {
	EssentialCategories(fallback []string) ([]string, error)
}

// CategoryStore reads categories.yaml from the usual configuration locations.
type CategoryStore struct {
	CategoriesFile string
	logger         logging.Logger
}

// NewCategoryStore creates a new store for the categories file
func NewCategoryStore(categoriesFile string, logger logging.Logger) *CategoryStore {
	if categoriesFile == "" {
		categoriesFile = "categories.yaml"
	}
	return &CategoryStore{
		CategoriesFile: categoriesFile,
		logger:         logging.OrDefault(logger),
	}
}

// FindConfigFile looks for a configuration file in standard locations
func (s *CategoryStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if fileutils.FileExists(filename) {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
		filepath.Join(".ledger-csv", filename),
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(homeDir, ".ledger-csv", filename))
	}

	for _, location := range locations {
		if fileutils.FileExists(location) {
			return location, nil
		}
	}

	return "", os.ErrNotExist
}

// LoadCategories reads the categories file. A missing file yields an empty
// config, not an error. Both the keyed layout ("essential: [...]") and a bare
// YAML list are accepted.
func (s *CategoryStore) LoadCategories() (CategoriesConfig, error) {
	path, err := s.FindConfigFile(s.CategoriesFile)
	if err != nil {
		s.logger.Debug("Categories file not found, using configured defaults",
			logging.F(logging.FieldFile, s.CategoriesFile))
		return CategoriesConfig{}, nil
	}

	data, err := os.ReadFile(path) // #nosec G304 -- resolved from known config locations
	if err != nil {
		return CategoriesConfig{}, fmt.Errorf("error reading categories file: %w", err)
	}

	var cfg CategoriesConfig
	if err := yaml.Unmarshal(data, &cfg); err == nil && len(cfg.Essential) > 0 {
		cfg.Essential = clean(cfg.Essential)
		s.logger.Debug("Loaded essential categories",
			logging.F(logging.FieldFile, path),
			logging.F(logging.FieldCount, len(cfg.Essential)))
		return cfg, nil
	}

	var list []string
	if err := yaml.Unmarshal(data, &list); err == nil {
		return CategoriesConfig{Essential: clean(list)}, nil
	}

	return CategoriesConfig{}, fmt.Errorf("error parsing categories file %s: %w", path,
		errors.New("expected an 'essential' list"))
}

// EssentialCategories returns the file's essential set, or fallback when the
// file is absent or lists nothing.
func (s *CategoryStore) EssentialCategories(fallback []string) ([]string, error) {
	cfg, err := s.LoadCategories()
	if err != nil {
		return nil, err
	}
	if len(cfg.Essential) == 0 {
		return append([]string(nil), fallback...), nil
	}
	return cfg.Essential, nil
}

func clean(in []string) []string {
	out := make([]string, 0, len(in))
	for _, c := range in {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}
