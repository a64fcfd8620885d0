// Package container provides dependency injection for the ledger-csv application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"fmt"
	"strings"

	"fjacquet/ledger-csv/internal/cache"
	"fjacquet/ledger-csv/internal/config"
	"fjacquet/ledger-csv/internal/enricher"
	"fjacquet/ledger-csv/internal/ledger"
	"fjacquet/ledger-csv/internal/loader"
	"fjacquet/ledger-csv/internal/logging"
	"fjacquet/ledger-csv/internal/models"
	"fjacquet/ledger-csv/internal/report"
	"fjacquet/ledger-csv/internal/schemashift"
	"fjacquet/ledger-csv/internal/store"

	"github.com/shopspring/decimal"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation - all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger    logging.Logger
	config    *config.Config
	store     store.CategoryProvider
	service   *ledger.Service
	cache     *cache.LoadCache
	generator *report.Generator
}

// NewContainer creates and wires all application dependencies.
// This is the main entry point for dependency injection in the application.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	// Create logger first as it's needed by other components
	logger := logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)

	categoryStore := store.NewCategoryStore(cfg.Ledger.CategoriesFile, logger)
	return NewContainerWith(cfg, logger, categoryStore)
}

// NewContainerWith wires the container around an existing logger and category
// provider. Tests use it to inject mocks.
func NewContainerWith(cfg *config.Config, logger logging.Logger, categories store.CategoryProvider) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	logger = logging.OrDefault(logger)

	fallback := cfg.Ledger.EssentialCategories
	if len(fallback) == 0 {
		fallback = config.DefaultEssentialCategories
	}
	essential, err := categories.EssentialCategories(fallback)
	if err != nil {
		return nil, fmt.Errorf("failed to load essential categories: %w", err)
	}

	service := ledger.NewService(
		loader.New(logger, cfg.Data.Pattern),
		schemashift.New(logger, cfg.Shift.Threshold),
		enricher.New(essential, logger).WithMaxInstallments(cfg.Ledger.MaxInstallments),
		logger,
	)

	loadCache, err := cache.New(service, cfg.Cache.MaxEntries, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create load cache: %w", err)
	}

	logger.Info("Container initialized successfully",
		logging.F("essential_categories", len(essential)),
		logging.F("pattern", service.Pattern()),
		logging.F("cache_entries", cfg.Cache.MaxEntries))

	return &Container{
		logger:    logger,
		config:    cfg,
		store:     categories,
		service:   service,
		cache:     loadCache,
		generator: report.NewGenerator(logger),
	}, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetStore returns the category provider.
func (c *Container) GetStore() store.CategoryProvider {
	return c.store
}

// GetService returns the uncached ledger pipeline.
func (c *Container) GetService() *ledger.Service {
	return c.service
}

// GetCache returns the memoized ledger pipeline. Commands and the API load
// through it.
func (c *Container) GetCache() *cache.LoadCache {
	return c.cache
}

// GetReportGenerator returns the report generator.
func (c *Container) GetReportGenerator() *report.Generator {
	return c.generator
}

// LoadLedger loads dir through the cache, falling back to the configured data
// directory when dir is empty.
func (c *Container) LoadLedger(dir string) (*ledger.Ledger, error) {
	if dir == "" {
		dir = c.config.Data.Directory
	}
	return c.cache.Get(dir)
}

// CurrencyView resolves a display currency code against the configured base
// currency and exchange rate. An empty code selects the base currency; only
// the configured view currency has a rate.
func (c *Container) CurrencyView(code string) (models.CurrencyView, error) {
	base := c.config.Ledger.BaseCurrency
	if code == "" || strings.EqualFold(code, base) {
		return models.BaseView(base), nil
	}
	if !strings.EqualFold(code, c.config.Ledger.ViewCurrency) {
		return models.CurrencyView{}, fmt.Errorf("no exchange rate configured for %s (base %s, view %s)",
			strings.ToUpper(code), base, c.config.Ledger.ViewCurrency)
	}
	return models.NewCurrencyView(
		c.config.Ledger.BaseCurrency,
		code,
		decimal.NewFromFloat(c.config.Ledger.ExchangeRate),
	)
}

// HistoryWindow is the configured look-back in months.
func (c *Container) HistoryWindow() int {
	return c.config.History.WindowMonths
}

// Close performs cleanup of container resources.
func (c *Container) Close() error {
	c.cache.Close()
	c.logger.Info("Container closed")
	return nil
}
