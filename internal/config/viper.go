package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// DefaultEssentialCategories is the essential spend set used when neither the
// config file nor the categories file supplies one.
var DefaultEssentialCategories = []string{
	"Alimentação",
	"Saúde",
	"Educação",
	"Habitação",
	"Mercado",
	"Farmácia",
}

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Data struct {
		Directory string `mapstructure:"directory" yaml:"directory"`
		Pattern   string `mapstructure:"pattern" yaml:"pattern"`
	} `mapstructure:"data" yaml:"data"`

	Ledger struct {
		BaseCurrency        string   `mapstructure:"base_currency" yaml:"base_currency"`
		ViewCurrency        string   `mapstructure:"view_currency" yaml:"view_currency"`
		ExchangeRate        float64  `mapstructure:"exchange_rate" yaml:"exchange_rate"`
		MaxInstallments     int      `mapstructure:"max_installments" yaml:"max_installments"`
		EssentialCategories []string `mapstructure:"essential_categories" yaml:"essential_categories"`
		CategoriesFile      string   `mapstructure:"categories_file" yaml:"categories_file"`
	} `mapstructure:"ledger" yaml:"ledger"`

	Shift struct {
		Threshold float64 `mapstructure:"threshold" yaml:"threshold"`
	} `mapstructure:"shift" yaml:"shift"`

	History struct {
		WindowMonths int `mapstructure:"window_months" yaml:"window_months"`
	} `mapstructure:"history" yaml:"history"`

	Cache struct {
		MaxEntries int `mapstructure:"max_entries" yaml:"max_entries"`
	} `mapstructure:"cache" yaml:"cache"`

	Server struct {
		Addr string `mapstructure:"addr" yaml:"addr"`
	} `mapstructure:"server" yaml:"server"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading:
// defaults, then config.yaml, then LEDGER_* environment variables.
func InitializeConfig() (*Config, error) {
	return InitializeConfigFrom("")
}

// InitializeConfigFrom behaves like InitializeConfig but reads the given config
// file instead of searching the standard locations when path is not empty.
func InitializeConfigFrom(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.ledger-csv")
		v.AddConfigPath(".ledger-csv")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("LEDGER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if path != "" {
				return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
			}
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Defaults returns the configuration made of default values only, ignoring
// config files and the environment.
func Defaults() *Config {
	v := viper.New()
	setDefaults(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		panic(fmt.Sprintf("config defaults do not unmarshal: %v", err))
	}
	return &config
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("data.directory", "data/raw")
	v.SetDefault("data.pattern", "*.csv")

	v.SetDefault("ledger.base_currency", "BRL")
	v.SetDefault("ledger.view_currency", "USD")
	v.SetDefault("ledger.exchange_rate", 5.80)
	v.SetDefault("ledger.max_installments", 60)
	v.SetDefault("ledger.essential_categories", DefaultEssentialCategories)
	v.SetDefault("ledger.categories_file", "categories.yaml")

	v.SetDefault("shift.threshold", 0.5)
	v.SetDefault("history.window_months", 6)
	v.SetDefault("cache.max_entries", 16)
	v.SetDefault("server.addr", ":8080")
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if strings.TrimSpace(config.Data.Pattern) == "" {
		return fmt.Errorf("data.pattern cannot be empty")
	}

	if config.Ledger.ExchangeRate <= 0 {
		return fmt.Errorf("ledger.exchange_rate must be positive, got: %f", config.Ledger.ExchangeRate)
	}

	if config.Ledger.MaxInstallments < 1 {
		return fmt.Errorf("ledger.max_installments must be at least 1, got: %d", config.Ledger.MaxInstallments)
	}

	if config.Shift.Threshold <= 0 || config.Shift.Threshold >= 1 {
		return fmt.Errorf("shift.threshold must be between 0 and 1 (exclusive), got: %f", config.Shift.Threshold)
	}

	if config.History.WindowMonths < 1 {
		return fmt.Errorf("history.window_months must be at least 1, got: %d", config.History.WindowMonths)
	}

	if config.Cache.MaxEntries < 1 {
		return fmt.Errorf("cache.max_entries must be at least 1, got: %d", config.Cache.MaxEntries)
	}

	return nil
}
