package container

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/ledger-csv/internal/config"
	"fjacquet/ledger-csv/internal/logging"
	"fjacquet/ledger-csv/internal/models"
	"fjacquet/ledger-csv/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(dataDir string) *config.Config {
	cfg := &config.Config{}
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.Data.Directory = dataDir
	cfg.Data.Pattern = "*.csv"
	cfg.Ledger.BaseCurrency = "BRL"
	cfg.Ledger.ViewCurrency = "USD"
	cfg.Ledger.ExchangeRate = 5
	cfg.Ledger.MaxInstallments = 60
	cfg.Shift.Threshold = 0.5
	cfg.History.WindowMonths = 6
	cfg.Cache.MaxEntries = 4
	return cfg
}

func TestNewContainer(t *testing.T) {
	tests := []struct {
		name        string
		config      *config.Config
		expectError bool
		errorMsg    string
	}{
		{
			name:        "nil config",
			config:      nil,
			expectError: true,
			errorMsg:    "configuration cannot be nil",
		},
		{
			name:   "valid config",
			config: testConfig(t.TempDir()),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewContainer(tt.config)
			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
				assert.Nil(t, c)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, c)
			defer func() { _ = c.Close() }()

			assert.NotNil(t, c.GetLogger())
			assert.Same(t, tt.config, c.GetConfig())
			assert.NotNil(t, c.GetStore())
			assert.NotNil(t, c.GetService())
			assert.NotNil(t, c.GetCache())
			assert.NotNil(t, c.GetReportGenerator())
			assert.Equal(t, 6, c.HistoryWindow())
		})
	}
}

func TestNewContainerWith_StoreError(t *testing.T) {
	provider := &store.MockCategoryStore{Err: errors.New("broken yaml")}

	c, err := NewContainerWith(testConfig(t.TempDir()), logging.NewMockLogger(), provider)
	require.Error(t, err)
	assert.Nil(t, c)
	assert.Contains(t, err.Error(), "broken yaml")
}

func TestContainer_CurrencyView(t *testing.T) {
	c, err := NewContainerWith(testConfig(t.TempDir()), logging.NewMockLogger(), &store.MockCategoryStore{})
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	view, err := c.CurrencyView("")
	require.NoError(t, err)
	assert.Equal(t, "BRL", view.Code)
	assert.Equal(t, "1", view.Factor.String())

	view, err = c.CurrencyView("brl")
	require.NoError(t, err)
	assert.Equal(t, "BRL", view.Code)

	view, err = c.CurrencyView("usd")
	require.NoError(t, err)
	assert.Equal(t, "USD", view.Code)
	assert.Equal(t, "0.2", view.Factor.String())

	_, err = c.CurrencyView("EUR")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no exchange rate configured for EUR")
}

func TestContainer_LoadLedger(t *testing.T) {
	dir := t.TempDir()
	content := "Data;Estabelecimento;Categoria;Valor;Parcela\n" +
		"05/03/2024;Farmacia Central;Saúde;80,00;1/1\n" +
		"06/03/2024;Loja;Casa;100,00;2/5\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "march.csv"), []byte(content), 0600))

	mockLogger := logging.NewMockLogger()
	c, err := NewContainerWith(testConfig(dir), mockLogger, &store.MockCategoryStore{Essential: []string{"Saúde"}})
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	l, err := c.LoadLedger("")
	require.NoError(t, err)
	require.Equal(t, 2, l.Len())
	assert.Equal(t, models.MonthKey("2024-03"), l.LatestMonth())

	txs := l.Transactions()
	assert.Equal(t, models.SpendEssential, txs[0].SpendType)
	assert.Equal(t, models.SpendLifestyle, txs[1].SpendType)
	assert.Equal(t, "300", txs[1].FutureLiability.String())

	again, err := c.LoadLedger(dir)
	require.NoError(t, err)
	assert.Same(t, l, again)
	assert.Equal(t, uint64(1), c.GetCache().Stats().Hits)

	assert.True(t, mockLogger.HasEntry("INFO", "Container initialized successfully"))
}
