package serve

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/ledger-csv/internal/config"
	"fjacquet/ledger-csv/internal/container"
	"fjacquet/ledger-csv/internal/logging"
	"fjacquet/ledger-csv/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommand_Metadata(t *testing.T) {
	assert.Equal(t, "serve", Cmd.Use)
	assert.NotNil(t, Cmd.Flags().Lookup("addr"))
}

func TestServe_NilContainer(t *testing.T) {
	assert.Error(t, Serve(context.Background(), nil, ""))
}

func TestServe_StopsWithContext(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.csv"),
		[]byte("Data;Estabelecimento;Valor\n01/03/2024;Padaria;10,00\n"), 0600))

	cfg := config.Defaults()
	cfg.Data.Directory = dir
	logger := logging.NewMockLogger()
	c, err := container.NewContainerWith(cfg, logger, &store.MockCategoryStore{})
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, Serve(ctx, c, "127.0.0.1:0"))
	assert.True(t, logger.HasEntry("INFO", "Ledger preloaded"))
}

func TestServe_MissingDirectory(t *testing.T) {
	cfg := config.Defaults()
	cfg.Data.Directory = filepath.Join(t.TempDir(), "missing")
	c, err := container.NewContainerWith(cfg, logging.NewMockLogger(), &store.MockCategoryStore{})
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	err = Serve(context.Background(), c, "127.0.0.1:0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load ledger")
}
