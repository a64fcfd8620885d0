package load

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/ledger-csv/cmd/common"
	"fjacquet/ledger-csv/cmd/root"
	"fjacquet/ledger-csv/internal/config"
	"fjacquet/ledger-csv/internal/container"
	"fjacquet/ledger-csv/internal/logging"
	"fjacquet/ledger-csv/internal/store"
	"fjacquet/ledger-csv/internal/parsererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = "Data;Estabelecimento;Categoria;Subcategoria;Valor;Parcela\n" +
	"10/01/2024;Mercado Bom;Mercado;Feira;250,00;1/1\n" +
	"15/01/2024;Loja Casa;Casa;Móveis;300,00;2/6\n" +
	"05/02/2024;Mercado Bom;Mercado;Feira;200,00;1/1\n" +
	"18/02/2024;Loja Casa;Casa;Móveis;300,00;3/6\n" +
	"20/02/2024;Cinema;Lazer;Filmes;60,00;1/1\n"

func newSession(t *testing.T, flags root.CommonFlags) *common.Session {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "faturas.csv"), []byte(fixture), 0600))

	cfg := config.Defaults()
	cfg.Data.Directory = dir
	c, err := container.NewContainerWith(cfg, logging.NewMockLogger(), &store.MockCategoryStore{Essential: []string{"Mercado"}})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	flags.Input = dir
	s, err := common.Open(c, flags)
	require.NoError(t, err)
	return s
}

func TestCommand_Metadata(t *testing.T) {
	assert.Equal(t, "load", Cmd.Use)
	assert.NotNil(t, Cmd.RunE)
	assert.NotNil(t, Cmd.Flags().Lookup("month"))
}

func TestRun_Text(t *testing.T) {
	s := newSession(t, root.CommonFlags{Format: "text"})

	var buf bytes.Buffer
	require.NoError(t, Run(s, "", &buf))
	out := buf.String()
	assert.Contains(t, out, "Transactions:")
	assert.Contains(t, out, "2024-02")
	assert.Contains(t, out, "2024-01")
	assert.Contains(t, out, "R$ 560,00")
}

func TestRun_JSONForMonth(t *testing.T) {
	s := newSession(t, root.CommonFlags{Format: "json", ViewCurrency: "USD"})

	var buf bytes.Buffer
	require.NoError(t, Run(s, "2024-01", &buf))

	var payload struct {
		Stats struct {
			Files    int `json:"files"`
			Enriched int `json:"enriched"`
		} `json:"stats"`
		Transactions []struct {
			Establishment string `json:"establishment"`
			Currency      string `json:"currency"`
			SpendType     string `json:"spend_type"`
		} `json:"transactions"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &payload))
	assert.Equal(t, 1, payload.Stats.Files)
	assert.Equal(t, 5, payload.Stats.Enriched)
	require.Len(t, payload.Transactions, 2)
	assert.Equal(t, "USD", payload.Transactions[0].Currency)
	assert.Equal(t, "Essential", payload.Transactions[0].SpendType)
}

func TestRun_UnknownMonth(t *testing.T) {
	s := newSession(t, root.CommonFlags{})

	err := Run(s, "2023-01", &bytes.Buffer{})
	assert.True(t, errors.Is(err, parsererror.ErrNoData))
}
