package compare

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fjacquet/ledger-csv/cmd/common"
	"fjacquet/ledger-csv/cmd/root"
	"fjacquet/ledger-csv/internal/config"
	"fjacquet/ledger-csv/internal/container"
	"fjacquet/ledger-csv/internal/logging"
	"fjacquet/ledger-csv/internal/store"

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
	assert.Equal(t, "compare MONTH_A MONTH_B", Cmd.Use)
	assert.Error(t, Cmd.Args(Cmd, []string{"2024-01"}))
	assert.NoError(t, Cmd.Args(Cmd, []string{"2024-01", "2024-02"}))
}

func TestRun_CSV(t *testing.T) {
	s := newSession(t, root.CommonFlags{Format: "csv"})

	var buf bytes.Buffer
	require.NoError(t, Run(s, "2024-01", "2024-02", &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "category,month_a,amount_a,month_b,amount_b,difference,currency", lines[0])
	assert.Equal(t, "Lazer,2024-01,0.00,2024-02,60.00,60.00,BRL", lines[1])
	assert.Equal(t, "Casa,2024-01,300.00,2024-02,300.00,0.00,BRL", lines[2])
	assert.Equal(t, "Mercado,2024-01,250.00,2024-02,200.00,-50.00,BRL", lines[3])
}

func TestRun_UnknownMonth(t *testing.T) {
	s := newSession(t, root.CommonFlags{})
	assert.Error(t, Run(s, "2024-01", "2025-01", &bytes.Buffer{}))
}
