package project

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
	assert.Equal(t, "project", Cmd.Use)
	assert.NotNil(t, Cmd.Flags().Lookup("month"))
}

func TestRun_CSV(t *testing.T) {
	s := newSession(t, root.CommonFlags{Format: "csv"})

	var buf bytes.Buffer
	require.NoError(t, Run(s, "2024-02", &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "establishment,category,installment_amount"))
	assert.Equal(t, "Loja Casa,Casa,300.00,1800.00,3,6,3,900.00,2024-05,BRL", lines[1])
}

func TestRun_Text(t *testing.T) {
	s := newSession(t, root.CommonFlags{Format: "text"})

	var buf bytes.Buffer
	require.NoError(t, Run(s, "2024-01", &buf))
	out := buf.String()
	assert.Contains(t, out, "Installment projection from 2024-01")
	assert.Contains(t, out, "2/6")
	assert.Contains(t, out, "R$ 1.200,00")
}
