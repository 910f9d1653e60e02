package source_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/catalogo/internal/application/dto"
	"github.com/jhoicas/catalogo/internal/domain"
	"github.com/jhoicas/catalogo/internal/infrastructure/source"
)

const categoriasJSON = `[
  {"nome": "Food", "tipo": "X"},
  {"nome": "Fruit", "categoria_pai": "Food", "tipo": "Y"}
]`

func TestDecode_JSON(t *testing.T) {
	records, err := source.Decode(strings.NewReader(categoriasJSON), source.FormatJSON, "")
	require.NoError(t, err)
	assert.Equal(t, []dto.CategoryRecord{
		{Name: "Food", Type: "X"},
		{Name: "Fruit", ParentName: "Food", Type: "Y"},
	}, records)
	assert.True(t, records[0].IsRoot())
	assert.False(t, records[1].IsRoot())
}

func TestDecode_YAML(t *testing.T) {
	in := "- nome: Alimentação\n  tipo: DESPESA\n- nome: Mercado\n  categoria_pai: Alimentação\n  tipo: DESPESA\n"
	records, err := source.Decode(strings.NewReader(in), source.FormatYAML, "utf-8")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Alimentação", records[1].ParentName)
}

func TestDecode_Latin1(t *testing.T) {
	latin1, err := charmap.ISO8859_1.NewEncoder().String(`[{"nome": "Educação", "tipo": "X"}]`)
	require.NoError(t, err)

	records, err := source.Decode(bytes.NewReader([]byte(latin1)), source.FormatJSON, "ISO-8859-1")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Educação", records[0].Name)
}

func TestDecode_CharsetDesconocido(t *testing.T) {
	_, err := source.Decode(strings.NewReader("[]"), source.FormatJSON, "ebcdic")
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "categorias.json")
	require.NoError(t, os.WriteFile(path, []byte(categoriasJSON), 0o600))

	records, err := source.ReadFile(path, "")
	require.NoError(t, err)
	assert.Len(t, records, 2)

	_, err = source.ReadFile(filepath.Join(dir, "categorias.csv"), "")
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)

	_, err = source.ReadFile(filepath.Join(dir, "no-existe.json"), "")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
