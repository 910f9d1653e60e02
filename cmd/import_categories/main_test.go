package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const categoriasJSON = `[
  {"nome": "Food", "tipo": "X"},
  {"nome": "Fruit", "categoria_pai": "Food", "tipo": "Y"},
  {"nome": "Fruit", "categoria_pai": "Drink", "tipo": "Y"}
]`

func execCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func setupWorkdir(t *testing.T) (dbPath, file string) {
	t.Helper()
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("APP_ENV", "test")
	file = filepath.Join(dir, "categorias.json")
	require.NoError(t, os.WriteFile(file, []byte(categoriasJSON), 0o600))
	return filepath.Join(dir, "cat.db"), file
}

func TestCLI_RunTreeFind(t *testing.T) {
	db, file := setupWorkdir(t)
	common := []string{"--company", "c1", "--store", "sqlite", "--sqlite-path", db}

	out, err := execCLI(t, append([]string{"run", file}, common...)...)
	require.NoError(t, err)
	assert.Regexp(t, `raíces creadas\s+1`, out)
	assert.Regexp(t, `hijas creadas\s+1`, out)
	assert.Regexp(t, `padre no encontrado\s+1`, out)
	assert.Contains(t, out, "aviso: categoría padre no encontrada: Drink")

	out, err = execCLI(t, append([]string{"run", file}, common...)...)
	require.NoError(t, err)
	assert.Regexp(t, `existentes\s+2`, out)
	assert.Regexp(t, `raíces creadas\s+0`, out)
	assert.Regexp(t, `hijas creadas\s+0`, out)

	out, err = execCLI(t, append([]string{"tree"}, common...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Food (")
	assert.Contains(t, out, "  - Fruit (")

	out, err = execCLI(t, append([]string{"find", "food", "fruit"}, common...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Fruit")

	_, err = execCLI(t, append([]string{"find", "drink"}, common...)...)
	assert.Error(t, err)
}

func TestCLI_DryRunConMemoria(t *testing.T) {
	_, file := setupWorkdir(t)

	out, err := execCLI(t, "run", file, "--company", "c1", "--store", "memory", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "dry run")
	assert.Regexp(t, `hijas creadas\s+1`, out)
}

func TestCLI_SinEmpresa(t *testing.T) {
	_, file := setupWorkdir(t)

	_, err := execCLI(t, "run", file, "--store", "memory")
	assert.ErrorContains(t, err, "empresa destino requerida")
}

func TestCLI_FormatoNoSoportado(t *testing.T) {
	setupWorkdir(t)

	_, err := execCLI(t, "run", "categorias.csv", "--company", "c1", "--store", "memory")
	assert.Error(t, err)
}

// chdir changes the working directory for the test and restores it on cleanup
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
