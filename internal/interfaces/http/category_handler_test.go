package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo/internal/application/dto"
	"github.com/jhoicas/catalogo/internal/application/importer"
	"github.com/jhoicas/catalogo/internal/infrastructure/memory"
	"github.com/jhoicas/catalogo/internal/infrastructure/metrics"
	apphttp "github.com/jhoicas/catalogo/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/catalogo/pkg/jwt"
)

const importBody = `[
  {"nome": "Food", "tipo": "X"},
  {"nome": "Fruit", "categoria_pai": "Food", "tipo": "Y"},
  {"nome": "Fruit", "categoria_pai": "Drink", "tipo": "Y"}
]`

func buildCategoryApp(t *testing.T) (*fiber.App, *memory.CategoryStore) {
	t.Helper()
	store := memory.NewCategoryStore()
	reg := prometheus.NewRegistry()
	uc := importer.NewCategoryImporter(store, metrics.New(reg), nil)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Importer:  uc,
		Gatherer:  reg,
		AppName:   "catalogo-test",
		JWTSecret: testJWTSecret,
	})
	return app, store
}

func send(t *testing.T, app *fiber.App, method, target, role, body string) *http.Response {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if role != "-" {
		req.Header.Set("Authorization", tokenForRole(t, role))
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestCategoryImport_YConsultas(t *testing.T) {
	app, store := buildCategoryApp(t)

	resp := send(t, app, http.MethodPost, "/api/categories/import", pkgjwt.RoleAdmin, importBody)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.ImportResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, testCompanyID, out.CompanyID)
	assert.Equal(t, 1, out.Roots.Created)
	assert.Equal(t, 1, out.Children.Created)
	assert.Equal(t, 1, out.Children.SkippedMissingParent)
	assert.Len(t, out.Warnings, 1)
	assert.Equal(t, 2, store.Commits())

	// Lookup sin distinguir mayúsculas.
	resp = send(t, app, http.MethodGet, "/api/categories/lookup?parent=food&child=FRUIT", pkgjwt.RoleReader, "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var cat dto.CategoryResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&cat))
	assert.Equal(t, "Fruit", cat.Name)
	assert.NotEmpty(t, cat.ParentID)

	resp = send(t, app, http.MethodGet, "/api/categories/lookup?parent=Drink", pkgjwt.RoleReader, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = send(t, app, http.MethodGet, "/api/categories/tree", pkgjwt.RoleReader, "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var tree dto.CategoryTreeResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&tree))
	require.Len(t, tree.Roots, 1)
	assert.Len(t, tree.Roots[0].Children, 1)
}

func TestCategoryImport_SegundaVezNoCrea(t *testing.T) {
	app, _ := buildCategoryApp(t)

	resp := send(t, app, http.MethodPost, "/api/categories/import", pkgjwt.RoleAdmin, importBody)
	resp.Body.Close()
	resp = send(t, app, http.MethodPost, "/api/categories/import", pkgjwt.RoleAdmin, importBody)
	defer resp.Body.Close()

	var out dto.ImportResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, 2, out.Existing)
	assert.Equal(t, 0, out.Roots.Created+out.Children.Created)
}

func TestCategoryImport_DryRun(t *testing.T) {
	app, store := buildCategoryApp(t)

	resp := send(t, app, http.MethodPost, "/api/categories/import?dry_run=true", pkgjwt.RoleAdmin, importBody)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.ImportResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.True(t, out.DryRun)
	assert.False(t, out.Roots.Committed)
	assert.Equal(t, 0, store.Commits())
}

func TestCategoryImport_SoloAdmin(t *testing.T) {
	app, _ := buildCategoryApp(t)

	resp := send(t, app, http.MethodPost, "/api/categories/import", pkgjwt.RoleReader, importBody)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestCategoryImport_CuerpoInvalido(t *testing.T) {
	app, _ := buildCategoryApp(t)

	resp := send(t, app, http.MethodPost, "/api/categories/import", pkgjwt.RoleAdmin, `{"nome": "Food"}`)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLookup_SinParent(t *testing.T) {
	app, _ := buildCategoryApp(t)

	resp := send(t, app, http.MethodGet, "/api/categories/lookup", pkgjwt.RoleReader, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHealthYMetrics(t *testing.T) {
	app, _ := buildCategoryApp(t)

	resp := send(t, app, http.MethodGet, "/health", "-", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = send(t, app, http.MethodPost, "/api/categories/import", pkgjwt.RoleAdmin, importBody)
	resp.Body.Close()

	resp = send(t, app, http.MethodGet, "/metrics", "-", "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var sb strings.Builder
	_, _ = io.Copy(&sb, resp.Body)
	assert.Contains(t, sb.String(), "catalogo_import_records_total")
}
