package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jhoicas/catalogo/internal/application/importer"
	"github.com/jhoicas/catalogo/pkg/jwt"
	"github.com/jhoicas/catalogo/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Importer  *importer.CategoryImporter
	Gatherer  prometheus.Gatherer // nil: sin /metrics
	Logger    *logger.Logger
	AppName   string
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})
	if deps.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	categories := api.Group("/categories", AuthMiddleware(deps.JWTSecret))
	categoryHandler := NewCategoryHandler(deps.Importer, deps.Logger)
	categories.Get("/tree", categoryHandler.Tree)
	categories.Get("/lookup", categoryHandler.Lookup)
	categories.Post("/import", RequireRole(jwt.RoleAdmin), categoryHandler.Import)
}
