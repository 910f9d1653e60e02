package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/catalogo/internal/application/dto"
	"github.com/jhoicas/catalogo/internal/application/importer"
	"github.com/jhoicas/catalogo/internal/domain"
	"github.com/jhoicas/catalogo/pkg/logger"
)

// CategoryHandler expone la importación y las consultas de categorías (protegido).
type CategoryHandler struct {
	uc  *importer.CategoryImporter
	log *logger.Logger
}

// NewCategoryHandler construye el handler.
func NewCategoryHandler(uc *importer.CategoryImporter, log *logger.Logger) *CategoryHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &CategoryHandler{uc: uc, log: log}
}

// Import godoc
// @Summary      Importar categorías
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        dry_run  query  bool                  false  "Solo calcular el plan"
// @Param        body     body   []dto.CategoryRecord  true   "Registros (nome, tipo, categoria_pai)"
// @Success      200      {object}  dto.ImportResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Router       /api/categories/import [post]
func (h *CategoryHandler) Import(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id requerido"})
	}
	var records []dto.CategoryRecord
	if err := c.BodyParser(&records); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "se espera una lista de categorías"})
	}
	opts := importer.Options{DryRun: c.QueryBool("dry_run", false)}

	summary, err := h.uc.Import(c.UserContext(), companyID, records, opts)
	if err != nil {
		h.log.Error().Err(err).Str("company_id", companyID).Str("user_id", GetUserID(c)).Msg("importación de categorías")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "IMPORT_FAILED", Message: err.Error()})
	}
	return c.JSON(summary.ToResponse())
}

// Tree godoc
// @Summary      Árbol de categorías de la empresa
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CategoryTreeResponse
// @Router       /api/categories/tree [get]
func (h *CategoryHandler) Tree(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id requerido"})
	}
	out, err := h.uc.Tree(c.UserContext(), companyID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Lookup godoc
// @Summary      Buscar categoría por nombre (sin distinguir mayúsculas)
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        parent  query  string  true   "Nombre de la raíz"
// @Param        child   query  string  false  "Nombre de la hija"
// @Success      200     {object}  dto.CategoryResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/categories/lookup [get]
func (h *CategoryHandler) Lookup(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id requerido"})
	}
	parent := c.Query("parent")
	if parent == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parent es requerido"})
	}
	out, err := h.uc.FindByName(c.UserContext(), companyID, parent, c.Query("child"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "categoría no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
