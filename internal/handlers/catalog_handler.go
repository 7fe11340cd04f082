package handlers

import (
	"net/http"

	"github.com/anonto42/foodgram/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// CatalogHandler serves tags and ingredients
type CatalogHandler struct {
	catalogService *services.CatalogService
}

func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

func (h *CatalogHandler) RegisterCatalogRoutes(g *echo.Group) {
	g.GET("/tags", h.ListTags)
	g.GET("/tags/:id", h.GetTag)
	g.GET("/ingredients", h.SearchIngredients)
	g.GET("/ingredients/:id", h.GetIngredient)
}

func (h *CatalogHandler) ListTags(c echo.Context) error {
	tags, err := h.catalogService.ListTags(c.Request().Context())
	if err != nil {
		return toHTTPError(c, err)
	}
	return ok(c, http.StatusOK, tags)
}

func (h *CatalogHandler) GetTag(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	tag, err := h.catalogService.GetTag(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(c, err)
	}
	return ok(c, http.StatusOK, tag)
}

// SearchIngredients lists ingredients matching ?name=, prefix matches first
func (h *CatalogHandler) SearchIngredients(c echo.Context) error {
	ingredients, err := h.catalogService.SearchIngredients(c.Request().Context(), c.QueryParam("name"))
	if err != nil {
		return toHTTPError(c, err)
	}
	return ok(c, http.StatusOK, ingredients)
}

func (h *CatalogHandler) GetIngredient(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	ingredient, err := h.catalogService.GetIngredient(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(c, err)
	}
	return ok(c, http.StatusOK, ingredient)
}
