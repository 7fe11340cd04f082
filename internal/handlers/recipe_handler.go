package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/anonto42/foodgram/backend/internal/middleware"
	"github.com/anonto42/foodgram/backend/internal/models"
	"github.com/anonto42/foodgram/backend/internal/repositories"
	"github.com/anonto42/foodgram/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// RecipeHandler handles recipe HTTP requests
type RecipeHandler struct {
	recipeService   *services.RecipeService
	shoppingService *services.ShoppingListService
	publicHost      string
}

// NewRecipeHandler creates a new RecipeHandler
func NewRecipeHandler(recipeService *services.RecipeService, shoppingService *services.ShoppingListService, publicHost string) *RecipeHandler {
	return &RecipeHandler{
		recipeService:   recipeService,
		shoppingService: shoppingService,
		publicHost:      strings.TrimRight(publicHost, "/"),
	}
}

// RegisterRecipeRoutes registers recipe routes on a group carrying optional auth
func (h *RecipeHandler) RegisterRecipeRoutes(g *echo.Group) {
	g.GET("/recipes", h.ListRecipes)
	g.POST("/recipes", h.CreateRecipe, middleware.RequireAuth)
	g.GET("/recipes/download_shopping_cart", h.DownloadShoppingCart, middleware.RequireAuth)
	g.GET("/recipes/:id", h.GetRecipe)
	g.PATCH("/recipes/:id", h.UpdateRecipe, middleware.RequireAuth)
	g.DELETE("/recipes/:id", h.DeleteRecipe, middleware.RequireAuth)
	g.GET("/recipes/:id/get-link", h.GetShortLink)
	g.POST("/recipes/:id/favorite", h.AddFavorite, middleware.RequireAuth)
	g.DELETE("/recipes/:id/favorite", h.RemoveFavorite, middleware.RequireAuth)
	g.POST("/recipes/:id/shopping_cart", h.AddToCart, middleware.RequireAuth)
	g.DELETE("/recipes/:id/shopping_cart", h.RemoveFromCart, middleware.RequireAuth)
}

// RegisterShortLinkRoutes registers the short link redirect
func (h *RecipeHandler) RegisterShortLinkRoutes(g *echo.Group) {
	g.GET("/:short_link", h.ResolveShortLink)
}

// ListRecipes lists recipes, newest first, with optional filters
func (h *RecipeHandler) ListRecipes(c echo.Context) error {
	filter := repositories.RecipeFilter{
		TagSlugs:         c.QueryParams()["tags"],
		IsFavorited:      queryFlag(c, "is_favorited"),
		IsInShoppingCart: queryFlag(c, "is_in_shopping_cart"),
		ViewerID:         middleware.UserID(c),
	}
	if author := c.QueryParam("author"); author != "" {
		id, err := strconv.ParseUint(author, 10, 32)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid author")
		}
		filter.AuthorID = uint(id)
	}

	recipes, err := h.recipeService.ListRecipes(c.Request().Context(), filter)
	if err != nil {
		return toHTTPError(c, err)
	}
	return ok(c, http.StatusOK, recipes)
}

func queryFlag(c echo.Context, name string) bool {
	v := c.QueryParam(name)
	return v == "1" || strings.EqualFold(v, "true")
}

// GetRecipe returns a single recipe
func (h *RecipeHandler) GetRecipe(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	recipe, err := h.recipeService.GetRecipe(c.Request().Context(), id, middleware.UserID(c))
	if err != nil {
		return toHTTPError(c, err)
	}
	return ok(c, http.StatusOK, recipe)
}

// CreateRecipe creates a recipe authored by the current user
func (h *RecipeHandler) CreateRecipe(c echo.Context) error {
	in, err := h.bindRecipe(c)
	if err != nil {
		return err
	}
	recipe, err := h.recipeService.CreateRecipe(c.Request().Context(), in)
	if err != nil {
		return toHTTPError(c, err)
	}
	return ok(c, http.StatusCreated, recipe)
}

// UpdateRecipe replaces a recipe owned by the current user
func (h *RecipeHandler) UpdateRecipe(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	in, err := h.bindRecipe(c)
	if err != nil {
		return err
	}
	recipe, err := h.recipeService.UpdateRecipe(c.Request().Context(), id, in.AuthorID, in)
	if err != nil {
		return toHTTPError(c, err)
	}
	return ok(c, http.StatusOK, recipe)
}

// DeleteRecipe deletes a recipe owned by the current user
func (h *RecipeHandler) DeleteRecipe(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.recipeService.DeleteRecipe(c.Request().Context(), id, middleware.UserID(c)); err != nil {
		return toHTTPError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *RecipeHandler) bindRecipe(c echo.Context) (services.RecipeInput, error) {
	var req models.RecipeRequest
	if err := c.Bind(&req); err != nil {
		return services.RecipeInput{}, echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return services.RecipeInput{}, toHTTPError(c, err)
	}

	items := make([]services.IngredientAmount, len(req.Ingredients))
	for i, ing := range req.Ingredients {
		items[i] = services.IngredientAmount{IngredientID: ing.ID, Amount: ing.Amount}
	}
	return services.RecipeInput{
		AuthorID:    middleware.UserID(c),
		Name:        req.Name,
		Text:        req.Text,
		CookingTime: req.CookingTime,
		Image:       req.Image,
		TagIDs:      req.Tags,
		Ingredients: items,
	}, nil
}

// AddFavorite adds a recipe to the current user's favorites
func (h *RecipeHandler) AddFavorite(c echo.Context) error {
	return h.toggle(c, h.recipeService.ToggleFavorite, true)
}

// RemoveFavorite removes a recipe from the current user's favorites
func (h *RecipeHandler) RemoveFavorite(c echo.Context) error {
	return h.toggle(c, h.recipeService.ToggleFavorite, false)
}

// AddToCart puts a recipe into the current user's shopping cart
func (h *RecipeHandler) AddToCart(c echo.Context) error {
	return h.toggle(c, h.recipeService.ToggleCart, true)
}

// RemoveFromCart takes a recipe out of the current user's shopping cart
func (h *RecipeHandler) RemoveFromCart(c echo.Context) error {
	return h.toggle(c, h.recipeService.ToggleCart, false)
}

type toggleFunc func(ctx context.Context, userID, recipeID uint, add bool) (*models.RecipeSummary, error)

func (h *RecipeHandler) toggle(c echo.Context, fn toggleFunc, add bool) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	summary, err := fn(c.Request().Context(), middleware.UserID(c), id, add)
	if err != nil {
		return toHTTPError(c, err)
	}
	if !add {
		return c.NoContent(http.StatusNoContent)
	}
	return ok(c, http.StatusCreated, summary)
}

// DownloadShoppingCart returns the aggregated shopping list as a text file
func (h *RecipeHandler) DownloadShoppingCart(c echo.Context) error {
	doc, err := h.shoppingService.DownloadShoppingList(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return toHTTPError(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="shopping_list.txt"`)
	return c.Blob(http.StatusOK, "text/plain; charset=utf-8", []byte(doc))
}

// GetShortLink returns the absolute short link of a recipe
func (h *RecipeHandler) GetShortLink(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	token, err := h.recipeService.GetShortLink(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(c, err)
	}
	return ok(c, http.StatusOK, echo.Map{"short-link": h.publicHost + "/s/" + token})
}

// ResolveShortLink redirects a short link to the recipe page
func (h *RecipeHandler) ResolveShortLink(c echo.Context) error {
	id, err := h.recipeService.ResolveShortLink(c.Request().Context(), c.Param("short_link"))
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.Redirect(http.StatusFound, fmt.Sprintf("/recipes/%d/", id))
}
