package router

import (
	"fmt"

	"github.com/anonto42/foodgram/backend/internal/handlers"
	"github.com/anonto42/foodgram/backend/internal/middleware"
	"github.com/anonto42/foodgram/backend/internal/repositories"
	"github.com/anonto42/foodgram/backend/internal/services"
	"github.com/anonto42/foodgram/backend/pkg/config"
	"github.com/anonto42/foodgram/backend/pkg/logger"
	"github.com/anonto42/foodgram/backend/validators"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// New builds the echo server with global middleware and every route.
func New(cfg *config.Config, db *gorm.DB) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()
	e.HTTPErrorHandler = handlers.ErrorHandler(e)
	config.SetupMiddleware(e)

	if err := SetupRoutes(e, cfg, db); err != nil {
		return nil, err
	}
	return e, nil
}

// SetupRoutes migrates the schema and wires repositories, services and handlers.
func SetupRoutes(e *echo.Echo, cfg *config.Config, db *gorm.DB) error {
	if err := repositories.Migrate(db); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	logger.Info().Msg("database auto-migrations completed")

	e.GET("/health", handlers.HealthCheck(db))

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(db)
	followRepo := repositories.NewPostgresFollowRepository(db)
	tagRepo := repositories.NewPostgresTagRepository(db)
	ingredientRepo := repositories.NewPostgresIngredientRepository(db)
	recipeRepo := repositories.NewPostgresRecipeRepository(db)
	favoriteRepo := repositories.NewPostgresFavoriteRepository(db)
	cartRepo := repositories.NewPostgresShoppingCartRepository(db)

	// --- Initialize Services ---
	guard := services.NewRelationshipGuard(userRepo, followRepo, favoriteRepo, cartRepo)
	recipeService := services.NewRecipeService(recipeRepo, tagRepo, ingredientRepo, followRepo, favoriteRepo, cartRepo, guard)
	shoppingService := services.NewShoppingListService(cartRepo)
	followService := services.NewFollowService(userRepo, followRepo, recipeRepo, guard)
	userService := services.NewUserService(userRepo, followRepo)
	catalogService := services.NewCatalogService(tagRepo, ingredientRepo)

	// Anonymous callers may read; handlers that write require a verified token.
	// A verified caller seen for the first time gets a user row from its claims.
	api := e.Group("/api")
	api.Use(
		middleware.OptionalJWTAuthMiddleware(cfg.Auth.JWTSecret),
		middleware.ProvisionUser(userService),
	)

	handlers.NewCatalogHandler(catalogService).RegisterCatalogRoutes(api)

	recipeHandler := handlers.NewRecipeHandler(recipeService, shoppingService, cfg.Server.PublicHost)
	recipeHandler.RegisterRecipeRoutes(api)
	recipeHandler.RegisterShortLinkRoutes(e.Group("/s"))

	handlers.NewFollowHandler(followService).RegisterFollowRoutes(api)
	handlers.NewUserHandler(userService, followService).RegisterProfileRoutes(api)

	logger.Info().Int("routes", len(e.Routes())).Msg("routes configured")
	return nil
}
