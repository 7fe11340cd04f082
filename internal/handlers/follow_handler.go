package handlers

import (
	"net/http"
	"strconv"

	"github.com/anonto42/foodgram/backend/internal/middleware"
	"github.com/anonto42/foodgram/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FollowHandler handles subscribe/unsubscribe HTTP requests
type FollowHandler struct {
	followService *services.FollowService
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followService *services.FollowService) *FollowHandler {
	return &FollowHandler{followService: followService}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.GET("/users/subscriptions", h.ListSubscriptions, middleware.RequireAuth)
	g.POST("/users/:id/subscribe", h.FollowUser, middleware.RequireAuth)
	g.DELETE("/users/:id/subscribe", h.UnfollowUser, middleware.RequireAuth)
}

// FollowUser follows a user and returns them with a preview of their recipes
func (h *FollowHandler) FollowUser(c echo.Context) error {
	targetID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	limit, err := recipesLimit(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	currentUserID := middleware.UserID(c)
	if _, err := h.followService.Follow(ctx, currentUserID, targetID); err != nil {
		return toHTTPError(c, err)
	}
	sub, err := h.followService.GetSubscription(ctx, currentUserID, targetID, limit)
	if err != nil {
		return toHTTPError(c, err)
	}
	return ok(c, http.StatusCreated, sub)
}

// UnfollowUser unfollows a user
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	targetID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.followService.Unfollow(c.Request().Context(), middleware.UserID(c), targetID); err != nil {
		return toHTTPError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListSubscriptions lists the users the current user follows
func (h *FollowHandler) ListSubscriptions(c echo.Context) error {
	limit, err := recipesLimit(c)
	if err != nil {
		return err
	}
	subs, err := h.followService.ListSubscriptions(c.Request().Context(), middleware.UserID(c), limit)
	if err != nil {
		return toHTTPError(c, err)
	}
	return ok(c, http.StatusOK, subs)
}

func recipesLimit(c echo.Context) (int, error) {
	raw := c.QueryParam("recipes_limit")
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid recipes_limit")
	}
	return limit, nil
}
