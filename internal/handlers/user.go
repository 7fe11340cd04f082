package handlers

import (
	"net/http"

	"github.com/anonto42/foodgram/backend/internal/middleware"
	"github.com/anonto42/foodgram/backend/internal/models"
	"github.com/anonto42/foodgram/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// UserHandler handles user profile requests
type UserHandler struct {
	userService   *services.UserService
	followService *services.FollowService
}

func NewUserHandler(userService *services.UserService, followService *services.FollowService) *UserHandler {
	return &UserHandler{userService: userService, followService: followService}
}

func (h *UserHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/users", h.ListUsers)
	g.GET("/users/me", h.GetMe, middleware.RequireAuth)
	g.PUT("/users/me/avatar", h.SetAvatar, middleware.RequireAuth)
	g.DELETE("/users/me/avatar", h.DeleteAvatar, middleware.RequireAuth)
	g.GET("/users/:id", h.GetUser)
}

// ListUsers lists every user with the viewer's subscription flags
func (h *UserHandler) ListUsers(c echo.Context) error {
	profiles, err := h.userService.ListUsers(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return toHTTPError(c, err)
	}
	return ok(c, http.StatusOK, profiles)
}

// GetUser returns a profile with the viewer's subscription flag
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	profile, err := h.followService.GetUser(c.Request().Context(), id, middleware.UserID(c))
	if err != nil {
		return toHTTPError(c, err)
	}
	return ok(c, http.StatusOK, profile)
}

// GetMe returns the current user's profile
func (h *UserHandler) GetMe(c echo.Context) error {
	currentUserID := middleware.UserID(c)
	profile, err := h.followService.GetUser(c.Request().Context(), currentUserID, currentUserID)
	if err != nil {
		return toHTTPError(c, err)
	}
	return ok(c, http.StatusOK, profile)
}

// SetAvatar stores the avatar reference of the current user
func (h *UserHandler) SetAvatar(c echo.Context) error {
	var req models.AvatarRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return toHTTPError(c, err)
	}

	avatar, err := h.userService.SetAvatar(c.Request().Context(), middleware.UserID(c), req.Avatar)
	if err != nil {
		return toHTTPError(c, err)
	}
	return ok(c, http.StatusOK, echo.Map{"avatar": avatar})
}

// DeleteAvatar clears the avatar of the current user
func (h *UserHandler) DeleteAvatar(c echo.Context) error {
	if err := h.userService.ClearAvatar(c.Request().Context(), middleware.UserID(c)); err != nil {
		return toHTTPError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
