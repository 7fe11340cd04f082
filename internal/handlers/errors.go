package handlers

import (
	"net/http"
	"strconv"

	apperrors "github.com/anonto42/foodgram/backend/internal/errors"
	"github.com/anonto42/foodgram/backend/pkg/logger"
	"github.com/labstack/echo/v4"
)

// ErrorHandler renders domain errors returned by middleware and handlers and
// leaves every other error to echo's default handler.
func ErrorHandler(e *echo.Echo) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var httpErr *echo.HTTPError
		if !apperrors.As(err, &httpErr) {
			if apperrors.Is(err, apperrors.ErrUnauthorized) {
				c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
			}
			err = toHTTPError(c, err)
		}
		e.DefaultHTTPErrorHandler(err, c)
	}
}

// toHTTPError maps a domain error to an echo.HTTPError. Unexpected errors are
// logged and reported as 500 without their cause.
func toHTTPError(c echo.Context, err error) error {
	var appErr *apperrors.Error
	if !apperrors.As(err, &appErr) {
		appErr = apperrors.Internal("internal server error", err)
	}

	if apperrors.Is(appErr, apperrors.ErrInternal) {
		logger.Ctx(c.Request().Context()).Error().Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg("request failed")
		return echo.NewHTTPError(http.StatusInternalServerError, echo.Map{
			"success": false,
			"code":    apperrors.CodeInternal,
			"message": "internal server error",
		})
	}

	body := echo.Map{"success": false, "code": appErr.Code, "message": appErr.Message}
	if appErr.Details != nil {
		body["details"] = appErr.Details
	}
	return echo.NewHTTPError(appErr.HTTPStatus(), body)
}

func parseID(c echo.Context, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+param)
	}
	return uint(id), nil
}

func ok(c echo.Context, status int, data any) error {
	return c.JSON(status, echo.Map{"success": true, "data": data})
}
