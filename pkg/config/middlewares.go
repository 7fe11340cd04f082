package config

import (
	"github.com/anonto42/foodgram/backend/pkg/logger"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func SetupMiddleware(e *echo.Echo) {
	e.Use(middleware.RequestID())
	e.Use(requestContextLogger)
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			event := logger.Ctx(c.Request().Context()).Info()
			if v.Error != nil {
				event = logger.Ctx(c.Request().Context()).Error().Err(v.Error)
			}
			event.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
}

// requestContextLogger stores a logger tagged with the request id in the
// request context.
func requestContextLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		l := logger.Logger().With().
			Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
			Logger()
		req := c.Request()
		c.SetRequest(req.WithContext(l.WithContext(req.Context())))
		return next(c)
	}
}
