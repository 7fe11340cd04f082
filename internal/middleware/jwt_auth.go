package middleware

import (
	"context"
	"errors"
	"strings"

	apperrors "github.com/anonto42/foodgram/backend/internal/errors"
	"github.com/anonto42/foodgram/backend/internal/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

const claimsKey = "user"

// UserProvisioner stores the account described by verified token claims.
type UserProvisioner interface {
	EnsureUser(ctx context.Context, claims *models.JwtCustomClaims) (*models.User, error)
}

// OptionalJWTAuthMiddleware stores the token claims in the context when an
// Authorization header is present. Requests without one pass through as
// anonymous; a malformed or invalid token is rejected.
func OptionalJWTAuthMiddleware(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return next(c)
			}
			claims, err := parseBearer(authHeader, secret)
			if err != nil {
				return err
			}
			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}

// ProvisionUser creates the caller's account on its first verified request.
// It must run after OptionalJWTAuthMiddleware.
func ProvisionUser(users UserProvisioner) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if claims := Claims(c); claims != nil {
				if _, err := users.EnsureUser(c.Request().Context(), claims); err != nil {
					return err
				}
			}
			return next(c)
		}
	}
}

// RequireAuth rejects requests that carry no verified claims.
func RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if UserID(c) == 0 {
			return apperrors.Unauthorized("authentication credentials were not provided")
		}
		return next(c)
	}
}

// Claims returns the verified token claims, or nil for anonymous requests.
func Claims(c echo.Context) *models.JwtCustomClaims {
	claims, _ := c.Get(claimsKey).(*models.JwtCustomClaims)
	return claims
}

// UserID returns the authenticated user's ID, or 0 for anonymous requests.
func UserID(c echo.Context) uint {
	if claims := Claims(c); claims != nil {
		return claims.UserID
	}
	return 0
}

func parseBearer(authHeader, secret string) (*models.JwtCustomClaims, error) {
	// Expecting "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return nil, apperrors.Unauthorized("invalid authorization header format")
	}

	claims := &models.JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrSignatureInvalid) {
			return nil, apperrors.Unauthorized("invalid token signature").WithCause(err)
		}
		return nil, apperrors.Unauthorized("invalid token").WithCause(err)
	}
	if !token.Valid || claims.UserID == 0 {
		return nil, apperrors.Unauthorized("invalid token")
	}
	return claims, nil
}
