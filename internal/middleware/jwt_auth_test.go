package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apperrors "github.com/anonto42/foodgram/backend/internal/errors"
	"github.com/anonto42/foodgram/backend/internal/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, userID uint, expires time.Time) string {
	t.Helper()
	claims := &models.JwtCustomClaims{
		UserID: userID,
		Email:  "alice@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func serve(t *testing.T, authHeader string, mw ...echo.MiddlewareFunc) (*httptest.ResponseRecorder, uint) {
	t.Helper()
	e := echo.New()
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		_ = c.String(apperrors.CodeOf(err).HTTPStatus(), err.Error())
	}
	var seen uint
	e.GET("/", func(c echo.Context) error {
		seen = UserID(c)
		return c.NoContent(http.StatusOK)
	}, mw...)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec, seen
}

func TestOptionalJWTAuth(t *testing.T) {
	valid := signToken(t, testSecret, 7, time.Now().Add(time.Hour))
	expired := signToken(t, testSecret, 7, time.Now().Add(-time.Hour))
	forged := signToken(t, "other", 7, time.Now().Add(time.Hour))

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantUser   uint
	}{
		{"anonymous", "", http.StatusOK, 0},
		{"valid", "Bearer " + valid, http.StatusOK, 7},
		{"expired", "Bearer " + expired, http.StatusUnauthorized, 0},
		{"forged", "Bearer " + forged, http.StatusUnauthorized, 0},
		{"bad scheme", "Token " + valid, http.StatusUnauthorized, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, user := serve(t, tt.header, OptionalJWTAuthMiddleware(testSecret))
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantUser, user)
		})
	}
}

func TestRequireAuth(t *testing.T) {
	optional := OptionalJWTAuthMiddleware(testSecret)

	rec, _ := serve(t, "", optional, RequireAuth)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "credentials were not provided")

	rec, user := serve(t, "Bearer "+signToken(t, testSecret, 3, time.Now().Add(time.Hour)), optional, RequireAuth)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint(3), user)
}

type recordingProvisioner struct {
	seen []uint
	err  error
}

func (p *recordingProvisioner) EnsureUser(_ context.Context, claims *models.JwtCustomClaims) (*models.User, error) {
	p.seen = append(p.seen, claims.UserID)
	if p.err != nil {
		return nil, p.err
	}
	return &models.User{ID: claims.UserID, Email: claims.Email}, nil
}

func TestProvisionUser(t *testing.T) {
	optional := OptionalJWTAuthMiddleware(testSecret)
	valid := "Bearer " + signToken(t, testSecret, 5, time.Now().Add(time.Hour))

	users := &recordingProvisioner{}
	rec, _ := serve(t, "", optional, ProvisionUser(users))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, users.seen)

	rec, user := serve(t, valid, optional, ProvisionUser(users))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint(5), user)
	assert.Equal(t, []uint{5}, users.seen)

	failing := &recordingProvisioner{err: apperrors.Unauthorized("token carries no email claim")}
	rec, _ = serve(t, valid, optional, ProvisionUser(failing))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestParseBearer_ReturnsUnauthorized(t *testing.T) {
	expired := signToken(t, testSecret, 7, time.Now().Add(-time.Hour))

	_, err := parseBearer("Bearer "+expired, testSecret)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	_, err = parseBearer("Token "+expired, testSecret)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}
