package middleware_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"quiz-arena/internal/domain"
	"quiz-arena/internal/dto"
	"quiz-arena/internal/middleware"
	"quiz-arena/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ManualMockAuthService is a hand-written AuthService for middleware tests.
type ManualMockAuthService struct {
	ValidateJWTFunc func(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
}

func (m *ManualMockAuthService) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	if m.ValidateJWTFunc != nil {
		return m.ValidateJWTFunc(ctx, tokenString)
	}
	return nil, errors.New("ValidateJWTFunc not set on mock")
}

func (m *ManualMockAuthService) CreateJWT(ctx context.Context, userID string, role domain.Role, ttl time.Duration, tokenType string) (string, error) {
	panic("not implemented in mock")
}

func claimsFor(userID, role, tokenType string) func(context.Context, string) (*dto.AuthClaims, error) {
	return func(context.Context, string) (*dto.AuthClaims, error) {
		return &dto.AuthClaims{UserID: userID, Role: role, TokenType: tokenType}, nil
	}
}

func TestProtected(t *testing.T) {
	tests := []struct {
		name           string
		authHeader     string
		validate       func(context.Context, string) (*dto.AuthClaims, error)
		expectedStatus int
		expectedCode   string
		expectedUser   string
		expectedRole   domain.Role
	}{
		{
			name:           "No Auth Header",
			expectedStatus: fiber.StatusUnauthorized,
			expectedCode:   "MISSING_AUTH_HEADER",
		},
		{
			name:           "Malformed Auth Header - No Bearer",
			authHeader:     "Basic some_token",
			expectedStatus: fiber.StatusUnauthorized,
			expectedCode:   "INVALID_AUTH_SCHEME",
		},
		{
			name:           "Bearer No Token",
			authHeader:     "Bearer ",
			expectedStatus: fiber.StatusUnauthorized,
			expectedCode:   "EMPTY_TOKEN",
		},
		{
			name:       "Invalid Token",
			authHeader: "Bearer invalid_token",
			validate: func(_ context.Context, tokenString string) (*dto.AuthClaims, error) {
				assert.Equal(t, "invalid_token", tokenString)
				return nil, service.ErrInvalidJWTToken
			},
			expectedStatus: fiber.StatusUnauthorized,
			expectedCode:   "INVALID_TOKEN",
		},
		{
			name:           "Refresh Token instead of Access",
			authHeader:     "Bearer refresh",
			validate:       claimsFor("user456", "student", "refresh"),
			expectedStatus: fiber.StatusForbidden,
			expectedCode:   "INVALID_TOKEN_TYPE",
		},
		{
			name:           "Unknown Role",
			authHeader:     "Bearer odd",
			validate:       claimsFor("user456", "guest", service.TokenTypeAccess),
			expectedStatus: fiber.StatusForbidden,
			expectedCode:   string(domain.CodeForbidden),
		},
		{
			name:           "Valid Student Token",
			authHeader:     "Bearer good",
			validate:       claimsFor("user123", "student", service.TokenTypeAccess),
			expectedStatus: fiber.StatusOK,
			expectedUser:   "user123",
			expectedRole:   domain.RoleStudent,
		},
		{
			name:           "Valid Admin Token",
			authHeader:     "Bearer good",
			validate:       claimsFor("adm", "admin", service.TokenTypeAccess),
			expectedStatus: fiber.StatusOK,
			expectedUser:   "adm",
			expectedRole:   domain.RoleAdmin,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			authSvc := &ManualMockAuthService{ValidateJWTFunc: tc.validate}

			var got domain.Requester
			app.Get("/protected", middleware.Protected(authSvc), func(c *fiber.Ctx) error {
				got = middleware.RequesterFrom(c)
				return c.SendStatus(fiber.StatusOK)
			})

			req := httptest.NewRequest("GET", "/protected", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tc.expectedStatus, resp.StatusCode)

			if tc.expectedCode != "" {
				body := decodeError(t, resp)
				assert.Equal(t, tc.expectedCode, body.Code)
			}
			assert.Equal(t, tc.expectedUser, got.UserID)
			assert.Equal(t, tc.expectedRole, got.Role)
		})
	}
}

func TestAdminOnly(t *testing.T) {
	tests := []struct {
		name           string
		role           string
		expectedStatus int
	}{
		{name: "admin passes", role: "admin", expectedStatus: fiber.StatusOK},
		{name: "student rejected", role: "student", expectedStatus: fiber.StatusForbidden},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
			authSvc := &ManualMockAuthService{ValidateJWTFunc: claimsFor("u1", tc.role, service.TokenTypeAccess)}
			app.Get("/admin", middleware.Protected(authSvc), middleware.AdminOnly(), func(c *fiber.Ctx) error {
				return c.SendStatus(fiber.StatusOK)
			})

			req := httptest.NewRequest("GET", "/admin", nil)
			req.Header.Set("Authorization", "Bearer token")
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tc.expectedStatus, resp.StatusCode)
		})
	}
}

func TestRequesterFrom_Anonymous(t *testing.T) {
	app := fiber.New()
	var got domain.Requester
	app.Get("/", func(c *fiber.Ctx) error {
		got = middleware.RequesterFrom(c)
		return nil
	})
	_, err := app.Test(httptest.NewRequest("GET", "/", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, domain.Requester{}, got)
	assert.False(t, got.IsAdmin())
}
