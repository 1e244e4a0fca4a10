package middleware

import (
	"fmt"
	"strings"

	"quiz-arena/internal/domain"
	"quiz-arena/internal/logger"
	"quiz-arena/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	AuthorizationHeader = "Authorization"
	BearerSchema        = "Bearer "
	UserIDKey           = "userID" // Key for storing UserID in fiber.Ctx locals
	RoleKey             = "role"
)

// Protected is a middleware function that protects routes by requiring a valid JWT.
// It validates the token using the provided AuthService and sets the userID and role in the context.
func Protected(authService service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(AuthorizationHeader)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "MISSING_AUTH_HEADER",
				Message: "Authorization header is missing",
				Status:  fiber.StatusUnauthorized,
			})
		}

		if !strings.HasPrefix(authHeader, BearerSchema) {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "INVALID_AUTH_SCHEME",
				Message: "Authorization scheme is not Bearer",
				Status:  fiber.StatusUnauthorized,
			})
		}

		tokenString := strings.TrimPrefix(authHeader, BearerSchema)
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "EMPTY_TOKEN",
				Message: "Token is empty",
				Status:  fiber.StatusUnauthorized,
			})
		}

		claims, err := authService.ValidateJWT(c.Context(), tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "INVALID_TOKEN",
				Message: err.Error(),
				Status:  fiber.StatusUnauthorized,
			})
		}

		if claims.TokenType != service.TokenTypeAccess {
			return c.Status(fiber.StatusForbidden).JSON(ErrorResponse{
				Code:    "INVALID_TOKEN_TYPE",
				Message: fmt.Sprintf("Invalid token type: expected access, got %s", claims.TokenType),
				Status:  fiber.StatusForbidden,
			})
		}

		role := domain.Role(claims.Role)
		if role != domain.RoleAdmin && role != domain.RoleStudent {
			return c.Status(fiber.StatusForbidden).JSON(ErrorResponse{
				Code:    string(domain.CodeForbidden),
				Message: fmt.Sprintf("Unknown role: %s", claims.Role),
				Status:  fiber.StatusForbidden,
			})
		}

		c.Locals(UserIDKey, claims.UserID)
		c.Locals(RoleKey, role)

		return c.Next()
	}
}

// AdminOnly must be mounted after Protected.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requester := RequesterFrom(c)
		if !requester.IsAdmin() {
			logger.Get().Warn("Admin route denied",
				zap.String("path", c.Path()),
				zap.String("userID", requester.UserID),
			)
			return domain.NewForbiddenError("Access denied")
		}
		return c.Next()
	}
}

// RequesterFrom reads the identity stored by Protected. It returns the zero
// Requester for unauthenticated requests.
func RequesterFrom(c *fiber.Ctx) domain.Requester {
	userID, _ := c.Locals(UserIDKey).(string)
	role, _ := c.Locals(RoleKey).(domain.Role)
	return domain.Requester{UserID: userID, Role: role}
}
