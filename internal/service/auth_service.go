package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quiz-arena/internal/config"
	"quiz-arena/internal/domain"
	"quiz-arena/internal/dto"
	"quiz-arena/internal/logger"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// TokenTypeAccess is the only token type accepted on API routes.
const TokenTypeAccess = "access"

var ErrInvalidJWTToken = errors.New("invalid jwt token")

// AuthService validates bearer tokens issued by the identity provider. It can
// also mint tokens for operator tooling and tests.
type AuthService interface {
	ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
	CreateJWT(ctx context.Context, userID string, role domain.Role, ttl time.Duration, tokenType string) (string, error)
}

type authServiceImpl struct {
	jwtCfg config.JWTConfig
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(jwtCfg config.JWTConfig) (AuthService, error) {
	if jwtCfg.SecretKey == "" {
		return nil, errors.New("jwt secret key is not configured")
	}
	return &authServiceImpl{jwtCfg: jwtCfg}, nil
}

func (s *authServiceImpl) CreateJWT(ctx context.Context, userID string, role domain.Role, ttl time.Duration, tokenType string) (string, error) {
	now := time.Now()
	claims := dto.AuthClaims{
		UserID:    userID,
		Role:      string(role),
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Subject:   userID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtCfg.SecretKey))
}

func tokenSnippet(tokenString string) string {
	return tokenString[:min(len(tokenString), 20)] + "..."
}

func (s *authServiceImpl) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &dto.AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtCfg.SecretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			logger.Get().Warn("JWT token expired", zap.Error(err), zap.String("token_snippet", tokenSnippet(tokenString)))
		} else {
			logger.Get().Warn("JWT validation failed", zap.Error(err), zap.String("token_snippet", tokenSnippet(tokenString)))
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidJWTToken, err)
	}

	claims, ok := token.Claims.(*dto.AuthClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidJWTToken
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("%w: missing user_id", ErrInvalidJWTToken)
	}
	if claims.Role == "" {
		claims.Role = string(domain.RoleStudent)
	}
	return claims, nil
}
