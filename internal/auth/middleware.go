package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apperrors "github.com/spec-kit/notes-auth-service/pkg/util/errorutil"
)

const claimsKey = "auth_claims"

// Middleware guards protected routes with access-token verification.
type Middleware struct {
	tokens *TokenManager
	logger *zap.Logger
}

// NewMiddleware constructs the guard.
func NewMiddleware(tokens *TokenManager, logger *zap.Logger) *Middleware {
	return &Middleware{tokens: tokens, logger: logger}
}

// Handle verifies the bearer access token and attaches the claims to the
// request context. Expired and invalid tokens are logged distinctly but the
// response never reveals which failure occurred.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	tokenStr, err := BearerToken(c.Get(fiber.HeaderAuthorization))
	if err != nil {
		m.logger.Info("authenticate failed", zap.String("path", c.Path()), zap.Error(err))
		return apperrors.NewUnauthorized("Authentication failed")
	}

	claims, err := m.tokens.VerifyAccessToken(tokenStr)
	if err != nil {
		if errors.Is(err, ErrExpiredToken) {
			m.logger.Info("access token expired", zap.String("path", c.Path()))
		} else {
			m.logger.Info("authenticate failed", zap.String("path", c.Path()), zap.Error(err))
		}
		return apperrors.NewUnauthorized("Authentication failed")
	}

	c.Locals(claimsKey, claims)
	return c.Next()
}

// ClaimsFromContext retrieves the verified claims attached by Handle.
func ClaimsFromContext(c *fiber.Ctx) (*Claims, bool) {
	val := c.Locals(claimsKey)
	if val == nil {
		return nil, false
	}
	claims, ok := val.(*Claims)
	return claims, ok
}
