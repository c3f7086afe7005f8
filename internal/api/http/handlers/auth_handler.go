package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/notes-auth-service/internal/api/dto"
	"github.com/spec-kit/notes-auth-service/internal/auth"
	"github.com/spec-kit/notes-auth-service/internal/domain"
	"github.com/spec-kit/notes-auth-service/internal/ratelimit"
	"github.com/spec-kit/notes-auth-service/internal/service"
	apperrors "github.com/spec-kit/notes-auth-service/pkg/util/errorutil"
)

// AuthHandler exposes the signup, login and refresh endpoints.
type AuthHandler struct {
	auth    *service.AuthService
	limiter *ratelimit.LoginLimiter
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, limiter *ratelimit.LoginLimiter) *AuthHandler {
	return &AuthHandler{auth: authService, limiter: limiter}
}

// Signup handles POST /api/v1/auth/signup.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Username == "" || req.Password == "" || req.Email == "" {
		return fiber.NewError(http.StatusBadRequest, "username, password, email required")
	}

	permissions, err := parsePermissions(req.Permissions)
	if err != nil {
		return err
	}

	user, pair, err := h.auth.Signup(c.Context(), service.SignupInput{
		Username:    req.Username,
		Password:    req.Password,
		Email:       req.Email,
		Permissions: permissions,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": dto.NewAuthData(user, pair),
	})
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Username == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "username and password required")
	}

	if !h.limiter.Allow(c.Context(), req.Username) {
		return apperrors.NewTooManyRequests("Too many login attempts")
	}

	user, pair, err := h.auth.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": dto.NewAuthData(user, pair),
	})
}

// Refresh handles POST /api/v1/auth/refresh-token. It takes the refresh token
// from the Authorization header and returns a new access token only.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	tokenStr, err := auth.BearerToken(c.Get(fiber.HeaderAuthorization))
	if err != nil {
		return service.ErrTokenNotFound
	}

	record, err := h.auth.Refresh(c.Context(), tokenStr)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"access_token": dto.NewTokenInfo(*record),
		},
	})
}

func parsePermissions(values []string) ([]domain.Permission, error) {
	permissions := make([]domain.Permission, 0, len(values))
	for _, v := range values {
		p := domain.Permission(v)
		if !domain.ValidPermission(p) {
			return nil, apperrors.NewValidationError("unknown permission", map[string]any{"permission": v})
		}
		permissions = append(permissions, p)
	}
	return permissions, nil
}
