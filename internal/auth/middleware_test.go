package auth_test

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/notes-auth-service/internal/api/http"
	"github.com/spec-kit/notes-auth-service/internal/auth"
	"github.com/spec-kit/notes-auth-service/internal/config"
	"github.com/spec-kit/notes-auth-service/internal/observability"
)

func newGuardedApp(t *testing.T) (*fiber.App, *auth.TokenManager) {
	t.Helper()

	tm := auth.NewTokenManager(config.AuthConfig{
		AccessTokenSecret:     "access-secret",
		RefreshTokenSecret:    "refresh-secret",
		AccessTokenTTLMinutes: 60,
		RefreshTokenTTLDays:   30,
	})
	logger := zap.NewNop()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, observability.NewMetrics(), 0)

	guard := auth.NewMiddleware(tm, logger)
	app.Get("/protected", guard.Handle, func(c *fiber.Ctx) error {
		claims, ok := auth.ClaimsFromContext(c)
		require.True(t, ok)
		return c.JSON(fiber.Map{"username": claims.Username})
	})

	return app, tm
}

func TestGuard_ValidToken(t *testing.T) {
	t.Parallel()
	app, tm := newGuardedApp(t)

	token, _, err := tm.IssueAccessToken("alice")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var payload struct {
		Username string `json:"username"`
	}
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, "alice", payload.Username)
}

func TestGuard_RejectsBeforeHandler(t *testing.T) {
	t.Parallel()
	app, tm := newGuardedApp(t)

	refreshToken, _, err := tm.IssueRefreshToken("alice")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "missing segment", header: "Bearer"},
		{name: "garbage token", header: "Bearer not.a.jwt"},
		{name: "refresh token on access route", header: "Bearer " + refreshToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, 401, resp.StatusCode)

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			var payload struct {
				Error struct {
					Message string `json:"message"`
				} `json:"error"`
			}
			require.NoError(t, json.Unmarshal(body, &payload))
			assert.Equal(t, "Authentication failed", payload.Error.Message)
		})
	}
}
