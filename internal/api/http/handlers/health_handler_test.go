package handlers_test

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/notes-auth-service/internal/api/http/handlers"
	"github.com/spec-kit/notes-auth-service/internal/observability"
)

func TestHealthHandler_LiveReportsServingStats(t *testing.T) {
	t.Parallel()

	metrics := observability.NewMetrics()
	metrics.RecordRequest("/api/v1/auth/login", "POST", 200, 5*time.Millisecond)
	metrics.RecordRequest("/api/v1/auth/login", "POST", 401, 3*time.Millisecond)
	metrics.RecordError("/api/v1/auth/login", "POST", "UNAUTHORIZED")

	handler := handlers.NewHealthHandler("notes-auth-service", "1.0.0", nil, nil, metrics)

	app := fiber.New()
	app.Get("/health/live", handler.Live)

	resp, err := app.Test(httptest.NewRequest("GET", "/health/live", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body struct {
		Status         string `json:"status"`
		Service        string `json:"service"`
		Version        string `json:"version"`
		Uptime         string `json:"uptime"`
		RequestsServed int64  `json:"requests_served"`
		RequestsFailed int64  `json:"requests_failed"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))

	assert.Equal(t, "alive", body.Status)
	assert.Equal(t, "notes-auth-service", body.Service)
	assert.Equal(t, "1.0.0", body.Version)
	assert.NotEmpty(t, body.Uptime)
	assert.Equal(t, int64(2), body.RequestsServed)
	assert.Equal(t, int64(1), body.RequestsFailed)
}
