package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RequiresTokenSecrets(t *testing.T) {
	t.Setenv("AUTH_ACCESS_TOKEN_SECRET", "")
	t.Setenv("AUTH_REFRESH_TOKEN_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AUTH_ACCESS_TOKEN_SECRET")

	t.Setenv("AUTH_ACCESS_TOKEN_SECRET", "a")
	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AUTH_REFRESH_TOKEN_SECRET")
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("AUTH_ACCESS_TOKEN_SECRET", "access")
	t.Setenv("AUTH_REFRESH_TOKEN_SECRET", "refresh")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "notes-auth-service", cfg.App.Name)
	assert.Equal(t, 60, cfg.Auth.AccessTokenTTLMinutes)
	assert.Equal(t, 30, cfg.Auth.RefreshTokenTTLDays)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, time.Hour, cfg.Auth.AccessTokenTTL())
	assert.Equal(t, 30*24*time.Hour, cfg.Auth.RefreshTokenTTL())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("AUTH_ACCESS_TOKEN_SECRET", "access")
	t.Setenv("AUTH_REFRESH_TOKEN_SECRET", "refresh")
	t.Setenv("AUTH_ACCESS_TOKEN_TTL_MINUTES", "15")
	t.Setenv("AUTH_REFRESH_TOKEN_TTL_DAYS", "7")
	t.Setenv("APP_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 15*time.Minute, cfg.Auth.AccessTokenTTL())
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.RefreshTokenTTL())
	assert.Equal(t, "0.0.0.0:9090", cfg.App.Addr())
}
