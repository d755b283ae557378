package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, 5*time.Hour, cfg.JWT.AccessExpiration)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.RefreshExpiration)
	assert.Equal(t, time.Hour, cfg.OTP.Expiration)
	assert.Equal(t, 5, cfg.OTP.MaxAttempts)
	assert.True(t, cfg.Cookie.Secure)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("OTP_EXPIRATION", "15m")
	t.Setenv("UPLOAD_MAX_SIZE", "1024")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 15*time.Minute, cfg.OTP.Expiration)
	assert.Equal(t, int64(1024), cfg.Upload.MaxSize)
}

func TestLoadConfig_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("DB_PORT", "not-a-number")
	t.Setenv("COOKIE_SECURE", "maybe")
	t.Setenv("JWT_ACCESS_EXPIRATION", "soon")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 5432, cfg.Database.Port)
	assert.True(t, cfg.Cookie.Secure)
	assert.Equal(t, 5*time.Hour, cfg.JWT.AccessExpiration)
}

func TestLoadConfig_ProductionRejectsSharedSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_ACCESS_SECRET", "same")
	t.Setenv("JWT_REFRESH_SECRET", "same")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestConfig_Addresses(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", Name: "n", SSLMode: "disable"},
		Redis:    RedisConfig{Host: "cache", Port: 6379},
	}

	assert.Equal(t, "host=db port=5432 user=u password=p dbname=n sslmode=disable", cfg.DatabaseConnectionString())
	assert.Equal(t, "cache:6379", cfg.RedisAddress())
}
