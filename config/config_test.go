package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DB_HOST", "db")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Contains(t, cfg.DatabaseURL, "host=db")
	assert.Contains(t, cfg.DatabaseURL, "dbname=listener_db")
	assert.Equal(t, 1440*time.Minute, cfg.JWTExpiration)
	assert.Equal(t, []byte("test-secret"), cfg.JWTSecret)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, "0.0.0.0:8000", cfg.Addr())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("API_PORT", "9001")
	t.Setenv("JWT_EXPIRATION", "30")
	t.Setenv("DATABASE_URL", "postgres://x")
	t.Setenv("API_CORS_ORIGINS", "http://a.test, http://b.test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9001, cfg.Port)
	assert.Equal(t, 30*time.Minute, cfg.JWTExpiration)
	assert.Equal(t, "postgres://x", cfg.DatabaseURL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
}

func TestLoadRejectsUnknownAlgorithm(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("JWT_ALGORITHM", "RS256")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRequiresSecretInProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadGeneratesDevSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Len(t, cfg.JWTSecret, 64)
}
