package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppliesDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("ITEMS_PER_PAGE", "")
	t.Setenv("JWT_LIFETIME", "")
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("BCRYPT_COST", "")
	t.Setenv("VERIFY_EMAIL_MX", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":3900", cfg.HTTPAddr)
	assert.Equal(t, 2, cfg.ItemsPerPage)
	assert.Equal(t, 720*time.Hour, cfg.JWTLifetime)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.False(t, cfg.VerifyEmailMX)
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestDatabaseDSN(t *testing.T) {
	cfg := &Config{
		DBHost:     "localhost",
		DBPort:     "5432",
		DBUser:     "app",
		DBPassword: "secret",
		DBName:     "social",
	}

	assert.Equal(t,
		"host=localhost port=5432 user=app password=secret dbname=social sslmode=disable",
		cfg.DatabaseDSN())
}
