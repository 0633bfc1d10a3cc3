package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DB_TYPE", "sqlite")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "nhtransport.db", cfg.SQLitePath)
	assert.Equal(t, 300, cfg.RateLimitPerMin)
	assert.Equal(t, 30*time.Second, cfg.ChromeTimeout)
	assert.False(t, cfg.R2.Enabled())
}

func TestLoadConfigValidation(t *testing.T) {
	t.Chdir(t.TempDir())

	t.Run("postgres needs url", func(t *testing.T) {
		t.Setenv("DB_TYPE", "postgres")
		t.Setenv("POSTGRES_URL", "")
		_, err := LoadConfig()
		assert.ErrorContains(t, err, "POSTGRES_URL")
	})

	t.Run("unknown backend", func(t *testing.T) {
		t.Setenv("DB_TYPE", "oracle")
		_, err := LoadConfig()
		assert.ErrorContains(t, err, "not supported")
	})

	t.Run("backend name is normalised", func(t *testing.T) {
		t.Setenv("DB_TYPE", "PostgreSQL")
		t.Setenv("POSTGRES_URL", "postgres://localhost/nh")
		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "postgres", cfg.DBType)
		assert.Equal(t, 5, cfg.PGMaxOpenConns)
	})

	t.Run("r2 needs public url", func(t *testing.T) {
		t.Setenv("DB_TYPE", "sqlite")
		t.Setenv("R2_BUCKET", "invoices")
		t.Setenv("R2_PUBLIC_URL", "")
		_, err := LoadConfig()
		assert.ErrorContains(t, err, "R2_PUBLIC_URL")
	})
}
