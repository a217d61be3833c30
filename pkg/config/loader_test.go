package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/presence/pkg/config"
)

type serverConfig struct {
	Port     int           `env:"PORT" envDefault:"5000"`
	Secret   string        `env:"SECRET_KEY"`
	Timeout  time.Duration `env:"TIMEOUT" envDefault:"3s"`
	Required string        `env:"REQUIRED_VALUE,required"`
}

func TestLoad(t *testing.T) {
	t.Run("defaults and overrides", func(t *testing.T) {
		t.Setenv("REQUIRED_VALUE", "x")
		t.Setenv("PORT", "8081")

		var cfg serverConfig
		require.NoError(t, config.Load(&cfg, config.WithEnvFiles()))
		assert.Equal(t, 8081, cfg.Port)
		assert.Equal(t, 3*time.Second, cfg.Timeout)
		assert.Empty(t, cfg.Secret)
	})

	t.Run("missing required", func(t *testing.T) {
		os.Unsetenv("REQUIRED_VALUE")

		var cfg serverConfig
		err := config.Load(&cfg, config.WithEnvFiles())
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("prefix", func(t *testing.T) {
		t.Setenv("APP_REQUIRED_VALUE", "prefixed")

		var cfg serverConfig
		require.NoError(t, config.Load(&cfg, config.WithEnvFiles(), config.WithPrefix("APP_")))
		assert.Equal(t, "prefixed", cfg.Required)
	})

	t.Run("dotenv file does not override environment", func(t *testing.T) {
		dir := t.TempDir()
		file := filepath.Join(dir, "test.env")
		require.NoError(t, os.WriteFile(file, []byte("REQUIRED_VALUE=from-file\nSECRET_KEY=file-secret\n"), 0o600))
		t.Setenv("REQUIRED_VALUE", "from-env")
		t.Setenv("SECRET_KEY", "")
		os.Unsetenv("SECRET_KEY")

		var cfg serverConfig
		require.NoError(t, config.Load(&cfg, config.WithEnvFiles(file, filepath.Join(dir, "missing.env"))))
		assert.Equal(t, "from-env", cfg.Required)
		assert.Equal(t, "file-secret", cfg.Secret)
	})

	t.Run("nil pointer", func(t *testing.T) {
		var cfg *serverConfig
		assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
	})
}

func TestMustLoad(t *testing.T) {
	os.Unsetenv("REQUIRED_VALUE")
	var cfg serverConfig
	assert.Panics(t, func() { config.MustLoad(&cfg, config.WithEnvFiles()) })
}
