package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "retailflow-backend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, 24*time.Hour, cfg.JWT.Expiration)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 15*time.Second, cfg.HTTP.ReadTimeout)
	assert.False(t, cfg.Alert.Enabled)
	assert.Equal(t, "retailflow:alerts:low-stock", cfg.Alert.Channel)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("RETAIL_APP_PORT", "9090")
	t.Setenv("RETAIL_DATABASE_PASSWORD", "secret")
	t.Setenv("RETAIL_ALERT_ENABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, "secret", cfg.Database.Password)
	assert.True(t, cfg.Alert.Enabled)
}

func TestValidateProduction(t *testing.T) {
	base := func() *Config {
		return &Config{
			App: AppConfig{Env: "production"},
			Database: DatabaseConfig{
				Password:     "pw",
				SSLMode:      "require",
				MaxOpenConns: 10,
				MaxIdleConns: 5,
			},
			JWT: JWTConfig{Secret: "0123456789abcdef0123456789abcdef"},
		}
	}

	t.Run("valid production config passes", func(t *testing.T) {
		assert.NoError(t, base().validate())
	})

	t.Run("rejects missing jwt secret", func(t *testing.T) {
		cfg := base()
		cfg.JWT.Secret = ""
		assert.Error(t, cfg.validate())
	})

	t.Run("rejects short jwt secret", func(t *testing.T) {
		cfg := base()
		cfg.JWT.Secret = "short"
		assert.Error(t, cfg.validate())
	})

	t.Run("rejects sslmode disable", func(t *testing.T) {
		cfg := base()
		cfg.Database.SSLMode = "disable"
		assert.Error(t, cfg.validate())
	})

	t.Run("rejects idle conns above open conns", func(t *testing.T) {
		cfg := base()
		cfg.Database.MaxIdleConns = 20
		assert.Error(t, cfg.validate())
	})
}

func TestDSNEscapesCredentials(t *testing.T) {
	d := DatabaseConfig{
		Host:     "db.internal",
		Port:     5432,
		User:     "app",
		Password: "p@ss/w:rd",
		DBName:   "retailflow",
		SSLMode:  "require",
	}

	dsn := d.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "db.internal:5432")
	assert.Contains(t, dsn, "sslmode=require")
	assert.NotContains(t, dsn, "p@ss/w:rd")
}
