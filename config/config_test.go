package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432")

		cfg, err := Load(viper.New())
		require.NoError(t, err)

		assert.Equal(t, StoreDriverPostgres, cfg.StoreDriver)
		assert.Equal(t, ":8080", cfg.HTTPAddr)
		assert.Equal(t, 5, cfg.MaxAwardRetries)
		assert.Equal(t, 10, cfg.LeaderboardSize)
		assert.False(t, cfg.NATSEnabled)
		assert.Equal(t, "console", cfg.OTelExporterType)
		assert.Equal(t, "development", cfg.Environment)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("STORE_DRIVER", "SQLite")
		t.Setenv("SQLITE_PATH", "/tmp/points.db")
		t.Setenv("MAX_AWARD_RETRIES", "9")
		t.Setenv("LEADERBOARD_SIZE", "25")
		t.Setenv("NATS_ENABLED", "true")

		cfg, err := Load(viper.New())
		require.NoError(t, err)

		assert.Equal(t, StoreDriverSQLite, cfg.StoreDriver)
		assert.Equal(t, "/tmp/points.db", cfg.SQLitePath)
		assert.Equal(t, 9, cfg.MaxAwardRetries)
		assert.Equal(t, 25, cfg.LeaderboardSize)
		assert.True(t, cfg.NATSEnabled)
	})

	t.Run("postgres requires url", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "")
		t.Setenv("ENVIRONMENT", "production")

		_, err := Load(viper.New())
		assert.Error(t, err)
	})

	t.Run("unknown driver", func(t *testing.T) {
		t.Setenv("STORE_DRIVER", "mongo")

		_, err := Load(viper.New())
		assert.ErrorContains(t, err, "unknown STORE_DRIVER")
	})

	t.Run("discord token needs channel", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://localhost")
		t.Setenv("DISCORD_TOKEN", "token")
		t.Setenv("DISCORD_CHANNEL_ID", "")

		_, err := Load(viper.New())
		assert.ErrorContains(t, err, "DISCORD_CHANNEL_ID")
	})
}

func TestConfig_GetDatabaseURL(t *testing.T) {
	cfg := &Config{DatabaseURL: "postgres://u:p@db:5432", DatabaseName: "points"}
	assert.Equal(t, "postgres://u:p@db:5432/points?sslmode=disable", cfg.GetDatabaseURL())
}

func TestSetTestConfig(t *testing.T) {
	t.Cleanup(ResetConfig)

	testCfg := NewTestConfig()
	testCfg.LeaderboardSize = 3
	SetTestConfig(testCfg)

	assert.Same(t, testCfg, Get())
}
