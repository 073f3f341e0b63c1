package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/bakerysim-go/internal/infrastructure/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	cfg, err := config.LoadConfig(writeConfig(t, "{}\n"))
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "./data/bakery.db", cfg.Database.Path)
	assert.Equal(t, 300000, cfg.Game.StartingCurrency)
	assert.Equal(t, 50, cfg.Game.StartingSatisfaction)
	assert.Equal(t, 50, cfg.Game.StartingReputation)
	assert.Equal(t, 7, cfg.Game.EventsPerRound)
	assert.Equal(t, 3, cfg.Game.Opponents())
	assert.Equal(t, "INFO", cfg.Logging.GameLogLevel())
	assert.True(t, cfg.Logging.PersistEnabled())
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, 9090, cfg.Metrics.Port)
}

func TestLoadConfig_FileValues(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	path := writeConfig(t, `
game:
  starting_currency: 100000
  opponent_count: 0
  seed: 42
logging:
  level: warn
  persist: false
content:
  events_path: ./events.json
`)
	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 100000, cfg.Game.StartingCurrency)
	assert.Equal(t, 0, cfg.Game.Opponents(), "zero opponents is a solo game")
	assert.Equal(t, int64(42), cfg.Game.Seed)
	assert.Equal(t, "WARNING", cfg.Logging.GameLogLevel())
	assert.False(t, cfg.Logging.PersistEnabled())
	assert.Equal(t, "./events.json", cfg.Content.EventsPath)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("BAKERY_GAME_SEED", "7")
	t.Setenv("BAKERY_GAME_EVENTS_PER_ROUND", "3")

	cfg, err := config.LoadConfig(writeConfig(t, "game:\n  seed: 42\n"))
	require.NoError(t, err)

	assert.Equal(t, int64(7), cfg.Game.Seed)
	assert.Equal(t, 3, cfg.Game.EventsPerRound)
}

func TestLoadConfig_DatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgresql://bakery:secret@db:5432/bakery")

	cfg, err := config.LoadConfig(writeConfig(t, "database:\n  type: postgres\n"))
	require.NoError(t, err)
	assert.Equal(t, "postgresql://bakery:secret@db:5432/bakery", cfg.Database.URL)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	tests := map[string]string{
		"too many opponents":  "game:\n  opponent_count: 9\n",
		"unknown db type":     "database:\n  type: mysql\n",
		"satisfaction bounds": "game:\n  starting_satisfaction: 120\n",
		"unknown log level":   "logging:\n  level: verbose\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := config.LoadConfig(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfigOrDefault(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	cfg := config.LoadConfigOrDefault(writeConfig(t, "database:\n  type: mysql\n"))
	assert.Equal(t, "sqlite", cfg.Database.Type)
}

func TestUserConfigHandler(t *testing.T) {
	h, err := config.NewUserConfigHandlerAt(filepath.Join(t.TempDir(), "nested", "config.json"))
	require.NoError(t, err)

	cfg, err := h.Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.DefaultSession)

	require.NoError(t, h.SetDefaultSession("s1"))
	cfg, err = h.Load()
	require.NoError(t, err)
	assert.Equal(t, "s1", cfg.DefaultSession)

	require.NoError(t, h.SetDefaultSession(""))
	cfg, err = h.Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.DefaultSession)
}
