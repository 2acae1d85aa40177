package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/homestead-go/internal/infrastructure/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadConfig_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, "game:\n  admin: admin\n")

	cfg, err := config.LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "homestead.db", cfg.Database.Path)
	assert.Equal(t, "admin", cfg.Game.Admin)
	assert.Equal(t, "localhost:8080", cfg.Server.Address)
	assert.Equal(t, 5, cfg.Server.RateLimit.Requests)
	assert.Equal(t, 15*time.Second, cfg.Server.Timeouts.Shutdown)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadConfig_EnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, "server:\n  address: 0.0.0.0:9000\ndatabase:\n  type: sqlite\n")
	t.Setenv("HS_SERVER_ADDRESS", "127.0.0.1:7000")
	t.Setenv("DATABASE_URL", "postgresql://u:p@db:5432/homestead")
	t.Setenv("HS_DATABASE_TYPE", "postgres")

	cfg, err := config.LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:7000", cfg.Server.Address)
	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.Equal(t, "postgresql://u:p@db:5432/homestead", cfg.Database.URL)
}

func TestLoadConfig_RejectsInvalidValues(t *testing.T) {
	path := writeConfig(t, "logging:\n  level: loud\n")

	_, err := config.LoadConfig(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.level: must be one of debug info warn error (got loud)")
}

func TestDefaults_MatchAnEmptyConfigFile(t *testing.T) {
	loaded, err := config.LoadConfig(writeConfig(t, "{}\n"))
	require.NoError(t, err)

	assert.Equal(t, config.Defaults(), loaded)
	assert.Equal(t, "host=localhost port=5432 user=homestead password= dbname=homestead sslmode=disable", loaded.Database.DSN())
}

func TestProfile_SaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "profile.yaml")
	t.Setenv("HS_PROFILE", path)

	empty, err := config.LoadProfile()
	require.NoError(t, err)
	assert.Empty(t, empty.DefaultActor)

	empty.DefaultActor = "alice"
	require.NoError(t, empty.Save())

	reloaded, err := config.LoadProfile()
	require.NoError(t, err)
	assert.Equal(t, "alice", reloaded.DefaultActor)
	assert.Equal(t, path, reloaded.Path())
}
