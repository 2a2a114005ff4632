package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Resolver.AutoSaveStop)
	assert.False(t, cfg.Resolver.UseAllStopSetters)
	assert.True(t, cfg.Resolver.UseAllStopDeleters)
	assert.False(t, cfg.Resolver.UseAllBusSetters)
	assert.True(t, cfg.Resolver.UseAllBusDeleters)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 1800, cfg.Cache.StopTTLSeconds)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.Equal(t, "stops", cfg.Storage.Prefix)
	assert.Equal(t, "stops", cfg.Mongo.Collection)
	assert.Equal(t, 10.0, cfg.API.RequestsPerSecond)
	assert.True(t, cfg.API.Authoritative)
	assert.Equal(t, 30, cfg.GTFSRT.RefreshSeconds)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("RESOLVER_AUTO_SAVE_STOP", "true")
	t.Setenv("DATABASE_ENABLED", "true")
	t.Setenv("KV_IN_MEMORY", "true")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.True(t, cfg.Resolver.AutoSaveStop)
	assert.True(t, cfg.Database.Enabled)
	assert.True(t, cfg.KV.InMemory)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SERVER_PORT=9191\nMONGO_DATABASE=buses\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("SERVER_PORT")
		os.Unsetenv("MONGO_DATABASE")
	})

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "9191", cfg.Server.Port)
	assert.Equal(t, "buses", cfg.Mongo.Database)
}
