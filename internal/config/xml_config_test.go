package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigCreatesDefaultWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "PluginGuiDesigner.exe.config")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 8090, cfg.Server.Port)
	assert.Equal(t, 400.0, cfg.Designer.CanvasWidth)
	assert.Equal(t, "designs.db", cfg.Storage.DatabaseFile)

	// The default file is written for the next run.
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestLoadConfigParsesAndResolvesPaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.config")
	content := `<?xml version="1.0" encoding="UTF-8"?>
<PluginGuiDesigner>
  <Server><Port>9000</Port><BindAddress>127.0.0.1</BindAddress></Server>
  <Storage><DataDirectory>./designer-data</DataDirectory><DatabaseFile>layouts.db</DatabaseFile></Storage>
  <Designer><CanvasWidth>640</CanvasWidth><CanvasHeight>480</CanvasHeight><GridSize>8</GridSize></Designer>
  <Advanced><LogLevel>debug</LogLevel></Advanced>
</PluginGuiDesigner>`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.GetServerAddr())
	assert.Equal(t, 640.0, cfg.Designer.CanvasWidth)
	assert.Equal(t, filepath.Join(dir, "designer-data"), cfg.GetDataDir())
	assert.Equal(t, filepath.Join(dir, "designer-data", "layouts.db"), cfg.GetDatabasePath())
	assert.Equal(t, "debug", cfg.Advanced.LogLevel)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("PORT", "7777")
	t.Setenv("CREATE_EVENT_ENDPOINT", "http://automation:9999")

	path := filepath.Join(t.TempDir(), "app.config")
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	// Defaults were created, but the environment wins.
	assert.Equal(t, 8090, cfg.Server.Port)

	cfg, err = LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 7777, cfg.Server.Port)
	assert.Equal(t, "http://automation:9999", cfg.Designer.CreateEventEndpoint)
}
