package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	config := Default()

	assert.Equal(t, "./divelog", config.DataDir)
	assert.Equal(t, "127.0.0.1:9301", config.Listen)
	assert.Equal(t, "info", config.Logging.Level)
	assert.Equal(t, "reefnet_sensusultra", config.Parser.Family)
	assert.InDelta(t, 101325.0, config.Parser.Atmospheric, 1e-9)
	assert.InDelta(t, 1025.0, config.Parser.WaterDensity, 1e-9)
	assert.InDelta(t, 10051.81625, config.Parser.Hydrostatic(), 1e-6)
}

func TestLoadMissingFile(t *testing.T) {
	config, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), config)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	config := Default()
	config.DataDir = "/var/lib/divelog"
	config.Listen = ":8080"
	config.Logging.Level = "debug"
	config.Parser.WaterDensity = 1000.0

	require.NoError(t, Save(config, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, config, loaded)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen: \":8080\"\n"), 0600))

	config, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":8080", config.Listen)
	assert.Equal(t, "./divelog", config.DataDir)
	assert.InDelta(t, 101325.0, config.Parser.Atmospheric, 1e-9)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen: [unclosed"), 0600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestDefaultPath(t *testing.T) {
	path := DefaultPath()
	assert.NotEmpty(t, path)
	assert.Contains(t, path, "dctool")
}
