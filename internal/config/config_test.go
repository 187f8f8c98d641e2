package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadPartialConfigFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
data_dir: /srv/matrices
versions:
  - name: pilot
    matrix: pilot.csv
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/matrices", cfg.DataDir)
	require.Len(t, cfg.Versions, 1)
	assert.Equal(t, "pilot", cfg.Versions[0].Name)
	// Default version falls back to the first declared version.
	assert.Equal(t, "pilot", cfg.DefaultVersion)
	assert.Equal(t, ":8750", cfg.Serve.Addr)
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("versions: [broken"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}
