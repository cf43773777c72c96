package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
Endpoints:
  - https://api.hive.blog
  - https://anyx.io
DiscoveryAccount: flowerpower
RequestTimeout: 15s
`), 0644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, []string{"https://api.hive.blog", "https://anyx.io"}, cfg.Endpoints)
	require.Equal(t, "flowerpower", cfg.DiscoveryAccount)
	require.Equal(t, 15*time.Second, cfg.RequestTimeout)
	require.Zero(t, cfg.DialTimeout)
}

func TestLoadFileDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`Endpoints: []`), 0644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, DefaultDiscoveryAccount, cfg.DiscoveryAccount)
}

func TestLoadFileErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "nonexistent.yml"))
		require.Error(t, err)
	})

	t.Run("broken yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte("Endpoints: ][\n"), 0644))
		_, err := LoadFile(path)
		require.Error(t, err)
	})
}
