package config

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	dir, err := ioutil.TempDir("", "algebra-eval-config")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })
	path := filepath.Join(dir, name)
	require.NoError(t, ioutil.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad_YAML(t *testing.T) {
	path := writeTemp(t, "cfg.yaml", "bolt_path: /tmp/graph.db\nmax_tree_depth: 12\nlog_level: debug\n")
	c, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "/tmp/graph.db", c.BoltPath)
	require.Equal(t, 12, c.MaxTreeDepth)
	require.Equal(t, "debug", c.LogLevel)
	require.Equal(t, "debug", c.GetString("log_level"))
	require.Equal(t, 12, c.GetInt("max_tree_depth"))
}

func TestLoad_TOML(t *testing.T) {
	path := writeTemp(t, "cfg.toml", "bolt_path = \"/tmp/graph.db\"\nmax_tree_depth = 7\n")
	c, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "/tmp/graph.db", c.BoltPath)
	require.Equal(t, 7, c.MaxTreeDepth)
	require.Equal(t, 7, c.GetInt("max_tree_depth"))
}

func TestLoad_UnsupportedFormat(t *testing.T) {
	path := writeTemp(t, "cfg.ini", "bolt_path=/tmp/graph.db\n")
	_, err := Load(path)
	require.Error(t, err)
	require.True(t, ErrUnsupportedFormat.Is(err))
}

func TestConfig_OpenGraphStore_DefaultsToMemStore(t *testing.T) {
	c := &Config{}
	store, err := c.OpenGraphStore()
	require.NoError(t, err)
	require.NotNil(t, store)
}
