package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromFile_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "userd.yaml")

	content := `version: "1.0"
server:
  host: 127.0.0.1
  port: 9090
  readTimeout: 15
logging:
  level: debug
  format: json
seed:
  - name: John Doe
    email: john@example.com
  - name: Jane Doe
    email: jane@example.com
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "1.0", cfg.Version)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 15, cfg.Server.ReadTimeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	require.Len(t, cfg.Seed, 2)
	assert.Equal(t, "John Doe", cfg.Seed[0].Name)
	assert.Equal(t, "jane@example.com", cfg.Seed[1].Email)
}

func TestLoadFromFile_ValidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "userd.json")

	content := `{
		"version": "1.0",
		"server": {"port": 9090},
		"seed": [{"name": "John", "email": "john@example.com"}]
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	require.Len(t, cfg.Seed, 1)
	assert.Equal(t, "John", cfg.Seed[0].Name)
}

func TestLoadFromFile_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{ invalid json }`), 0644))

	cfg, err := LoadFromFile(path)
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrInvalidJSON)
}

func TestLoadFromFile_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n\tport: broken"), 0644))

	cfg, err := LoadFromFile(path)
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrInvalidYAML)
}

func TestLoadFromFile_FileNotFound(t *testing.T) {
	cfg, err := LoadFromFile("/nonexistent/path/userd.yaml")
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestLoadFromFile_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	cfg, err := LoadFromFile(path)
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestLoadFromFile_Directory(t *testing.T) {
	cfg, err := LoadFromFile(t.TempDir())
	assert.Nil(t, cfg)
	assert.ErrorContains(t, err, "directory")
}

func TestLoadFromFile_ValidationError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "userd.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 99999\n"), 0644))

	cfg, err := LoadFromFile(path)
	assert.Nil(t, cfg)
	assert.ErrorContains(t, err, "validation")
}

func TestLoadFromFile_EnvExpansion(t *testing.T) {
	t.Setenv("USERD_TEST_PORT", "7171")

	dir := t.TempDir()
	path := filepath.Join(dir, "userd.yaml")
	content := "server:\n  port: ${USERD_TEST_PORT}\nlogging:\n  level: ${USERD_TEST_LEVEL:-warn}\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 7171, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestSaveToFile(t *testing.T) {
	t.Run("yaml round trip", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "out.yaml")

		cfg := Default()
		cfg.Server.Port = 9090
		require.NoError(t, SaveToFile(path, cfg))

		loaded, err := LoadFromFile(path)
		require.NoError(t, err)
		assert.Equal(t, 9090, loaded.Server.Port)

		// No leftover temp file
		_, err = os.Stat(path + ".tmp")
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("creates parent directories", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "nested", "deeper", "out.yaml")

		require.NoError(t, SaveToFile(path, Default()))

		_, err := os.Stat(path)
		assert.NoError(t, err)
	})

	t.Run("nil config rejected", func(t *testing.T) {
		assert.Error(t, SaveToFile(filepath.Join(t.TempDir(), "out.yaml"), nil))
	})
}

func TestDiscover(t *testing.T) {
	t.Run("finds userd.yaml", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "userd.yaml"), []byte("{}"), 0644))
		t.Chdir(dir)

		assert.Equal(t, "userd.yaml", Discover())
	})

	t.Run("falls back to userd.yml", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "userd.yml"), []byte("{}"), 0644))
		t.Chdir(dir)

		assert.Equal(t, "userd.yml", Discover())
	})

	t.Run("empty when nothing present", func(t *testing.T) {
		t.Chdir(t.TempDir())
		assert.Equal(t, "", Discover())
	})
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("USERD_TEST_VALUE", "hello")

	tests := []struct {
		input string
		want  string
	}{
		{"plain text", "plain text"},
		{"${USERD_TEST_VALUE}", "hello"},
		{"prefix-${USERD_TEST_VALUE}-suffix", "prefix-hello-suffix"},
		{"${USERD_TEST_UNSET}", ""},
		{"${USERD_TEST_UNSET:-fallback}", "fallback"},
		{"${USERD_TEST_VALUE:-fallback}", "hello"},
		{"$NOT_A_REFERENCE", "$NOT_A_REFERENCE"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ExpandEnvVars(tt.input), "input: %s", tt.input)
	}
}

func TestResolvePath(t *testing.T) {
	assert.Equal(t, "/abs/path.yaml", ResolvePath("/base", "/abs/path.yaml"))
	assert.Equal(t, filepath.Join("/base", "rel.yaml"), ResolvePath("/base", "rel.yaml"))

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "seeds.yaml"), ResolvePath("/base", "~/seeds.yaml"))
}

func TestBaseDir(t *testing.T) {
	cfg := &Config{Path: "/etc/userd/userd.yaml"}
	assert.Equal(t, "/etc/userd", cfg.BaseDir())

	cwd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, cwd, (&Config{}).BaseDir())
}
