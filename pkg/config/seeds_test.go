package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ABHINAV2087/REST-API-Learning/pkg/userstore"
)

func writeSeedFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoadSeeds_InlineOnly(t *testing.T) {
	cfg := &Config{
		Seed: []userstore.Seed{
			{Name: "John Doe", Email: "john@example.com"},
			{Name: "Jane Doe", Email: "jane@example.com"},
		},
	}

	seeds, err := LoadSeeds(cfg)
	require.NoError(t, err)
	require.Len(t, seeds, 2)
	assert.Equal(t, "John Doe", seeds[0].Name)
	assert.Equal(t, "Jane Doe", seeds[1].Name)
}

func TestLoadSeeds_Empty(t *testing.T) {
	seeds, err := LoadSeeds(&Config{})
	require.NoError(t, err)
	assert.Empty(t, seeds)
}

func TestLoadSeeds_FileWithList(t *testing.T) {
	dir := t.TempDir()
	writeSeedFile(t, filepath.Join(dir, "seeds.yaml"), `
- name: John Doe
  email: john@example.com
- name: Jane Doe
  email: jane@example.com
`)

	cfg := &Config{
		Path:      filepath.Join(dir, "userd.yaml"),
		SeedFiles: []string{"seeds.yaml"},
	}

	seeds, err := LoadSeeds(cfg)
	require.NoError(t, err)
	require.Len(t, seeds, 2)
	assert.Equal(t, "john@example.com", seeds[0].Email)
}

func TestLoadSeeds_FileWithSingleRecord(t *testing.T) {
	dir := t.TempDir()
	writeSeedFile(t, filepath.Join(dir, "one.yaml"), "name: Solo\nemail: solo@example.com\n")

	cfg := &Config{
		Path:      filepath.Join(dir, "userd.yaml"),
		SeedFiles: []string{"one.yaml"},
	}

	seeds, err := LoadSeeds(cfg)
	require.NoError(t, err)
	require.Len(t, seeds, 1)
	assert.Equal(t, "Solo", seeds[0].Name)
}

func TestLoadSeeds_InlineBeforeFiles(t *testing.T) {
	dir := t.TempDir()
	writeSeedFile(t, filepath.Join(dir, "extra.yaml"), "- name: Third\n  email: third@example.com\n")

	cfg := &Config{
		Path:      filepath.Join(dir, "userd.yaml"),
		Seed:      []userstore.Seed{{Name: "First", Email: "first@example.com"}},
		SeedFiles: []string{"extra.yaml"},
	}

	seeds, err := LoadSeeds(cfg)
	require.NoError(t, err)
	require.Len(t, seeds, 2)
	assert.Equal(t, "First", seeds[0].Name)
	assert.Equal(t, "Third", seeds[1].Name)
}

func TestLoadSeeds_Glob(t *testing.T) {
	dir := t.TempDir()
	writeSeedFile(t, filepath.Join(dir, "seeds", "b.yaml"), "- name: Bob\n  email: bob@example.com\n")
	writeSeedFile(t, filepath.Join(dir, "seeds", "a.yaml"), "- name: Alice\n  email: alice@example.com\n")

	cfg := &Config{
		Path:      filepath.Join(dir, "userd.yaml"),
		SeedFiles: []string{"seeds/*.yaml"},
	}

	seeds, err := LoadSeeds(cfg)
	require.NoError(t, err)
	require.Len(t, seeds, 2)
	// Glob matches load in sorted path order
	assert.Equal(t, "Alice", seeds[0].Name)
	assert.Equal(t, "Bob", seeds[1].Name)
}

func TestLoadSeeds_RecursiveGlob(t *testing.T) {
	dir := t.TempDir()
	writeSeedFile(t, filepath.Join(dir, "seeds", "team-a", "users.yaml"), "- name: Ann\n  email: ann@example.com\n")
	writeSeedFile(t, filepath.Join(dir, "seeds", "team-b", "nested", "users.yaml"), "- name: Ben\n  email: ben@example.com\n")

	cfg := &Config{
		Path:      filepath.Join(dir, "userd.yaml"),
		SeedFiles: []string{"seeds/**/*.yaml"},
	}

	seeds, err := LoadSeeds(cfg)
	require.NoError(t, err)
	require.Len(t, seeds, 2)
	assert.Equal(t, "Ann", seeds[0].Name)
	assert.Equal(t, "Ben", seeds[1].Name)
}

func TestLoadSeeds_GlobWithoutMatches(t *testing.T) {
	dir := t.TempDir()
	cfg := &Config{
		Path:      filepath.Join(dir, "userd.yaml"),
		SeedFiles: []string{"seeds/*.yaml"},
	}

	seeds, err := LoadSeeds(cfg)
	require.NoError(t, err)
	assert.Empty(t, seeds)
}

func TestLoadSeeds_MissingLiteralFile(t *testing.T) {
	dir := t.TempDir()
	cfg := &Config{
		Path:      filepath.Join(dir, "userd.yaml"),
		SeedFiles: []string{"missing.yaml"},
	}

	_, err := LoadSeeds(cfg)
	require.Error(t, err)
	assert.ErrorContains(t, err, "file not found")
	assert.ErrorContains(t, err, "seedFiles[0]")
}

func TestLoadSeeds_EmptySeedFile(t *testing.T) {
	dir := t.TempDir()
	writeSeedFile(t, filepath.Join(dir, "empty.yaml"), "")

	cfg := &Config{
		Path:      filepath.Join(dir, "userd.yaml"),
		SeedFiles: []string{"empty.yaml"},
	}

	_, err := LoadSeeds(cfg)
	require.Error(t, err)
	assert.ErrorContains(t, err, "empty")
}

func TestLoadSeeds_EnvExpansionInFile(t *testing.T) {
	t.Setenv("USERD_TEST_DOMAIN", "corp.example.com")

	dir := t.TempDir()
	writeSeedFile(t, filepath.Join(dir, "seeds.yaml"), "- name: John\n  email: john@${USERD_TEST_DOMAIN}\n")

	cfg := &Config{
		Path:      filepath.Join(dir, "userd.yaml"),
		SeedFiles: []string{"seeds.yaml"},
	}

	seeds, err := LoadSeeds(cfg)
	require.NoError(t, err)
	require.Len(t, seeds, 1)
	assert.Equal(t, "john@corp.example.com", seeds[0].Email)
}

func TestHasGlobMeta(t *testing.T) {
	assert.True(t, hasGlobMeta("seeds/*.yaml"))
	assert.True(t, hasGlobMeta("seeds/**/*.yaml"))
	assert.True(t, hasGlobMeta("seeds/[ab].yaml"))
	assert.True(t, hasGlobMeta("seeds/?.yaml"))
	assert.False(t, hasGlobMeta("seeds/users.yaml"))
}
