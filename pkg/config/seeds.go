package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/ABHINAV2087/REST-API-Learning/pkg/userstore"
)

// seedFileContent accepts either a single seed record or a list of them,
// so a seed file can be written both ways.
type seedFileContent struct {
	Seeds []userstore.Seed
}

func (s *seedFileContent) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.SequenceNode {
		return node.Decode(&s.Seeds)
	}

	var one userstore.Seed
	if err := node.Decode(&one); err != nil {
		return err
	}
	s.Seeds = []userstore.Seed{one}
	return nil
}

// LoadSeeds collects the seed records for a config: inline entries
// first, then records from each seedFiles entry in listed order. Glob
// matches within one pattern load in sorted path order.
func LoadSeeds(cfg *Config) ([]userstore.Seed, error) {
	seeds := make([]userstore.Seed, 0, len(cfg.Seed))
	seeds = append(seeds, cfg.Seed...)

	baseDir := cfg.BaseDir()
	for i, pattern := range cfg.SeedFiles {
		loaded, err := loadSeedPattern(pattern, baseDir)
		if err != nil {
			return nil, fmt.Errorf("seedFiles[%d] (%s): %w", i, pattern, err)
		}
		seeds = append(seeds, loaded...)
	}

	return seeds, nil
}

// loadSeedPattern loads seeds from one seedFiles entry. An entry with
// glob metacharacters may match nothing; a literal path must exist.
func loadSeedPattern(pattern, baseDir string) ([]userstore.Seed, error) {
	resolved := ResolvePath(baseDir, pattern)

	if !hasGlobMeta(pattern) {
		return loadSeedFile(resolved)
	}

	matches, err := expandGlob(resolved)
	if err != nil {
		return nil, fmt.Errorf("expanding glob pattern: %w", err)
	}
	if len(matches) == 0 {
		return nil, nil
	}

	// Sort matches for deterministic seed order
	sort.Strings(matches)

	var seeds []userstore.Seed
	for _, match := range matches {
		relPath, _ := filepath.Rel(baseDir, match)
		if relPath == "" {
			relPath = match
		}

		loaded, err := loadSeedFile(match)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", relPath, err)
		}
		seeds = append(seeds, loaded...)
	}

	return seeds, nil
}

// loadSeedFile reads one seed file, applies environment variable
// expansion, and parses the single-record or list form.
func loadSeedFile(path string) ([]userstore.Seed, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %s", path)
		}
		if os.IsPermission(err) {
			return nil, fmt.Errorf("permission denied: %s", path)
		}
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("file is empty: %s", path)
	}

	expanded := ExpandEnvVars(string(data))

	var content seedFileContent
	if err := yaml.Unmarshal([]byte(expanded), &content); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	return content.Seeds, nil
}

// expandGlob expands a glob pattern to matching file paths. Patterns
// with ** use doublestar for recursive matching; simple patterns go
// through filepath.Glob.
func expandGlob(pattern string) ([]string, error) {
	if strings.Contains(pattern, "**") {
		return doublestar.FilepathGlob(pattern)
	}
	return filepath.Glob(pattern)
}

// hasGlobMeta reports whether the pattern contains glob metacharacters.
func hasGlobMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[")
}
