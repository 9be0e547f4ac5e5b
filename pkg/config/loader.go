package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Common errors for configuration loading/saving.
var (
	ErrFileNotFound     = errors.New("configuration file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidJSON      = errors.New("invalid JSON syntax")
	ErrInvalidYAML      = errors.New("invalid YAML syntax")
	ErrEmptyFile        = errors.New("configuration file is empty")
)

// DiscoveryOrder defines the file names tried when no config path is
// given, in priority order.
var DiscoveryOrder = []string{
	"userd.yaml",
	"userd.yml",
}

// Load builds the effective configuration: defaults first, then the
// config file (the explicit path, USERD_CONFIG, or a discovered
// userd.yaml), then USERD_* environment variables on top.
func Load(path string) (*Config, error) {
	cfg := Default()

	resolved := path
	if resolved == "" {
		resolved = ConfigFileFromEnv()
	}
	if resolved == "" {
		resolved = Discover()
	}

	if resolved != "" {
		fileCfg, err := LoadFromFile(resolved)
		if err != nil {
			return nil, err
		}
		Merge(cfg, fileCfg, SourceFile)
		cfg.Path = resolved
	}

	ApplyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Discover looks for a config file in the current directory. Returns
// empty string when none exists.
func Discover() string {
	for _, name := range DiscoveryOrder {
		if info, err := os.Stat(name); err == nil && !info.IsDir() {
			return name
		}
	}
	return ""
}

// LoadFromFile reads a Config from a JSON or YAML file. The format is
// detected by extension (.yaml, .yml for YAML, otherwise JSON). String
// values may reference environment variables with ${VAR} or
// ${VAR:-default} syntax.
func LoadFromFile(path string) (*Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		if os.IsPermission(err) {
			return nil, fmt.Errorf("%w: %s", ErrPermissionDenied, path)
		}
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsPermission(err) {
			return nil, fmt.Errorf("%w: %s", ErrPermissionDenied, path)
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yaml" || ext == ".yml" {
		return ParseYAML(data)
	}

	if !json.Valid(data) {
		return nil, fmt.Errorf("%w in file: %s", ErrInvalidJSON, path)
	}
	return ParseJSON(data)
}

// SaveToFile writes a Config to a file using atomic rename. The format
// is determined by extension. Creates parent directories as needed.
func SaveToFile(path string, cfg *Config) error {
	if cfg == nil {
		return errors.New("config cannot be nil")
	}

	ext := strings.ToLower(filepath.Ext(path))
	var data []byte
	var err error
	if ext == ".yaml" || ext == ".yml" {
		data, err = ToYAML(cfg)
	} else {
		data, err = ToJSON(cfg)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}

// ParseYAML parses YAML bytes into a Config with validation.
func ParseYAML(data []byte) (*Config, error) {
	expanded := ExpandEnvVars(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	return &cfg, nil
}

// ParseJSON parses JSON bytes into a Config with validation.
func ParseJSON(data []byte) (*Config, error) {
	expanded := ExpandEnvVars(string(data))

	var cfg Config
	if err := json.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	return &cfg, nil
}

// ToYAML marshals a Config to YAML bytes.
func ToYAML(cfg *Config) ([]byte, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal to YAML: %w", err)
	}
	return data, nil
}

// ToJSON marshals a Config to formatted JSON bytes.
func ToJSON(cfg *Config) ([]byte, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal to JSON: %w", err)
	}
	data = append(data, '\n')
	return data, nil
}

// envVarPattern matches ${VAR_NAME} or ${VAR_NAME:-default}
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?::-([^}]*))?\}`)

// ExpandEnvVars replaces ${VAR} and ${VAR:-default} references with
// environment variable values. Unset variables without a default expand
// to the empty string.
func ExpandEnvVars(input string) string {
	return envVarPattern.ReplaceAllStringFunc(input, func(match string) string {
		submatch := envVarPattern.FindStringSubmatch(match)
		if len(submatch) < 2 {
			return match
		}

		varName := submatch[1]
		defaultVal := ""
		if len(submatch) >= 3 {
			defaultVal = submatch[2]
		}

		if val := os.Getenv(varName); val != "" {
			return val
		}
		return defaultVal
	})
}

// ResolvePath resolves targetPath relative to basePath. Absolute paths
// and ~/ paths are returned as-is (with ~ expanded).
func ResolvePath(basePath, targetPath string) string {
	if filepath.IsAbs(targetPath) {
		return targetPath
	}
	if strings.HasPrefix(targetPath, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, targetPath[2:])
		}
	}
	return filepath.Join(basePath, targetPath)
}

// BaseDir returns the directory seed file references resolve against:
// the directory holding the config file, or the working directory when
// no config file was loaded.
func (c *Config) BaseDir() string {
	if c.Path == "" {
		if cwd, err := os.Getwd(); err == nil {
			return cwd
		}
		return "."
	}
	return filepath.Dir(c.Path)
}
