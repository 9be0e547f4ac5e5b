package config

import (
	"os"
	"strconv"
)

// Environment variable names
const (
	EnvConfig       = "USERD_CONFIG"
	EnvHost         = "USERD_HOST"
	EnvPort         = "USERD_PORT"
	EnvLogLevel     = "USERD_LOG_LEVEL"
	EnvLogFormat    = "USERD_LOG_FORMAT"
	EnvReadTimeout  = "USERD_READ_TIMEOUT"
	EnvWriteTimeout = "USERD_WRITE_TIMEOUT"
	EnvURL          = "USERD_URL"
)

// ApplyEnv overlays USERD_* environment variables onto cfg. Only values
// present in the environment are set; unparsable numbers are ignored.
func ApplyEnv(cfg *Config) {
	if cfg.Sources == nil {
		cfg.Sources = make(map[string]string)
	}

	// USERD_HOST
	if v := os.Getenv(EnvHost); v != "" {
		cfg.Server.Host = v
		cfg.Sources["host"] = SourceEnv
	}

	// USERD_PORT
	if v := os.Getenv(EnvPort); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
			cfg.Sources["port"] = SourceEnv
		}
	}

	// USERD_READ_TIMEOUT
	if v := os.Getenv(EnvReadTimeout); v != "" {
		if timeout, err := strconv.Atoi(v); err == nil {
			cfg.Server.ReadTimeout = timeout
			cfg.Sources["readTimeout"] = SourceEnv
		}
	}

	// USERD_WRITE_TIMEOUT
	if v := os.Getenv(EnvWriteTimeout); v != "" {
		if timeout, err := strconv.Atoi(v); err == nil {
			cfg.Server.WriteTimeout = timeout
			cfg.Sources["writeTimeout"] = SourceEnv
		}
	}

	// USERD_LOG_LEVEL
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = v
		cfg.Sources["logLevel"] = SourceEnv
	}

	// USERD_LOG_FORMAT
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.Logging.Format = v
		cfg.Sources["logFormat"] = SourceEnv
	}
}

// ConfigFileFromEnv returns the config file path from USERD_CONFIG.
// Returns empty string if not set.
func ConfigFileFromEnv() string {
	return os.Getenv(EnvConfig)
}

// URLFromEnv returns the server base URL from USERD_URL, used by CLI
// commands that talk to a running server. Returns empty string if not
// set.
func URLFromEnv() string {
	return os.Getenv(EnvURL)
}
