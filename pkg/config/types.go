package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/ABHINAV2087/REST-API-Learning/pkg/userstore"
)

// Default server settings.
const (
	DefaultPort         = 8080
	DefaultReadTimeout  = 30
	DefaultWriteTimeout = 30
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "text"
)

// ConfigSource identifies where a config value originated.
const (
	SourceDefault = "default"
	SourceFile    = "file"
	SourceEnv     = "env"
	SourceFlag    = "flag"
)

// Config is the complete configuration for the userd server.
type Config struct {
	// Version is the config format version (e.g., "1.0")
	Version string `json:"version,omitempty" yaml:"version,omitempty"`
	// Server holds the HTTP listener settings
	Server ServerConfig `json:"server,omitempty" yaml:"server,omitempty"`
	// Logging holds log level and format settings
	Logging LoggingConfig `json:"logging,omitempty" yaml:"logging,omitempty"`
	// CORS configures Cross-Origin Resource Sharing. Default allows localhost only.
	CORS *CORSConfig `json:"cors,omitempty" yaml:"cors,omitempty"`

	// Seed lists user records created at startup, in order
	Seed []userstore.Seed `json:"seed,omitempty" yaml:"seed,omitempty"`
	// SeedFiles lists files or glob patterns with additional seed records
	SeedFiles []string `json:"seedFiles,omitempty" yaml:"seedFiles,omitempty"`

	// Path is the config file this was loaded from, if any
	Path string `json:"-" yaml:"-"`
	// Sources tracks where each value came from, keyed by YAML field name
	Sources map[string]string `json:"-" yaml:"-"`
}

// ServerConfig defines the HTTP listener settings.
type ServerConfig struct {
	// Host is the interface to bind (empty = all interfaces)
	Host string `json:"host,omitempty" yaml:"host,omitempty"`
	// Port is the listen port
	Port int `json:"port,omitempty" yaml:"port,omitempty"`
	// ReadTimeout is the HTTP read timeout in seconds
	ReadTimeout int `json:"readTimeout,omitempty" yaml:"readTimeout,omitempty"`
	// WriteTimeout is the HTTP write timeout in seconds
	WriteTimeout int `json:"writeTimeout,omitempty" yaml:"writeTimeout,omitempty"`
}

// LoggingConfig defines log output settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error
	Level string `json:"level,omitempty" yaml:"level,omitempty"`
	// Format is the log encoding: text or json
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// CORSConfig defines Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	// Enabled enables CORS handling. When false, no CORS headers are added.
	Enabled bool `json:"enabled" yaml:"enabled"`
	// AllowOrigins specifies allowed origins. Use "*" for any origin.
	// Empty list defaults to localhost origins only.
	AllowOrigins []string `json:"allowOrigins,omitempty" yaml:"allowOrigins,omitempty"`
	// AllowMethods specifies allowed HTTP methods.
	AllowMethods []string `json:"allowMethods,omitempty" yaml:"allowMethods,omitempty"`
	// AllowHeaders specifies allowed request headers.
	AllowHeaders []string `json:"allowHeaders,omitempty" yaml:"allowHeaders,omitempty"`
	// ExposeHeaders specifies headers browsers are allowed to access.
	ExposeHeaders []string `json:"exposeHeaders,omitempty" yaml:"exposeHeaders,omitempty"`
	// AllowCredentials indicates whether credentials are allowed.
	// Cannot be combined with AllowOrigins: ["*"].
	AllowCredentials bool `json:"allowCredentials,omitempty" yaml:"allowCredentials,omitempty"`
	// MaxAge is the preflight cache duration in seconds. Default: 86400.
	MaxAge int `json:"maxAge,omitempty" yaml:"maxAge,omitempty"`
}

// Default returns a Config with every field at its default value.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         DefaultPort,
			ReadTimeout:  DefaultReadTimeout,
			WriteTimeout: DefaultWriteTimeout,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		CORS: DefaultCORSConfig(),
		Sources: map[string]string{
			"host":         SourceDefault,
			"port":         SourceDefault,
			"readTimeout":  SourceDefault,
			"writeTimeout": SourceDefault,
			"logLevel":     SourceDefault,
			"logFormat":    SourceDefault,
		},
	}
}

// DefaultCORSConfig returns a CORSConfig that allows common local
// development origins.
func DefaultCORSConfig() *CORSConfig {
	return &CORSConfig{
		Enabled: true,
		AllowOrigins: []string{
			"http://localhost:3000",
			"http://localhost:5173",
			"http://localhost:8080",
			"http://127.0.0.1:3000",
			"http://127.0.0.1:5173",
			"http://127.0.0.1:8080",
		},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", "Accept", "Origin", "X-Requested-With"},
		MaxAge:       86400,
	}
}

// Merge copies non-zero values from source into target, recording the
// source type for each copied field.
func Merge(target, source *Config, sourceType string) {
	if source == nil {
		return
	}
	if target.Sources == nil {
		target.Sources = make(map[string]string)
	}

	if source.Version != "" {
		target.Version = source.Version
	}
	if source.Server.Host != "" {
		target.Server.Host = source.Server.Host
		target.Sources["host"] = sourceType
	}
	if source.Server.Port != 0 {
		target.Server.Port = source.Server.Port
		target.Sources["port"] = sourceType
	}
	if source.Server.ReadTimeout != 0 {
		target.Server.ReadTimeout = source.Server.ReadTimeout
		target.Sources["readTimeout"] = sourceType
	}
	if source.Server.WriteTimeout != 0 {
		target.Server.WriteTimeout = source.Server.WriteTimeout
		target.Sources["writeTimeout"] = sourceType
	}
	if source.Logging.Level != "" {
		target.Logging.Level = source.Logging.Level
		target.Sources["logLevel"] = sourceType
	}
	if source.Logging.Format != "" {
		target.Logging.Format = source.Logging.Format
		target.Sources["logFormat"] = sourceType
	}
	if source.CORS != nil {
		target.CORS = source.CORS
		target.Sources["cors"] = sourceType
	}
	if len(source.Seed) > 0 {
		target.Seed = source.Seed
		target.Sources["seed"] = sourceType
	}
	if len(source.SeedFiles) > 0 {
		target.SeedFiles = source.SeedFiles
		target.Sources["seedFiles"] = sourceType
	}
}

// Validate checks the configuration for invalid values. Zero values are
// accepted so partial configs (a file that only sets logging, say) pass
// before defaults are merged in.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d (must be 0-65535)", c.Server.Port)
	}
	if c.Server.ReadTimeout < 0 {
		return fmt.Errorf("invalid readTimeout: %d (must be >= 0)", c.Server.ReadTimeout)
	}
	if c.Server.WriteTimeout < 0 {
		return fmt.Errorf("invalid writeTimeout: %d (must be >= 0)", c.Server.WriteTimeout)
	}

	switch c.Logging.Level {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log level: %q (must be debug, info, warn, or error)", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("invalid log format: %q (must be text or json)", c.Logging.Format)
	}

	if c.CORS != nil && c.CORS.AllowCredentials {
		for _, origin := range c.CORS.AllowOrigins {
			if origin == "*" {
				return fmt.Errorf("cors: allowCredentials cannot be combined with wildcard origin")
			}
		}
	}

	return nil
}

// Addr returns the listen address in host:port form.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// IsWildcard reports whether the CORS config allows all origins.
func (c *CORSConfig) IsWildcard() bool {
	if c == nil {
		return false
	}
	for _, origin := range c.AllowOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

// MethodsValue returns the Access-Control-Allow-Methods header value.
func (c *CORSConfig) MethodsValue() string {
	if len(c.AllowMethods) == 0 {
		return "GET, POST, PUT, DELETE, OPTIONS"
	}
	return strings.Join(c.AllowMethods, ", ")
}

// HeadersValue returns the Access-Control-Allow-Headers header value.
func (c *CORSConfig) HeadersValue() string {
	if len(c.AllowHeaders) == 0 {
		return "Content-Type, Accept, Origin, X-Requested-With"
	}
	return strings.Join(c.AllowHeaders, ", ")
}

// ExposeHeadersValue returns the Access-Control-Expose-Headers header
// value, or empty string when no headers are exposed.
func (c *CORSConfig) ExposeHeadersValue() string {
	return strings.Join(c.ExposeHeaders, ", ")
}

// MaxAgeValue returns the Access-Control-Max-Age header value in seconds.
func (c *CORSConfig) MaxAgeValue() string {
	if c.MaxAge <= 0 {
		return "86400"
	}
	return strconv.Itoa(c.MaxAge)
}

// AllowOriginValue returns the Access-Control-Allow-Origin header value
// for the given request origin. Returns empty string if the origin is
// not allowed.
func (c *CORSConfig) AllowOriginValue(requestOrigin string) string {
	if c == nil || !c.Enabled {
		return ""
	}

	if c.IsWildcard() {
		// * cannot be combined with credentials; echo the origin instead.
		if c.AllowCredentials {
			return requestOrigin
		}
		return "*"
	}

	for _, allowed := range c.AllowOrigins {
		if allowed == requestOrigin {
			return requestOrigin
		}
	}

	return ""
}
