package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap/zapcore"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment variable overrides.
const EnvPrefix = "IDBCONSOLE_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (IDBCONSOLE_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// IDBCONSOLE_PORT -> port, IDBCONSOLE_PAGES_DIR -> pages_dir.
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var validLogLevels = map[LogLevel]bool{
	LogDebug: true,
	LogInfo:  true,
	LogWarn:  true,
	LogError: true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q: must be one of debug, info, warn, error", c.LogLevel)
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range: must be between 1 and 65535", c.Port)
	}

	if c.PagesDir == "" {
		return fmt.Errorf("pages_dir is required")
	}

	if c.PagesInclude != "" && !doublestar.ValidatePattern(c.PagesInclude) {
		return fmt.Errorf("invalid pages_include pattern %q", c.PagesInclude)
	}

	seen := make(map[string]bool, len(c.Menu))
	for i, it := range c.Menu {
		if it.Path == "" {
			return fmt.Errorf("menu[%d]: path is required", i)
		}
		if strings.ContainsAny(it.Path, " ?#%\"'<>\\") {
			return fmt.Errorf("menu[%d]: path %q contains characters not allowed in a URL segment", i, it.Path)
		}
		if seen[it.Path] {
			return fmt.Errorf("menu[%d]: duplicate path %q", i, it.Path)
		}
		seen[it.Path] = true
	}

	return nil
}

// ZapLevel maps the configured log level onto a zap level.
func (c *Config) ZapLevel() zapcore.Level {
	switch c.LogLevel {
	case LogDebug:
		return zapcore.DebugLevel
	case LogWarn:
		return zapcore.WarnLevel
	case LogError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Addr returns the host:port the management server binds to.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.BindHost, c.Port)
}
