package config

import "github.com/idepositbox/console/internal/menu"

// LogLevel controls the verbosity of the zap logger.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// Config is the top-level console configuration, corresponding to .idbconsole.yml.
type Config struct {
	LogLevel        LogLevel    `yaml:"log_level" koanf:"log_level"`
	BindHost        string      `yaml:"bind_host" koanf:"bind_host"`
	Port            int         `yaml:"port" koanf:"port"`
	PagesDir        string      `yaml:"pages_dir" koanf:"pages_dir"`
	PagesInclude    string      `yaml:"pages_include" koanf:"pages_include"`
	StaticDir       string      `yaml:"static_dir" koanf:"static_dir"`
	Menu            []menu.Item `yaml:"menu" koanf:"menu"`
	SanitizePages   bool        `yaml:"sanitize_pages" koanf:"sanitize_pages"`
	AllowAllOrigins bool        `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}
