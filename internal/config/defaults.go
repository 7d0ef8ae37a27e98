package config

// DefaultPort is the port the management daemon has always listened on.
const DefaultPort = 8880

// DefaultPagesInclude matches every HTML and markdown page under the pages dir.
const DefaultPagesInclude = "**/*.{html,md}"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:     LogInfo,
		BindHost:     "0.0.0.0",
		Port:         DefaultPort,
		PagesDir:     "pages",
		PagesInclude: DefaultPagesInclude,
	}
}
