package cmd

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/idepositbox/console/internal/config"
	"github.com/idepositbox/console/internal/menu"
	"github.com/idepositbox/console/internal/pages"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `idbconsole init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// menuSourceFromConfig uses the configured menu when there is one and falls
// back to discovering pages on disk.
func menuSourceFromConfig(cfg *config.Config) menu.Source {
	if len(cfg.Menu) > 0 {
		logger.Info("using configured menu", zap.Int("items", len(cfg.Menu)))
		return menu.Static(cfg.Menu)
	}
	pattern := cfg.PagesInclude
	if pattern == "" {
		pattern = config.DefaultPagesInclude
	}
	logger.Info("discovering menu from pages",
		zap.String("dir", cfg.PagesDir),
		zap.String("pattern", pattern),
	)
	return pages.Source(cfg.PagesDir, pattern)
}
