package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/idepositbox/console/internal/pages"
	"github.com/idepositbox/console/internal/server"
	"github.com/idepositbox/console/internal/web"
)

var (
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the management console server",
	Long: `Starts the management console HTTP server. It serves the shell page,
the menu at /get_menu and page fragments at /get_page/{path}.html.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("host") {
			cfg.BindHost = serveHost
		}
		if cmd.Flags().Changed("port") {
			cfg.Port = servePort
		}

		if _, err := os.Stat(cfg.PagesDir); err != nil {
			logger.Warn("pages directory is not readable", zap.String("dir", cfg.PagesDir), zap.Error(err))
		}

		store := pages.NewStore(cfg.PagesDir, pages.Options{
			Sanitize: cfg.SanitizePages,
			Logger:   logger,
		})

		srv := server.New(server.Config{
			Addr:     cfg.Addr(),
			AllowAll: cfg.AllowAllOrigins,
		}, logger)
		web.New(menuSourceFromConfig(cfg), store, cfg.StaticDir, logger).RegisterRoutes(srv.Router())

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("shutdown failed", zap.Error(err))
			}
		}()

		fmt.Fprintf(os.Stderr, "idbconsole %s starting on %s\n", Version, cfg.Addr())
		fmt.Fprintf(os.Stderr, "  Pages: %s\n", cfg.PagesDir)
		if cfg.StaticDir != "" {
			fmt.Fprintf(os.Stderr, "  Static: %s\n", cfg.StaticDir)
		}

		return srv.Start()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "host to bind (overrides bind_host)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "port to listen on (overrides port)")
	rootCmd.AddCommand(serveCmd)
}
