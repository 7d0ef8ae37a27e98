package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/idepositbox/console/internal/config"
	"github.com/idepositbox/console/internal/logging"
)

var (
	cfgFile string
	verbose bool

	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "idbconsole",
	Short: "iDepositBox management console",
	Long: `idbconsole runs the iDepositBox management web console: a small server
that publishes a navigation menu and HTML page fragments, and a single-page
shell that renders them in the browser or headlessly.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := zapcore.InfoLevel
		if cfg, err := config.Load(cfgFile); err == nil {
			level = cfg.ZapLevel()
		}
		if verbose {
			level = zapcore.DebugLevel
		}

		l, err := logging.New(level)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".idbconsole.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
