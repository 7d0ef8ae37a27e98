package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/idepositbox/console/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long:  `Writes .idbconsole.yml with default settings, or asks for them with --interactive.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		interactive, _ := cmd.Flags().GetBool("interactive")
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(cfgFile); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", cfgFile)
		}

		if interactive {
			_, err := config.RunWizard(cfgFile)
			return err
		}

		if err := config.DefaultConfig().Save(cfgFile); err != nil {
			return err
		}
		fmt.Printf("Default configuration saved to %s\n", cfgFile)
		return nil
	},
}

func init() {
	initCmd.Flags().BoolP("interactive", "i", false, "prompt for settings")
	initCmd.Flags().Bool("force", false, "overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}
