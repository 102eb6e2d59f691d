package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/gigwage/config"
	"github.com/kilianp07/gigwage/infra/logger"
)

var (
	cfgPath string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "gigwage",
	Short: "Real hourly wage calculator for gig drivers",
	Long: "gigwage turns what the apps report (gross pay and hours online) into\n" +
		"what a driver actually keeps once vehicle costs and self-employment tax\n" +
		"are taken out.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		c, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := logger.SetLevel(c.Logging.Level); err != nil {
			return err
		}
		cfg = c
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "configuration file (YAML or JSON); environment only when empty")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }
