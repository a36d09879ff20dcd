package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/truckline/bdm-console/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "bdm-console",
	Short: "Truck dealership BDM dashboard backend",
	Long:  "Serves FAINT qualification scorecards, dealer filter aggregation, forecast tiles and series, and the account CRM for the BDM dashboard.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
