package main

import (
	"github.com/spf13/cobra"

	"nhtransport/config"
	"nhtransport/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations and indexes, then exit",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger := config.NewLogger(cfg)

		// Mongo indexes are created on connect.
		a, err := openApp(cmd.Context(), cfg, logger, true)
		if err != nil {
			return err
		}
		a.Close()

		if db.DBType(cfg.DBType).IsSQL() {
			logger.Info("schema up to date", "type", cfg.DBType)
		} else {
			logger.Info("indexes ensured", "type", cfg.DBType)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
