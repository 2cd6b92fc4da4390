package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		logger := setupLogger(cfg.LogLevel, debug)

		ctx := context.Background()
		st, err := openStore(ctx, cfg)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer st.db.Close()

		if err := st.db.Migrate(ctx); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		logger.Info("database migrations applied")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
