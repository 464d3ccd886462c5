package main

import (
	"github.com/ixAbdulaziz/ERP-Last/internal/ledger/repository"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the ledger tables and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := initDatabase(cfg.Database, cfg.Log.Level)
		if err != nil {
			return err
		}
		if sqlDB, err := db.DB(); err == nil {
			defer sqlDB.Close()
		}

		if err := repository.AutoMigrate(db); err != nil {
			return err
		}
		zapLogger.Info("Schema ready",
			zap.String("database", cfg.Database.Redacted()),
			zap.Int("tables", len(repository.Models)),
		)
		return nil
	},
}
