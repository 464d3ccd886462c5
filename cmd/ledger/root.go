package main

import (
	"fmt"
	"os"

	"github.com/ixAbdulaziz/ERP-Last/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfg       *config.Config
	zapLogger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Supplier invoice ledger",
	Long: `Supplier invoice ledger tracks suppliers, their invoices, purchase orders
and the payments made against each supplier's outstanding balance.

Configuration is read from configs/config.yaml or ./config.yaml and can be
overridden with environment variables (DB_HOST, MYSQLHOST, REDIS_HOST, ...).`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		zapLogger, err = initLogger(cfg.Log)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if zapLogger != nil {
			_ = zapLogger.Sync()
		}
	},
}

// Execute 执行命令行
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if zapLogger != nil {
			zapLogger.Error("Command execution failed", zap.Error(err))
			_ = zapLogger.Sync()
		}
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd)
}
