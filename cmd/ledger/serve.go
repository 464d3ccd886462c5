package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/ixAbdulaziz/ERP-Last/internal/ledger/handler"
	"github.com/ixAbdulaziz/ERP-Last/internal/ledger/repository"
	"github.com/ixAbdulaziz/ERP-Last/internal/ledger/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	Example: `  # Serve on the configured port
  ledger serve

  # Override the port
  ledger serve --port 9000`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "Listen port (overrides server.port)")
	serveCmd.Flags().Bool("no-migrate", false, "Skip schema bootstrap on startup")
}

func runServe(cmd *cobra.Command, args []string) error {
	if port, _ := cmd.Flags().GetInt("port"); port > 0 {
		cfg.Server.Port = port
	}
	noMigrate, _ := cmd.Flags().GetBool("no-migrate")

	zapLogger.Info("Starting ledger service",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
	)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// 初始化数据库
	db, err := initDatabase(cfg.Database, cfg.Log.Level)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	zapLogger.Info("Database connected", zap.String("database", cfg.Database.Redacted()))

	if cfg.Database.AutoMigrate && !noMigrate {
		if err := repository.AutoMigrate(db); err != nil {
			return err
		}
		zapLogger.Info("Schema ready")
	}

	blobs, err := initBlobStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("init attachment storage: %w", err)
	}
	flashes, closeFlash := initFlashStore(ctx, cfg.Redis, zapLogger)
	defer closeFlash()

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, blobs, zapLogger)
	handlers := handler.NewHandlers(services, repos, flashes, handler.Options{
		MaxUploadSize: cfg.Server.MaxUploadSize,
		SecureCookies: cfg.Server.SecureCookies,
	}, zapLogger)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      newRouter(cfg, handlers, zapLogger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 启动服务器
	errCh := make(chan error, 1)
	go func() {
		zapLogger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	}

	zapLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exited")
	return nil
}
