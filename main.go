package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/giygas/ceassist-api/catalog"
	"github.com/giygas/ceassist-api/config"
	"github.com/giygas/ceassist-api/data"
	"github.com/giygas/ceassist-api/handlers"
	"github.com/giygas/ceassist-api/health"
	"github.com/giygas/ceassist-api/logging"
	"github.com/giygas/ceassist-api/scheduler"
	"github.com/giygas/ceassist-api/server"
	"github.com/giygas/ceassist-api/session"
	"github.com/giygas/ceassist-api/validation"
)

func main() {
	if err := config.LoadEnvFile(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load .env file: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	if err := logging.Init(logging.Options{
		Dir:            cfg.LogDir,
		Level:          cfg.LogLevel,
		RetentionWeeks: cfg.LogRetentionWeeks,
		MaxFileSize:    cfg.MaxLogFileSize,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logging: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := logging.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to close log file: %v\n", err)
		}
	}()

	logging.Info("Configuration loaded",
		"env", cfg.Env.String(),
		"address", cfg.Address,
		"port", cfg.Port,
		"catalog_dir", cfg.CatalogDir,
		"max_sessions", cfg.MaxSessions,
		"session_ttl", cfg.SessionTTL.String(),
	)

	if err := run(cfg); err != nil {
		logging.Error("Server stopped with error", "error", err)
		_ = logging.Close()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	startTime := time.Now()

	cat, err := catalog.NewLoader(cfg.CatalogDir, cfg.CatalogEncoding).Load()
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	validator := validation.NewDataValidator()
	if err := validator.ValidateCatalog(cat); err != nil {
		return fmt.Errorf("validating catalog: %w", err)
	}

	report := validator.ReportDataQuality(cat)
	logging.Info("Catalog loaded",
		"products", len(cat.Products),
		"devices", len(cat.Devices),
		"reimbursement", len(cat.Reimbursement),
		"products_without_b2mg", report.ProductsWithoutB2MG,
		"devices_without_items", report.DevicesWithoutItems,
		"categories_without_devices", report.CategoriesWithoutDevices,
		"categories_without_reimbursement", report.CategoriesWithoutReimbursement,
		"duration_ms", time.Since(startTime).Milliseconds(),
	)

	dataContainer := data.NewDataContainer()
	dataContainer.UpdateData(cat)
	dataContainer.SetServerStartTime(startTime)

	sessions := session.NewStore(cfg.MaxSessions)
	healthChecker := health.NewHealthChecker(dataContainer, sessions, cfg.MaxSessions)
	httpHandler := handlers.NewHTTPHandler(dataContainer, validator, sessions, healthChecker)

	sched := scheduler.NewScheduler(dataContainer, sessions, cfg.SessionTTL, cfg.SessionSweepInterval)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	srv := server.NewServer(cfg, httpHandler)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case sig := <-quit:
		logging.Info("Received shutdown signal", "signal", sig.String())
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return srv.Shutdown(ctx)
}
