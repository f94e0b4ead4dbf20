package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"salesboard/api"
	"salesboard/internal/analytics/application"
	"salesboard/internal/config"
	exportapp "salesboard/internal/export/application"
	ordersinfra "salesboard/internal/orders/infrastructure"
	sharedinfra "salesboard/internal/shared/infrastructure"
	standsinfra "salesboard/internal/stands/infrastructure"
)

func main() {
	logger := sharedinfra.NewLogger("info")

	// Charge .env
	if err := config.LoadDotEnv(); err != nil {
		logger.Warn("could not read .env file, using environment only", "err", err)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("invalid configuration", "err", err)
	}
	logger = sharedinfra.NewLogger(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", "err", err)
	}

	gate, err := api.NewAccessGate(cfg.AccessCode, cfg.AccessCodeHash, cfg.SessionSecret)
	if err != nil {
		logger.Fatal("access gate", "err", err)
	}
	if cfg.SessionSecret == "" {
		logger.Warn("SESSION_SECRET not set, sessions will not survive a restart")
	}

	dashboard := application.NewDashboardService(
		application.DashboardConfig{
			EcommercePath: cfg.EcommercePath,
			StandsPath:    cfg.StandsPath,
			TopN:          application.DefaultTopN,
		},
		ordersinfra.NewOrderCSVReader(cfg.Delimiter),
		standsinfra.NewSaleCSVReader(cfg.Delimiter, cfg.CleaningRules()),
		sharedinfra.NewInMemoryCache(),
		logger,
	)

	// Préchargement des sources; une source absente n'empêche pas le démarrage
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	_ = dashboard.Warm(ctx)
	cancel()

	handler := api.New(dashboard, exportapp.NewExportService(dashboard, logger), gate, logger)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           handler.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("dashboard listening", "addr", server.Addr, "ecommerce", cfg.EcommercePath, "stands", cfg.StandsPath)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
