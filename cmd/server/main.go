package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"portfolio-tracker/internal/api"
	"portfolio-tracker/internal/config"
	"portfolio-tracker/internal/logger"
	"portfolio-tracker/internal/logo"
	"portfolio-tracker/internal/marketdata"
	"portfolio-tracker/internal/news"
	"portfolio-tracker/internal/refresh"
	"portfolio-tracker/internal/service"
	"portfolio-tracker/internal/session"
	"portfolio-tracker/internal/store"
	"portfolio-tracker/internal/web"
)

func main() {
	if err := logger.Init(os.Getenv("DEBUG") != ""); err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.L().Fatal("Failed to load configuration", zap.Error(err))
	}

	// Open the portfolio store
	db, err := store.Open(cfg.Store.Path)
	if err != nil {
		logger.L().Fatal("Failed to open store", zap.Error(err))
	}
	defer db.Close()

	logger.L().Info("Connected to store", zap.String("path", cfg.Store.Path))

	// Create external clients
	market := marketdata.NewFinanceClient(cfg.HTTP.Timeout)
	logos := logo.NewResolver(cfg.HTTP.Timeout)
	newsFetcher := news.NewFetcher(cfg.HTTP.Timeout)

	// Create session manager
	sessions, err := session.NewManager(cfg.Session.Key)
	if err != nil {
		logger.L().Fatal("Failed to create session manager", zap.Error(err))
	}

	// Create services
	holdingStore := store.NewHoldingStore(db)
	portfolioService := service.NewPortfolioService(holdingStore, market, logos, newsFetcher)

	// Optional background quote refresher
	refresher, err := refresh.New(cfg.Refresh.Schedule, portfolioService, cfg.HTTP.Timeout)
	if err != nil {
		logger.L().Fatal("Failed to create quote refresher", zap.Error(err))
	}
	refresher.Start()
	defer refresher.Stop()

	// Create the page renderer
	renderer, err := web.NewRenderer()
	if err != nil {
		logger.L().Fatal("Failed to parse templates", zap.Error(err))
	}

	// Create router
	router := api.NewRouter(db, portfolioService, sessions, renderer, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.L().Info("Starting server", zap.String("addr", cfg.Server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.L().Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.L().Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.L().Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.L().Info("Server exited")
}
