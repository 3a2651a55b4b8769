package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/api"
	"github.com/jafarshop/storefront/internal/cart"
	"github.com/jafarshop/storefront/internal/config"
	"github.com/jafarshop/storefront/internal/search"
	"github.com/jafarshop/storefront/internal/service"
	"github.com/jafarshop/storefront/internal/shopify"
)

func main() {
	// Load .env if present, then configuration
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	var logger *zap.Logger
	if cfg.Environment == "production" {
		logger, _ = zap.NewProduction()
	} else {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	logger.Info("Starting Storefront API server",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Environment),
	)

	// Pick the product service once at startup: the real Storefront client,
	// or the canned demo catalog when no credentials are configured.
	var svc service.ProductService
	if cfg.Storefront.DemoMode() {
		logger.Warn("Storefront credentials missing, serving the demo catalog",
			zap.Bool("has_shop_domain", cfg.Storefront.ShopDomain != ""),
			zap.Bool("has_access_token", cfg.Storefront.AccessToken != ""),
		)
		svc = service.NewMockProductService(logger)
	} else {
		client := shopify.NewClient(cfg.Storefront, logger)
		svc = service.NewProductService(client, logger)
	}

	carts, err := cart.NewStore(cfg.DataDir, logger)
	if err != nil {
		logger.Fatal("Failed to initialize cart store", zap.Error(err))
	}

	recents, err := search.NewRecents(cfg.DataDir)
	if err != nil {
		logger.Fatal("Failed to initialize recent searches", zap.Error(err))
	}

	// Initialize router
	router := api.NewRouter(cfg, svc, carts, recents, logger)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	logger.Info("Server started successfully", zap.String("address", srv.Addr))

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
