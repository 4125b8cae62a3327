// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sabia-pyme/backend-go/internal/api"
	"github.com/sabia-pyme/backend-go/internal/config"
	"github.com/sabia-pyme/backend-go/internal/pipeline/costing"
	"github.com/sabia-pyme/backend-go/internal/pipeline/inventory"
	"github.com/sabia-pyme/backend-go/internal/service"
	"github.com/sabia-pyme/backend-go/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Remote input sources (bucket, Drive) are optional
	fetchers, err := service.RemoteFetchers(context.Background(), cfg)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to configure remote sources")
	}

	// Initialize services
	costingService := service.NewCostingService(
		costing.NewCostingPipeline(costing.Config{AlertThresholdPct: cfg.Analysis.ProfitabilityAlertPct}),
		fetchers,
	)
	inventoryService := service.NewInventoryService(
		inventory.NewInventoryPipeline(inventory.Thresholds{
			LowMarginRatio:    cfg.Analysis.LowMarginRatio,
			TargetMarginRatio: cfg.Analysis.TargetMarginRatio,
		}),
	)

	// Initialize HTTP server
	router := api.NewRouter(&api.Services{
		CostingService:   costingService,
		InventoryService: inventoryService,
	}, api.RouterOptions{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		MaxUploadMB:    cfg.Server.MaxUploadMB,
	})
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().
			Str("port", cfg.Server.Port).
			Strs("sources", costingService.Sources()).
			Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
