package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"

	"SNCF_Proxy/internal/cache"
	"SNCF_Proxy/internal/config"
	"SNCF_Proxy/internal/http"
	"SNCF_Proxy/internal/logger"
	"SNCF_Proxy/internal/models"
	"SNCF_Proxy/internal/transit"
	"SNCF_Proxy/internal/upstream"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	startupCtx := logger.WithLogEvent(context.Background(), logger.NewInternalLogEvent())

	// Postgres when DATABASE_URL is set, console otherwise
	appLogger, err := logger.New(startupCtx, os.Stdout, cfg.DatabaseURL, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Close()

	trainCache, err := cache.NewMemoryCache(cfg.CacheTTL)
	if err != nil {
		appLogger.LogError(startupCtx, "cache_init", "", "Failed to initialize cache", err, models.LogSeverityHigh, nil)
		log.Fatalf("Failed to initialize cache: %v", err)
	}

	appLogger.LogInfo(startupCtx, logger.OpServerStart, "Starting SNCF Proxy API", map[string]interface{}{
		"version": "1.0.0",
		"config": map[string]interface{}{
			"port":             cfg.Port,
			"upstream":         cfg.UpstreamBaseURL,
			"cache_ttl":        cfg.CacheTTL.Seconds(),
			"cache_entries":    trainCache.Size(),
			"database_logging": cfg.DatabaseURL != "",
		},
	})

	upstreamClient := upstream.NewHTTPClient(cfg.UpstreamBaseURL, cfg.APIKey)

	proxyService := transit.NewService(upstreamClient, trainCache, appLogger, transit.Timeouts{
		Train:  cfg.TrainTimeout,
		Places: cfg.PlacesTimeout,
		Board:  cfg.BoardTimeout,
	})

	handler := http.NewHandler(proxyService, appLogger)

	addr := ":" + cfg.Port
	server := http.NewServer(
		addr,
		handler,
		appLogger,
		cfg.ServerReadTimeout,
		cfg.ServerWriteTimeout,
	)

	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			appLogger.LogError(
				startupCtx,
				logger.OpServerStart,
				"",
				"Server failed to start",
				err,
				models.LogSeverityHigh,
				map[string]interface{}{"addr": addr},
			)
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	fmt.Printf("SNCF Proxy API server started on %s\n", addr)
	fmt.Println("Available endpoints:")
	fmt.Println("  GET  /health                                   - Health check")
	fmt.Println("  GET  /api/train?numero=                        - Train journeys (cached)")
	fmt.Println("  GET  /api/places?q=                            - Station search")
	fmt.Println("  GET  /api/board?station_id=&type=&datetime=   - Departures / arrivals board")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\nShutting down server...")

	ctx, cancel := context.WithTimeout(startupCtx, cfg.ServerShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.LogError(
			ctx,
			logger.OpServerShutdown,
			"",
			"Server shutdown error",
			err,
			models.LogSeverityMedium,
			nil,
		)
		log.Printf("Server shutdown error: %v", err)
	} else {
		appLogger.LogInfo(ctx, logger.OpServerShutdown, "Server shutdown completed successfully", nil)
		fmt.Println("Server shutdown completed")
	}
}
