package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/jwaldner/finengine/internal/config"
	"github.com/jwaldner/finengine/internal/handlers"
	"github.com/jwaldner/finengine/internal/logger"
)

func main() {
	// .env is optional; real environment variables still win
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Could not read .env: %v", err)
	}

	cfg := config.Load()

	if err := logger.InitWithConfig(cfg.Logging.LogLevel, cfg.Logging.LogFile); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	logger.Always.Printf("finengine starting - Port: %s", cfg.Server.Port)

	if cfg.Logging.LogLevel == "verbose" {
		fmt.Printf("VERBOSE LOGGING ENABLED - every stream update will be logged to %s\n", cfg.Logging.LogFile)
	}
	logger.Info.Printf("pricing: %.0f days/year, default rate %.4f, rate required: %v",
		cfg.Pricing.DaysPerYear, cfg.Pricing.DefaultRiskFree, cfg.Pricing.RequireRiskFree)
	logger.Info.Printf("indicator: default period %d, max series %d, max streams %d",
		cfg.Indicator.DefaultPeriod, cfg.Indicator.MaxSeriesLength, cfg.Indicator.MaxStreams)

	perf := handlers.NewPerformanceMonitor()
	defer perf.Close()
	router := handlers.NewRouter(cfg, perf)

	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Server.Port,
		Handler:      handlers.CORSMiddleware(router),
		ReadTimeout:  cfg.ReadTimeout(),
		WriteTimeout: cfg.WriteTimeout(),
	}

	go func() {
		fmt.Printf("Server starting on http://localhost:%s\n", cfg.Server.Port)
		logger.Always.Printf("HTTP server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error.Printf("Server failed: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Always.Printf("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error.Printf("Graceful shutdown failed: %v", err)
	}
}
