package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"weather-widget/api"
	"weather-widget/controller"
	"weather-widget/datasource"
	"weather-widget/location"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	// Parse command line arguments
	port := flag.Int("port", 8080, "Port to run the server on")
	configFile := flag.String("config", "config.json", "Path to configuration file")
	enableRateLimiting := flag.Bool("rate-limit", true, "Enable API rate limiting")
	timeout := flag.Duration("timeout", 10*time.Second, "Weather API request timeout")
	ipLookup := flag.Bool("ip-location", true, "Estimate the startup position from the public IP")
	flag.Parse()

	config, err := datasource.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := config.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	provider := config.NewProvider(*timeout, *enableRateLimiting)
	locator := location.FromConfig(config, *ipLookup, logger)
	page := api.NewPageSink()

	ctrl := controller.New(provider, page, locator,
		controller.WithDefaultCity(config.DefaultCity),
		controller.WithLogger(logger),
	)

	server := api.NewServer(ctrl, page, config.QuickCities, *port, logger)

	// Startup lookup runs in the background so the page is served immediately
	go ctrl.Initialize(context.Background(), config.DefaultCity)

	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server stopped: %v", err)
		}
	}()

	// Wait for shutdown signal
	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-shutdownChan
	logger.Info("shutting down", "signal", sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	logger.Info("shutdown complete")
}
