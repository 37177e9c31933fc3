package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"weather-widget/controller"
	"weather-widget/datasource"
	"weather-widget/location"
	"weather-widget/presentation"

	"github.com/joho/godotenv"
)

func main() {
	loadDotEnv(os.Stderr)

	var (
		city       = flag.String("city", "", "City to look up; empty uses your location or the default city")
		apiKey     = flag.String("key", "", "OpenWeatherMap API key (overrides OWM_API_KEY env)")
		configFile = flag.String("config", "config.json", "Path to configuration file")
		timeout    = flag.Duration("timeout", 10*time.Second, "HTTP request timeout")
		ipLookup   = flag.Bool("ip-location", false, "Estimate your position from the public IP")
		verbose    = flag.Bool("v", false, "Log lookups to stderr")
	)
	flag.Parse()

	config, err := datasource.LoadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if *apiKey != "" {
		config.OpenWeatherMap.APIKey = *apiKey
	}
	if err := config.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	level := slog.LevelError
	if *verbose {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctrl := controller.New(
		config.NewProvider(*timeout, false),
		presentation.NewTextSink(os.Stdout),
		location.FromConfig(config, *ipLookup, logger),
		controller.WithDefaultCity(config.DefaultCity),
		controller.WithLogger(logger),
	)

	ctx := context.Background()
	if *city != "" {
		ctrl.QueryByCity(ctx, *city)
	} else {
		ctrl.Initialize(ctx, config.DefaultCity)
	}

	if ctrl.State().Phase == controller.Failed {
		os.Exit(1)
	}
}

// loadDotEnv loads .env files into the environment. A missing file is normal
// for the terminal client; any other failure is reported to w.
func loadDotEnv(w io.Writer, filenames ...string) {
	if err := godotenv.Load(filenames...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(w, "warning: loading .env: %v\n", err)
	}
}
