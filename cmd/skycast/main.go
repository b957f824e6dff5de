// Command skycast is a stdio MCP server exposing National Weather Service
// lookups as tools: get-forecast and get-alerts.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/germanamz/skycast/pkg/config"
	"github.com/germanamz/skycast/pkg/mcpserver"
	"github.com/germanamz/skycast/pkg/nws"
	"github.com/germanamz/skycast/pkg/weathertools"
	"github.com/joho/godotenv"
)

const (
	serverName    = "weather"
	serverVersion = "0.1.0"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file (optional)")
	envFile := flag.String("env", ".env", "path to .env file (ignored if missing)")
	flag.Parse()

	if err := loadDotEnv(*envFile); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// loadDotEnv loads environment variables from path. Missing files are ignored.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func run(configPath string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Default()

	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	timeout, err := cfg.RequestTimeout()
	if err != nil {
		return err
	}

	// stdout carries the protocol stream; logging goes to stderr.
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	client := nws.New(cfg.BaseURL, cfg.UserAgent, &http.Client{Timeout: timeout})

	srv := mcpserver.New(serverName, serverVersion, logger)
	srv.Register(weathertools.New(client).Tools())

	logger.Info("serving", "name", serverName, "version", serverVersion, "base_url", cfg.BaseURL)

	if err := srv.Serve(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	return nil
}
