package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"nutristat/internal/server"
	"nutristat/pkg/logging"
)

var (
	transport = flag.String("transport", "http", "Transport mode: http")
	port      = flag.Int("port", 8011, "Port for HTTP transport")
	host      = flag.String("host", "0.0.0.0", "Host address")
	address   = flag.String("address", "", "Address (alias for host)")
	dbPath    = flag.String("db-path", ":memory:", "Database path (in-memory by default)")
	demo      = flag.Bool("demo", false, "Print a sample analysis and exit")
	version   = flag.Bool("version", false, "Show version")
)

func main() {
	flag.Parse()
	logging.Setup()

	if *version {
		fmt.Println("nutristat version 1.0.0")
		os.Exit(0)
	}

	if *demo {
		if err := runDemo(os.Stdout); err != nil {
			slog.Error("demo failed", "error", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	// Use address if provided, otherwise use host
	hostAddr := *host
	if *address != "" {
		hostAddr = *address
	}

	config := &server.Config{
		Transport: *transport,
		Host:      hostAddr,
		Port:      *port,
		DBPath:    *dbPath,
	}

	srv, err := server.NewNutritionServer(config, slog.Default())
	if err != nil {
		slog.Error("failed to create server", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(ctx); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-sigCh:
		slog.Info("received shutdown signal")
	case err := <-errCh:
		slog.Error("server error", "error", err)
	}

	slog.Info("shutting down")
	cancel()
	if err := srv.Stop(); err != nil {
		slog.Error("error during shutdown", "error", err)
	}
}
