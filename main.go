package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coreybb/shiftmate/api"
	"github.com/coreybb/shiftmate/auth"
	"github.com/coreybb/shiftmate/config"
	"github.com/coreybb/shiftmate/datastore"
	rh "github.com/coreybb/shiftmate/route-handlers"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}
	setupLogger(cfg)

	store, err := openStore(cfg)
	if err != nil {
		slog.Error("Database setup failed", "driver", cfg.DBDriver, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	handlers := api.Handlers{
		Users:     rh.NewUserHandler(store),
		Health:    rh.NewHealthHandler(store),
		Shifts:    rh.NewResourceHandler(store, rh.ShiftResource),
		Moods:     rh.NewResourceHandler(store, rh.MoodResource),
		Hydration: rh.NewResourceHandler(store, rh.HydrationResource),
	}

	router := api.SetupRoutes(handlers, api.Options{
		Gate:           auth.StubGate{},
		RequestTimeout: cfg.RequestTimeout,
	})

	startServer(cfg.Port, router)
}

func setupLogger(cfg *config.Config) {
	level, _ := cfg.SlogLevel() // validated by config.Load
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

func openStore(cfg *config.Config) (*datastore.SQLStore, error) {
	if cfg.DBDriver == config.DriverSQLite {
		return datastore.OpenSQLite(cfg.SQLitePath)
	}
	return datastore.OpenPostgres(cfg.DatabaseURL)
}

func startServer(port string, router http.Handler) {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	shutdownSignal := make(chan os.Signal, 1)
	signal.Notify(shutdownSignal, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("Server is listening", "port", port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-shutdownSignal // Block until signal received
	slog.Info("Shutdown signal received, initiating graceful shutdown")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}

	slog.Info("Server gracefully stopped")
}
