package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/fencyatf/Products-Backend/internal/config"
	"github.com/fencyatf/Products-Backend/internal/database"
	"github.com/fencyatf/Products-Backend/internal/logger"
	"github.com/fencyatf/Products-Backend/internal/router"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	// load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logg := logger.New(cfg.Log, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// open the store and bootstrap its schema
	store, err := database.Open(ctx, cfg.Database)
	if err != nil {
		logg.Error("open database", "error", err)
		os.Exit(1)
	}
	logg.Info("DB connected")

	r := router.SetupRouter(router.Deps{Config: cfg, Store: store, Log: logg})

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port),
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		logg.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		logg.Info("shutting down")
	case err := <-errCh:
		if err != nil {
			logg.Error("run server", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logg.Error("shutdown server", "error", err)
	}
	if err := store.Close(shutdownCtx); err != nil {
		logg.Error("close database", "error", err)
	}
}
