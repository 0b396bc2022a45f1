package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/apagano/taskdeck/internal/config"
	"github.com/apagano/taskdeck/internal/httpapi"
	"github.com/apagano/taskdeck/internal/observability"
	"github.com/apagano/taskdeck/internal/tasks"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	metrics := observability.NewMetrics(cfg.MetricsNamespace)

	ctx := context.Background()
	slot, err := tasks.NewSlot(ctx, cfg.DatabaseURL, cfg.DataFile)
	if err != nil {
		log.Fatalf("task slot init failed: %v", err)
	}

	store := tasks.NewStore(slot, metrics)
	defer store.Close()
	log.Printf("task store: %s", store.Mode())

	service := tasks.NewService(store, metrics, cfg.ReadLatency, cfg.WriteLatency)

	api := httpapi.New(cfg, service, metrics)
	httpServer := &http.Server{
		Addr:    cfg.BindAddr,
		Handler: api.Router(),
	}

	go func() {
		log.Printf("server listening on %s", cfg.BindAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	log.Printf("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
		_ = httpServer.Close()
	}

	log.Printf("shutdown complete")
}
