package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/FaizGusion00/fgadmin-sub000/config"
	"github.com/FaizGusion00/fgadmin-sub000/internal/clients/eventstore"
	"github.com/FaizGusion00/fgadmin-sub000/internal/scheduler"
	"github.com/FaizGusion00/fgadmin-sub000/internal/service"
	"github.com/FaizGusion00/fgadmin-sub000/internal/storage"
	"github.com/FaizGusion00/fgadmin-sub000/internal/web"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	// Remote event service when configured, local sqlite otherwise.
	var store service.EventStore
	if cfg.EventStoreURL != "" {
		store = eventstore.NewClient(cfg.EventStoreURL, cfg.EventStoreToken)
		log.WithField("url", cfg.EventStoreURL).Info("using remote event store")
	} else {
		db, err := storage.New(cfg.DatabasePath)
		if err != nil {
			log.Fatalf("Failed to init storage: %v", err)
		}
		defer db.Close()
		store = db
		log.WithField("path", cfg.DatabasePath).Info("using local event store")
	}

	svc := service.NewCalendarViewService(store, log, cfg.Timezone, time.Now)

	sched := scheduler.New(svc, log, cfg.Timezone, cfg.RefreshInterval)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := sched.Start(ctx); err != nil {
			log.WithError(err).Error("Scheduler error")
		}
	}()

	router := web.NewRouter(svc, []byte(cfg.JWTSecret), log)
	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: router,
	}

	go func() {
		log.WithField("addr", cfg.ListenAddr).Info("Server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("Shutting down...")

	cancel()
	sched.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Error stopping server")
	}

	log.Info("Server stopped")
}
