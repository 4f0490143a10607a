package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"class-order/config"
	"class-order/db"
	"class-order/logging"
	"class-order/mirror"
	"class-order/models"
	"class-order/notify"
	"class-order/session"
	"class-order/store"
	"class-order/web"
)

func main() {
	log := logging.GetLogger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.Connect(ctx, cfg.DB)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	// Check for migrate subcommand
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		if err := applyMigrations(ctx, pool, true); err != nil {
			log.Fatalf("migrate: %v", err)
		}
		return
	}

	// Optional auto-migration (useful in production and for fresh DBs).
	// Set AUTO_MIGRATE=1 (or "true") to enable.
	if v := strings.TrimSpace(os.Getenv("AUTO_MIGRATE")); v == "1" || strings.EqualFold(v, "true") {
		if err := applyMigrations(ctx, pool, false); err != nil {
			log.Fatalf("migrate: %v", err)
		}
	}

	defaults := models.DefaultSettings()
	defaults.MaxPrice = cfg.Order.MaxPrice

	m := mirror.New(store.New(pool), defaults)
	if err := m.Start(ctx); err != nil {
		// The shared store is the source of truth; without it there is
		// nothing to serve.
		log.Fatalf("store unreachable: %v", err)
	}
	log.Info("mirror synchronized with shared store")

	notifier, err := notify.New(cfg.Telegram)
	if err != nil {
		log.Fatalf("notify: %v", err)
	}
	if notifier != nil {
		log.Info("telegram notifier enabled")
	}

	resolver := session.NewResolver(m, cfg.Admin.Password, cfg.Admin.Name, cfg.Server.SessionFile)
	server := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: web.NewServer(m, resolver, notifier).Router(),
	}

	go func() {
		log.Infof("listening on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Info("shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("server shutdown: %v", err)
	}
	cancel()
}
