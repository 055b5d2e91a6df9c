package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/geocoder89/hallulies/internal/config"
	"github.com/geocoder89/hallulies/internal/keepalive"
	"github.com/geocoder89/hallulies/internal/observability"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := observability.NewLogger(cfg.Env).With("component", "keepalive")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()

	pinger := keepalive.NewPinger(keepalive.Config{
		URL:      cfg.KeepAlive.URL,
		Schedule: cfg.KeepAlive.Schedule,
		Timeout:  cfg.KeepAlive.Timeout,
	}, log, observability.NewHeartbeat(reg))

	if err := pinger.Start(ctx); err != nil {
		log.Error("keepalive failed to start", "err", err)
		os.Exit(1)
	}

	// a heartbeat older than two ticks means the target or the pinger is stuck
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.KeepAlive.HealthPort),
		Handler:           pinger.HealthHandler(reg, 30*time.Minute, time.Now),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("health server failed", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("keepalive shutting down")

	sctx, cancel := config.WithTimeout(10 * time.Second)
	defer cancel()

	_ = srv.Shutdown(sctx)
	pinger.Stop(sctx)

	log.Info("keepalive stopped")
}
