package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/geocoder89/hallulies/internal/auth"
	"github.com/geocoder89/hallulies/internal/cache"
	"github.com/geocoder89/hallulies/internal/config"
	"github.com/geocoder89/hallulies/internal/db"
	httpx "github.com/geocoder89/hallulies/internal/http"
	"github.com/geocoder89/hallulies/internal/http/handlers"
	"github.com/geocoder89/hallulies/internal/http/middlewares"
	"github.com/geocoder89/hallulies/internal/notifications"
	"github.com/geocoder89/hallulies/internal/observability"
	"github.com/geocoder89/hallulies/internal/payments"
	"github.com/geocoder89/hallulies/internal/redisclient"
	"github.com/geocoder89/hallulies/internal/repo/postgres"
	"github.com/geocoder89/hallulies/internal/security"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	// Load the config set up
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := observability.NewLogger(cfg.Env)

	if err := run(cfg, log); err != nil {
		log.Error("api stopped", "err", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.TracingEnabled() {
		shutdownTracer, err := observability.InitTracer(ctx, observability.TracerConfig{
			ServiceName: httpx.ServiceName,
			Version:     httpx.APIVersion,
			Env:         cfg.Env,
			Endpoint:    cfg.OTLPEndpoint,
			SampleRatio: cfg.OTelSampleRatio,
		})
		if err != nil {
			return fmt.Errorf("init tracer: %w", err)
		}
		defer func() {
			sctx, cancel := config.WithTimeout(5 * time.Second)
			defer cancel()
			_ = shutdownTracer(sctx)
		}()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	prom := observability.NewProm(reg)

	pool, err := db.NewPool(ctx, cfg.DBURL)
	if err != nil {
		return fmt.Errorf("db connect: %w", err)
	}
	defer pool.Close()

	if err := db.Migrate(pool); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	seeded, err := db.EnsureAdminUser(ctx, pool, cfg)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if seeded {
		log.Info("admin user created", "email", cfg.AdminEmail)
	}

	if cfg.SeedMenu {
		n, err := db.SeedMenu(ctx, pool)
		if err != nil {
			return fmt.Errorf("seed menu: %w", err)
		}
		if n > 0 {
			log.Info("sample menu loaded", "items", n)
		}
	}

	health := handlers.NewHealthHandler().With("database", handlers.PingFunc(pool.Ping))

	var loginLimiter middlewares.Limiter = middlewares.NewMemoryLimiter(cfg.LoginRateLimit, cfg.LoginRateWindow)
	if cfg.UseRedis() {
		rc := redisclient.New(redisclient.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rc.Close()

		pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := rc.Ping(pctx)
		cancel()

		if err != nil {
			log.Warn("redis unavailable, login limiter stays in memory", "addr", cfg.Redis.Addr, "err", err)
		} else {
			loginLimiter = rc.FixedWindow("ratelimit:login", cfg.LoginRateLimit, cfg.LoginRateWindow)
			health.With("redis", rc)
		}
	}

	deliveries := postgres.NewNotificationDeliveriesRepo(pool, prom)
	mailer := notifications.NewRecordingMailer(
		notifications.NewProtectedMailer(baseMailer(cfg, log), notifications.ProtectedMailerConfig{
			Timeout:          cfg.Mail.Timeout,
			FailureThreshold: 3,
			Cooldown:         30 * time.Second,
			HalfOpenMaxCalls: 1,
			OnStateChange: func(s notifications.BreakerState) {
				prom.BreakerState.Set(float64(s))
			},
		}),
		deliveries,
		prom,
		log,
	)

	composer, err := notifications.NewComposer(notifications.DefaultHotel, cfg.Mail.AdminRecipient())
	if err != nil {
		return fmt.Errorf("mail templates: %w", err)
	}

	router := httpx.NewRouter(httpx.Dependencies{
		Log:          log,
		Env:          cfg.Env,
		Tokens:       auth.NewManager(cfg.JWTSecret, cfg.TokenTTL),
		Users:        postgres.NewUsersRepo(pool, prom),
		Bookings:     postgres.NewBookingsRepo(pool, prom),
		Testimonials: postgres.NewTestimonialsRepo(pool, prom),
		Menu:         cache.NewMenu(postgres.NewMenuRepo(pool, prom), cfg.MenuCacheTTL),
		Analytics:    postgres.NewAnalyticsRepo(pool, prom),
		Deliveries:   deliveries,
		Payments:     payments.NewService(payments.MockProvider{}, postgres.NewPaymentsRepo(pool, prom), cfg.Payments.Currency),
		Documents:    postgres.NewDocumentsRepo(pool, prom),
		Mailer:       mailer,
		Composer:     composer,
		Sanitizer:    security.NewTextSanitizer(),
		LoginLimiter: loginLimiter,
		Health:       health,
		Prom:         prom,
		Gatherer:     reg,
		Tracing:      cfg.TracingEnabled(),
		CORSOrigins:  cfg.CORSAllowedOrigins,
		MaxBodyBytes: cfg.MaxBodyBytes,
		Currency:     cfg.Payments.Currency,
		ShareBaseURL: cfg.ShareBaseURL,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	log.Info("server shutting down")

	sctx, cancel := config.WithTimeout(10 * time.Second)
	defer cancel()

	if err := srv.Shutdown(sctx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}

	log.Info("shutdown complete")
	return nil
}

func baseMailer(cfg config.Config, log *slog.Logger) notifications.Mailer {
	if cfg.Mail.Driver == "smtp" {
		return notifications.NewSMTPMailer(notifications.SMTPConfig{
			Host:     cfg.Mail.Host,
			Port:     cfg.Mail.Port,
			Username: cfg.Mail.Username,
			Password: cfg.Mail.Password,
			From:     cfg.Mail.Sender(),
		})
	}
	return notifications.NewLogMailer(log)
}
