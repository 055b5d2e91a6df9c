// Package keepalive pings the public API on a schedule so free-tier hosts
// never idle it out.
package keepalive

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/geocoder89/hallulies/internal/observability"
	"github.com/robfig/cron/v3"
)

type Config struct {
	URL      string
	Schedule string
	Timeout  time.Duration
}

type Pinger struct {
	cfg     Config
	client  *http.Client
	log     *slog.Logger
	metrics *observability.Heartbeat

	lastOK atomic.Int64 // unix seconds
	cron   *cron.Cron
}

func NewPinger(cfg Config, log *slog.Logger, metrics *observability.Heartbeat) *Pinger {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}

	return &Pinger{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.Timeout},
		log:     log,
		metrics: metrics,
	}
}

// Ping performs one GET and treats any non-2xx status as failure.
func (p *Pinger) Ping(ctx context.Context) error {
	start := time.Now()
	err := p.ping(ctx)
	elapsed := time.Since(start)

	result := "ok"
	if err != nil {
		result = "error"
		p.log.WarnContext(ctx, "keepalive.ping_failed", "url", p.cfg.URL, "err", err, "latency_ms", elapsed.Milliseconds())
	} else {
		p.lastOK.Store(time.Now().Unix())
		p.log.InfoContext(ctx, "keepalive.ping_ok", "url", p.cfg.URL, "latency_ms", elapsed.Milliseconds())
	}

	if p.metrics != nil {
		p.metrics.Results.WithLabelValues(result).Inc()
		p.metrics.Duration.Observe(elapsed.Seconds())
		if err == nil {
			p.metrics.LastOK.SetToCurrentTime()
		}
	}

	return err
}

func (p *Pinger) ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.cfg.URL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "hallulies-keepalive/1.0")

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}

// LastSuccess is zero until the first ping succeeds.
func (p *Pinger) LastSuccess() time.Time {
	v := p.lastOK.Load()
	if v == 0 {
		return time.Time{}
	}
	return time.Unix(v, 0)
}

// Start pings once immediately and then on every schedule tick.
func (p *Pinger) Start(ctx context.Context) error {
	c := cron.New()

	_, err := c.AddFunc(p.cfg.Schedule, func() {
		_ = p.Ping(ctx)
	})
	if err != nil {
		return fmt.Errorf("keepalive schedule %q: %w", p.cfg.Schedule, err)
	}

	p.cron = c
	go func() { _ = p.Ping(ctx) }()
	c.Start()

	p.log.Info("keepalive.started", "url", p.cfg.URL, "schedule", p.cfg.Schedule)
	return nil
}

// Stop waits for a running ping to finish or ctx to end.
func (p *Pinger) Stop(ctx context.Context) {
	if p.cron == nil {
		return
	}
	select {
	case <-p.cron.Stop().Done():
	case <-ctx.Done():
	}
}
