package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const readinessTimeout = 2 * time.Second

type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a plain function, such as pgxpool.Pool.Ping, to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

type HealthHandler struct {
	deps  map[string]Pinger
	order []string
	now   func() time.Time
}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{deps: make(map[string]Pinger), now: time.Now}
}

// With registers a dependency that must answer for the service to be ready.
func (h *HealthHandler) With(name string, p Pinger) *HealthHandler {
	if _, ok := h.deps[name]; !ok {
		h.order = append(h.order, name)
	}
	h.deps[name] = p
	return h
}

// Healthz is liveness only.
func (h *HealthHandler) Healthz(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *HealthHandler) Readyz(ctx *gin.Context) {
	services, ok := h.check(ctx.Request.Context())
	if !ok {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "services": services})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "ready", "services": services})
}

// Health is the public status check the keep-alive pinger hits.
func (h *HealthHandler) Health(ctx *gin.Context) {
	services, ok := h.check(ctx.Request.Context())

	status, code := "healthy", http.StatusOK
	if !ok {
		status, code = "degraded", http.StatusServiceUnavailable
	}

	ctx.JSON(code, gin.H{
		"status":    status,
		"timestamp": h.now().UTC().Format(time.RFC3339),
		"services":  services,
	})
}

func (h *HealthHandler) check(parent context.Context) (map[string]string, bool) {
	cctx, cancel := context.WithTimeout(parent, readinessTimeout)
	defer cancel()

	services := make(map[string]string, len(h.order))
	ok := true

	for _, name := range h.order {
		if err := h.deps[name].Ping(cctx); err != nil {
			services[name] = "unavailable"
			ok = false
			continue
		}
		services[name] = "connected"
	}

	return services, ok
}
