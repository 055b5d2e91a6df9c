package keepalive

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HealthHandler serves liveness, readiness and metrics for the keep-alive
// process. Readiness fails once no ping has succeeded for staleAfter.
func (p *Pinger) HealthHandler(gatherer prometheus.Gatherer, staleAfter time.Duration, now func() time.Time) http.Handler {
	r := gin.New()

	r.Use(gin.Recovery())

	// liveness: process is up
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	r.GET("/readyz", func(c *gin.Context) {
		last := p.LastSuccess()

		if last.IsZero() || now().Sub(last) > staleAfter {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "stale", "last_success": last})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "last_success": last})
	})

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	return r
}
