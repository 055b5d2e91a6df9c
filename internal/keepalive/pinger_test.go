package keepalive

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/geocoder89/hallulies/internal/observability"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestPingSuccessAndFailure(t *testing.T) {
	var status atomic.Int32
	status.Store(http.StatusOK)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(int(status.Load()))
	}))
	defer srv.Close()

	reg := prometheus.NewRegistry()
	hb := observability.NewHeartbeat(reg)
	p := NewPinger(Config{URL: srv.URL, Timeout: time.Second}, discard, hb)

	assert.True(t, p.LastSuccess().IsZero())
	require.NoError(t, p.Ping(context.Background()))
	assert.False(t, p.LastSuccess().IsZero())

	status.Store(http.StatusServiceUnavailable)
	assert.Error(t, p.Ping(context.Background()))

	assert.Equal(t, 1.0, testutil.ToFloat64(hb.Results.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(hb.Results.WithLabelValues("error")))
}

func TestPingTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	p := NewPinger(Config{URL: srv.URL, Timeout: 30 * time.Millisecond}, discard, nil)
	assert.Error(t, p.Ping(context.Background()))
}

func TestStartRejectsBadSchedule(t *testing.T) {
	p := NewPinger(Config{URL: "http://127.0.0.1:1", Schedule: "every now and then"}, discard, nil)
	assert.Error(t, p.Start(context.Background()))
}

func TestHealthHandlerReadiness(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	defer srv.Close()

	reg := prometheus.NewRegistry()
	p := NewPinger(Config{URL: srv.URL}, discard, observability.NewHeartbeat(reg))

	now := time.Now()
	h := p.HealthHandler(reg, 30*time.Minute, func() time.Time { return now })

	get := func(path string) int {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w.Code
	}

	assert.Equal(t, http.StatusOK, get("/healthz"))
	assert.Equal(t, http.StatusServiceUnavailable, get("/readyz"))

	require.NoError(t, p.Ping(context.Background()))
	assert.Equal(t, http.StatusOK, get("/readyz"))

	now = now.Add(time.Hour)
	assert.Equal(t, http.StatusServiceUnavailable, get("/readyz"))
	assert.Equal(t, http.StatusOK, get("/metrics"))
}
