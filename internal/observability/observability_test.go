package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestGinMiddlewareCountsByRouteTemplate(t *testing.T) {
	p := NewProm(prometheus.NewRegistry())

	r := gin.New()
	r.Use(p.GinHandleMiddleware())
	r.GET("/api/bookings/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/api/bookings/1", "/api/bookings/2", "/nope"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(p.RequestsTotal.WithLabelValues("GET", "/api/bookings/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.RequestsTotal.WithLabelValues("GET", "unmatched", "404")))
	assert.Equal(t, 0.0, testutil.ToFloat64(p.InFlight.WithLabelValues("GET")))
}

func TestObserveDBClassifiesErrors(t *testing.T) {
	p := NewProm(prometheus.NewRegistry())

	ctx := context.Background()

	err := p.ObserveDB(ctx, "users.create", func() error {
		return &pgconn.PgError{Code: "23505"}
	})
	require.Error(t, err)

	_ = p.ObserveDB(ctx, "users.get", func() error { return errors.New("context deadline exceeded") })
	_ = p.ObserveDB(ctx, "payments.create", func() error { return &pgconn.PgError{Code: "23514"} })
	_ = p.ObserveDB(ctx, "bookings.list", func() error { return fmt.Errorf("list: %w", context.Canceled) })
	require.NoError(t, p.ObserveDB(ctx, "users.get", func() error { return nil }))

	assert.Equal(t, 1.0, testutil.ToFloat64(p.DbErrorsTotal.WithLabelValues("users.create", "unique_violation")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.DbErrorsTotal.WithLabelValues("users.get", "timeout")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.DbErrorsTotal.WithLabelValues("payments.create", "check_violation")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.DbErrorsTotal.WithLabelValues("bookings.list", "canceled")))
}

func TestObserveDBOpensSpan(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	p := NewProm(prometheus.NewRegistry())
	_ = p.ObserveDB(context.Background(), "bookings.update", func() error {
		return &pgconn.PgError{Code: "23505"}
	})

	spans := rec.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "db bookings.update", spans[0].Name())
	assert.Equal(t, otelcodes.Error, spans[0].Status().Code)
	assert.Contains(t, spans[0].Attributes(), attribute.String("db.operation", "bookings.update"))
	assert.Contains(t, spans[0].Attributes(), attribute.String("db.error_class", "unique_violation"))
}

func TestObserveMail(t *testing.T) {
	p := NewProm(prometheus.NewRegistry())

	p.ObserveMail("booking.confirmation", time.Millisecond, nil)
	p.ObserveMail("booking.confirmation", time.Millisecond, errors.New("relay down"))

	assert.Equal(t, 1.0, testutil.ToFloat64(p.MailResults.WithLabelValues("booking.confirmation", "sent")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.MailResults.WithLabelValues("booking.confirmation", "failed")))
}

func TestLoggerLevelsAndJSON(t *testing.T) {
	var buf bytes.Buffer

	log := newLogger(&buf, "prod")
	log.Debug("hidden")
	log.InfoContext(context.Background(), "shown", "booking_id", 7)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "shown", rec["msg"])
	assert.EqualValues(t, 7, rec["booking_id"])
	assert.NotContains(t, rec, "trace_id")
	assert.NotContains(t, rec, "request_id")

	buf.Reset()
	newLogger(&buf, "dev").Debug("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestTraceHandlerStampsRequestAndTraceIDs(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, "prod")

	tp := sdktrace.NewTracerProvider()
	ctx, span := tp.Tracer("test").Start(WithRequestID(context.Background(), "req-42"), "op")
	defer span.End()

	log.InfoContext(ctx, "booking.created", "booking_id", 7)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "req-42", rec["request_id"])
	assert.Equal(t, span.SpanContext().TraceID().String(), rec["trace_id"])
	assert.Equal(t, span.SpanContext().SpanID().String(), rec["span_id"])
}

func TestTracerConfigSamplerClampsRatio(t *testing.T) {
	assert.Contains(t, TracerConfig{SampleRatio: 0.25}.sampler().Description(), "TraceIDRatioBased{0.25}")
	assert.Contains(t, TracerConfig{}.sampler().Description(), "AlwaysOnSampler")
	assert.Contains(t, TracerConfig{SampleRatio: 7}.sampler().Description(), "AlwaysOnSampler")
}
