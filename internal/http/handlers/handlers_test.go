package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/geocoder89/hallulies/internal/notifications"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var errBoom = errors.New("boom")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupRouter(method, path string, h gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Handle(method, path, h)
	return r
}

func doJSON(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf io.Reader = http.NoBody
	if body != nil {
		b, _ := json.Marshal(body)
		buf = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeMap(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var m map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &m); err != nil {
		t.Fatalf("decode body: %v body=%s", err, w.Body.String())
	}
	return m
}

type fakeMailer struct {
	mu   sync.Mutex
	err  error
	sent []notifications.Message
}

func (m *fakeMailer) Send(_ context.Context, msg notifications.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sent = append(m.sent, msg)
	return m.err
}

func (m *fakeMailer) Sent() []notifications.Message {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]notifications.Message(nil), m.sent...)
}

func newComposer(t *testing.T) *notifications.Composer {
	t.Helper()

	c, err := notifications.NewComposer(notifications.DefaultHotel, "frontdesk@hallulies.com")
	if err != nil {
		t.Fatalf("composer: %v", err)
	}
	return c
}
