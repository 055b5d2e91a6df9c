package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/geocoder89/hallulies/internal/auth"
	"github.com/geocoder89/hallulies/internal/domain/menu"
	"github.com/geocoder89/hallulies/internal/http/middlewares"
	"github.com/geocoder89/hallulies/internal/observability"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubMenu struct{}

func (stubMenu) ListActive(context.Context) ([]menu.Item, error) {
	return []menu.Item{{ID: 1, Name: "Banku", IsActive: true}}, nil
}

func (stubMenu) ListActiveByCategory(context.Context, string) ([]menu.Item, error) {
	return nil, nil
}

func (stubMenu) Create(context.Context, menu.CreateRequest) (menu.Item, error) {
	return menu.Item{ID: 5}, nil
}

func (stubMenu) GetByID(context.Context, int64) (menu.Item, error) {
	return menu.Item{}, menu.ErrNotFound
}

func (stubMenu) Update(context.Context, int64, menu.Patch) (menu.Item, error) {
	return menu.Item{}, menu.ErrNotFound
}

func (stubMenu) Deactivate(context.Context, int64) error {
	return menu.ErrNotFound
}

func testRouter(t *testing.T, tokens *auth.Manager) *gin.Engine {
	t.Helper()

	reg := prometheus.NewRegistry()

	return NewRouter(Dependencies{
		Log:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		Env:          "dev",
		Tokens:       tokens,
		Menu:         stubMenu{},
		LoginLimiter: middlewares.NewMemoryLimiter(2, time.Minute),
		Prom:         observability.NewProm(reg),
		Gatherer:     reg,
		CORSOrigins:  []string{"*"},
		MaxBodyBytes: 1 << 20,
	})
}

func serve(r http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRouterNotFoundFallback(t *testing.T) {
	r := testRouter(t, auth.NewManager("secret", time.Hour))

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/nope"},
		{http.MethodPatch, "/api/bookings/1"},
		{http.MethodGet, "/api/menu/"},
		{http.MethodGet, "/api/bookings/"},
		{http.MethodGet, "/api/docs/"},
		{http.MethodGet, "/API/MENU"},
	} {
		w := serve(r, tc.method, tc.path, "")

		require.Equal(t, http.StatusNotFound, w.Code, tc.path)
		assert.Empty(t, w.Header().Get("Location"), tc.path)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "API endpoint not found", body["error"])
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	}
}

func TestRouterPreflight(t *testing.T) {
	r := testRouter(t, auth.NewManager("secret", time.Hour))

	for _, path := range []string{"/api/bookings", "/anything/at/all"} {
		w := serve(r, http.MethodOptions, path, "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Body.String())
		assert.Equal(t, "GET, POST, PUT, DELETE, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
		assert.Equal(t, "Content-Type, Authorization", w.Header().Get("Access-Control-Allow-Headers"))
	}
}

func TestRouterAccessLevels(t *testing.T) {
	tokens := auth.NewManager("secret", time.Hour)
	r := testRouter(t, tokens)

	userToken, err := tokens.Issue(auth.Identity{UserID: 2, Role: auth.RoleUser})
	require.NoError(t, err)
	adminToken, err := tokens.Issue(auth.Identity{UserID: 1, Role: auth.RoleAdmin})
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		want  int
	}{
		{name: "anonymous", want: http.StatusUnauthorized},
		{name: "garbage token", token: "abc", want: http.StatusUnauthorized},
		{name: "user", token: userToken, want: http.StatusForbidden},
		{name: "admin reaches handler", token: adminToken, want: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(r, http.MethodDelete, "/api/menu/3", tt.token)
			assert.Equal(t, tt.want, w.Code)
		})
	}

	w := serve(r, http.MethodGet, "/api/menu", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouterLoginIsRateLimited(t *testing.T) {
	r := testRouter(t, auth.NewManager("secret", time.Hour))

	for i := 0; i < 2; i++ {
		w := serve(r, http.MethodPost, "/api/auth/login", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}

	w := serve(r, http.MethodPost, "/api/auth/login", "")
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestRouterDocsMatchDispatchTable(t *testing.T) {
	r := testRouter(t, auth.NewManager("secret", time.Hour))

	w := serve(r, http.MethodGet, "/api/docs", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Title     string `json:"title"`
		Endpoints map[string][]struct {
			Method string `json:"method"`
			Path   string `json:"path"`
			Access string `json:"access"`
		} `json:"endpoints"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, APITitle, body.Title)

	listed := map[string]string{}
	for _, group := range body.Endpoints {
		for _, e := range group {
			listed[e.Method+" "+e.Path] = e.Access
		}
	}

	for _, rt := range Routes(Dependencies{}) {
		access, ok := listed[rt.Method+" "+rt.Path]
		require.True(t, ok, "%s %s missing from docs", rt.Method, rt.Path)
		assert.Equal(t, rt.Access, access)
	}
	assert.Equal(t, AccessPublic, listed["GET /api/docs"])
}

func TestRouterMetrics(t *testing.T) {
	r := testRouter(t, auth.NewManager("secret", time.Hour))

	serve(r, http.MethodGet, "/api/menu", "")

	w := serve(r, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `hallulies_http_requests_total{method="GET",route="/api/menu",status="200"} 1`)
}

type panickingMenu struct{ stubMenu }

func (panickingMenu) ListActive(context.Context) ([]menu.Item, error) {
	panic("menu store exploded")
}

func TestRouterRecoversFromPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRouter(Dependencies{
		Log:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		Env:          "dev",
		Tokens:       auth.NewManager("secret", time.Hour),
		Menu:         panickingMenu{},
		LoginLimiter: middlewares.NewMemoryLimiter(2, time.Minute),
		Prom:         observability.NewProm(reg),
		Gatherer:     reg,
		CORSOrigins:  []string{"*"},
		MaxBodyBytes: 1 << 20,
	})

	w := serve(r, http.MethodGet, "/api/menu", "")
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Internal server error", body["error"])
	assert.Equal(t, "internal_failure", body["code"])
}

func TestRouterSearchIsPublicAndDocumentsAreAdminOnly(t *testing.T) {
	tokens := auth.NewManager("secret", time.Hour)
	r := testRouter(t, tokens)

	w := serve(r, http.MethodGet, "/api/search?q=banku", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Results []struct {
			Title    string `json:"title"`
			Category string `json:"category"`
		} `json:"results"`
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, 1, body.Total)
	assert.Equal(t, "Banku", body.Results[0].Title)
	assert.Equal(t, "menu", body.Results[0].Category)

	userToken, err := tokens.Issue(auth.Identity{UserID: 2, Role: auth.RoleUser})
	require.NoError(t, err)

	for _, path := range []string{"/api/documents", "/api/documents/abc/view", "/api/documents/abc/share-link"} {
		assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, path, "").Code, path)
		assert.Equal(t, http.StatusForbidden, serve(r, http.MethodGet, path, userToken).Code, path)
	}
}
