package handlers_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/geocoder89/hallulies/internal/domain/analytics"
	"github.com/geocoder89/hallulies/internal/domain/delivery"
	"github.com/geocoder89/hallulies/internal/domain/payment"
	"github.com/geocoder89/hallulies/internal/http/handlers"
	"github.com/geocoder89/hallulies/internal/payments"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDashboard struct {
	d   analytics.Dashboard
	err error
}

func (f fakeDashboard) Dashboard(context.Context) (analytics.Dashboard, error) {
	return f.d, f.err
}

func TestAnalyticsDashboard(t *testing.T) {
	h := handlers.NewAnalyticsHandler(fakeDashboard{d: analytics.Dashboard{TotalBookings: 12, AverageRating: 4.3}}, discardLogger())
	r := setupRouter(http.MethodGet, "/api/analytics/dashboard", h.Dashboard)

	w := doJSON(r, http.MethodGet, "/api/analytics/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeMap(t, w)
	assert.EqualValues(t, 12, body["total_bookings"])
	assert.EqualValues(t, 4.3, body["average_rating"])

	h = handlers.NewAnalyticsHandler(fakeDashboard{err: errBoom}, discardLogger())
	r = setupRouter(http.MethodGet, "/api/analytics/dashboard", h.Dashboard)

	w = doJSON(r, http.MethodGet, "/api/analytics/dashboard", nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal server error", decodeMap(t, w)["error"])
}

func TestContactSubmit(t *testing.T) {
	form := map[string]interface{}{"name": "Yaw", "email": "yaw@example.com", "message": "Do you host weddings?"}

	mailer := &fakeMailer{}
	r := setupRouter(http.MethodPost, "/api/contact", handlers.NewContactHandler(mailer, newComposer(t), discardLogger()).Submit)

	w := doJSON(r, http.MethodPost, "/api/contact", form)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Message sent successfully", decodeMap(t, w)["message"])
	require.Len(t, mailer.Sent(), 1)
	assert.Equal(t, delivery.KindContactNotice, mailer.Sent()[0].Kind)

	r = setupRouter(http.MethodPost, "/api/contact", handlers.NewContactHandler(&fakeMailer{err: errBoom}, newComposer(t), discardLogger()).Submit)

	w = doJSON(r, http.MethodPost, "/api/contact", form)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Your message could not be forwarded to the front desk. Please try again later or call us directly.", decodeMap(t, w)["warning"])

	w = doJSON(r, http.MethodPost, "/api/contact", map[string]interface{}{"name": "Yaw"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

type memoryPaymentStore struct {
	rows map[string]payment.Payment
}

func (m *memoryPaymentStore) Create(_ context.Context, p payment.Payment) error {
	m.rows[p.ID] = p
	return nil
}

func (m *memoryPaymentStore) GetByID(_ context.Context, id string) (payment.Payment, error) {
	p, ok := m.rows[id]
	if !ok {
		return payment.Payment{}, payment.ErrNotFound
	}
	return p, nil
}

func TestPaymentsFlow(t *testing.T) {
	store := &memoryPaymentStore{rows: map[string]payment.Payment{}}
	h := handlers.NewPaymentsHandler(payments.NewService(payments.MockProvider{}, store, "GHS"), discardLogger())

	r := gin.New()
	r.POST("/api/payments/intent", h.CreateIntent)
	r.POST("/api/payments", h.Charge)
	r.GET("/api/payments/:id", h.GetByID)

	w := doJSON(r, http.MethodPost, "/api/payments/intent", map[string]interface{}{"amount": 250})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decodeMap(t, w)
	assert.NotEmpty(t, body["client_secret"])
	id, _ := body["payment_id"].(string)

	w = doJSON(r, http.MethodGet, "/api/payments/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decodeMap(t, w)
	assert.Equal(t, payment.StatusRequiresConfirmation, got["status"])
	assert.Equal(t, "GHS", got["currency"])

	w = doJSON(r, http.MethodPost, "/api/payments", map[string]interface{}{
		"method": "bank_transfer", "amount": 500, "customer_name": "Akua", "customer_email": "akua@example.com",
		"bank_name": "GCB", "account_number": "0011223344",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body = decodeMap(t, w)
	p, _ := body["payment"].(map[string]interface{})
	assert.Equal(t, payment.StatusPending, p["status"])
	assert.Equal(t, "3344", p["account_last4"])
	assert.Contains(t, body["message"], "ending in 3344")

	w = doJSON(r, http.MethodGet, "/api/payments/not-a-uuid", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Payment not found", decodeMap(t, w)["error"])
}

func TestPaymentsRejectAmountsTheLedgerCannotHold(t *testing.T) {
	store := &memoryPaymentStore{rows: map[string]payment.Payment{}}
	h := handlers.NewPaymentsHandler(payments.NewService(payments.MockProvider{}, store, "GHS"), discardLogger())

	r := gin.New()
	r.POST("/api/payments/intent", h.CreateIntent)
	r.POST("/api/payments", h.Charge)

	for _, tc := range []struct {
		amount interface{}
		rule   string
	}{
		{0.001, "money"},
		{12.345, "money"},
		{2000000, "lte"},
	} {
		w := doJSON(r, http.MethodPost, "/api/payments/intent", map[string]interface{}{"amount": tc.amount})
		require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

		fields := decodeMap(t, w)["details"].(map[string]interface{})["fields"].([]interface{})
		require.Len(t, fields, 1)
		assert.Equal(t, "amount", fields[0].(map[string]interface{})["field"])
		assert.Equal(t, tc.rule, fields[0].(map[string]interface{})["rule"])
	}

	w := doJSON(r, http.MethodPost, "/api/payments", map[string]interface{}{
		"method": "card", "amount": 0.001, "customer_name": "Akua", "customer_email": "akua@example.com",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, store.rows)

	w = doJSON(r, http.MethodPost, "/api/payments/intent", map[string]interface{}{"amount": 19.99})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

type fakeDeliveries struct {
	kind  string
	limit int
}

func (f *fakeDeliveries) Recent(_ context.Context, kind string, limit int) ([]delivery.Delivery, error) {
	f.kind, f.limit = kind, limit
	return []delivery.Delivery{{ID: 1, Kind: kind, Status: delivery.StatusSent, CreatedAt: time.Now()}}, nil
}

func TestDeliveriesRecent(t *testing.T) {
	repo := &fakeDeliveries{}
	r := setupRouter(http.MethodGet, "/api/admin/deliveries", handlers.NewDeliveriesHandler(repo, discardLogger()).Recent)

	w := doJSON(r, http.MethodGet, "/api/admin/deliveries", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 50, repo.limit)

	w = doJSON(r, http.MethodGet, "/api/admin/deliveries?kind=booking.confirmation&limit=5", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "booking.confirmation", repo.kind)
	assert.Equal(t, 5, repo.limit)

	for _, bad := range []string{"0", "201", "ten"} {
		w = doJSON(r, http.MethodGet, "/api/admin/deliveries?limit="+bad, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, bad)
	}
}

func TestHealth(t *testing.T) {
	healthy := handlers.PingFunc(func(context.Context) error { return nil })
	broken := handlers.PingFunc(func(context.Context) error { return errBoom })

	h := handlers.NewHealthHandler().With("database", healthy)
	r := gin.New()
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)
	r.GET("/api/health", h.Health)

	w := doJSON(r, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeMap(t, w)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, map[string]interface{}{"database": "connected"}, body["services"])

	h.With("redis", broken)

	w = doJSON(r, http.MethodGet, "/readyz", nil)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, map[string]interface{}{"database": "connected", "redis": "unavailable"}, decodeMap(t, w)["services"])

	w = doJSON(r, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "degraded", decodeMap(t, w)["status"])

	w = doJSON(r, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDocsCatalogGroupsEndpoints(t *testing.T) {
	h := handlers.NewDocsHandler("Hallulies Hotel API Documentation", "1.0.0", []handlers.Endpoint{
		{Method: http.MethodGet, Path: "/api/menu", Access: "public", Group: "menu", Description: "List active menu items"},
		{Method: http.MethodPost, Path: "/api/menu", Access: "admin", Group: "menu", Description: "Create a menu item"},
		{Method: http.MethodPost, Path: "/api/auth/login", Access: "public", Group: "auth", Description: "Log in"},
	})
	r := setupRouter(http.MethodGet, "/api/docs", h.Catalog)

	w := doJSON(r, http.MethodGet, "/api/docs", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeMap(t, w)
	assert.Equal(t, "Hallulies Hotel API Documentation", body["title"])
	assert.Equal(t, "Use Bearer token in Authorization header", body["authentication"])

	groups, _ := body["endpoints"].(map[string]interface{})
	require.Len(t, groups, 2)
	menuRoutes, _ := groups["menu"].([]interface{})
	assert.Len(t, menuRoutes, 2)
}
