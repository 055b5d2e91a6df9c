package http

import (
	"log/slog"
	"net/http"

	"github.com/geocoder89/hallulies/internal/auth"
	"github.com/geocoder89/hallulies/internal/domain/testimonial"
	"github.com/geocoder89/hallulies/internal/http/handlers"
	"github.com/geocoder89/hallulies/internal/http/middlewares"
	"github.com/geocoder89/hallulies/internal/notifications"
	"github.com/geocoder89/hallulies/internal/observability"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const (
	ServiceName = "hallulies-api"
	APITitle    = "Hallulies Hotel API Documentation"
	APIVersion  = "1.0.0"
)

// Access levels a route can demand.
const (
	AccessPublic        = "public"
	AccessAuthenticated = "authenticated"
	AccessAdmin         = "admin"
)

type TokenService interface {
	middlewares.TokenVerifier
	handlers.TokenIssuer
}

type Composer interface {
	handlers.BookingComposer
	handlers.TestimonialComposer
	handlers.ContactComposer
}

type Dependencies struct {
	Log *slog.Logger
	Env string

	Tokens       TokenService
	Users        handlers.UserStore
	Bookings     handlers.BookingStore
	Testimonials handlers.TestimonialStore
	Menu         handlers.MenuStore
	Analytics    handlers.DashboardReader
	Deliveries   handlers.DeliveryReader
	Payments     handlers.PaymentService
	Documents    handlers.DocumentStore

	Mailer    notifications.Mailer
	Composer  Composer
	Sanitizer testimonial.Sanitizer

	// LoginLimiter throttles /api/auth/login per client IP. nil disables it.
	LoginLimiter middlewares.Limiter
	Health       *handlers.HealthHandler

	Prom     *observability.Prom
	Gatherer prometheus.Gatherer
	Tracing  bool

	CORSOrigins  []string
	MaxBodyBytes int64

	// Currency is stamped on documents uploaded without one.
	Currency     string
	ShareBaseURL string
}

// Route is one row of the dispatch table. The docs catalog is generated from
// the same rows so it always matches what is served.
type Route struct {
	Method      string
	Path        string
	Access      string
	Group       string
	Description string
	Handler     gin.HandlerFunc
	Before      []gin.HandlerFunc
}

func NewRouter(deps Dependencies) *gin.Engine {
	if deps.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// redirects are written before any middleware runs, so they would skip
	// CORS and the JSON 404; "/api/menu/" is simply not a route
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false

	r.Use(gin.CustomRecovery(func(ctx *gin.Context, rec any) {
		deps.Log.ErrorContext(ctx.Request.Context(), "http.panic", "panic", rec, "path", ctx.Request.URL.Path)
		handlers.RespondError(ctx, http.StatusInternalServerError, handlers.CodeInternal, "Internal server error", nil)
	}))
	r.Use(middlewares.RequestID())
	if deps.Tracing {
		r.Use(otelgin.Middleware(ServiceName))
	}
	r.Use(middlewares.RequestLogger(deps.Log))
	if deps.Prom != nil {
		r.Use(deps.Prom.GinHandleMiddleware())
	}
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(deps.CORSOrigins))
	r.Use(middlewares.MaxBodyBytes(deps.MaxBodyBytes))

	authMw := middlewares.NewAuthMiddleware(deps.Tokens)

	routes := Routes(deps)
	endpoints := make([]handlers.Endpoint, 0, len(routes)+1)
	for _, rt := range routes {
		endpoints = append(endpoints, handlers.Endpoint{
			Method:      rt.Method,
			Path:        rt.Path,
			Access:      rt.Access,
			Group:       rt.Group,
			Description: rt.Description,
		})
	}

	docs := handlers.NewDocsHandler(APITitle, APIVersion, append(endpoints, handlers.Endpoint{
		Method:      http.MethodGet,
		Path:        "/api/docs",
		Access:      AccessPublic,
		Group:       "system",
		Description: "This catalog",
	}))
	routes = append(routes, Route{Method: http.MethodGet, Path: "/api/docs", Access: AccessPublic, Handler: docs.Catalog})

	for _, rt := range routes {
		chain := make([]gin.HandlerFunc, 0, len(rt.Before)+3)
		switch rt.Access {
		case AccessAuthenticated:
			chain = append(chain, authMw.RequireAuth())
		case AccessAdmin:
			chain = append(chain, authMw.RequireAuth(), authMw.RequireRole(auth.RoleAdmin))
		}
		chain = append(chain, rt.Before...)
		chain = append(chain, rt.Handler)

		r.Handle(rt.Method, rt.Path, chain...)
	}

	if deps.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	r.NoRoute(func(ctx *gin.Context) {
		handlers.RespondNotFound(ctx, "API endpoint not found")
	})

	return r
}

// Routes is the dispatch table, minus the catalog itself.
func Routes(deps Dependencies) []Route {
	log := deps.Log

	health := deps.Health
	if health == nil {
		health = handlers.NewHealthHandler()
	}

	authH := handlers.NewAuthHandler(deps.Users, deps.Tokens, log)
	bookings := handlers.NewBookingsHandler(deps.Bookings, deps.Mailer, deps.Composer, log)
	testimonials := handlers.NewTestimonialsHandler(deps.Testimonials, deps.Sanitizer, deps.Mailer, deps.Composer, log)
	menu := handlers.NewMenuHandler(deps.Menu, log)
	analytics := handlers.NewAnalyticsHandler(deps.Analytics, log)
	contact := handlers.NewContactHandler(deps.Mailer, deps.Composer, log)
	payments := handlers.NewPaymentsHandler(deps.Payments, log)
	deliveries := handlers.NewDeliveriesHandler(deps.Deliveries, log)
	documents := handlers.NewDocumentsHandler(deps.Documents, deps.Sanitizer, deps.Currency, deps.ShareBaseURL, log)
	searchH := handlers.NewSearchHandler(deps.Menu, log)

	var loginGuard []gin.HandlerFunc
	if deps.LoginLimiter != nil {
		loginGuard = append(loginGuard, middlewares.RateLimit(deps.LoginLimiter, middlewares.KeyByIP, log))
	}

	return []Route{
		{http.MethodPost, "/api/auth/login", AccessPublic, "auth", "Exchange email and password for a token", authH.Login, loginGuard},
		{http.MethodPost, "/api/auth/register", AccessPublic, "auth", "Create a guest account", authH.Register, nil},
		{http.MethodGet, "/api/users/profile", AccessAuthenticated, "auth", "Current user", authH.Profile, nil},

		{http.MethodGet, "/api/bookings", AccessAdmin, "bookings", "List all bookings, newest first", bookings.List, nil},
		{http.MethodPost, "/api/bookings", AccessPublic, "bookings", "Create a booking and email a confirmation", bookings.Create, nil},
		{http.MethodGet, "/api/bookings/:id", AccessPublic, "bookings", "Get a booking", bookings.GetByID, nil},
		{http.MethodPut, "/api/bookings/:id", AccessAdmin, "bookings", "Update booking fields", bookings.Update, nil},
		{http.MethodDelete, "/api/bookings/:id", AccessAdmin, "bookings", "Cancel a booking", bookings.Delete, nil},

		{http.MethodGet, "/api/testimonials", AccessPublic, "testimonials", "List approved testimonials", testimonials.ListApproved, nil},
		{http.MethodPost, "/api/testimonials", AccessPublic, "testimonials", "Submit a testimonial for moderation", testimonials.Create, nil},
		{http.MethodPut, "/api/testimonials/:id", AccessAdmin, "testimonials", "Update or moderate a testimonial", testimonials.Update, nil},
		{http.MethodDelete, "/api/testimonials/:id", AccessAdmin, "testimonials", "Mark a testimonial deleted", testimonials.Delete, nil},
		{http.MethodGet, "/api/admin/testimonials", AccessAdmin, "testimonials", "Moderation queue, optional ?status=", testimonials.ListForModeration, nil},

		{http.MethodGet, "/api/menu", AccessPublic, "menu", "List active menu items", menu.List, nil},
		{http.MethodGet, "/api/menu/category/:category", AccessPublic, "menu", "List active items in a category", menu.ListByCategory, nil},
		{http.MethodPost, "/api/menu", AccessAdmin, "menu", "Create a menu item", menu.Create, nil},
		{http.MethodPut, "/api/menu/:id", AccessAdmin, "menu", "Update a menu item", menu.Update, nil},
		{http.MethodDelete, "/api/menu/:id", AccessAdmin, "menu", "Deactivate a menu item", menu.Delete, nil},

		{http.MethodGet, "/api/analytics/dashboard", AccessAdmin, "analytics", "Booking and review aggregates", analytics.Dashboard, nil},
		{http.MethodGet, "/api/admin/deliveries", AccessAdmin, "analytics", "Recent email deliveries, optional ?kind= and ?limit=", deliveries.Recent, nil},

		{http.MethodPost, "/api/contact", AccessPublic, "contact", "Send a message to the front desk", contact.Submit, nil},

		{http.MethodPost, "/api/payments/intent", AccessPublic, "payments", "Create a payment intent", payments.CreateIntent, nil},
		{http.MethodPost, "/api/payments", AccessPublic, "payments", "Pay by card, mobile money or bank transfer", payments.Charge, nil},
		{http.MethodGet, "/api/payments/:id", AccessPublic, "payments", "Get a payment", payments.GetByID, nil},

		{http.MethodGet, "/api/documents", AccessAdmin, "documents", "List documents, optional ?view=invoice|receipt|contract|other", documents.List, nil},
		{http.MethodPost, "/api/documents", AccessAdmin, "documents", "Register an uploaded document", documents.Upload, nil},
		{http.MethodPost, "/api/upload-document", AccessAdmin, "documents", "Alias of POST /api/documents", documents.Upload, nil},
		{http.MethodGet, "/api/documents/:id/view", AccessAdmin, "documents", "Document metadata and file location", documents.View, nil},
		{http.MethodGet, "/api/documents/:id/share-link", AccessAdmin, "documents", "Shareable link for a document", documents.ShareLink, nil},
		{http.MethodDelete, "/api/documents/:id", AccessAdmin, "documents", "Mark a document deleted", documents.Delete, nil},

		{http.MethodGet, "/api/search", AccessPublic, "search", "Search rooms, services, events and the menu", searchH.Search, nil},

		{http.MethodGet, "/api/health", AccessPublic, "system", "Service and dependency status", health.Health, nil},
		{http.MethodGet, "/healthz", AccessPublic, "system", "Liveness", health.Healthz, nil},
		{http.MethodGet, "/readyz", AccessPublic, "system", "Readiness", health.Readyz, nil},
	}
}
