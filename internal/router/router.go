package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/sachin24864/RealEstate-Website/internal/handler"
	"github.com/sachin24864/RealEstate-Website/internal/middleware"
	"github.com/sachin24864/RealEstate-Website/internal/platform/metrics"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Property  *handler.PropertyHandler
	Gallery   *handler.GalleryHandler
	Blog      *handler.BlogHandler
	Inquiry   *handler.InquiryHandler
	Dashboard *handler.DashboardHandler
	Auth      *handler.AuthHandler
	Sitemap   *handler.SitemapHandler
	Asset     *handler.AssetHandler
	Health    *handler.HealthHandler
}

type Options struct {
	Tokens         middleware.TokenVerifier
	CookieName     string
	AllowedOrigins []string
	Metrics        *metrics.MetricsManager
	ServiceName    string
	Logger         *zap.Logger
}

// New builds the complete HTTP handler of the API.
func New(h Handlers, opts Options) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(opts.Logger))
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(opts.AllowedOrigins))
	r.Use(middleware.Metrics(opts.Metrics))

	requireAuth := middleware.JWTAuth(opts.Tokens, opts.CookieName, opts.Logger)

	SetupPublicRoutes(r, h.Property, h.Inquiry)
	SetupAdminRoutes(r, h, requireAuth)
	SetupSessionRoutes(r, h.Auth, requireAuth)
	SetupInfraRoutes(r, h, opts.Metrics)

	serviceName := opts.ServiceName
	if serviceName == "" {
		serviceName = "real-estate-api"
	}
	return otelhttp.NewHandler(r, serviceName)
}

// SetupInfraRoutes mounts uploads, sitemap, health and metrics.
func SetupInfraRoutes(r *chi.Mux, h Handlers, m *metrics.MetricsManager) {
	r.Get("/uploads/*", h.Asset.Serve)
	r.Head("/uploads/*", h.Asset.Serve)
	r.Get("/sitemap.xml", h.Sitemap.Sitemap)
	r.Get("/health", h.Health.Health)
	if m != nil {
		r.Method(http.MethodGet, "/metrics", m.Handler())
	}
}
