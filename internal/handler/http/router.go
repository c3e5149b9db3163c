package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tarmachan/storefront/internal/service"
	"github.com/tarmachan/storefront/pkg/health"
	"github.com/tarmachan/storefront/pkg/middleware"
)

const serviceName = "storefront"

// RouterConfig bundles the dependencies and settings for the HTTP router.
type RouterConfig struct {
	Catalog  *service.CatalogService
	Comments *service.CommentService
	Contacts *service.ContactService

	TokenValidator middleware.TokenValidator
	Health         *health.Handler
	CORS           middleware.CORSConfig
	PprofCIDRs     []string
	Version        string
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(cfg RouterConfig, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.Tracing(serviceName))
	r.Use(middleware.PrometheusMetrics(serviceName))
	r.Use(middleware.RequestLogger(logger))

	// Operational endpoints
	r.Get("/health/live", cfg.Health.LivenessHandler())
	r.Get("/health/ready", cfg.Health.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())
	middleware.RegisterPprof(r, cfg.PprofCIDRs, logger)

	homeHandler := NewHomeHandler(cfg.Version)
	catalogHandler := NewCatalogHandler(cfg.Catalog, logger)
	adminHandler := NewProductAdminHandler(cfg.Catalog, logger)
	commentHandler := NewCommentHandler(cfg.Comments, logger)
	contactHandler := NewContactHandler(cfg.Contacts, logger)

	r.Get("/", homeHandler.Home)

	r.Route("/api/v1/products", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		// Public catalog
		r.Get("/", catalogHandler.ListProducts)
		r.Get("/{id}", catalogHandler.GetProduct)

		// Authenticated: comments and store-owner management. Role checks
		// happen in the services; only token validity is enforced here.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.TokenValidator))
			r.Use(middleware.RequestLogger(logger))

			r.Post("/", adminHandler.CreateProduct)
			r.Get("/{id}/edit", adminHandler.EditProduct)
			r.Put("/{id}", adminHandler.UpdateProduct)
			r.Delete("/{id}", adminHandler.DeleteProduct)

			r.Post("/{id}/comments", commentHandler.AddComment)
		})
	})

	r.Route("/api/v1/comments", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(middleware.Auth(cfg.TokenValidator))
		r.Use(middleware.RequestLogger(logger))

		r.Delete("/{id}", commentHandler.DeleteComment)
	})

	r.Route("/api/v1/categories", func(r chi.Router) {
		r.Use(middleware.CacheControl(300))

		r.Get("/", catalogHandler.ListCategories)
	})

	r.Route("/api/v1/contact-messages", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(middleware.Auth(cfg.TokenValidator))
		r.Use(middleware.RequestLogger(logger))

		r.Get("/", contactHandler.ListMessages)
		r.Get("/{id}", contactHandler.GetMessage)
		r.Delete("/{id}", contactHandler.DeleteMessage)
	})

	return r
}
