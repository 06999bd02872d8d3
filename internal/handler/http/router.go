package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/utafrali/catalog-admin/internal/service"
	"github.com/utafrali/catalog-admin/pkg/health"
	"github.com/utafrali/catalog-admin/pkg/middleware"
)

// RouterConfig carries the handler wiring the router needs beyond the services.
type RouterConfig struct {
	ServiceName      string
	Assets           AssetURLs
	CategoryImageDir string
	ProductImageDir  string
	PprofCIDRs       []string
}

// NewRouter creates a chi router with all catalog admin routes registered.
func NewRouter(
	categoryService *service.CategoryService,
	productService *service.ProductService,
	healthHandler *health.Handler,
	cfg RouterConfig,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Tracing(cfg.ServiceName))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.PrometheusMetrics(cfg.ServiceName))

	// Operational endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	middleware.RegisterPprof(r, cfg.PprofCIDRs, logger)

	categoryHandler := NewCategoryHandler(categoryService, cfg.Assets, cfg.CategoryImageDir, logger)
	productHandler := NewProductHandler(productService, cfg.Assets, cfg.ProductImageDir, logger)

	r.Route("/admin", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Route("/categories", func(r chi.Router) {
			// The category list changes rarely; let clients cache it briefly.
			r.With(middleware.CacheControl(60)).Get("/", categoryHandler.ListCategories)
			r.Post("/", categoryHandler.CreateCategory)
			// Registered before /{id} so the literal segment wins.
			r.Get("/product-counts", categoryHandler.ProductCounts)
			r.Get("/{id}", categoryHandler.GetCategory)
			r.Put("/{id}", categoryHandler.UpdateCategory)
			r.Delete("/{id}", categoryHandler.DeleteCategory)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", productHandler.ListProducts)
			r.Post("/", productHandler.CreateProduct)
			r.Get("/{id}", productHandler.GetProduct)
			r.Put("/{id}", productHandler.UpdateProduct)
			r.Delete("/{id}", productHandler.DeleteProduct)
			r.Get("/{id}/can-delete", productHandler.CanDeleteProduct)
		})
	})

	return r
}
