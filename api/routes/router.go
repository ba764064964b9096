package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/soft99/storefront-backend/api/controllers"
	"github.com/soft99/storefront-backend/api/middleware"
	"github.com/soft99/storefront-backend/internal/cart"
	"github.com/soft99/storefront-backend/internal/catalog"
	"github.com/soft99/storefront-backend/internal/orders"
	"github.com/soft99/storefront-backend/pkg/config"
	"github.com/soft99/storefront-backend/pkg/logger"
	"github.com/soft99/storefront-backend/pkg/metrics"
)

const serviceName = "api"

// Deps are the collaborators the HTTP surface is built from. Idempotency,
// HTTPMetrics and Gatherer are optional.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	Catalog     catalog.Service
	Admin       catalog.AdminService
	Carts       cart.Service
	Orders      orders.Service
	Idempotency middleware.IdempotencyStore
	HTTPMetrics *metrics.HTTPMetrics
	Gatherer    prometheus.Gatherer
	Readiness   []controllers.ReadinessCheck
}

func NewRouter(d Deps) http.Handler {
	cfg, logg := d.Config, d.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		d.HTTPMetrics.Middleware(serviceName),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, d.Readiness...))
	})

	if d.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(d.Catalog, logg))
			r.Get("/featured", controllers.FeaturedProducts(d.Catalog, logg))
			r.Get("/new", controllers.NewProducts(d.Catalog, logg))
			r.Get("/{productId}", controllers.GetProduct(d.Catalog, logg))
			r.Get("/{productId}/related", controllers.RelatedProducts(d.Catalog, logg))
		})
		r.Get("/search", controllers.SearchProducts(d.Catalog, logg))
		r.Get("/facets", controllers.ProductFacets(d.Catalog, logg))
		r.Get("/categories", controllers.ListCategories(d.Catalog, logg))
		r.Get("/categories/{categoryId}", controllers.GetCategory(d.Catalog, logg))
		r.Get("/brands", controllers.ListBrands(d.Catalog, logg))
		r.Get("/brands/{brandId}", controllers.GetBrand(d.Catalog, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.CartSession(logg))
			r.Use(middleware.Idempotency(d.Idempotency, logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartFetch(d.Carts, logg))
				r.Delete("/", controllers.CartClear(d.Carts, logg))
				r.Post("/items", controllers.CartAddItem(d.Carts, logg))
				r.Patch("/items/{productId}", controllers.CartUpdateItem(d.Carts, logg))
				r.Delete("/items/{productId}", controllers.CartRemoveItem(d.Carts, logg))
			})
			r.Post("/checkout", controllers.Checkout(d.Orders, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.AdminOnly(cfg.JWT, logg))
		r.Use(middleware.Idempotency(d.Idempotency, logg))

		r.Get("/provider", controllers.AdminProvider(d.Admin))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.AdminListProducts(d.Admin, logg))
			r.Post("/", controllers.AdminCreateProduct(d.Admin, logg))
			r.Get("/{productId}", controllers.AdminGetProduct(d.Admin, logg))
			r.Patch("/{productId}", controllers.AdminUpdateProduct(d.Admin, logg))
			r.Delete("/{productId}", controllers.AdminDeleteProduct(d.Admin, logg))
		})
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", controllers.AdminListCategories(d.Admin, logg))
			r.Post("/", controllers.AdminCreateCategory(d.Admin, logg))
			r.Get("/{categoryId}", controllers.AdminGetCategory(d.Admin, logg))
			r.Patch("/{categoryId}", controllers.AdminUpdateCategory(d.Admin, logg))
			r.Delete("/{categoryId}", controllers.AdminDeleteCategory(d.Admin, logg))
		})
		r.Route("/brands", func(r chi.Router) {
			r.Get("/", controllers.AdminListBrands(d.Admin, logg))
			r.Post("/", controllers.AdminCreateBrand(d.Admin, logg))
			r.Get("/{brandId}", controllers.AdminGetBrand(d.Admin, logg))
			r.Patch("/{brandId}", controllers.AdminUpdateBrand(d.Admin, logg))
			r.Delete("/{brandId}", controllers.AdminDeleteBrand(d.Admin, logg))
		})
		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.AdminListOrders(d.Orders, logg))
			r.Get("/{orderId}", controllers.AdminGetOrder(d.Orders, logg))
			r.Patch("/{orderId}", controllers.AdminUpdateOrder(d.Orders, logg))
			r.Delete("/{orderId}", controllers.AdminDeleteOrder(d.Orders, logg))
		})
	})

	return r
}
