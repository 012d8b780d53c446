package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/prasetyoadi/umkm-storefront/api/controllers"
	cartcontrollers "github.com/prasetyoadi/umkm-storefront/api/controllers/cart"
	checkoutcontrollers "github.com/prasetyoadi/umkm-storefront/api/controllers/checkout"
	"github.com/prasetyoadi/umkm-storefront/api/middleware"
	"github.com/prasetyoadi/umkm-storefront/internal/cart"
	"github.com/prasetyoadi/umkm-storefront/internal/catalog"
	checkoutsvc "github.com/prasetyoadi/umkm-storefront/internal/checkout"
	"github.com/prasetyoadi/umkm-storefront/internal/shipping"
	"github.com/prasetyoadi/umkm-storefront/pkg/config"
	"github.com/prasetyoadi/umkm-storefront/pkg/db"
	"github.com/prasetyoadi/umkm-storefront/pkg/logger"
	"github.com/prasetyoadi/umkm-storefront/pkg/metrics"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	catalogRepo catalog.Repository,
	carts *cart.Manager,
	calc *shipping.Calculator,
	checkoutService *checkoutsvc.Service,
	m *metrics.StorefrontMetrics,
	gatherer prometheus.Gatherer,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Get("/health/live", controllers.HealthLive(cfg))
	r.Get("/health/ready", controllers.HealthReady(cfg, logg, dbP))
	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.CartSession(logg))

		r.Get("/products", controllers.ListProducts(catalogRepo, logg))
		r.Get("/products/categories", controllers.ListCategories(catalogRepo, logg))

		r.Get("/shipping/destinations", controllers.ListDestinations(calc))
		r.Post("/shipping/quote", controllers.QuoteShipping(calc, carts, checkoutService, m, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartcontrollers.Fetch(carts))
			r.Delete("/", cartcontrollers.Clear(carts, m))
			r.Post("/items", cartcontrollers.AddItem(carts, catalogRepo, m, logg))
			r.Patch("/items/{productID}", cartcontrollers.UpdateQuantity(carts, m, logg))
			r.Delete("/items/{productID}", cartcontrollers.RemoveItem(carts, m, logg))
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Get("/capabilities", checkoutcontrollers.Capabilities(checkoutService))
			r.Post("/link", checkoutcontrollers.BuildLink(checkoutService, carts, logg))
			r.Post("/invoice", checkoutcontrollers.GenerateInvoice(checkoutService, carts, logg))
			r.Post("/reset", checkoutcontrollers.Reset(checkoutService))

			r.Route("/invoice/dispatch", func(r chi.Router) {
				r.Post("/download", checkoutcontrollers.Download(checkoutService, logg))
				r.Post("/copy", checkoutcontrollers.Copy(checkoutService, logg))
				r.Post("/share", checkoutcontrollers.Share(checkoutService, logg))
				r.Post("/dismiss", checkoutcontrollers.Dismiss(checkoutService))
			})
		})
	})

	return r
}
