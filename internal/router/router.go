package router

import (
	"net/http"

	"storefront/internal/handler"
	"storefront/internal/metrics"
	"storefront/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Handlers groups the HTTP handlers served by the API.
type Handlers struct {
	Cart     *handler.CartHandler
	Checkout *handler.CheckoutHandler
	Catalog  *handler.CatalogHandler
	Order    *handler.OrderHandler
}

// New creates a new HTTP router with all routes and middleware configured.
// A nil gatherer disables the /metrics endpoint; a nil m disables request
// instrumentation.
func New(h Handlers, m *metrics.Metrics, gatherer prometheus.Gatherer, apiKey string, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Applied in order: CorrelationID -> Recovery -> Logging -> Instrument -> CORS -> APIKeyAuth
	r.Use(
		middleware.CorrelationID,
		middleware.Recovery(logger),
		middleware.Logging(logger),
		middleware.Instrument(m),
		middleware.CORS,
		middleware.APIKeyAuth(apiKey, logger),
	)

	// Health check endpoint (no authentication required)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.Cart.Get)
			r.Delete("/", h.Cart.Clear)
			r.Post("/items", h.Cart.AddItem)
			r.Put("/items/{productID}", h.Cart.SetQuantity)
			r.Delete("/items/{productID}", h.Cart.RemoveItem)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Get("/", h.Checkout.Get)
			r.Delete("/", h.Checkout.Reset)
			r.Put("/step", h.Checkout.SetStep)
			r.Put("/address", h.Checkout.SetAddress)
			r.Put("/shipping", h.Checkout.SetShipping)
			r.Put("/payment", h.Checkout.SetPayment)
			r.Get("/summary", h.Checkout.Summary)
			r.Post("/complete", h.Checkout.Complete)
		})

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/shipping-methods", h.Catalog.ShippingMethods)
			r.Get("/payment-methods", h.Catalog.PaymentMethods)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", h.Order.List)
			r.Get("/{id}", h.Order.GetByID)
			r.Post("/{id}/cancel", h.Order.Cancel)
			r.Put("/{id}/status", h.Order.UpdateStatus)
			r.Put("/{id}/tracking", h.Order.SetTracking)
		})
	})

	return r
}
