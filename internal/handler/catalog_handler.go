package handler

import (
	"net/http"

	"storefront/internal/catalog"

	"github.com/rs/zerolog"
)

// CatalogHandler serves the shipping and payment method lists.
type CatalogHandler struct {
	catalog *catalog.Catalog
	logger  zerolog.Logger
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(cat *catalog.Catalog, logger zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog: cat,
		logger:  logger.With().Str("handler", "catalog").Logger(),
	}
}

// ShippingMethods handles GET /api/catalog/shipping-methods.
func (h *CatalogHandler) ShippingMethods(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.catalog.ShippingMethods())
}

// PaymentMethods handles GET /api/catalog/payment-methods.
func (h *CatalogHandler) PaymentMethods(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.catalog.PaymentMethods())
}
