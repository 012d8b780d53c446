package controllers

import (
	"net/http"

	"github.com/prasetyoadi/umkm-storefront/api/middleware"
	"github.com/prasetyoadi/umkm-storefront/api/responses"
	"github.com/prasetyoadi/umkm-storefront/api/validators"
	"github.com/prasetyoadi/umkm-storefront/internal/cart"
	"github.com/prasetyoadi/umkm-storefront/internal/checkout"
	"github.com/prasetyoadi/umkm-storefront/internal/shipping"
	"github.com/prasetyoadi/umkm-storefront/pkg/logger"
	"github.com/prasetyoadi/umkm-storefront/pkg/metrics"
)

type shippingQuoteRequest struct {
	Destination string `json:"destination" validate:"required"`
}

func ListDestinations(calc *shipping.Calculator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]any{"destinations": calc.Destinations()})
	}
}

// QuoteShipping prices delivery for the caller's current cart weight and
// records the accepted quote on the checkout session so link and invoice
// generation can be gated on it.
func QuoteShipping(
	calc *shipping.Calculator,
	carts *cart.Manager,
	checkoutSvc *checkout.Service,
	m *metrics.StorefrontMetrics,
	logg *logger.Logger,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req shippingQuoteRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			m.IncShippingQuote("invalid")
			responses.WriteError(ctx, logg, w, err)
			return
		}

		sessionID := middleware.SessionID(ctx)
		store := carts.Get(ctx, sessionID)

		quote, err := calc.Quote(ctx, req.Destination, store.TotalWeight())
		if err != nil {
			m.IncShippingQuote("error")
			responses.WriteError(ctx, logg, w, err)
			return
		}

		checkoutSvc.SetQuote(sessionID, quote)
		m.IncShippingQuote("ok")

		responses.WriteSuccess(w, map[string]any{
			"quote":              quote,
			"total_weight_grams": store.TotalWeight(),
		})
	}
}
