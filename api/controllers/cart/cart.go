package cart

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/prasetyoadi/umkm-storefront/api/middleware"
	"github.com/prasetyoadi/umkm-storefront/api/responses"
	"github.com/prasetyoadi/umkm-storefront/api/validators"
	"github.com/prasetyoadi/umkm-storefront/internal/cart"
	"github.com/prasetyoadi/umkm-storefront/internal/catalog"
	pkgerrors "github.com/prasetyoadi/umkm-storefront/pkg/errors"
	"github.com/prasetyoadi/umkm-storefront/pkg/logger"
	"github.com/prasetyoadi/umkm-storefront/pkg/metrics"
)

type addItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func cartPayload(store *cart.Store) map[string]any {
	items := store.Items()
	return map[string]any{
		"items":              items,
		"total_price":        store.TotalPrice(),
		"total_weight_grams": store.TotalWeight(),
	}
}

func Fetch(carts *cart.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store := carts.Get(r.Context(), middleware.SessionID(r.Context()))
		responses.WriteSuccess(w, cartPayload(store))
	}
}

// AddItem resolves the product from the catalog and adds one unit to the
// caller's cart, merging with an existing line for the same product.
func AddItem(carts *cart.Manager, catalogRepo catalog.Repository, m *metrics.StorefrontMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req addItemRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		product, err := catalogRepo.GetByID(ctx, req.ProductID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		store := carts.Get(ctx, middleware.SessionID(ctx))
		store.AddItem(ctx, *product)
		m.IncCartMutation("add")

		responses.WriteSuccessStatus(w, http.StatusCreated, cartPayload(store))
	}
}

// UpdateQuantity overwrites a line's quantity. Zero or negative removes the
// line, the same as an explicit delete.
func UpdateQuantity(carts *cart.Manager, m *metrics.StorefrontMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		productID := chi.URLParam(r, "productID")
		if productID == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id is required"))
			return
		}

		var req updateQuantityRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		store := carts.Get(ctx, middleware.SessionID(ctx))
		store.UpdateQuantity(ctx, productID, req.Quantity)
		m.IncCartMutation("update_quantity")

		responses.WriteSuccess(w, cartPayload(store))
	}
}

func RemoveItem(carts *cart.Manager, m *metrics.StorefrontMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		productID := chi.URLParam(r, "productID")
		if productID == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id is required"))
			return
		}

		store := carts.Get(ctx, middleware.SessionID(ctx))
		store.RemoveItem(ctx, productID)
		m.IncCartMutation("remove")

		responses.WriteSuccess(w, cartPayload(store))
	}
}

func Clear(carts *cart.Manager, m *metrics.StorefrontMetrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		store := carts.Get(ctx, middleware.SessionID(ctx))
		store.ClearCart(ctx)
		m.IncCartMutation("clear")

		responses.WriteSuccess(w, cartPayload(store))
	}
}
