package controllers

import (
	"net/http"

	"github.com/prasetyoadi/umkm-storefront/api/responses"
	"github.com/prasetyoadi/umkm-storefront/api/validators"
	"github.com/prasetyoadi/umkm-storefront/internal/catalog"
	"github.com/prasetyoadi/umkm-storefront/pkg/logger"
)

func ListProducts(repo catalog.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category := validators.QueryString(r, "category", "")
		products, err := repo.List(r.Context(), category)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"products": products})
	}
}

func ListCategories(repo catalog.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := repo.Categories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"categories": categories})
	}
}
