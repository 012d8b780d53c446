package controllers

import (
	"net/http"

	"github.com/prasetyoadi/umkm-storefront/api/responses"
	"github.com/prasetyoadi/umkm-storefront/pkg/config"
	"github.com/prasetyoadi/umkm-storefront/pkg/db"
	pkgerrors "github.com/prasetyoadi/umkm-storefront/pkg/errors"
	"github.com/prasetyoadi/umkm-storefront/pkg/logger"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Storefront-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Storefront-Env", cfg.App.Env)
		if dbP != nil {
			if err := dbP.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database not ready"))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
