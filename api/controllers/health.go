package controllers

import (
	"net/http"

	"github.com/tripbazaar/travel-backend/api/responses"
	"github.com/tripbazaar/travel-backend/pkg/cache"
	"github.com/tripbazaar/travel-backend/pkg/config"
	"github.com/tripbazaar/travel-backend/pkg/db"
	pkgerrors "github.com/tripbazaar/travel-backend/pkg/errors"
	"github.com/tripbazaar/travel-backend/pkg/logger"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-TripBazaar-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the backing stores. Any failing dependency makes
// the whole probe fail.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, cacheP cache.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-TripBazaar-Env", cfg.App.Env)

		if dbP != nil {
			if err := dbP.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unavailable"))
				return
			}
		}
		if cacheP != nil {
			if err := cacheP.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cache unavailable"))
				return
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
