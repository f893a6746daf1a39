package controllers

import (
	"context"
	"net/http"

	"github.com/stockyardhq/warehouse-backend/api/responses"
	"github.com/stockyardhq/warehouse-backend/pkg/config"
	pkgerrors "github.com/stockyardhq/warehouse-backend/pkg/errors"
	"github.com/stockyardhq/warehouse-backend/pkg/logger"
)

// Pinger is the dependency surface the readiness probe checks.
type Pinger interface {
	Ping(context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Stockyard-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready only when the database answers. The cache is
// optional infrastructure, so its state is reported but never fails the
// probe.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP Pinger, cacheP Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Stockyard-Env", cfg.App.Env)

		if dbP == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, "database not wired"))
			return
		}
		if err := dbP.Ping(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unreachable"))
			return
		}

		payload := map[string]string{"status": "ready", "database": "ok"}
		if cacheP != nil {
			payload["cache"] = "ok"
			if err := cacheP.Ping(r.Context()); err != nil {
				payload["cache"] = "unreachable"
				if logg != nil {
					logg.Warn(r.Context(), "cache ping failed")
				}
			}
		}
		responses.WriteSuccess(w, payload)
	}
}
