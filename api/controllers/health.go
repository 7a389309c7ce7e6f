package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/giftflowhq/giftflow-backend/api/responses"
	"github.com/giftflowhq/giftflow-backend/pkg/config"
	"github.com/giftflowhq/giftflow-backend/pkg/db"
	pkgerrors "github.com/giftflowhq/giftflow-backend/pkg/errors"
	"github.com/giftflowhq/giftflow-backend/pkg/logger"
	"github.com/giftflowhq/giftflow-backend/pkg/redis"
)

const readyTimeout = 2 * time.Second

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-GiftFlow-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady answers 200 only when every backing store responds.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-GiftFlow-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		if dbP != nil {
			if err := dbP.Ping(ctx); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unavailable"))
				return
			}
		}
		if redisP != nil {
			if err := redisP.Ping(ctx); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis unavailable"))
				return
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
