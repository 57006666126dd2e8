package controllers

import (
	"net/http"

	"github.com/mymessage/storefront-gateway/api/responses"
	"github.com/mymessage/storefront-gateway/pkg/config"
	"github.com/mymessage/storefront-gateway/pkg/logger"
	"github.com/mymessage/storefront-gateway/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-MMC-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports readiness. Redis is optional infrastructure, so a
// configured-but-unreachable redis degrades the report without failing it.
func HealthReady(cfg *config.Config, logg *logger.Logger, redisClient redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-MMC-Env", cfg.App.Env)

		report := map[string]string{"status": "ready"}
		if redisClient != nil {
			if err := redisClient.Ping(r.Context()); err != nil {
				report["redis"] = "unreachable"
				if logg != nil {
					logg.Warn(r.Context(), "health.redis_unreachable")
				}
			} else {
				report["redis"] = "ok"
			}
		}

		responses.WriteSuccess(w, report)
	}
}
