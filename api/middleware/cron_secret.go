package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/giftflowhq/giftflow-backend/api/responses"
	pkgerrors "github.com/giftflowhq/giftflow-backend/pkg/errors"
	"github.com/giftflowhq/giftflow-backend/pkg/logger"
)

const cronSecretHeader = "x-cron-secret"

// CronSecret guards scheduler-triggered endpoints with a shared secret.
func CronSecret(secret string, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := r.Header.Get(cronSecretHeader)
			if secret == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid cron secret"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
