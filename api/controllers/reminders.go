package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/giftflowhq/giftflow-backend/api/responses"
	"github.com/giftflowhq/giftflow-backend/internal/reminders"
	pkgerrors "github.com/giftflowhq/giftflow-backend/pkg/errors"
	"github.com/giftflowhq/giftflow-backend/pkg/logger"
)

// CheckReminders runs a reminder pass and reports what was dispatched.
// The cron caller expects a flat body rather than the data envelope, so
// the result is written directly.
func CheckReminders(svc reminders.Service, logg *logger.Logger) http.HandlerFunc {
	type response struct {
		Success bool `json:"success"`
		*reminders.CheckResult
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reminders service unavailable"))
			return
		}

		result, err := svc.Run(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(response{Success: true, CheckResult: result}); err != nil {
			logg.Error(r.Context(), "encode reminder check response", err)
		}
	}
}
