package controllers

import (
	"net/http"

	"github.com/giftflowhq/giftflow-backend/api/responses"
	"github.com/giftflowhq/giftflow-backend/api/validators"
	"github.com/giftflowhq/giftflow-backend/internal/deliveryzones"
	pkgerrors "github.com/giftflowhq/giftflow-backend/pkg/errors"
	"github.com/giftflowhq/giftflow-backend/pkg/logger"
)

func CreateDeliveryZone(svc deliveryzones.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "delivery zones service unavailable"))
			return
		}

		var body deliveryzones.ZoneInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		zone, err := svc.Create(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, zone)
	}
}

func ListDeliveryZones(svc deliveryzones.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "delivery zones service unavailable"))
			return
		}

		zones, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, zones)
	}
}

func UpdateDeliveryZone(svc deliveryzones.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "delivery zones service unavailable"))
			return
		}

		id, err := pathID(r, "zoneId", "delivery zone id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body deliveryzones.ZoneInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		zone, err := svc.Update(r.Context(), id, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, zone)
	}
}

func DeleteDeliveryZone(svc deliveryzones.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "delivery zones service unavailable"))
			return
		}

		id, err := pathID(r, "zoneId", "delivery zone id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}
