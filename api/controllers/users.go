package controllers

import (
	"net/http"

	"github.com/giftflowhq/giftflow-backend/api/responses"
	"github.com/giftflowhq/giftflow-backend/api/validators"
	"github.com/giftflowhq/giftflow-backend/internal/users"
	pkgerrors "github.com/giftflowhq/giftflow-backend/pkg/errors"
	"github.com/giftflowhq/giftflow-backend/pkg/logger"
)

// ListUsers returns every account. Admin only.
func ListUsers(repo *users.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "users repository unavailable"))
			return
		}

		items, err := repo.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list users"))
			return
		}

		dtos := make([]*users.UserDTO, 0, len(items))
		for i := range items {
			dtos = append(dtos, users.FromModel(&items[i]))
		}
		responses.WriteSuccess(w, dtos)
	}
}

// SetUserActive enables or disables an account. Admin only.
func SetUserActive(repo *users.Repository, logg *logger.Logger) http.HandlerFunc {
	type request struct {
		IsActive *bool `json:"is_active" validate:"required"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "users repository unavailable"))
			return
		}

		id, err := pathID(r, "userId", "user id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body request
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := repo.SetActive(r.Context(), id, *body.IsActive)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update user"))
			return
		}
		if !updated {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "user not found"))
			return
		}
		responses.WriteSuccess(w, map[string]bool{"updated": true})
	}
}
