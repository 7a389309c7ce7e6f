package controllers

import (
	"net/http"
	"strings"

	"github.com/giftflowhq/giftflow-backend/api/responses"
	"github.com/giftflowhq/giftflow-backend/api/validators"
	"github.com/giftflowhq/giftflow-backend/internal/customers"
	pkgerrors "github.com/giftflowhq/giftflow-backend/pkg/errors"
	"github.com/giftflowhq/giftflow-backend/pkg/logger"
)

// CreateCustomer registers a new customer with optional tags.
func CreateCustomer(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "customers service unavailable"))
			return
		}

		var body customers.CreateCustomerInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		customer, err := svc.Create(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, customer)
	}
}

// GetCustomer returns a customer with recipients and important dates preloaded.
func GetCustomer(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "customers service unavailable"))
			return
		}

		id, err := pathID(r, "customerId", "customer id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		customer, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, customer)
	}
}

// ListCustomers returns a paginated customer page filtered by search or tag.
func ListCustomers(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "customers service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 0, 1, 200)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params := customers.ListParams{
			Search: validators.SanitizeString(r.URL.Query().Get("search"), 0),
			Tag:    validators.SanitizeString(r.URL.Query().Get("tag"), 0),
			Limit:  limit,
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		}

		result, err := svc.List(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// UpdateCustomer applies a partial patch.
func UpdateCustomer(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "customers service unavailable"))
			return
		}

		id, err := pathID(r, "customerId", "customer id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body customers.UpdateCustomerInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		customer, err := svc.Update(r.Context(), id, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, customer)
	}
}

// DeleteCustomer removes a customer without invoices.
func DeleteCustomer(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "customers service unavailable"))
			return
		}

		id, err := pathID(r, "customerId", "customer id")
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

// AddRecipient attaches a delivery target to a customer.
func AddRecipient(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "customers service unavailable"))
			return
		}

		customerID, err := pathID(r, "customerId", "customer id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body customers.RecipientInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		recipient, err := svc.AddRecipient(r.Context(), customerID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, recipient)
	}
}

// UpdateRecipient replaces a recipient's fields.
func UpdateRecipient(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "customers service unavailable"))
			return
		}

		customerID, err := pathID(r, "customerId", "customer id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		recipientID, err := pathID(r, "recipientId", "recipient id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body customers.RecipientInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		recipient, err := svc.UpdateRecipient(r.Context(), customerID, recipientID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, recipient)
	}
}

// DeleteRecipient removes a recipient from a customer.
func DeleteRecipient(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "customers service unavailable"))
			return
		}

		customerID, err := pathID(r, "customerId", "customer id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		recipientID, err := pathID(r, "recipientId", "recipient id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteRecipient(r.Context(), customerID, recipientID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}

// AddImportantDate attaches a calendar event to a customer.
func AddImportantDate(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "customers service unavailable"))
			return
		}

		customerID, err := pathID(r, "customerId", "customer id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body customers.ImportantDateInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		date, err := svc.AddImportantDate(r.Context(), customerID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, date)
	}
}

// UpdateImportantDate replaces a calendar event's fields.
func UpdateImportantDate(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "customers service unavailable"))
			return
		}

		customerID, err := pathID(r, "customerId", "customer id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dateID, err := pathID(r, "dateId", "important date id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body customers.ImportantDateInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		date, err := svc.UpdateImportantDate(r.Context(), customerID, dateID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, date)
	}
}

// DeleteImportantDate removes a calendar event from a customer.
func DeleteImportantDate(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "customers service unavailable"))
			return
		}

		customerID, err := pathID(r, "customerId", "customer id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dateID, err := pathID(r, "dateId", "important date id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteImportantDate(r.Context(), customerID, dateID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}
