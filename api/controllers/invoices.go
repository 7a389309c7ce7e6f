package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/giftflowhq/giftflow-backend/api/responses"
	"github.com/giftflowhq/giftflow-backend/api/validators"
	"github.com/giftflowhq/giftflow-backend/internal/invoices"
	pkgerrors "github.com/giftflowhq/giftflow-backend/pkg/errors"
	"github.com/giftflowhq/giftflow-backend/pkg/enums"
	"github.com/giftflowhq/giftflow-backend/pkg/logger"
)

// CreateInvoice opens an order, numbers it, and rolls up its totals.
func CreateInvoice(svc invoices.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "invoices service unavailable"))
			return
		}

		var body invoices.CreateInvoiceInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.Create(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// GetInvoice returns an invoice with lines, payments, and receipt preloaded.
func GetInvoice(svc invoices.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "invoices service unavailable"))
			return
		}

		id, err := pathID(r, "invoiceId", "invoice id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		invoice, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, invoice)
	}
}

// ListInvoices returns a paginated invoice page with optional status filters.
func ListInvoices(svc invoices.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "invoices service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 0, 1, 200)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params := invoices.ListParams{
			Limit:  limit,
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		}

		if raw := strings.TrimSpace(r.URL.Query().Get("customer_id")); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid customer id"))
				return
			}
			params.CustomerID = &id
		}

		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status, err := enums.ParseInvoiceStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status filter"))
				return
			}
			params.Status = &status
		}

		if raw := strings.TrimSpace(r.URL.Query().Get("order_status")); raw != "" {
			status, err := enums.ParseOrderStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order status filter"))
				return
			}
			params.OrderStatus = &status
		}

		result, err := svc.List(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// UpdateInvoice replaces invoice lines and re-runs the rollup.
func UpdateInvoice(svc invoices.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "invoices service unavailable"))
			return
		}

		id, err := pathID(r, "invoiceId", "invoice id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body invoices.UpdateInvoiceInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		invoice, err := svc.Update(r.Context(), id, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, invoice)
	}
}

// CancelInvoice voids an open invoice.
func CancelInvoice(svc invoices.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "invoices service unavailable"))
			return
		}

		id, err := pathID(r, "invoiceId", "invoice id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		invoice, err := svc.Cancel(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, invoice)
	}
}

// AdvanceOrderStatus moves the fulfilment state forward.
func AdvanceOrderStatus(svc invoices.Service, logg *logger.Logger) http.HandlerFunc {
	type request struct {
		OrderStatus string `json:"order_status" validate:"required"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "invoices service unavailable"))
			return
		}

		id, err := pathID(r, "invoiceId", "invoice id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body request
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		next, err := enums.ParseOrderStatus(body.OrderStatus)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order status"))
			return
		}

		invoice, err := svc.AdvanceOrderStatus(r.Context(), id, next)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, invoice)
	}
}

// DeleteInvoice removes an invoice and its dependents.
func DeleteInvoice(svc invoices.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "invoices service unavailable"))
			return
		}

		id, err := pathID(r, "invoiceId", "invoice id")
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
