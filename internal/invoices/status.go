package invoices

import (
	"github.com/shopspring/decimal"

	"github.com/giftflowhq/giftflow-backend/pkg/enums"
)

// StatusFor recomputes the payment status from (amount_paid, total) instead of
// leaving the partial transition implicit. Cancelled is absorbing.
func StatusFor(current enums.InvoiceStatus, amountPaid, total decimal.Decimal) enums.InvoiceStatus {
	if current == enums.InvoiceStatusCancelled {
		return enums.InvoiceStatusCancelled
	}
	switch {
	case amountPaid.LessThanOrEqual(decimal.Zero):
		return enums.InvoiceStatusPending
	case amountPaid.GreaterThanOrEqual(total):
		return enums.InvoiceStatusPaid
	default:
		return enums.InvoiceStatusPartial
	}
}
