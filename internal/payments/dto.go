package payments

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddPaymentInput records one (possibly partial) payment against an invoice.
type AddPaymentInput struct {
	InvoiceID     uuid.UUID `json:"invoice_id" validate:"required"`
	Amount        float64   `json:"amount" validate:"required,gt=0"`
	PaymentMethod string    `json:"payment_method" validate:"omitempty"`
	Notes         *string   `json:"notes,omitempty"`
}

// AddPaymentResult reports the invoice balance after a successful payment.
type AddPaymentResult struct {
	ID            uuid.UUID       `json:"id"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	Balance       decimal.Decimal `json:"balance"`
	IsFullyPaid   bool            `json:"is_fully_paid"`
	ReceiptNumber *string         `json:"receipt_number,omitempty"`
}

// CreateReceiptInput issues a manual full-payment receipt.
type CreateReceiptInput struct {
	PaymentMethod string  `json:"payment_method" validate:"omitempty"`
	Notes         *string `json:"notes,omitempty"`
}

// ReceiptDTO is the transport shape of a receipt.
type ReceiptDTO struct {
	ID            uuid.UUID       `json:"id"`
	ReceiptNumber string          `json:"receipt_number"`
	InvoiceID     uuid.UUID       `json:"invoice_id"`
	Amount        decimal.Decimal `json:"amount"`
	Method        string          `json:"method"`
	Notes         *string         `json:"notes,omitempty"`
	IssuedAt      time.Time       `json:"issued_at"`
}
