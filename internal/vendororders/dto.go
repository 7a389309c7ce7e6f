package vendororders

import (
	"time"

	"github.com/google/uuid"
)

// CreateInput records fulfillment outsourced to a vendor.
type CreateInput struct {
	InvoiceID   uuid.UUID  `json:"invoice_id" validate:"required"`
	VendorID    uuid.UUID  `json:"vendor_id" validate:"required"`
	Description string     `json:"description" validate:"required"`
	TotalAmount float64    `json:"total_amount" validate:"gte=0"`
	AmountPaid  float64    `json:"amount_paid" validate:"gte=0"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// UpdateInput patches an outsourced order. Nil fields are untouched.
type UpdateInput struct {
	Description *string    `json:"description,omitempty" validate:"omitempty,min=1"`
	TotalAmount *float64   `json:"total_amount,omitempty" validate:"omitempty,gte=0"`
	AmountPaid  *float64   `json:"amount_paid,omitempty" validate:"omitempty,gte=0"`
	Status      *string    `json:"status,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// ListParams filters vendor order listings.
type ListParams struct {
	InvoiceID *uuid.UUID
	VendorID  *uuid.UUID
	Status    string
}
