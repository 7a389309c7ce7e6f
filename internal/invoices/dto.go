package invoices

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/giftflowhq/giftflow-backend/pkg/db/models"
	"github.com/giftflowhq/giftflow-backend/pkg/enums"
	"github.com/giftflowhq/giftflow-backend/pkg/types"
)

// ItemInput is one line inside a package (or a legacy flat line).
type ItemInput struct {
	Description string     `json:"description" validate:"required"`
	Quantity    int        `json:"quantity" validate:"required,gt=0"`
	UnitPrice   float64    `json:"unit_price" validate:"gte=0"`
	CostPrice   float64    `json:"cost_price" validate:"gte=0"`
	ProductID   *uuid.UUID `json:"product_id,omitempty"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
	VendorID    *uuid.UUID `json:"vendor_id,omitempty"`
}

// PackageInput is a named bundle with a single customer-facing price.
type PackageInput struct {
	PackageName   string      `json:"package_name" validate:"required"`
	PackagePrice  float64     `json:"package_price" validate:"gte=0"`
	PackagingCost float64     `json:"packaging_cost" validate:"gte=0"`
	Items         []ItemInput `json:"items" validate:"dive"`
}

// CreateInvoiceInput carries everything needed to build the aggregate. Both
// packages and items may be empty, which yields a zero-subtotal draft.
type CreateInvoiceInput struct {
	CustomerID     uuid.UUID      `json:"customer_id" validate:"required"`
	RecipientID    *uuid.UUID     `json:"recipient_id,omitempty"`
	DeliveryZoneID *uuid.UUID     `json:"delivery_zone_id,omitempty"`
	Packages       []PackageInput `json:"packages" validate:"dive"`
	Items          []ItemInput    `json:"items" validate:"dive"`
	Discount       float64        `json:"discount" validate:"gte=0"`
	DeliveryFee    float64        `json:"delivery_fee" validate:"gte=0"`
	GiftMessage    *string        `json:"gift_message,omitempty"`
	Notes          *string        `json:"notes,omitempty"`
}

// UpdateInvoiceInput replaces the aggregate's packages/items wholesale and
// re-runs the rollup. Nil slices mean "leave the lines untouched".
type UpdateInvoiceInput struct {
	RecipientID    types.NullableUUID `json:"recipient_id"`
	DeliveryZoneID types.NullableUUID `json:"delivery_zone_id"`
	Packages       []PackageInput `json:"packages" validate:"dive"`
	Items          []ItemInput    `json:"items" validate:"dive"`
	Discount       *float64       `json:"discount,omitempty" validate:"omitempty,gte=0"`
	DeliveryFee    *float64       `json:"delivery_fee,omitempty" validate:"omitempty,gte=0"`
	GiftMessage    *string        `json:"gift_message,omitempty"`
	Notes          *string        `json:"notes,omitempty"`
}

// CreatedInvoice is the shape returned from invoice creation.
type CreatedInvoice struct {
	ID            uuid.UUID `json:"id"`
	InvoiceNumber string    `json:"invoice_number"`
}

// ListParams configures invoice listing.
type ListParams struct {
	CustomerID  *uuid.UUID
	Status      *enums.InvoiceStatus
	OrderStatus *enums.OrderStatus
	Limit       int
	Cursor      string
}

// ListResult wraps returned invoices and the cursor for the next page.
type ListResult struct {
	Items  []models.Invoice `json:"items"`
	Cursor string           `json:"cursor"`
}

// InvoiceDTO is the transport shape of a persisted invoice.
type InvoiceDTO struct {
	ID                 uuid.UUID               `json:"id"`
	InvoiceNumber      string                  `json:"invoice_number"`
	CustomerID         uuid.UUID               `json:"customer_id"`
	RecipientID        *uuid.UUID              `json:"recipient_id,omitempty"`
	DeliveryZoneID     *uuid.UUID              `json:"delivery_zone_id,omitempty"`
	Status             enums.InvoiceStatus     `json:"status"`
	OrderStatus        enums.OrderStatus       `json:"order_status"`
	Subtotal           decimal.Decimal         `json:"subtotal"`
	Discount           decimal.Decimal         `json:"discount"`
	DeliveryFee        decimal.Decimal         `json:"delivery_fee"`
	Total              decimal.Decimal         `json:"total"`
	TotalCost          decimal.Decimal         `json:"total_cost"`
	TotalPackagingCost decimal.Decimal         `json:"total_packaging_cost"`
	AmountPaid         decimal.Decimal         `json:"amount_paid"`
	ProfitMargin       decimal.Decimal         `json:"profit_margin"`
	MarkupPercentage   decimal.Decimal         `json:"markup_percentage"`
	GiftMessage        *string                 `json:"gift_message,omitempty"`
	Notes              *string                 `json:"notes,omitempty"`
	PaidAt             *time.Time              `json:"paid_at,omitempty"`
	Packages           []models.InvoicePackage `json:"packages"`
	Items              []models.InvoiceItem    `json:"items"`
	Payments           []models.Payment        `json:"payments"`
	Receipt            *models.Receipt         `json:"receipt,omitempty"`
	CreatedAt          time.Time               `json:"created_at"`
	UpdatedAt          time.Time               `json:"updated_at"`
}

// FromModel converts a persisted invoice into its transport shape.
func FromModel(inv *models.Invoice) *InvoiceDTO {
	if inv == nil {
		return nil
	}
	return &InvoiceDTO{
		ID:                 inv.ID,
		InvoiceNumber:      inv.InvoiceNumber,
		CustomerID:         inv.CustomerID,
		RecipientID:        inv.RecipientID,
		DeliveryZoneID:     inv.DeliveryZoneID,
		Status:             inv.Status,
		OrderStatus:        inv.OrderStatus,
		Subtotal:           inv.Subtotal,
		Discount:           inv.Discount,
		DeliveryFee:        inv.DeliveryFee,
		Total:              inv.Total,
		TotalCost:          inv.TotalCost,
		TotalPackagingCost: inv.TotalPackagingCost,
		AmountPaid:         inv.AmountPaid,
		ProfitMargin:       inv.ProfitMargin,
		MarkupPercentage:   inv.MarkupPercentage,
		GiftMessage:        inv.GiftMessage,
		Notes:              inv.Notes,
		PaidAt:             inv.PaidAt,
		Packages:           inv.Packages,
		Items:              inv.Items,
		Payments:           inv.Payments,
		Receipt:            inv.Receipt,
		CreatedAt:          inv.CreatedAt,
		UpdatedAt:          inv.UpdatedAt,
	}
}
