package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/giftflowhq/giftflow-backend/pkg/enums"
)

// VendorOrder tracks fulfillment outsourced to a vendor for one invoice.
type VendorOrder struct {
	ID          uuid.UUID               `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	InvoiceID   uuid.UUID               `gorm:"column:invoice_id;type:uuid;not null;index"`
	VendorID    uuid.UUID               `gorm:"column:vendor_id;type:uuid;not null;index"`
	Description string                  `gorm:"column:description;not null"`
	TotalAmount decimal.Decimal         `gorm:"column:total_amount;type:numeric(12,2);not null;default:0"`
	AmountPaid  decimal.Decimal         `gorm:"column:amount_paid;type:numeric(12,2);not null;default:0"`
	Status      enums.VendorOrderStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	DueDate     *time.Time              `gorm:"column:due_date"`
	CreatedAt   time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}
