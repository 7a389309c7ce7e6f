package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceItem is a single line inside a package. Legacy invoices persist items
// directly against the invoice with a NULL package id.
type InvoiceItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	InvoiceID   uuid.UUID       `gorm:"column:invoice_id;type:uuid;not null;index"`
	PackageID   *uuid.UUID      `gorm:"column:package_id;type:uuid;index"`
	Description string          `gorm:"column:description;not null"`
	Quantity    int             `gorm:"column:quantity;not null;default:1"`
	UnitPrice   decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2);not null;default:0"`
	CostPrice   decimal.Decimal `gorm:"column:cost_price;type:numeric(12,2);not null;default:0"`
	Total       decimal.Decimal `gorm:"column:total;type:numeric(12,2);not null;default:0"`
	ProductID   *uuid.UUID      `gorm:"column:product_id;type:uuid"`
	CategoryID  *uuid.UUID      `gorm:"column:category_id;type:uuid"`
	VendorID    *uuid.UUID      `gorm:"column:vendor_id;type:uuid"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
