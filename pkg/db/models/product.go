package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog entry referenced by invoice items for reporting.
type Product struct {
	ID         uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name       string          `gorm:"column:name;not null"`
	CategoryID *uuid.UUID      `gorm:"column:category_id;type:uuid"`
	VendorID   *uuid.UUID      `gorm:"column:vendor_id;type:uuid"`
	CostPrice  decimal.Decimal `gorm:"column:cost_price;type:numeric(12,2);not null;default:0"`
	UnitPrice  decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2);not null;default:0"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
