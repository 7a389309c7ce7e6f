package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoicePackage is a named bundle sold at one customer-facing price. The
// packaging cost covers materials and is tracked apart from item costs.
type InvoicePackage struct {
	ID            uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	InvoiceID     uuid.UUID       `gorm:"column:invoice_id;type:uuid;not null;index"`
	Name          string          `gorm:"column:name;not null"`
	PackagePrice  decimal.Decimal `gorm:"column:package_price;type:numeric(12,2);not null;default:0"`
	PackagingCost decimal.Decimal `gorm:"column:packaging_cost;type:numeric(12,2);not null;default:0"`
	Items         []InvoiceItem   `gorm:"foreignKey:PackageID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
