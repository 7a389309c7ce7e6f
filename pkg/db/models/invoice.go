package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/giftflowhq/giftflow-backend/pkg/enums"
)

// Invoice is the financial aggregate root. Monetary rollups are computed by the
// invoice service at create/update time and must stay recomputable from the
// persisted packages and items.
type Invoice struct {
	ID                 uuid.UUID           `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	InvoiceNumber      string              `gorm:"column:invoice_number;not null;uniqueIndex"`
	CustomerID         uuid.UUID           `gorm:"column:customer_id;type:uuid;not null;index"`
	RecipientID        *uuid.UUID          `gorm:"column:recipient_id;type:uuid"`
	DeliveryZoneID     *uuid.UUID          `gorm:"column:delivery_zone_id;type:uuid"`
	Status             enums.InvoiceStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	OrderStatus        enums.OrderStatus   `gorm:"column:order_status;type:text;not null;default:'received'"`
	Subtotal           decimal.Decimal     `gorm:"column:subtotal;type:numeric(12,2);not null;default:0"`
	Discount           decimal.Decimal     `gorm:"column:discount;type:numeric(12,2);not null;default:0"`
	DeliveryFee        decimal.Decimal     `gorm:"column:delivery_fee;type:numeric(12,2);not null;default:0"`
	Total              decimal.Decimal     `gorm:"column:total;type:numeric(12,2);not null;default:0"`
	TotalCost          decimal.Decimal     `gorm:"column:total_cost;type:numeric(12,2);not null;default:0"`
	TotalPackagingCost decimal.Decimal     `gorm:"column:total_packaging_cost;type:numeric(12,2);not null;default:0"`
	AmountPaid         decimal.Decimal     `gorm:"column:amount_paid;type:numeric(12,2);not null;default:0"`
	ProfitMargin       decimal.Decimal     `gorm:"column:profit_margin;type:numeric(6,2);not null;default:0"`
	MarkupPercentage   decimal.Decimal     `gorm:"column:markup_percentage;type:numeric(8,2);not null;default:0"`
	GiftMessage        *string             `gorm:"column:gift_message"`
	Notes              *string             `gorm:"column:notes"`
	PaidAt             *time.Time          `gorm:"column:paid_at"`
	Packages           []InvoicePackage    `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
	Items              []InvoiceItem       `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
	Payments           []Payment           `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
	Receipt            *Receipt            `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
	CreatedAt          time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
