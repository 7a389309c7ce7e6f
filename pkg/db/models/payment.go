package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/giftflowhq/giftflow-backend/pkg/enums"
)

// Payment is one (possibly partial) payment applied against an invoice. The sum
// of an invoice's payments never exceeds the invoice total.
type Payment struct {
	ID         uuid.UUID           `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	InvoiceID  uuid.UUID           `gorm:"column:invoice_id;type:uuid;not null;index"`
	Amount     decimal.Decimal     `gorm:"column:amount;type:numeric(12,2);not null"`
	Method     enums.PaymentMethod `gorm:"column:method;type:text;not null;default:'cash'"`
	Notes      *string             `gorm:"column:notes"`
	ReceivedAt time.Time           `gorm:"column:received_at;not null"`
	CreatedAt  time.Time           `gorm:"column:created_at;autoCreateTime"`
}
