package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/giftflowhq/giftflow-backend/pkg/enums"
)

// Receipt is issued at most once per invoice, either manually or automatically
// when cumulative payments reach the invoice total.
type Receipt struct {
	ID            uuid.UUID           `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ReceiptNumber string              `gorm:"column:receipt_number;not null;uniqueIndex"`
	InvoiceID     uuid.UUID           `gorm:"column:invoice_id;type:uuid;not null;uniqueIndex"`
	Amount        decimal.Decimal     `gorm:"column:amount;type:numeric(12,2);not null"`
	Method        enums.PaymentMethod `gorm:"column:method;type:text;not null;default:'cash'"`
	Notes         *string             `gorm:"column:notes"`
	IssuedAt      time.Time           `gorm:"column:issued_at;not null"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
}
