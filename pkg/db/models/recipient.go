package models

import (
	"time"

	"github.com/google/uuid"
)

// Recipient is a delivery target owned by exactly one customer.
type Recipient struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID   uuid.UUID `gorm:"column:customer_id;type:uuid;not null;index"`
	Name         string    `gorm:"column:name;not null"`
	Phone        *string   `gorm:"column:phone"`
	Address      *string   `gorm:"column:address"`
	Relationship *string   `gorm:"column:relationship"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
