package models

import (
	"time"

	"github.com/google/uuid"
)

// Vendor is an outside supplier gift fulfillment can be outsourced to.
type Vendor struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string    `gorm:"column:name;not null;uniqueIndex"`
	Phone     *string   `gorm:"column:phone"`
	Notes     *string   `gorm:"column:notes"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
