package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Customer is the root CRM record; recipients, important dates and invoices
// hang off it.
type Customer struct {
	ID        uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string          `gorm:"column:name;not null"`
	Whatsapp  *string         `gorm:"column:whatsapp"`
	Email     *string         `gorm:"column:email"`
	Country   *string         `gorm:"column:country"`
	Notes     *string         `gorm:"column:notes"`
	Tags      pq.StringArray  `gorm:"column:tags;type:text[];default:ARRAY[]::text[]"`
	Recipients []Recipient    `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
	ImportantDates []ImportantDate `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
