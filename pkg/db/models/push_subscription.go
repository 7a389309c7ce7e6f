package models

import (
	"time"

	"github.com/google/uuid"
)

// PushSubscription stores a browser's web-push endpoint and keys. Rows are
// deleted on unsubscribe or when delivery reports the endpoint gone (404/410).
type PushSubscription struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`
	Endpoint  string    `gorm:"column:endpoint;not null;uniqueIndex"`
	P256dh    string    `gorm:"column:p256dh;not null"`
	Auth      string    `gorm:"column:auth;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
