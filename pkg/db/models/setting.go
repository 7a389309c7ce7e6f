package models

import "time"

// Setting is one key-value pair of business configuration (document prefixes,
// currency symbol, business info).
type Setting struct {
	Key       string    `gorm:"column:key;primaryKey"`
	Value     string    `gorm:"column:value;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
