package models

import (
	"time"

	"github.com/google/uuid"
)

// ImportantDate is a (possibly recurring) calendar event tied to a customer.
// For recurring dates only the month-day component is meaningful; the stored
// year is a placeholder the scheduler ignores.
type ImportantDate struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID     uuid.UUID  `gorm:"column:customer_id;type:uuid;not null;index"`
	RecipientID    *uuid.UUID `gorm:"column:recipient_id;type:uuid"`
	Title          string     `gorm:"column:title;not null"`
	EventDate      string     `gorm:"column:event_date;type:date;not null"`
	Recurring      bool       `gorm:"column:recurring;not null;default:false"`
	ReminderDays   int        `gorm:"column:reminder_days;not null;default:7"`
	ReminderSentAt *time.Time `gorm:"column:reminder_sent_at"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
