package customers

import (
	"time"

	"github.com/google/uuid"

	"github.com/giftflowhq/giftflow-backend/pkg/db/models"
)

// CreateCustomerInput carries the fields for a new customer.
type CreateCustomerInput struct {
	Name     string   `json:"name" validate:"required"`
	Whatsapp *string  `json:"whatsapp,omitempty"`
	Email    *string  `json:"email,omitempty" validate:"omitempty,email"`
	Country  *string  `json:"country,omitempty"`
	Notes    *string  `json:"notes,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

// UpdateCustomerInput patches an existing customer. Nil fields are untouched.
type UpdateCustomerInput struct {
	Name     *string  `json:"name,omitempty" validate:"omitempty,min=1"`
	Whatsapp *string  `json:"whatsapp,omitempty"`
	Email    *string  `json:"email,omitempty" validate:"omitempty,email"`
	Country  *string  `json:"country,omitempty"`
	Notes    *string  `json:"notes,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

// RecipientInput creates or replaces a delivery target.
type RecipientInput struct {
	Name         string  `json:"name" validate:"required"`
	Phone        *string `json:"phone,omitempty"`
	Address      *string `json:"address,omitempty"`
	Relationship *string `json:"relationship,omitempty"`
}

// ImportantDateInput creates or replaces a calendar event. EventDate is
// YYYY-MM-DD; for recurring dates the year is a placeholder.
type ImportantDateInput struct {
	RecipientID  *uuid.UUID `json:"recipient_id,omitempty"`
	Title        string     `json:"title" validate:"required"`
	EventDate    string     `json:"event_date" validate:"required,datetime=2006-01-02"`
	Recurring    bool       `json:"recurring"`
	ReminderDays *int       `json:"reminder_days,omitempty" validate:"omitempty,gte=0"`
}

// ListParams configures customer listing.
type ListParams struct {
	Search string
	Tag    string
	Limit  int
	Cursor string
}

// ListResult wraps returned customers and the cursor for the next page.
type ListResult struct {
	Items  []models.Customer `json:"items"`
	Cursor string            `json:"cursor"`
}

// CustomerDTO is the transport shape of a customer with its dependents.
type CustomerDTO struct {
	ID             uuid.UUID              `json:"id"`
	Name           string                 `json:"name"`
	Whatsapp       *string                `json:"whatsapp,omitempty"`
	Email          *string                `json:"email,omitempty"`
	Country        *string                `json:"country,omitempty"`
	Notes          *string                `json:"notes,omitempty"`
	Tags           []string               `json:"tags"`
	Recipients     []models.Recipient     `json:"recipients"`
	ImportantDates []models.ImportantDate `json:"important_dates"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

// FromModel converts a persisted customer into its transport shape.
func FromModel(c *models.Customer) *CustomerDTO {
	if c == nil {
		return nil
	}
	tags := []string(c.Tags)
	if tags == nil {
		tags = []string{}
	}
	return &CustomerDTO{
		ID:             c.ID,
		Name:           c.Name,
		Whatsapp:       c.Whatsapp,
		Email:          c.Email,
		Country:        c.Country,
		Notes:          c.Notes,
		Tags:           tags,
		Recipients:     c.Recipients,
		ImportantDates: c.ImportantDates,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}
