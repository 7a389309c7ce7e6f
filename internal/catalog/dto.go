package catalog

import (
	"github.com/google/uuid"
)

// ProductInput creates or replaces a catalog product.
type ProductInput struct {
	Name       string     `json:"name" validate:"required"`
	CategoryID *uuid.UUID `json:"category_id,omitempty"`
	VendorID   *uuid.UUID `json:"vendor_id,omitempty"`
	CostPrice  float64    `json:"cost_price" validate:"gte=0"`
	UnitPrice  float64    `json:"unit_price" validate:"gte=0"`
}

// CategoryInput creates or renames a category.
type CategoryInput struct {
	Name string `json:"name" validate:"required"`
}

// VendorInput creates or replaces a vendor.
type VendorInput struct {
	Name  string  `json:"name" validate:"required"`
	Phone *string `json:"phone,omitempty"`
	Notes *string `json:"notes,omitempty"`
}

// ProductListParams filters product listings.
type ProductListParams struct {
	Search     string
	CategoryID *uuid.UUID
	VendorID   *uuid.UUID
}
