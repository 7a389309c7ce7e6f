package enums

import "fmt"

// VendorOrderStatus tracks outsourced fulfillment handed to a vendor.
type VendorOrderStatus string

const (
	VendorOrderStatusPending    VendorOrderStatus = "pending"
	VendorOrderStatusInProgress VendorOrderStatus = "in_progress"
	VendorOrderStatusCompleted  VendorOrderStatus = "completed"
	VendorOrderStatusCancelled  VendorOrderStatus = "cancelled"
)

var validVendorOrderStatuses = []VendorOrderStatus{
	VendorOrderStatusPending,
	VendorOrderStatusInProgress,
	VendorOrderStatusCompleted,
	VendorOrderStatusCancelled,
}

// String implements fmt.Stringer.
func (s VendorOrderStatus) String() string {
	return string(s)
}

// IsValid reports whether the status is recognized.
func (s VendorOrderStatus) IsValid() bool {
	for _, candidate := range validVendorOrderStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseVendorOrderStatus converts a raw string into a VendorOrderStatus.
func ParseVendorOrderStatus(value string) (VendorOrderStatus, error) {
	candidate := VendorOrderStatus(value)
	if candidate.IsValid() {
		return candidate, nil
	}
	return "", fmt.Errorf("invalid vendor order status %q", value)
}
