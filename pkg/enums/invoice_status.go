package enums

import "fmt"

// InvoiceStatus tracks the payment lifecycle of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusPending   InvoiceStatus = "pending"
	InvoiceStatusPartial   InvoiceStatus = "partial"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

var validInvoiceStatuses = []InvoiceStatus{
	InvoiceStatusPending,
	InvoiceStatusPartial,
	InvoiceStatusPaid,
	InvoiceStatusCancelled,
}

// String implements fmt.Stringer.
func (s InvoiceStatus) String() string {
	return string(s)
}

// IsValid reports whether the status is recognized.
func (s InvoiceStatus) IsValid() bool {
	for _, candidate := range validInvoiceStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseInvoiceStatus converts a raw string into an InvoiceStatus.
func ParseInvoiceStatus(value string) (InvoiceStatus, error) {
	for _, candidate := range validInvoiceStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid invoice status %q", value)
}
