package enums

import "fmt"

// DocumentKind distinguishes the human-facing numbered documents.
type DocumentKind string

const (
	DocumentKindInvoice DocumentKind = "invoice"
	DocumentKindReceipt DocumentKind = "receipt"
)

// String implements fmt.Stringer.
func (d DocumentKind) String() string {
	return string(d)
}

// IsValid reports whether the kind is recognized.
func (d DocumentKind) IsValid() bool {
	return d == DocumentKindInvoice || d == DocumentKindReceipt
}

// ParseDocumentKind converts a raw string into a DocumentKind.
func ParseDocumentKind(value string) (DocumentKind, error) {
	candidate := DocumentKind(value)
	if candidate.IsValid() {
		return candidate, nil
	}
	return "", fmt.Errorf("invalid document kind %q", value)
}
