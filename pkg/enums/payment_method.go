package enums

import "fmt"

// PaymentMethod identifies how a payment was collected.
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodCard         PaymentMethod = "card"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodMobileWallet PaymentMethod = "mobile_wallet"
	PaymentMethodOther        PaymentMethod = "other"
)

var validPaymentMethods = []PaymentMethod{
	PaymentMethodCash,
	PaymentMethodCard,
	PaymentMethodBankTransfer,
	PaymentMethodMobileWallet,
	PaymentMethodOther,
}

// String implements fmt.Stringer.
func (m PaymentMethod) String() string {
	return string(m)
}

// IsValid reports whether the method is recognized.
func (m PaymentMethod) IsValid() bool {
	for _, candidate := range validPaymentMethods {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParsePaymentMethod converts a raw string into a PaymentMethod. Empty input
// defaults to cash.
func ParsePaymentMethod(value string) (PaymentMethod, error) {
	if value == "" {
		return PaymentMethodCash, nil
	}
	candidate := PaymentMethod(value)
	if candidate.IsValid() {
		return candidate, nil
	}
	return "", fmt.Errorf("invalid payment method %q", value)
}
