package enums

import "fmt"

// PaymentStatus is the payment state recorded on a draft order. Orders start
// pending and the stub gateway never moves them further.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

func (p PaymentStatus) String() string {
	return string(p)
}

func (p PaymentStatus) IsValid() bool {
	switch p {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}

// IsSettled reports whether money has moved for the order.
func (p PaymentStatus) IsSettled() bool {
	return p == PaymentStatusPaid || p == PaymentStatusRefunded
}

func ParsePaymentStatus(value string) (PaymentStatus, error) {
	if p := PaymentStatus(value); p.IsValid() {
		return p, nil
	}
	return "", fmt.Errorf("invalid payment status %q", value)
}
