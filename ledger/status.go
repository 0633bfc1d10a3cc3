package ledger

import (
	"fmt"
	"strings"
)

// PaymentStatus is the completion state of the party or vehicle side of a booking.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentPartial   PaymentStatus = "partial"
	PaymentCompleted PaymentStatus = "completed"
)

// ParsePaymentStatus accepts the API spelling of a payment status. An empty
// string parses as pending.
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch PaymentStatus(strings.ToLower(strings.TrimSpace(s))) {
	case "", PaymentPending:
		return PaymentPending, nil
	case PaymentPartial:
		return PaymentPartial, nil
	case PaymentCompleted:
		return PaymentCompleted, nil
	}
	return "", fmt.Errorf("unknown payment status %q", s)
}

// DeriveStatus maps an outstanding balance to completed or pending.
func DeriveStatus(balance float64) PaymentStatus {
	if balance <= 0 {
		return PaymentCompleted
	}
	return PaymentPending
}

// ReconcileStatus re-derives a status after a recalculation. A settled
// balance is always completed. While money is still owed, a partial status
// set by an operator is kept; anything else falls back to pending.
func ReconcileStatus(balance float64, current PaymentStatus) PaymentStatus {
	derived := DeriveStatus(balance)
	if derived == PaymentPending && current == PaymentPartial {
		return PaymentPartial
	}
	return derived
}
