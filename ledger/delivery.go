package ledger

import (
	"errors"
	"fmt"
	"strings"
)

// DeliveryStatus is the physical lifecycle stage of a booking.
type DeliveryStatus string

const (
	DeliveryPending   DeliveryStatus = "pending"
	DeliveryInTransit DeliveryStatus = "in-transit"
	DeliveryDelivered DeliveryStatus = "delivered"
	DeliveryReceived  DeliveryStatus = "received"
)

var (
	ErrUnknownDeliveryStatus = errors.New("unknown delivery status")
	ErrInvalidTransition     = errors.New("delivery status cannot move backwards")
	ErrProofRequired         = errors.New("proof image is required to mark a booking received")
)

var deliveryRank = map[DeliveryStatus]int{
	DeliveryPending:   0,
	DeliveryInTransit: 1,
	DeliveryDelivered: 2,
	DeliveryReceived:  3,
}

// DeliveryStatuses lists the states in lifecycle order.
func DeliveryStatuses() []DeliveryStatus {
	return []DeliveryStatus{DeliveryPending, DeliveryInTransit, DeliveryDelivered, DeliveryReceived}
}

// ParseDeliveryStatus normalises user input. "in_transit" and "intransit"
// are accepted for in-transit; an empty string is pending.
func ParseDeliveryStatus(s string) (DeliveryStatus, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case "":
		return DeliveryPending, nil
	case "in_transit", "intransit", "in transit":
		return DeliveryInTransit, nil
	}
	if _, ok := deliveryRank[DeliveryStatus(v)]; ok {
		return DeliveryStatus(v), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDeliveryStatus, s)
}

// SuggestNext returns the state an operator most likely wants next.
func SuggestNext(current DeliveryStatus) DeliveryStatus {
	switch current {
	case DeliveryPending:
		return DeliveryInTransit
	case DeliveryInTransit:
		return DeliveryDelivered
	case DeliveryDelivered, DeliveryReceived:
		return DeliveryReceived
	}
	return DeliveryPending
}

// CheckTransition validates moving from one delivery state to another.
// Forward moves may skip stages and a same-state update is allowed so that
// remarks or proof can be amended. Entering received needs a proof image.
func CheckTransition(from, to DeliveryStatus, hasProof bool) error {
	if from == "" {
		from = DeliveryPending
	}
	fromRank, ok := deliveryRank[from]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownDeliveryStatus, from)
	}
	toRank, ok := deliveryRank[to]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownDeliveryStatus, to)
	}
	if toRank < fromRank {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	if to == DeliveryReceived && !hasProof {
		return ErrProofRequired
	}
	return nil
}
