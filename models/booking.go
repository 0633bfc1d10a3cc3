package models

import (
	"time"

	"nhtransport/ledger"
)

// PartySnapshot is the customer as it was when the booking was made.
type PartySnapshot struct {
	Name    string `json:"name" bson:"name" validate:"required"`
	Address string `json:"address" bson:"address"`
	Contact string `json:"contact" bson:"contact"`
	GSTNo   string `json:"gstNo" bson:"gst_no"`
}

// VehicleSnapshot is the vehicle as it was when the booking was made.
type VehicleSnapshot struct {
	VehicleNumber string `json:"vehicleNumber" bson:"vehicle_number" validate:"required"`
	OwnerName     string `json:"ownerName" bson:"owner_name"`
	ContactNumber string `json:"contactNumber" bson:"contact_number"`
	VehicleType   string `json:"vehicleType" bson:"vehicle_type"`
}

type Journey struct {
	FromLocation string `json:"fromLocation" bson:"from_location"`
	ToLocation   string `json:"toLocation" bson:"to_location"`
}

// Charges holds what the party is billed, what it paid, the cost
// components deducted for the internal subtotal, and the derived totals.
type Charges struct {
	DealAmount     Amount `json:"dealAmount" bson:"deal_amount" validate:"gte=0"`
	AdvancePaid    Amount `json:"advancePaid" bson:"advance_paid" validate:"gte=0"`
	VehicleCharges Amount `json:"vehicleCharges" bson:"vehicle_charges" validate:"gte=0"`
	Commission     Amount `json:"commission" bson:"commission" validate:"gte=0"`
	LocalCharges   Amount `json:"localCharges" bson:"local_charges" validate:"gte=0"`
	Hamali         Amount `json:"hamali" bson:"hamali" validate:"gte=0"`
	TDS            Amount `json:"tds" bson:"tds" validate:"gte=0"`
	STCharges      Amount `json:"stCharges" bson:"st_charges" validate:"gte=0"`
	Other          Amount `json:"other" bson:"other" validate:"gte=0"`

	// derived
	SubTotal           Amount `json:"subTotal" bson:"sub_total"`
	TotalDeductions    Amount `json:"totalDeductions" bson:"total_deductions"`
	PendingAmount      Amount `json:"pendingAmount" bson:"pending_amount"`
	FinalPendingAmount Amount `json:"finalPendingAmount" bson:"final_pending_amount"`
}

// PaymentEntry is one payment made to the vehicle owner.
type PaymentEntry struct {
	ID          string    `json:"id" bson:"id"`
	Amount      Amount    `json:"amount" bson:"amount" validate:"gt=0"`
	Mode        string    `json:"mode" bson:"mode" validate:"required"`
	PaymentDate time.Time `json:"paymentDate" bson:"payment_date"`
	Remarks     string    `json:"remarks" bson:"remarks"`
}

type VehiclePayment struct {
	ActualVehicleCost Amount         `json:"actualVehicleCost" bson:"actual_vehicle_cost" validate:"gte=0"`
	VehicleAdvance    Amount         `json:"vehicleAdvance" bson:"vehicle_advance" validate:"gte=0"`
	VehicleBalance    Amount         `json:"vehicleBalance" bson:"vehicle_balance"`
	PaymentHistory    []PaymentEntry `json:"paymentHistory" bson:"payment_history" validate:"dive"`
}

type Delivery struct {
	Status      ledger.DeliveryStatus `json:"status" bson:"status" validate:"omitempty,oneof=pending in-transit delivered received"`
	Remarks     string                `json:"remarks" bson:"remarks"`
	ProofImage  string                `json:"proofImage" bson:"proof_image"`
	DeliveredAt *time.Time            `json:"deliveredAt,omitempty" bson:"delivered_at,omitempty"`
}

// PaymentStatus is derived by Recalculate from the balances. The one stored
// input is an operator-set partial, which is kept while its balance is still
// open (see ledger.ReconcileStatus).
type PaymentStatus struct {
	PartyPaymentStatus   ledger.PaymentStatus `json:"partyPaymentStatus" bson:"party_payment_status" validate:"omitempty,oneof=pending partial completed"`
	VehiclePaymentStatus ledger.PaymentStatus `json:"vehiclePaymentStatus" bson:"vehicle_payment_status" validate:"omitempty,oneof=pending partial completed"`
}

type Booking struct {
	ID          string    `json:"id" bson:"_id"`
	BookingNo   string    `json:"bookingNo" bson:"booking_no" validate:"required,max=32"`
	BookingDate time.Time `json:"bookingDate" bson:"booking_date"`

	PartyID   string          `json:"partyId,omitempty" bson:"party_id,omitempty"`
	Party     PartySnapshot   `json:"party" bson:"party"`
	VehicleID string          `json:"vehicleId,omitempty" bson:"vehicle_id,omitempty"`
	Vehicle   VehicleSnapshot `json:"vehicle" bson:"vehicle"`
	Journey   Journey         `json:"journey" bson:"journey"`

	Charges        Charges        `json:"charges" bson:"charges"`
	VehiclePayment VehiclePayment `json:"vehiclePayment" bson:"vehicle_payment"`
	Delivery       Delivery       `json:"delivery" bson:"delivery"`
	PaymentStatus  PaymentStatus  `json:"paymentStatus" bson:"payment_status"`

	InvoiceURL       *string    `json:"invoiceUrl,omitempty" bson:"invoice_url,omitempty"`
	InvoiceCreatedAt *time.Time `json:"invoiceCreatedAt,omitempty" bson:"invoice_created_at,omitempty"`
	CreatedAt        time.Time  `json:"createdAt" bson:"created_at"`
	UpdatedAt        *time.Time `json:"updatedAt,omitempty" bson:"updated_at,omitempty"`
}

// LedgerInput collects the calculator inputs of the booking.
func (b *Booking) LedgerInput() ledger.Input {
	return ledger.Input{
		DealAmount:        b.Charges.DealAmount.Float(),
		AdvancePaid:       b.Charges.AdvancePaid.Float(),
		VehicleCharges:    b.Charges.VehicleCharges.Float(),
		Commission:        b.Charges.Commission.Float(),
		LocalCharges:      b.Charges.LocalCharges.Float(),
		Hamali:            b.Charges.Hamali.Float(),
		TDS:               b.Charges.TDS.Float(),
		STCharges:         b.Charges.STCharges.Float(),
		Other:             b.Charges.Other.Float(),
		ActualVehicleCost: b.VehiclePayment.ActualVehicleCost.Float(),
		VehicleAdvance:    b.VehiclePayment.VehicleAdvance.Float(),
	}
}

// Recalculate refreshes every derived figure and both payment statuses.
// It is the only place where booking totals are written.
func (b *Booking) Recalculate() ledger.Result {
	res := ledger.Calculate(b.LedgerInput())

	b.Charges.SubTotal = Amount(res.SubTotal)
	b.Charges.TotalDeductions = Amount(res.TotalDeductions)
	b.Charges.PendingAmount = Amount(res.FinalPendingAmount)
	b.Charges.FinalPendingAmount = Amount(res.FinalPendingAmount)
	b.VehiclePayment.VehicleBalance = Amount(res.VehicleBalance)

	b.PaymentStatus.PartyPaymentStatus = ledger.ReconcileStatus(res.FinalPendingAmount, b.PaymentStatus.PartyPaymentStatus)
	b.PaymentStatus.VehiclePaymentStatus = ledger.ReconcileStatus(res.VehicleBalance, b.PaymentStatus.VehiclePaymentStatus)

	return res
}

type derivedFields struct {
	subTotal, totalDeductions, pending, finalPending, vehicleBalance Amount
	party, vehicle                                                   ledger.PaymentStatus
}

func (b *Booking) derived() derivedFields {
	return derivedFields{
		subTotal:        b.Charges.SubTotal,
		totalDeductions: b.Charges.TotalDeductions,
		pending:         b.Charges.PendingAmount,
		finalPending:    b.Charges.FinalPendingAmount,
		vehicleBalance:  b.VehiclePayment.VehicleBalance,
		party:           b.PaymentStatus.PartyPaymentStatus,
		vehicle:         b.PaymentStatus.VehiclePaymentStatus,
	}
}

// Reconcile recalculates and reports whether any stored derived value was stale.
func (b *Booking) Reconcile() bool {
	before := b.derived()
	b.Recalculate()
	return before != b.derived()
}

// Closed reports whether the booking is delivered, received and fully settled
// on both sides. Closed bookings remain editable.
func (b *Booking) Closed() bool {
	return b.Delivery.Status == ledger.DeliveryReceived &&
		b.PaymentStatus.PartyPaymentStatus == ledger.PaymentCompleted &&
		b.PaymentStatus.VehiclePaymentStatus == ledger.PaymentCompleted
}
