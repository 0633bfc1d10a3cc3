// Package ledger derives the financial figures and statuses of a booking.
//
// Everything here is pure: no I/O, no shared state, and the calculator never
// fails. Every surface that shows money (forms, lists, invoices, exports)
// goes through Calculate so that they cannot disagree.
package ledger

import (
	"math"

	"github.com/shopspring/decimal"
)

// Input holds the raw charge and vehicle-payment figures of one booking.
type Input struct {
	DealAmount     float64
	AdvancePaid    float64
	VehicleCharges float64
	Commission     float64
	LocalCharges   float64
	Hamali         float64
	TDS            float64
	STCharges      float64
	Other          float64

	ActualVehicleCost float64
	VehicleAdvance    float64
}

// Result is the derived view of a booking. Values are signed: an overpaid
// booking has a negative pending amount or vehicle balance.
type Result struct {
	SubTotal           float64 `json:"subTotal"`
	TotalDeductions    float64 `json:"totalDeductions"`
	FinalPendingAmount float64 `json:"finalPendingAmount"`
	VehicleBalance     float64 `json:"vehicleBalance"`
	DealAmount         float64 `json:"dealAmount"`
	AdvancePaid        float64 `json:"advancePaid"`
	VehicleCost        float64 `json:"vehicleCost"`
	VehicleAdvancePaid float64 `json:"vehicleAdvancePaid"`
}

// Calculate derives subtotal, deductions and balances.
//
// Deductions only reduce the internal subtotal; what the party owes is the
// deal amount minus what it has already paid.
func Calculate(in Input) Result {
	deal := toDecimal(in.DealAmount)
	advance := toDecimal(in.AdvancePaid)
	vehicleCost := toDecimal(in.ActualVehicleCost)
	vehicleAdvance := toDecimal(in.VehicleAdvance)

	deductions := decimal.Sum(
		toDecimal(in.VehicleCharges),
		toDecimal(in.Commission),
		toDecimal(in.LocalCharges),
		toDecimal(in.Hamali),
		toDecimal(in.TDS),
		toDecimal(in.STCharges),
		toDecimal(in.Other),
	)

	return Result{
		SubTotal:           deal.Sub(deductions).InexactFloat64(),
		TotalDeductions:    deductions.InexactFloat64(),
		FinalPendingAmount: deal.Sub(advance).InexactFloat64(),
		VehicleBalance:     vehicleCost.Sub(vehicleAdvance).InexactFloat64(),
		DealAmount:         deal.InexactFloat64(),
		AdvancePaid:        advance.InexactFloat64(),
		VehicleCost:        vehicleCost.InexactFloat64(),
		VehicleAdvancePaid: vehicleAdvance.InexactFloat64(),
	}
}

// CalculateFields runs Calculate over loosely typed form values keyed by
// their API names (dealAmount, advancePaid, ..., actualVehicleCost,
// vehicleAdvance). Missing keys count as zero.
func CalculateFields(charges, vehiclePayment map[string]any) Result {
	return Calculate(Input{
		DealAmount:        ToAmount(charges["dealAmount"]),
		AdvancePaid:       ToAmount(charges["advancePaid"]),
		VehicleCharges:    ToAmount(charges["vehicleCharges"]),
		Commission:        ToAmount(charges["commission"]),
		LocalCharges:      ToAmount(charges["localCharges"]),
		Hamali:            ToAmount(charges["hamali"]),
		TDS:               ToAmount(charges["tds"]),
		STCharges:         ToAmount(charges["stCharges"]),
		Other:             ToAmount(charges["other"]),
		ActualVehicleCost: ToAmount(vehiclePayment["actualVehicleCost"]),
		VehicleAdvance:    ToAmount(vehiclePayment["vehicleAdvance"]),
	})
}

// AmountDue clamps a signed balance for display as an amount still owed.
func AmountDue(balance float64) float64 {
	if balance < 0 || math.IsNaN(balance) {
		return 0
	}
	return balance
}

func toDecimal(v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}
