package service

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"nhtransport/ledger"
	"nhtransport/models"
	"nhtransport/repository"
	"nhtransport/utils"
)

type PendingKind string

const (
	PendingParty   PendingKind = "party"
	PendingVehicle PendingKind = "vehicle"
)

func ParsePendingKind(s string) (PendingKind, error) {
	switch PendingKind(s) {
	case "", PendingParty:
		return PendingParty, nil
	case PendingVehicle:
		return PendingVehicle, nil
	}
	return "", invalid("pending type must be party or vehicle, got %q", s)
}

// PendingItem is one line of a collection or payout worklist.
type PendingItem struct {
	Booking         *models.Booking `json:"booking"`
	AmountDue       float64         `json:"amountDue"`
	DaysOutstanding int             `json:"daysOutstanding"`
}

// PendingPayments lists bookings that still owe money, oldest first. For
// parties that is an open receivable; for vehicles an unpaid balance to the owner.
func (s *BookingService) PendingPayments(ctx context.Context, kind PendingKind) ([]PendingItem, error) {
	list, err := s.Bookings.GetBookings(ctx, repository.BookingFilter{})
	if err != nil {
		return nil, err
	}

	today := dateOnly(s.now())
	items := make([]PendingItem, 0)
	for _, b := range list {
		res := b.Recalculate()
		balance := res.FinalPendingAmount
		if kind == PendingVehicle {
			balance = res.VehicleBalance
		}
		if balance <= 0 {
			continue
		}
		days := int(today.Sub(dateOnly(b.BookingDate)).Hours() / 24)
		if days < 0 {
			days = 0
		}
		items = append(items, PendingItem{Booking: b, AmountDue: balance, DaysOutstanding: days})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Booking.BookingDate.Before(items[j].Booking.BookingDate)
	})
	return items, nil
}

// Summary is the dashboard view over a set of bookings. Dues are summed
// after clamping, so overpaid bookings do not offset open ones.
type Summary struct {
	Bookings         int                           `json:"bookings"`
	Closed           int                           `json:"closed"`
	TotalDeal        float64                       `json:"totalDeal"`
	TotalReceived    float64                       `json:"totalReceived"`
	TotalDeductions  float64                       `json:"totalDeductions"`
	TotalSubTotal    float64                       `json:"totalSubTotal"`
	PartyDue         float64                       `json:"partyDue"`
	VehicleCost      float64                       `json:"vehicleCost"`
	VehiclePaid      float64                       `json:"vehiclePaid"`
	VehicleDue       float64                       `json:"vehicleDue"`
	ByDeliveryStatus map[ledger.DeliveryStatus]int `json:"byDeliveryStatus"`
	PartyPending     int                           `json:"partyPending"`
	VehiclePending   int                           `json:"vehiclePending"`
}

func (s *BookingService) Summary(ctx context.Context, f repository.BookingFilter) (*Summary, error) {
	f.Limit, f.Offset = 0, 0
	list, err := s.Bookings.GetBookings(ctx, f)
	if err != nil {
		return nil, err
	}

	sum := &Summary{ByDeliveryStatus: make(map[ledger.DeliveryStatus]int)}
	for _, st := range ledger.DeliveryStatuses() {
		sum.ByDeliveryStatus[st] = 0
	}

	var deal, received, deductions, subTotal, partyDue, vCost, vPaid, vDue decimal.Decimal
	add := func(acc *decimal.Decimal, v float64) { *acc = acc.Add(decimal.NewFromFloat(v)) }

	for _, b := range list {
		res := b.Recalculate()
		sum.Bookings++
		if b.Closed() {
			sum.Closed++
		}
		sum.ByDeliveryStatus[b.Delivery.Status]++
		if res.FinalPendingAmount > 0 {
			sum.PartyPending++
		}
		if res.VehicleBalance > 0 {
			sum.VehiclePending++
		}
		add(&deal, res.DealAmount)
		add(&received, res.AdvancePaid)
		add(&deductions, res.TotalDeductions)
		add(&subTotal, res.SubTotal)
		add(&partyDue, ledger.AmountDue(res.FinalPendingAmount))
		add(&vCost, res.VehicleCost)
		add(&vPaid, res.VehicleAdvancePaid)
		add(&vDue, ledger.AmountDue(res.VehicleBalance))
	}

	sum.TotalDeal = deal.InexactFloat64()
	sum.TotalReceived = received.InexactFloat64()
	sum.TotalDeductions = deductions.InexactFloat64()
	sum.TotalSubTotal = subTotal.InexactFloat64()
	sum.PartyDue = partyDue.InexactFloat64()
	sum.VehicleCost = vCost.InexactFloat64()
	sum.VehiclePaid = vPaid.InexactFloat64()
	sum.VehicleDue = vDue.InexactFloat64()
	return sum, nil
}

type ReconcileReport struct {
	Checked int      `json:"checked"`
	Updated int      `json:"updated"`
	Drifted []string `json:"drifted"`
}

// Reconcile recomputes every stored booking and rewrites those whose stored
// totals or statuses no longer match the calculator. With dryRun nothing is written.
func (s *BookingService) Reconcile(ctx context.Context, dryRun bool) (*ReconcileReport, error) {
	list, err := s.Bookings.GetBookings(ctx, repository.BookingFilter{})
	if err != nil {
		return nil, err
	}

	report := &ReconcileReport{Drifted: []string{}}
	for _, b := range list {
		report.Checked++
		if !b.Reconcile() {
			continue
		}
		report.Drifted = append(report.Drifted, b.BookingNo)
		if dryRun {
			continue
		}
		if err := s.Bookings.UpdateBooking(ctx, b); err != nil {
			return report, fmt.Errorf("reconcile %s: %w", b.BookingNo, err)
		}
		report.Updated++
	}
	s.Logger.Info("reconcile finished", "checked", report.Checked, "drifted", len(report.Drifted), "updated", report.Updated, "dry_run", dryRun)
	return report, nil
}

type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportXLSX ExportFormat = "xlsx"
)

func ParseExportFormat(s string) (ExportFormat, error) {
	switch ExportFormat(s) {
	case "", ExportCSV:
		return ExportCSV, nil
	case ExportXLSX:
		return ExportXLSX, nil
	}
	return "", invalid("export format must be csv or xlsx, got %q", s)
}

func (f ExportFormat) ContentType() string {
	if f == ExportXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

func (f ExportFormat) FileName(now time.Time) string {
	return fmt.Sprintf("bookings_%s.%s", now.Format("20060102"), f)
}

// Export writes the filtered booking register.
func (s *BookingService) Export(ctx context.Context, w io.Writer, format ExportFormat, f ListFilter) error {
	list, err := s.List(ctx, f)
	if err != nil {
		return err
	}
	if format == ExportXLSX {
		return utils.WriteBookingsXLSX(w, list)
	}
	return utils.WriteBookingsCSV(w, list)
}
