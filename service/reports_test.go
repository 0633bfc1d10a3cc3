package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nhtransport/ledger"
	"nhtransport/models"
	"nhtransport/repository"
)

// seedReports creates two open bookings and one fully settled one.
func seedReports(t *testing.T, f *fixture) (a, b, c *models.Booking) {
	t.Helper()
	ctx := context.Background()

	var err error
	a, err = f.svc.Create(ctx, newBooking("NH0001", day(2025, 3, 1)))
	require.NoError(t, err)
	b, err = f.svc.Create(ctx, newBooking("NH0002", day(2025, 2, 1)))
	require.NoError(t, err)

	settled := newBooking("NH0003", day(2025, 1, 15))
	settled.Charges.AdvancePaid = 50000
	settled.VehiclePayment.VehicleAdvance = 28000
	c, err = f.svc.Create(ctx, settled)
	require.NoError(t, err)
	return a, b, c
}

func TestPendingPayments(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a, b, _ := seedReports(t, f)

	items, err := f.svc.PendingPayments(ctx, PendingParty)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, b.ID, items[0].Booking.ID, "oldest first")
	assert.Equal(t, 47, items[0].DaysOutstanding)
	assert.Equal(t, a.ID, items[1].Booking.ID)
	assert.Equal(t, 19, items[1].DaysOutstanding)
	assert.Equal(t, 30000.0, items[1].AmountDue)

	items, err = f.svc.PendingPayments(ctx, PendingVehicle)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 23000.0, items[0].AmountDue)
}

func TestParsePendingKind(t *testing.T) {
	k, err := ParsePendingKind("")
	require.NoError(t, err)
	assert.Equal(t, PendingParty, k)

	k, err = ParsePendingKind("vehicle")
	require.NoError(t, err)
	assert.Equal(t, PendingVehicle, k)

	_, err = ParsePendingKind("driver")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSummary(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	seedReports(t, f)

	sum, err := f.svc.Summary(ctx, repository.BookingFilter{})
	require.NoError(t, err)

	assert.Equal(t, 3, sum.Bookings)
	assert.Equal(t, 0, sum.Closed)
	assert.Equal(t, 150000.0, sum.TotalDeal)
	assert.Equal(t, 90000.0, sum.TotalReceived)
	assert.Equal(t, 97500.0, sum.TotalDeductions)
	assert.Equal(t, 52500.0, sum.TotalSubTotal)
	assert.Equal(t, 60000.0, sum.PartyDue)
	assert.Equal(t, 84000.0, sum.VehicleCost)
	assert.Equal(t, 38000.0, sum.VehiclePaid)
	assert.Equal(t, 46000.0, sum.VehicleDue)
	assert.Equal(t, 2, sum.PartyPending)
	assert.Equal(t, 2, sum.VehiclePending)
	assert.Equal(t, 3, sum.ByDeliveryStatus[ledger.DeliveryPending])
	assert.Equal(t, 0, sum.ByDeliveryStatus[ledger.DeliveryReceived])

	from := day(2025, 2, 1)
	sum, err = f.svc.Summary(ctx, repository.BookingFilter{From: &from})
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Bookings)
}

func TestReconcile(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a, _, _ := seedReports(t, f)

	f.tamper(t, a.ID, "sub_total = 1, vehicle_payment_status = 'completed'")

	report, err := f.svc.Reconcile(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Checked)
	assert.Equal(t, []string{"NH0001"}, report.Drifted)
	assert.Zero(t, report.Updated)

	report, err = f.svc.Reconcile(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Updated)

	var subTotal float64
	var status string
	require.NoError(t, f.conn.QueryRow(`SELECT sub_total, vehicle_payment_status FROM bookings WHERE id = ?`, a.ID).Scan(&subTotal, &status))
	assert.Equal(t, 17500.0, subTotal)
	assert.Equal(t, "pending", status)

	report, err = f.svc.Reconcile(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, report.Drifted)
}

func TestExport(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	seedReports(t, f)

	var buf bytes.Buffer
	require.NoError(t, f.svc.Export(ctx, &buf, ExportCSV, ListFilter{PartyPaymentStatus: ledger.PaymentPending}))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "NH0001", rows[1][0])
	assert.Equal(t, "NH0002", rows[2][0])

	format, err := ParseExportFormat("xlsx")
	require.NoError(t, err)
	assert.Contains(t, format.ContentType(), "spreadsheetml")
	assert.Equal(t, "bookings_20250320.xlsx", format.FileName(f.clock))

	_, err = ParseExportFormat("pdf")
	assert.ErrorIs(t, err, ErrValidation)
}
