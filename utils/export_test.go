package utils

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"nhtransport/ledger"
	"nhtransport/models"
)

func exportFixture() []*models.Booking {
	b := &models.Booking{
		BookingNo:   "NH0001",
		BookingDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Party:       models.PartySnapshot{Name: "Shree Traders"},
		Vehicle:     models.VehicleSnapshot{VehicleNumber: "MH12AB1234"},
		Journey:     models.Journey{FromLocation: "Pune", ToLocation: "Nagpur"},
		Charges: models.Charges{
			DealAmount:     50000,
			AdvancePaid:    60000,
			VehicleCharges: 30000,
			Commission:     2000,
		},
		VehiclePayment: models.VehiclePayment{ActualVehicleCost: 30000, VehicleAdvance: 5000},
		Delivery:       models.Delivery{Status: ledger.DeliveryDelivered},
	}
	b.Recalculate()
	return []*models.Booking{b}
}

func TestWriteBookingsCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBookingsCSV(&buf, exportFixture()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, exportHeaders, rows[0])

	row := rows[1]
	assert.Equal(t, "NH0001", row[0])
	assert.Equal(t, "2025-03-01", row[1])
	assert.Equal(t, "50000.00", row[6])
	assert.Equal(t, "32000.00", row[8])
	assert.Equal(t, "18000.00", row[9])
	assert.Equal(t, "0.00", row[10], "overpaid party due is clamped")
	assert.Equal(t, "25000.00", row[13])
	assert.Equal(t, "delivered", row[14])
	assert.Equal(t, "completed", row[15])
	assert.Equal(t, "pending", row[16])
}

func TestWriteBookingsXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBookingsXLSX(&buf, exportFixture()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Bookings")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Booking No", rows[0][0])
	assert.Equal(t, "NH0001", rows[1][0])
	assert.Equal(t, "50000", rows[1][6])
	assert.Equal(t, "Shree Traders", rows[1][2])
}
