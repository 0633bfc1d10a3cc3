package repository

import (
	"database/sql"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"nhtransport/db"
	sqlitedb "nhtransport/db/sqlite"
	"nhtransport/ledger"
	"nhtransport/models"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", sqlitedb.DSN(filepath.Join(t.TempDir(), "test.db")))
	require.NoError(t, err)
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	require.NoError(t, db.RunMigrations(conn, db.SQLite, logger))
	return conn
}

func sampleBooking(no string, date time.Time) *models.Booking {
	b := &models.Booking{
		ID:          uuid.NewString(),
		BookingNo:   no,
		BookingDate: date,
		Party:       models.PartySnapshot{Name: "Shree Traders", Contact: "9876543210"},
		Vehicle:     models.VehicleSnapshot{VehicleNumber: "MH12AB1234", OwnerName: "Ramesh"},
		Journey:     models.Journey{FromLocation: "Pune", ToLocation: "Nagpur"},
		Charges: models.Charges{
			DealAmount:     50000,
			AdvancePaid:    10000,
			VehicleCharges: 30000,
			Commission:     2000,
			Hamali:         500,
		},
		VehiclePayment: models.VehiclePayment{
			ActualVehicleCost: 30000,
			VehicleAdvance:    5000,
		},
		Delivery:  models.Delivery{Status: ledger.DeliveryPending},
		CreatedAt: time.Now().UTC(),
	}
	b.Recalculate()
	return b
}
