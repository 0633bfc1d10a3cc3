package service

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"nhtransport/db"
	sqlitedb "nhtransport/db/sqlite"
	"nhtransport/models"
	"nhtransport/repository"
)

type memStorage struct {
	mu      sync.Mutex
	files   map[string][]byte
	deleted []string
}

func newMemStorage() *memStorage {
	return &memStorage{files: make(map[string][]byte)}
}

func (m *memStorage) Upload(_ context.Context, key string, body []byte, _ string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	url := "mem://" + key
	m.files[url] = body
	return url, nil
}

func (m *memStorage) Delete(_ context.Context, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, url)
	m.deleted = append(m.deleted, url)
	return nil
}

type fakeRenderer struct {
	html []byte
}

func (f *fakeRenderer) RenderPDF(_ context.Context, html []byte) ([]byte, error) {
	f.html = html
	return []byte("%PDF-1.4 fake"), nil
}

type fixture struct {
	conn     *sql.DB
	bookings *repository.SQLBookingRepo
	parties  *repository.SQLPartyRepo
	vehicles *repository.SQLVehicleRepo
	company  *repository.SQLCompanyRepo
	storage  *memStorage
	svc      *BookingService
	clock    time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	conn, err := sql.Open("sqlite", sqlitedb.DSN(filepath.Join(t.TempDir(), "svc.db")))
	require.NoError(t, err)
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	require.NoError(t, db.RunMigrations(conn, db.SQLite, logger))

	f := &fixture{
		conn:     conn,
		bookings: repository.NewSQLiteBookingRepo(conn),
		parties:  repository.NewSQLPartyRepo(conn, repository.SQLite),
		vehicles: repository.NewSQLVehicleRepo(conn, repository.SQLite),
		company:  repository.NewSQLCompanyRepo(conn, repository.SQLite),
		storage:  newMemStorage(),
		clock:    time.Date(2025, 3, 20, 9, 30, 0, 0, time.UTC),
	}
	f.svc = NewBookingService(f.bookings, f.parties, f.vehicles, f.storage, logger)
	f.svc.now = func() time.Time { return f.clock }
	return f
}

// tamper writes stored columns directly, the way an out-of-band edit would.
func (f *fixture) tamper(t *testing.T, id string, set string) {
	t.Helper()
	_, err := f.conn.Exec(fmt.Sprintf("UPDATE bookings SET %s WHERE id = ?", set), id)
	require.NoError(t, err)
}

func newBooking(no string, date time.Time) *models.Booking {
	return &models.Booking{
		BookingNo:   no,
		BookingDate: date,
		Party:       models.PartySnapshot{Name: "Shree Traders"},
		Vehicle:     models.VehicleSnapshot{VehicleNumber: "mh 12 ab 1234"},
		Journey:     models.Journey{FromLocation: "Pune", ToLocation: "Nagpur"},
		Charges: models.Charges{
			DealAmount:     50000,
			AdvancePaid:    20000,
			VehicleCharges: 30000,
			Commission:     2000,
			Hamali:         500,
		},
		VehiclePayment: models.VehiclePayment{
			ActualVehicleCost: 28000,
			VehicleAdvance:    5000,
		},
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
