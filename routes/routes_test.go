package routes

import (
	"database/sql"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nhtransport/db"
	sqlitedb "nhtransport/db/sqlite"
	"nhtransport/handlers"
	"nhtransport/repository"
	"nhtransport/service"
	"nhtransport/utils"
)

func newTestRouter(t *testing.T, mutate func(*Options)) http.Handler {
	t.Helper()

	conn, err := sql.Open("sqlite", sqlitedb.DSN(filepath.Join(t.TempDir(), "routes.db")))
	require.NoError(t, err)
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	require.NoError(t, db.RunMigrations(conn, db.SQLite, logger))

	uploads := t.TempDir()
	storage := utils.NewLocalStorage(uploads, "/uploads")
	bookings := repository.NewSQLiteBookingRepo(conn)
	parties := repository.NewSQLPartyRepo(conn, repository.SQLite)
	vehicles := repository.NewSQLVehicleRepo(conn, repository.SQLite)
	company := repository.NewSQLCompanyRepo(conn, repository.SQLite)

	opts := Options{
		Bookings: handlers.NewBookingHandler(service.NewBookingService(bookings, parties, vehicles, storage, logger), logger),
		Invoices: handlers.NewInvoiceHandler(service.NewInvoiceService(repository.NewInvoiceRepository(bookings, company), &utils.ChromePDF{}, storage, logger), logger),
		Parties:  &handlers.PartyHandler{Service: service.NewPartyService(parties), Logger: logger},
		Vehicles: &handlers.VehicleHandler{Service: service.NewVehicleService(vehicles), Logger: logger},
		Company:  &handlers.CompanyHandler{Service: service.NewCompanyService(company), Logger: logger},
		Logger:   logger,
		Metrics:  NewMetrics(),

		CORSOrigin: "https://admin.example.com",
		UploadDir:  uploads,
	}
	if mutate != nil {
		mutate(&opts)
	}
	return NewRouter(opts)
}

func serve(h http.Handler, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	req.RemoteAddr = "10.0.0.1:5000"
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthAndHeaders(t *testing.T) {
	h := newTestRouter(t, nil)

	rec := serve(h, http.MethodGet, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	assert.Equal(t, "https://admin.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.NotEmpty(t, rec.Header().Get("Content-Security-Policy"))
}

func TestPreflight(t *testing.T) {
	h := newTestRouter(t, nil)

	rec := serve(h, http.MethodOptions, "/api/bookings")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "PATCH")
}

func TestAPIRoutes(t *testing.T) {
	h := newTestRouter(t, nil)

	rec := serve(h, http.MethodGet, "/api/bookings")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":[]}`, rec.Body.String())

	rec = serve(h, http.MethodGet, "/api/bookings/next-number")
	assert.JSONEq(t, `{"success":true,"data":{"bookingNo":"NH0001"}}`, rec.Body.String())

	rec = serve(h, http.MethodGet, "/api/bookings/unknown")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(h, http.MethodGet, "/api/parties")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(h, http.MethodDelete, "/api/company")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestMetricsUseRoutePatterns(t *testing.T) {
	h := newTestRouter(t, nil)

	serve(h, http.MethodGet, "/api/bookings/abc")
	serve(h, http.MethodGet, "/api/bookings/def")

	rec := serve(h, http.MethodGet, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "nhtransport_http_requests_total")
	assert.Contains(t, body, `route="/api/bookings/{id}`)
	assert.NotContains(t, body, "/api/bookings/abc")
}

func TestRateLimit(t *testing.T) {
	h := newTestRouter(t, func(o *Options) { o.RateLimitPerMin = 2 })

	assert.Equal(t, http.StatusOK, serve(h, http.MethodGet, "/api/parties").Code)
	assert.Equal(t, http.StatusOK, serve(h, http.MethodGet, "/api/parties").Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(h, http.MethodGet, "/api/parties").Code)

	// health checks are not limited
	assert.Equal(t, http.StatusOK, serve(h, http.MethodGet, "/healthz").Code)
}

func TestUploadsServed(t *testing.T) {
	var dir string
	h := newTestRouter(t, func(o *Options) { dir = o.UploadDir })

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "proofs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "proofs", "pod.txt"), []byte("proof"), 0o644))

	rec := serve(h, http.MethodGet, "/uploads/proofs/pod.txt")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "proof", rec.Body.String())
}
