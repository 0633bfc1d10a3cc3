package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"nhtransport/models"
)

// SQLBookingRepo stores bookings in one flat table plus a table of vehicle
// payments. It serves both PostgreSQL and SQLite.
type SQLBookingRepo struct {
	DB      *sql.DB
	Dialect Dialect
}

func NewPostgresBookingRepo(db *sql.DB) *SQLBookingRepo {
	return &SQLBookingRepo{DB: db, Dialect: Postgres}
}

func NewSQLiteBookingRepo(db *sql.DB) *SQLBookingRepo {
	return &SQLBookingRepo{DB: db, Dialect: SQLite}
}

var bookingColumns = []string{
	"id", "booking_no", "booking_date",
	"party_id", "party_name", "party_address", "party_contact", "party_gst_no",
	"vehicle_id", "vehicle_number", "vehicle_owner_name", "vehicle_contact_number", "vehicle_type",
	"from_location", "to_location",
	"deal_amount", "advance_paid", "vehicle_charges", "commission", "local_charges",
	"hamali", "tds", "st_charges", "other_charges",
	"sub_total", "total_deductions", "pending_amount", "final_pending_amount",
	"actual_vehicle_cost", "vehicle_advance", "vehicle_balance",
	"delivery_status", "delivery_remarks", "proof_image", "delivered_at",
	"party_payment_status", "vehicle_payment_status",
	"invoice_url", "invoice_created_at", "created_at", "updated_at",
}

func bookingValues(b *models.Booking) map[string]any {
	return map[string]any{
		"id":                     b.ID,
		"booking_no":             b.BookingNo,
		"booking_date":           b.BookingDate,
		"party_id":               b.PartyID,
		"party_name":             b.Party.Name,
		"party_address":          b.Party.Address,
		"party_contact":          b.Party.Contact,
		"party_gst_no":           b.Party.GSTNo,
		"vehicle_id":             b.VehicleID,
		"vehicle_number":         b.Vehicle.VehicleNumber,
		"vehicle_owner_name":     b.Vehicle.OwnerName,
		"vehicle_contact_number": b.Vehicle.ContactNumber,
		"vehicle_type":           b.Vehicle.VehicleType,
		"from_location":          b.Journey.FromLocation,
		"to_location":            b.Journey.ToLocation,
		"deal_amount":            b.Charges.DealAmount.Float(),
		"advance_paid":           b.Charges.AdvancePaid.Float(),
		"vehicle_charges":        b.Charges.VehicleCharges.Float(),
		"commission":             b.Charges.Commission.Float(),
		"local_charges":          b.Charges.LocalCharges.Float(),
		"hamali":                 b.Charges.Hamali.Float(),
		"tds":                    b.Charges.TDS.Float(),
		"st_charges":             b.Charges.STCharges.Float(),
		"other_charges":          b.Charges.Other.Float(),
		"sub_total":              b.Charges.SubTotal.Float(),
		"total_deductions":       b.Charges.TotalDeductions.Float(),
		"pending_amount":         b.Charges.PendingAmount.Float(),
		"final_pending_amount":   b.Charges.FinalPendingAmount.Float(),
		"actual_vehicle_cost":    b.VehiclePayment.ActualVehicleCost.Float(),
		"vehicle_advance":        b.VehiclePayment.VehicleAdvance.Float(),
		"vehicle_balance":        b.VehiclePayment.VehicleBalance.Float(),
		"delivery_status":        string(b.Delivery.Status),
		"delivery_remarks":       b.Delivery.Remarks,
		"proof_image":            b.Delivery.ProofImage,
		"delivered_at":           b.Delivery.DeliveredAt,
		"party_payment_status":   string(b.PaymentStatus.PartyPaymentStatus),
		"vehicle_payment_status": string(b.PaymentStatus.VehiclePaymentStatus),
		"invoice_url":            b.InvoiceURL,
		"invoice_created_at":     b.InvoiceCreatedAt,
		"created_at":             b.CreatedAt,
		"updated_at":             b.UpdatedAt,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*models.Booking, error) {
	var b models.Booking
	err := row.Scan(
		&b.ID, &b.BookingNo, &b.BookingDate,
		&b.PartyID, &b.Party.Name, &b.Party.Address, &b.Party.Contact, &b.Party.GSTNo,
		&b.VehicleID, &b.Vehicle.VehicleNumber, &b.Vehicle.OwnerName, &b.Vehicle.ContactNumber, &b.Vehicle.VehicleType,
		&b.Journey.FromLocation, &b.Journey.ToLocation,
		&b.Charges.DealAmount, &b.Charges.AdvancePaid, &b.Charges.VehicleCharges, &b.Charges.Commission, &b.Charges.LocalCharges,
		&b.Charges.Hamali, &b.Charges.TDS, &b.Charges.STCharges, &b.Charges.Other,
		&b.Charges.SubTotal, &b.Charges.TotalDeductions, &b.Charges.PendingAmount, &b.Charges.FinalPendingAmount,
		&b.VehiclePayment.ActualVehicleCost, &b.VehiclePayment.VehicleAdvance, &b.VehiclePayment.VehicleBalance,
		&b.Delivery.Status, &b.Delivery.Remarks, &b.Delivery.ProofImage, &b.Delivery.DeliveredAt,
		&b.PaymentStatus.PartyPaymentStatus, &b.PaymentStatus.VehiclePaymentStatus,
		&b.InvoiceURL, &b.InvoiceCreatedAt, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// ------------------------ Create / Update ------------------------

func (r *SQLBookingRepo) CreateBooking(ctx context.Context, b *models.Booking) error {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	values := bookingValues(b)
	args := make([]any, len(bookingColumns))
	for i, col := range bookingColumns {
		args[i] = values[col]
	}
	query := fmt.Sprintf("INSERT INTO bookings (%s) VALUES (%s)",
		strings.Join(bookingColumns, ","), placeholders(len(bookingColumns)))
	if _, err := tx.ExecContext(ctx, r.Dialect.rebind(query), args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: booking number %s", ErrDuplicate, b.BookingNo)
		}
		return err
	}

	if err := r.insertPayments(ctx, tx, b.ID, b.VehiclePayment.PaymentHistory); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *SQLBookingRepo) UpdateBooking(ctx context.Context, b *models.Booking) error {
	now := time.Now().UTC()
	b.UpdatedAt = &now

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	values := bookingValues(b)
	sets := make([]string, 0, len(bookingColumns))
	args := make([]any, 0, len(bookingColumns))
	for _, col := range bookingColumns {
		if col == "id" || col == "created_at" {
			continue
		}
		sets = append(sets, col+"=?")
		args = append(args, values[col])
	}
	args = append(args, b.ID)

	query := fmt.Sprintf("UPDATE bookings SET %s WHERE id=?", strings.Join(sets, ","))
	res, err := tx.ExecContext(ctx, r.Dialect.rebind(query), args...)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: booking number %s", ErrDuplicate, b.BookingNo)
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}

	// Refresh payment history
	if _, err := tx.ExecContext(ctx, r.Dialect.rebind(`DELETE FROM vehicle_payments WHERE booking_id=?`), b.ID); err != nil {
		return err
	}
	if err := r.insertPayments(ctx, tx, b.ID, b.VehiclePayment.PaymentHistory); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *SQLBookingRepo) insertPayments(ctx context.Context, tx *sql.Tx, bookingID string, entries []models.PaymentEntry) error {
	query := r.Dialect.rebind(`
		INSERT INTO vehicle_payments (id, booking_id, seq, amount, mode, payment_date, remarks)
		VALUES (?,?,?,?,?,?,?)
	`)
	for i, p := range entries {
		if _, err := tx.ExecContext(ctx, query, p.ID, bookingID, i, p.Amount.Float(), p.Mode, p.PaymentDate, p.Remarks); err != nil {
			return err
		}
	}
	return nil
}

// ------------------------ Read ------------------------

func (r *SQLBookingRepo) GetBookingByID(ctx context.Context, id string) (*models.Booking, error) {
	query := fmt.Sprintf("SELECT %s FROM bookings WHERE id=?", strings.Join(bookingColumns, ","))
	b, err := scanBooking(r.DB.QueryRowContext(ctx, r.Dialect.rebind(query), id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := r.loadPayments(ctx, []*models.Booking{b}); err != nil {
		return nil, err
	}
	return b, nil
}

func (r *SQLBookingRepo) GetBookings(ctx context.Context, f BookingFilter) ([]*models.Booking, error) {
	query := fmt.Sprintf("SELECT %s FROM bookings", strings.Join(bookingColumns, ","))

	var where []string
	var args []any
	if s := strings.TrimSpace(f.Search); s != "" {
		like := r.Dialect.like()
		where = append(where, fmt.Sprintf(
			`(booking_no %[1]s ? ESCAPE '\' OR party_name %[1]s ? ESCAPE '\' OR vehicle_number %[1]s ? ESCAPE '\' OR from_location %[1]s ? ESCAPE '\' OR to_location %[1]s ? ESCAPE '\')`, like))
		p := likePattern(s)
		args = append(args, p, p, p, p, p)
	}
	if f.DeliveryStatus != "" {
		where = append(where, "delivery_status = ?")
		args = append(args, string(f.DeliveryStatus))
	}
	if f.From != nil {
		where = append(where, "booking_date >= ?")
		args = append(args, f.From.UTC())
	}
	if f.To != nil {
		where = append(where, "booking_date <= ?")
		args = append(args, f.To.UTC())
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY booking_date DESC, created_at DESC"
	if f.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, f.Limit, f.Offset)
	}

	rows, err := r.DB.QueryContext(ctx, r.Dialect.rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*models.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadPayments(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

// loadPayments fills payment history for all bookings with one query.
func (r *SQLBookingRepo) loadPayments(ctx context.Context, bookings []*models.Booking) error {
	if len(bookings) == 0 {
		return nil
	}
	ids := make([]any, len(bookings))
	byID := make(map[string]*models.Booking, len(bookings))
	for i, b := range bookings {
		ids[i] = b.ID
		byID[b.ID] = b
	}

	query := fmt.Sprintf(`
		SELECT booking_id, id, amount, mode, payment_date, remarks
		FROM vehicle_payments
		WHERE booking_id IN (%s)
		ORDER BY booking_id, seq
	`, placeholders(len(ids)))
	rows, err := r.DB.QueryContext(ctx, r.Dialect.rebind(query), ids...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var bookingID string
		var p models.PaymentEntry
		if err := rows.Scan(&bookingID, &p.ID, &p.Amount, &p.Mode, &p.PaymentDate, &p.Remarks); err != nil {
			return err
		}
		if b, ok := byID[bookingID]; ok {
			b.VehiclePayment.PaymentHistory = append(b.VehiclePayment.PaymentHistory, p)
		}
	}
	return rows.Err()
}

func (r *SQLBookingRepo) LastBookingNo(ctx context.Context) (string, error) {
	var no string
	err := r.DB.QueryRowContext(ctx, `SELECT booking_no FROM bookings ORDER BY created_at DESC LIMIT 1`).Scan(&no)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return no, err
}

// ------------------------ Invoice ------------------------

func (r *SQLBookingRepo) UpdateInvoiceInfo(ctx context.Context, id, url string, createdAt time.Time) error {
	res, err := r.DB.ExecContext(ctx, r.Dialect.rebind(`
		UPDATE bookings
		SET invoice_url = ?, invoice_created_at = ?
		WHERE id = ?
	`), url, createdAt, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ------------------------ Delete ------------------------

func (r *SQLBookingRepo) DeleteBooking(ctx context.Context, id string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, r.Dialect.rebind(`DELETE FROM vehicle_payments WHERE booking_id=?`), id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, r.Dialect.rebind(`DELETE FROM bookings WHERE id=?`), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}
