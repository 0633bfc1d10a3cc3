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

type SQLVehicleRepo struct {
	DB      *sql.DB
	Dialect Dialect
}

func NewSQLVehicleRepo(db *sql.DB, dialect Dialect) *SQLVehicleRepo {
	return &SQLVehicleRepo{DB: db, Dialect: dialect}
}

func (r *SQLVehicleRepo) CreateVehicle(ctx context.Context, v *models.Vehicle) error {
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now().UTC()
	}
	_, err := r.DB.ExecContext(ctx, r.Dialect.rebind(`
		INSERT INTO vehicles (id, vehicle_number, owner_name, contact_number, vehicle_type, created_at)
		VALUES (?,?,?,?,?,?)
	`), v.ID, v.VehicleNumber, v.OwnerName, v.ContactNumber, v.VehicleType, v.CreatedAt)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: vehicle %s", ErrDuplicate, v.VehicleNumber)
	}
	return err
}

func (r *SQLVehicleRepo) UpdateVehicle(ctx context.Context, v *models.Vehicle) error {
	now := time.Now().UTC()
	v.UpdatedAt = &now
	res, err := r.DB.ExecContext(ctx, r.Dialect.rebind(`
		UPDATE vehicles SET vehicle_number=?, owner_name=?, contact_number=?, vehicle_type=?, updated_at=?
		WHERE id=?
	`), v.VehicleNumber, v.OwnerName, v.ContactNumber, v.VehicleType, v.UpdatedAt, v.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: vehicle %s", ErrDuplicate, v.VehicleNumber)
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SQLVehicleRepo) GetVehicleByID(ctx context.Context, id string) (*models.Vehicle, error) {
	v := &models.Vehicle{}
	err := r.DB.QueryRowContext(ctx, r.Dialect.rebind(`
		SELECT id, vehicle_number, owner_name, contact_number, vehicle_type, created_at, updated_at
		FROM vehicles WHERE id=?
	`), id).Scan(&v.ID, &v.VehicleNumber, &v.OwnerName, &v.ContactNumber, &v.VehicleType, &v.CreatedAt, &v.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *SQLVehicleRepo) GetVehicles(ctx context.Context, search string) ([]*models.Vehicle, error) {
	query := `SELECT id, vehicle_number, owner_name, contact_number, vehicle_type, created_at, updated_at FROM vehicles`
	var args []any
	if s := strings.TrimSpace(search); s != "" {
		query += fmt.Sprintf(` WHERE vehicle_number %[1]s ? ESCAPE '\' OR owner_name %[1]s ? ESCAPE '\'`, r.Dialect.like())
		p := likePattern(s)
		args = append(args, p, p)
	}
	query += " ORDER BY vehicle_number"

	rows, err := r.DB.QueryContext(ctx, r.Dialect.rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Vehicle
	for rows.Next() {
		v := &models.Vehicle{}
		if err := rows.Scan(&v.ID, &v.VehicleNumber, &v.OwnerName, &v.ContactNumber, &v.VehicleType, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *SQLVehicleRepo) DeleteVehicle(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, r.Dialect.rebind(`DELETE FROM vehicles WHERE id=?`), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
