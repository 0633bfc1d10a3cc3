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

type SQLPartyRepo struct {
	DB      *sql.DB
	Dialect Dialect
}

func NewSQLPartyRepo(db *sql.DB, dialect Dialect) *SQLPartyRepo {
	return &SQLPartyRepo{DB: db, Dialect: dialect}
}

func (r *SQLPartyRepo) CreateParty(ctx context.Context, p *models.Party) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	_, err := r.DB.ExecContext(ctx, r.Dialect.rebind(`
		INSERT INTO parties (id, name, address, contact, gst_no, created_at)
		VALUES (?,?,?,?,?,?)
	`), p.ID, p.Name, p.Address, p.Contact, p.GSTNo, p.CreatedAt)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: party %s", ErrDuplicate, p.Name)
	}
	return err
}

func (r *SQLPartyRepo) UpdateParty(ctx context.Context, p *models.Party) error {
	now := time.Now().UTC()
	p.UpdatedAt = &now
	res, err := r.DB.ExecContext(ctx, r.Dialect.rebind(`
		UPDATE parties SET name=?, address=?, contact=?, gst_no=?, updated_at=?
		WHERE id=?
	`), p.Name, p.Address, p.Contact, p.GSTNo, p.UpdatedAt, p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: party %s", ErrDuplicate, p.Name)
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SQLPartyRepo) GetPartyByID(ctx context.Context, id string) (*models.Party, error) {
	p := &models.Party{}
	err := r.DB.QueryRowContext(ctx, r.Dialect.rebind(`
		SELECT id, name, address, contact, gst_no, created_at, updated_at
		FROM parties WHERE id=?
	`), id).Scan(&p.ID, &p.Name, &p.Address, &p.Contact, &p.GSTNo, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *SQLPartyRepo) GetParties(ctx context.Context, search string) ([]*models.Party, error) {
	query := `SELECT id, name, address, contact, gst_no, created_at, updated_at FROM parties`
	var args []any
	if s := strings.TrimSpace(search); s != "" {
		query += fmt.Sprintf(` WHERE name %[1]s ? ESCAPE '\' OR contact %[1]s ? ESCAPE '\' OR gst_no %[1]s ? ESCAPE '\'`, r.Dialect.like())
		p := likePattern(s)
		args = append(args, p, p, p)
	}
	query += " ORDER BY name"

	rows, err := r.DB.QueryContext(ctx, r.Dialect.rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Party
	for rows.Next() {
		p := &models.Party{}
		if err := rows.Scan(&p.ID, &p.Name, &p.Address, &p.Contact, &p.GSTNo, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *SQLPartyRepo) DeleteParty(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, r.Dialect.rebind(`DELETE FROM parties WHERE id=?`), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
