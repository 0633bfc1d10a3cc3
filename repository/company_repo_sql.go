package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"nhtransport/models"
)

type SQLCompanyRepo struct {
	DB      *sql.DB
	Dialect Dialect
}

func NewSQLCompanyRepo(db *sql.DB, dialect Dialect) *SQLCompanyRepo {
	return &SQLCompanyRepo{DB: db, Dialect: dialect}
}

// SaveCompany inserts a new profile, or updates it when the ID is set.
func (r *SQLCompanyRepo) SaveCompany(ctx context.Context, c *models.CompanyProfile) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}

	mobileJSON, err := json.Marshal(c.Mobile)
	if err != nil {
		return err
	}

	if c.ID != "" {
		res, err := r.DB.ExecContext(ctx, r.Dialect.rebind(`
			UPDATE company_profile
			SET company_name=?, gstin=?, address=?, city=?, state=?, pincode=?, mobile=?, footnote=?
			WHERE id=?
		`), c.CompanyName, c.GSTIN, c.Address, c.City, c.State, c.Pincode, string(mobileJSON), c.Footnote, c.ID)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n > 0 {
			return nil
		}
	} else {
		c.ID = uuid.NewString()
	}

	_, err = r.DB.ExecContext(ctx, r.Dialect.rebind(`
		INSERT INTO company_profile
		(id, company_name, gstin, address, city, state, pincode, mobile, footnote, created_at)
		VALUES (?,?,?,?,?,?,?,?,?,?)
	`), c.ID, c.CompanyName, c.GSTIN, c.Address, c.City, c.State, c.Pincode, string(mobileJSON), c.Footnote, c.CreatedAt)
	return err
}

func (r *SQLCompanyRepo) GetCompany(ctx context.Context) (*models.CompanyProfile, error) {
	c := &models.CompanyProfile{}
	var mobileJSON string

	err := r.DB.QueryRowContext(ctx, `
		SELECT id, company_name, address, city, state, pincode, gstin, footnote, mobile, created_at
		FROM company_profile
		ORDER BY created_at DESC LIMIT 1
	`).Scan(&c.ID, &c.CompanyName, &c.Address, &c.City, &c.State, &c.Pincode, &c.GSTIN, &c.Footnote, &mobileJSON, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if mobileJSON != "" {
		if err := json.Unmarshal([]byte(mobileJSON), &c.Mobile); err != nil {
			return nil, err
		}
	}
	return c, nil
}
