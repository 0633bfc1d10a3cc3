package repository

import (
	"context"

	"nhtransport/models"
)

// CompanyRepository stores the single company profile used as invoice letterhead.
type CompanyRepository interface {
	SaveCompany(ctx context.Context, c *models.CompanyProfile) error
	// GetCompany returns the latest profile, or nil when none was saved yet.
	GetCompany(ctx context.Context) (*models.CompanyProfile, error)
}
