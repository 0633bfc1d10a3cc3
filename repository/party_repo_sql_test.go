package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nhtransport/models"
)

func TestSQLPartyRepo(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLPartyRepo(newTestDB(t), SQLite)

	p := &models.Party{ID: uuid.NewString(), Name: "Shree Traders", Contact: "9876543210"}
	require.NoError(t, repo.CreateParty(ctx, p))
	require.NoError(t, repo.CreateParty(ctx, &models.Party{ID: uuid.NewString(), Name: "Anand Agencies"}))

	list, err := repo.GetParties(ctx, "")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Anand Agencies", list[0].Name)

	list, err = repo.GetParties(ctx, "shree")
	require.NoError(t, err)
	require.Len(t, list, 1)

	p.Address = "Market Yard, Pune"
	require.NoError(t, repo.UpdateParty(ctx, p))
	got, err := repo.GetPartyByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Market Yard, Pune", got.Address)
	assert.NotNil(t, got.UpdatedAt)

	require.NoError(t, repo.DeleteParty(ctx, p.ID))
	_, err = repo.GetPartyByID(ctx, p.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.DeleteParty(ctx, p.ID), ErrNotFound)
}

func TestSQLVehicleRepo(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLVehicleRepo(newTestDB(t), SQLite)

	v := &models.Vehicle{ID: uuid.NewString(), VehicleNumber: "MH12AB1234", OwnerName: "Ramesh"}
	require.NoError(t, repo.CreateVehicle(ctx, v))

	err := repo.CreateVehicle(ctx, &models.Vehicle{ID: uuid.NewString(), VehicleNumber: "MH12AB1234"})
	assert.ErrorIs(t, err, ErrDuplicate)

	v.VehicleType = "Truck 10T"
	require.NoError(t, repo.UpdateVehicle(ctx, v))

	list, err := repo.GetVehicles(ctx, "KA01")
	require.NoError(t, err)
	assert.Empty(t, list)

	list, err = repo.GetVehicles(ctx, "ab1234")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Truck 10T", list[0].VehicleType)

	require.NoError(t, repo.DeleteVehicle(ctx, v.ID))
	_, err = repo.GetVehicleByID(ctx, v.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLCompanyRepo(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLCompanyRepo(newTestDB(t), SQLite)

	c, err := repo.GetCompany(ctx)
	require.NoError(t, err)
	assert.Nil(t, c)

	profile := &models.CompanyProfile{
		CompanyName: "NH Transport",
		City:        "Pune",
		Mobile:      []models.MobileEntry{{Number: "9876543210", Label: "Office"}},
	}
	require.NoError(t, repo.SaveCompany(ctx, profile))
	require.NotEmpty(t, profile.ID)

	profile.Footnote = "Subject to Pune jurisdiction"
	require.NoError(t, repo.SaveCompany(ctx, profile))

	c, err = repo.GetCompany(ctx)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, profile.ID, c.ID)
	assert.Equal(t, "Subject to Pune jurisdiction", c.Footnote)
	assert.Equal(t, profile.Mobile, c.Mobile)

	inv := NewInvoiceRepository(NewSQLiteBookingRepo(repo.DB), repo)
	company, err := inv.GetCompanyForInvoice(ctx)
	require.NoError(t, err)
	assert.Equal(t, "NH Transport", company.CompanyName)
}
