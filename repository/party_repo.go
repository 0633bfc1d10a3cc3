package repository

import (
	"context"

	"nhtransport/models"
)

type PartyRepository interface {
	CreateParty(ctx context.Context, p *models.Party) error
	UpdateParty(ctx context.Context, p *models.Party) error
	GetPartyByID(ctx context.Context, id string) (*models.Party, error)
	GetParties(ctx context.Context, search string) ([]*models.Party, error)
	DeleteParty(ctx context.Context, id string) error
}

type VehicleRepository interface {
	CreateVehicle(ctx context.Context, v *models.Vehicle) error
	UpdateVehicle(ctx context.Context, v *models.Vehicle) error
	GetVehicleByID(ctx context.Context, id string) (*models.Vehicle, error)
	GetVehicles(ctx context.Context, search string) ([]*models.Vehicle, error)
	DeleteVehicle(ctx context.Context, id string) error
}
