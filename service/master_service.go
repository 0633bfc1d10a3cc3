package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"nhtransport/models"
	"nhtransport/repository"
	"nhtransport/utils"
)

// ------------------------ Parties ------------------------

type PartyService struct {
	Repo     repository.PartyRepository
	validate *validator.Validate
}

func NewPartyService(repo repository.PartyRepository) *PartyService {
	return &PartyService{Repo: repo, validate: newValidator()}
}

func (s *PartyService) Create(ctx context.Context, p *models.Party) error {
	p.ID = uuid.NewString()
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = nil
	normalizeParty(p)
	if err := validateStruct(s.validate, p); err != nil {
		return err
	}
	return repoErr(s.Repo.CreateParty(ctx, p), "party")
}

func (s *PartyService) Update(ctx context.Context, id string, p *models.Party) error {
	existing, err := s.Repo.GetPartyByID(ctx, id)
	if err != nil {
		return repoErr(err, "party")
	}
	p.ID = existing.ID
	p.CreatedAt = existing.CreatedAt
	normalizeParty(p)
	if err := validateStruct(s.validate, p); err != nil {
		return err
	}
	return repoErr(s.Repo.UpdateParty(ctx, p), "party")
}

func (s *PartyService) Get(ctx context.Context, id string) (*models.Party, error) {
	p, err := s.Repo.GetPartyByID(ctx, id)
	return p, repoErr(err, "party")
}

func (s *PartyService) List(ctx context.Context, search string) ([]*models.Party, error) {
	return s.Repo.GetParties(ctx, search)
}

func (s *PartyService) Delete(ctx context.Context, id string) error {
	return repoErr(s.Repo.DeleteParty(ctx, id), "party")
}

func normalizeParty(p *models.Party) {
	p.Name = strings.TrimSpace(p.Name)
	p.Address = strings.TrimSpace(p.Address)
	p.Contact = strings.TrimSpace(p.Contact)
	p.GSTNo = strings.ToUpper(strings.TrimSpace(p.GSTNo))
}

// ------------------------ Vehicles ------------------------

type VehicleService struct {
	Repo     repository.VehicleRepository
	validate *validator.Validate
}

func NewVehicleService(repo repository.VehicleRepository) *VehicleService {
	return &VehicleService{Repo: repo, validate: newValidator()}
}

func (s *VehicleService) Create(ctx context.Context, v *models.Vehicle) error {
	v.ID = uuid.NewString()
	v.CreatedAt = time.Now().UTC()
	v.UpdatedAt = nil
	normalizeVehicle(v)
	if err := validateStruct(s.validate, v); err != nil {
		return err
	}
	return repoErr(s.Repo.CreateVehicle(ctx, v), "vehicle")
}

func (s *VehicleService) Update(ctx context.Context, id string, v *models.Vehicle) error {
	existing, err := s.Repo.GetVehicleByID(ctx, id)
	if err != nil {
		return repoErr(err, "vehicle")
	}
	v.ID = existing.ID
	v.CreatedAt = existing.CreatedAt
	normalizeVehicle(v)
	if err := validateStruct(s.validate, v); err != nil {
		return err
	}
	return repoErr(s.Repo.UpdateVehicle(ctx, v), "vehicle")
}

func (s *VehicleService) Get(ctx context.Context, id string) (*models.Vehicle, error) {
	v, err := s.Repo.GetVehicleByID(ctx, id)
	return v, repoErr(err, "vehicle")
}

func (s *VehicleService) List(ctx context.Context, search string) ([]*models.Vehicle, error) {
	return s.Repo.GetVehicles(ctx, search)
}

func (s *VehicleService) Delete(ctx context.Context, id string) error {
	return repoErr(s.Repo.DeleteVehicle(ctx, id), "vehicle")
}

func normalizeVehicle(v *models.Vehicle) {
	v.VehicleNumber = utils.NormalizeVehicleNumber(v.VehicleNumber)
	v.OwnerName = strings.TrimSpace(v.OwnerName)
	v.ContactNumber = strings.TrimSpace(v.ContactNumber)
	v.VehicleType = strings.TrimSpace(v.VehicleType)
}

// ------------------------ Company ------------------------

type CompanyService struct {
	Repo     repository.CompanyRepository
	validate *validator.Validate
}

func NewCompanyService(repo repository.CompanyRepository) *CompanyService {
	return &CompanyService{Repo: repo, validate: newValidator()}
}

// Save keeps a single profile: saving again updates the existing one.
func (s *CompanyService) Save(ctx context.Context, c *models.CompanyProfile) error {
	c.CompanyName = strings.TrimSpace(c.CompanyName)
	c.GSTIN = strings.ToUpper(strings.TrimSpace(c.GSTIN))
	if err := validateStruct(s.validate, c); err != nil {
		return err
	}

	existing, err := s.Repo.GetCompany(ctx)
	if err != nil {
		return err
	}
	if existing != nil {
		c.ID = existing.ID
		c.CreatedAt = existing.CreatedAt
	} else {
		c.ID = ""
	}
	return s.Repo.SaveCompany(ctx, c)
}

func (s *CompanyService) Get(ctx context.Context) (*models.CompanyProfile, error) {
	c, err := s.Repo.GetCompany(ctx)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, repoErr(repository.ErrNotFound, "company profile")
	}
	return c, nil
}
