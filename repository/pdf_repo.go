package repository

import (
	"context"

	"nhtransport/models"
)

// InvoiceRepository gathers what an invoice needs: the booking and the letterhead.
type InvoiceRepository struct {
	BookingRepo BookingRepository
	CompanyRepo CompanyRepository
}

func NewInvoiceRepository(bookingRepo BookingRepository, companyRepo CompanyRepository) *InvoiceRepository {
	return &InvoiceRepository{
		BookingRepo: bookingRepo,
		CompanyRepo: companyRepo,
	}
}

// GetBookingForInvoice fetches a single booking by ID.
func (r *InvoiceRepository) GetBookingForInvoice(ctx context.Context, id string) (*models.Booking, error) {
	return r.BookingRepo.GetBookingByID(ctx, id)
}

// GetCompanyForInvoice fetches the latest company profile. A missing profile
// yields an empty one so that an invoice can still be printed.
func (r *InvoiceRepository) GetCompanyForInvoice(ctx context.Context) (*models.CompanyProfile, error) {
	c, err := r.CompanyRepo.GetCompany(ctx)
	if err != nil {
		return nil, err
	}
	if c == nil {
		c = &models.CompanyProfile{}
	}
	return c, nil
}
