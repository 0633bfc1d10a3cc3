package repository

import (
	"context"
	"errors"
	"time"

	"nhtransport/ledger"
	"nhtransport/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate entry")
)

// BookingFilter narrows a booking listing. Zero values mean "any".
type BookingFilter struct {
	Search         string
	DeliveryStatus ledger.DeliveryStatus
	From           *time.Time
	To             *time.Time
	Limit          int
	Offset         int
}

type BookingRepository interface {
	CreateBooking(ctx context.Context, b *models.Booking) error
	UpdateBooking(ctx context.Context, b *models.Booking) error
	GetBookingByID(ctx context.Context, id string) (*models.Booking, error)
	GetBookings(ctx context.Context, f BookingFilter) ([]*models.Booking, error)
	LastBookingNo(ctx context.Context) (string, error)
	UpdateInvoiceInfo(ctx context.Context, id, url string, createdAt time.Time) error
	DeleteBooking(ctx context.Context, id string) error
}
