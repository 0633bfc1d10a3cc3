// Package service holds the booking workflows. Every booking that leaves this
// package has been recalculated, so stored totals are never trusted on read.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"nhtransport/ledger"
	"nhtransport/models"
	"nhtransport/repository"
	"nhtransport/utils"
)

type BookingService struct {
	Bookings repository.BookingRepository
	Parties  repository.PartyRepository
	Vehicles repository.VehicleRepository
	Storage  utils.Storage
	Logger   *slog.Logger

	validate *validator.Validate
	now      func() time.Time
}

func NewBookingService(
	bookings repository.BookingRepository,
	parties repository.PartyRepository,
	vehicles repository.VehicleRepository,
	storage utils.Storage,
	logger *slog.Logger,
) *BookingService {
	return &BookingService{
		Bookings: bookings,
		Parties:  parties,
		Vehicles: vehicles,
		Storage:  storage,
		Logger:   logger,
		validate: newValidator(),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// ListFilter extends the storage filter with the payment statuses, which are
// matched after recalculation because stored statuses may be stale.
type ListFilter struct {
	repository.BookingFilter
	PartyPaymentStatus   ledger.PaymentStatus
	VehiclePaymentStatus ledger.PaymentStatus
}

// ------------------------ Create / Update ------------------------

func (s *BookingService) Create(ctx context.Context, in *models.Booking) (*models.Booking, error) {
	b := *in
	b.ID = uuid.NewString()
	b.InvoiceURL = nil
	b.InvoiceCreatedAt = nil
	b.UpdatedAt = nil
	b.CreatedAt = s.now()
	// proof images only arrive through UpdateDelivery uploads
	b.Delivery.ProofImage = ""

	if err := s.fillSnapshots(ctx, &b); err != nil {
		return nil, err
	}
	if err := s.normalize(&b); err != nil {
		return nil, err
	}

	if b.BookingNo == "" {
		no, err := s.NextBookingNo(ctx)
		if err != nil {
			return nil, err
		}
		b.BookingNo = no
	}

	if err := ledger.CheckTransition(ledger.DeliveryPending, b.Delivery.Status, b.Delivery.ProofImage != ""); err != nil {
		return nil, err
	}
	s.stampDelivered(&b)

	b.Recalculate()
	if err := validateStruct(s.validate, &b); err != nil {
		return nil, err
	}

	if err := s.Bookings.CreateBooking(ctx, &b); err != nil {
		return nil, repoErr(err, "booking")
	}
	s.Logger.Info("booking created", "id", b.ID, "booking_no", b.BookingNo)
	return &b, nil
}

// Update replaces the editable fields of a booking. Creation time, invoice
// details and the stored proof image are kept; a proof image in the input is ignored.
func (s *BookingService) Update(ctx context.Context, id string, in *models.Booking) (*models.Booking, error) {
	existing, err := s.Bookings.GetBookingByID(ctx, id)
	if err != nil {
		return nil, repoErr(err, "booking")
	}

	b := *in
	b.ID = existing.ID
	b.CreatedAt = existing.CreatedAt
	b.InvoiceURL = existing.InvoiceURL
	b.InvoiceCreatedAt = existing.InvoiceCreatedAt
	b.Delivery.DeliveredAt = existing.Delivery.DeliveredAt
	b.Delivery.ProofImage = existing.Delivery.ProofImage
	if b.VehiclePayment.PaymentHistory == nil {
		b.VehiclePayment.PaymentHistory = existing.VehiclePayment.PaymentHistory
	}
	if b.PaymentStatus.PartyPaymentStatus == "" {
		b.PaymentStatus.PartyPaymentStatus = existing.PaymentStatus.PartyPaymentStatus
	}
	if b.PaymentStatus.VehiclePaymentStatus == "" {
		b.PaymentStatus.VehiclePaymentStatus = existing.PaymentStatus.VehiclePaymentStatus
	}

	if err := s.fillSnapshots(ctx, &b); err != nil {
		return nil, err
	}
	if err := s.normalize(&b); err != nil {
		return nil, err
	}
	if b.BookingNo == "" {
		b.BookingNo = existing.BookingNo
	}
	if in.Delivery.Status == "" {
		b.Delivery.Status = existing.Delivery.Status
	}

	from, err := ledger.ParseDeliveryStatus(string(existing.Delivery.Status))
	if err != nil {
		from = ledger.DeliveryPending
	}
	if err := ledger.CheckTransition(from, b.Delivery.Status, b.Delivery.ProofImage != ""); err != nil {
		return nil, err
	}
	s.stampDelivered(&b)

	b.Recalculate()
	if err := validateStruct(s.validate, &b); err != nil {
		return nil, err
	}

	if err := s.Bookings.UpdateBooking(ctx, &b); err != nil {
		return nil, repoErr(err, "booking")
	}
	s.Logger.Info("booking updated", "id", b.ID, "booking_no", b.BookingNo)
	return &b, nil
}

// fillSnapshots copies the master party or vehicle into the booking when only
// its ID was supplied.
func (s *BookingService) fillSnapshots(ctx context.Context, b *models.Booking) error {
	if b.PartyID != "" && strings.TrimSpace(b.Party.Name) == "" && s.Parties != nil {
		p, err := s.Parties.GetPartyByID(ctx, b.PartyID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return invalid("party %s does not exist", b.PartyID)
			}
			return err
		}
		b.Party = p.Snapshot()
	}
	if b.VehicleID != "" && strings.TrimSpace(b.Vehicle.VehicleNumber) == "" && s.Vehicles != nil {
		v, err := s.Vehicles.GetVehicleByID(ctx, b.VehicleID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return invalid("vehicle %s does not exist", b.VehicleID)
			}
			return err
		}
		b.Vehicle = v.Snapshot()
	}
	return nil
}

func (s *BookingService) normalize(b *models.Booking) error {
	b.BookingNo = strings.TrimSpace(b.BookingNo)
	b.Party.Name = strings.TrimSpace(b.Party.Name)
	b.Vehicle.VehicleNumber = utils.NormalizeVehicleNumber(b.Vehicle.VehicleNumber)
	b.Journey.FromLocation = strings.TrimSpace(b.Journey.FromLocation)
	b.Journey.ToLocation = strings.TrimSpace(b.Journey.ToLocation)

	if b.BookingDate.IsZero() {
		b.BookingDate = s.now()
	}
	b.BookingDate = dateOnly(b.BookingDate)

	status, err := ledger.ParseDeliveryStatus(string(b.Delivery.Status))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	b.Delivery.Status = status

	party, err := ledger.ParsePaymentStatus(string(b.PaymentStatus.PartyPaymentStatus))
	if err != nil {
		return fmt.Errorf("%w: party %v", ErrValidation, err)
	}
	vehicle, err := ledger.ParsePaymentStatus(string(b.PaymentStatus.VehiclePaymentStatus))
	if err != nil {
		return fmt.Errorf("%w: vehicle %v", ErrValidation, err)
	}
	b.PaymentStatus.PartyPaymentStatus = party
	b.PaymentStatus.VehiclePaymentStatus = vehicle

	for i := range b.VehiclePayment.PaymentHistory {
		p := &b.VehiclePayment.PaymentHistory[i]
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		if p.PaymentDate.IsZero() {
			p.PaymentDate = s.now()
		}
		p.Mode = strings.TrimSpace(p.Mode)
	}
	return nil
}

func (s *BookingService) stampDelivered(b *models.Booking) {
	switch b.Delivery.Status {
	case ledger.DeliveryDelivered, ledger.DeliveryReceived:
		if b.Delivery.DeliveredAt == nil {
			now := s.now()
			b.Delivery.DeliveredAt = &now
		}
	}
}

// dateOnly keeps the calendar date of t as UTC midnight.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ------------------------ Read ------------------------

func (s *BookingService) Get(ctx context.Context, id string) (*models.Booking, error) {
	b, err := s.Bookings.GetBookingByID(ctx, id)
	if err != nil {
		return nil, repoErr(err, "booking")
	}
	b.Recalculate()
	return b, nil
}

func (s *BookingService) List(ctx context.Context, f ListFilter) ([]*models.Booking, error) {
	base := f.BookingFilter
	postFilter := f.PartyPaymentStatus != "" || f.VehiclePaymentStatus != ""
	if postFilter {
		// paging must happen after the status filter
		base.Limit, base.Offset = 0, 0
	}

	list, err := s.Bookings.GetBookings(ctx, base)
	if err != nil {
		return nil, err
	}

	out := make([]*models.Booking, 0, len(list))
	for _, b := range list {
		b.Recalculate()
		if f.PartyPaymentStatus != "" && b.PaymentStatus.PartyPaymentStatus != f.PartyPaymentStatus {
			continue
		}
		if f.VehiclePaymentStatus != "" && b.PaymentStatus.VehiclePaymentStatus != f.VehiclePaymentStatus {
			continue
		}
		out = append(out, b)
	}

	if postFilter {
		out = page(out, f.Limit, f.Offset)
	}
	return out, nil
}

func page[T any](items []T, limit, offset int) []T {
	if offset > len(items) {
		return items[:0]
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

// NextBookingNo suggests the number following the most recently issued one.
func (s *BookingService) NextBookingNo(ctx context.Context) (string, error) {
	last, err := s.Bookings.LastBookingNo(ctx)
	if err != nil {
		return "", err
	}
	return ledger.NextBookingNo(last), nil
}

// ------------------------ Delete ------------------------

// Delete removes the booking. Stored files are removed on a best effort basis.
func (s *BookingService) Delete(ctx context.Context, id string) error {
	b, err := s.Bookings.GetBookingByID(ctx, id)
	if err != nil {
		return repoErr(err, "booking")
	}
	if err := s.Bookings.DeleteBooking(ctx, id); err != nil {
		return repoErr(err, "booking")
	}

	if s.Storage != nil {
		files := []string{b.Delivery.ProofImage}
		if b.InvoiceURL != nil {
			files = append(files, *b.InvoiceURL)
		}
		for _, f := range files {
			if f == "" {
				continue
			}
			if err := s.Storage.Delete(ctx, f); err != nil {
				s.Logger.Warn("failed to delete booking file", "id", id, "file", f, "err", err)
			}
		}
	}
	s.Logger.Info("booking deleted", "id", id, "booking_no", b.BookingNo)
	return nil
}

// ------------------------ Preview ------------------------

// Preview is the calculator output for an unsaved form, with the statuses
// and clamped dues the form shows.
type Preview struct {
	ledger.Result
	PartyPaymentStatus   ledger.PaymentStatus `json:"partyPaymentStatus"`
	VehiclePaymentStatus ledger.PaymentStatus `json:"vehiclePaymentStatus"`
	PartyDue             float64              `json:"partyDue"`
	VehicleDue           float64              `json:"vehicleDue"`
}

func (s *BookingService) Calculate(charges, vehiclePayment map[string]any) Preview {
	res := ledger.CalculateFields(charges, vehiclePayment)
	return Preview{
		Result:               res,
		PartyPaymentStatus:   ledger.DeriveStatus(res.FinalPendingAmount),
		VehiclePaymentStatus: ledger.DeriveStatus(res.VehicleBalance),
		PartyDue:             ledger.AmountDue(res.FinalPendingAmount),
		VehicleDue:           ledger.AmountDue(res.VehicleBalance),
	}
}

// ------------------------ Delivery ------------------------

type DeliveryUpdate struct {
	Status  string
	Remarks string
	Proof   *utils.ProofImage
}

// UpdateDelivery moves the booking along the delivery lifecycle. Moving
// backwards is rejected, and entering received needs a proof image either
// already stored or attached to this update.
func (s *BookingService) UpdateDelivery(ctx context.Context, id string, u DeliveryUpdate) (*models.Booking, error) {
	b, err := s.Bookings.GetBookingByID(ctx, id)
	if err != nil {
		return nil, repoErr(err, "booking")
	}

	to, err := ledger.ParseDeliveryStatus(u.Status)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if strings.TrimSpace(u.Status) == "" {
		to = ledger.SuggestNext(b.Delivery.Status)
	}

	from, err := ledger.ParseDeliveryStatus(string(b.Delivery.Status))
	if err != nil {
		from = ledger.DeliveryPending
	}
	hasProof := b.Delivery.ProofImage != "" || u.Proof != nil
	if err := ledger.CheckTransition(from, to, hasProof); err != nil {
		return nil, err
	}

	if u.Proof != nil {
		if s.Storage == nil {
			return nil, ErrStorageDisabled
		}
		key := fmt.Sprintf("proofs/%s-%s%s", b.BookingNo, uuid.NewString()[:8], u.Proof.Extension)
		url, err := s.Storage.Upload(ctx, key, u.Proof.Data, u.Proof.ContentType)
		if err != nil {
			return nil, fmt.Errorf("upload proof image: %w", err)
		}
		old := b.Delivery.ProofImage
		b.Delivery.ProofImage = url
		if old != "" && old != url {
			if err := s.Storage.Delete(ctx, old); err != nil {
				s.Logger.Warn("failed to delete old proof image", "id", id, "file", old, "err", err)
			}
		}
	}

	b.Delivery.Status = to
	if u.Remarks != "" {
		b.Delivery.Remarks = strings.TrimSpace(u.Remarks)
	}
	s.stampDelivered(b)
	b.Recalculate()

	if err := s.Bookings.UpdateBooking(ctx, b); err != nil {
		return nil, repoErr(err, "booking")
	}
	s.Logger.Info("delivery updated", "id", id, "from", from, "to", to)
	return b, nil
}

// ------------------------ Payments ------------------------

// SetPaymentStatus records an operator's choice of status. Empty values leave
// a side unchanged. The choice is reconciled against the balance: a settled
// balance is always completed, and only partial survives an open balance.
func (s *BookingService) SetPaymentStatus(ctx context.Context, id, party, vehicle string) (*models.Booking, error) {
	partyStatus, err := ledger.ParsePaymentStatus(party)
	if err != nil {
		return nil, fmt.Errorf("%w: party %v", ErrValidation, err)
	}
	vehicleStatus, err := ledger.ParsePaymentStatus(vehicle)
	if err != nil {
		return nil, fmt.Errorf("%w: vehicle %v", ErrValidation, err)
	}

	b, err := s.Bookings.GetBookingByID(ctx, id)
	if err != nil {
		return nil, repoErr(err, "booking")
	}
	if strings.TrimSpace(party) != "" {
		b.PaymentStatus.PartyPaymentStatus = partyStatus
	}
	if strings.TrimSpace(vehicle) != "" {
		b.PaymentStatus.VehiclePaymentStatus = vehicleStatus
	}
	b.Recalculate()

	if err := s.Bookings.UpdateBooking(ctx, b); err != nil {
		return nil, repoErr(err, "booking")
	}
	return b, nil
}

// AddVehiclePayment appends a payment to the vehicle owner and adds it to the
// vehicle advance.
func (s *BookingService) AddVehiclePayment(ctx context.Context, id string, p models.PaymentEntry) (*models.Booking, error) {
	p.Mode = strings.TrimSpace(p.Mode)
	if err := validateStruct(s.validate, &p); err != nil {
		return nil, err
	}

	b, err := s.Bookings.GetBookingByID(ctx, id)
	if err != nil {
		return nil, repoErr(err, "booking")
	}

	p.ID = uuid.NewString()
	if p.PaymentDate.IsZero() {
		p.PaymentDate = s.now()
	}
	b.VehiclePayment.PaymentHistory = append(b.VehiclePayment.PaymentHistory, p)
	b.VehiclePayment.VehicleAdvance = models.Amount(
		decimal.NewFromFloat(b.VehiclePayment.VehicleAdvance.Float()).
			Add(decimal.NewFromFloat(p.Amount.Float())).
			InexactFloat64(),
	)
	b.Recalculate()

	if err := s.Bookings.UpdateBooking(ctx, b); err != nil {
		return nil, repoErr(err, "booking")
	}
	s.Logger.Info("vehicle payment added", "id", id, "amount", p.Amount.Float(), "mode", p.Mode)
	return b, nil
}
