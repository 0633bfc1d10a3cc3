package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"nhtransport/models"
	"nhtransport/repository"
	"nhtransport/utils"
)

type InvoiceService struct {
	Repo     *repository.InvoiceRepository
	Renderer utils.PDFRenderer
	Storage  utils.Storage
	Logger   *slog.Logger

	now func() time.Time
}

func NewInvoiceService(repo *repository.InvoiceRepository, renderer utils.PDFRenderer, storage utils.Storage, logger *slog.Logger) *InvoiceService {
	return &InvoiceService{
		Repo:     repo,
		Renderer: renderer,
		Storage:  storage,
		Logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *InvoiceService) data(ctx context.Context, id string) (models.InvoiceData, error) {
	b, err := s.Repo.GetBookingForInvoice(ctx, id)
	if err != nil {
		return models.InvoiceData{}, repoErr(err, "booking")
	}
	b.Recalculate()

	company, err := s.Repo.GetCompanyForInvoice(ctx)
	if err != nil {
		return models.InvoiceData{}, err
	}
	return utils.BuildInvoiceData(company, b, s.now()), nil
}

// HTML renders the printable invoice without going through Chrome.
func (s *InvoiceService) HTML(ctx context.Context, id string) ([]byte, error) {
	data, err := s.data(ctx, id)
	if err != nil {
		return nil, err
	}
	return utils.RenderInvoiceHTML(data)
}

// PDF renders the invoice and returns the file name it should be served as.
func (s *InvoiceService) PDF(ctx context.Context, id string) ([]byte, string, error) {
	data, err := s.data(ctx, id)
	if err != nil {
		return nil, "", err
	}
	html, err := utils.RenderInvoiceHTML(data)
	if err != nil {
		return nil, "", err
	}
	pdf, err := s.Renderer.RenderPDF(ctx, html)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate PDF: %w", err)
	}
	return pdf, fmt.Sprintf("invoice_%s.pdf", data.Booking.BookingNo), nil
}

// Publish renders the invoice, stores it and records its URL on the booking.
func (s *InvoiceService) Publish(ctx context.Context, id string) (*models.Booking, error) {
	if s.Storage == nil {
		return nil, ErrStorageDisabled
	}
	pdf, name, err := s.PDF(ctx, id)
	if err != nil {
		return nil, err
	}

	url, err := s.Storage.Upload(ctx, "invoices/"+name, pdf, "application/pdf")
	if err != nil {
		return nil, fmt.Errorf("failed to store invoice: %w", err)
	}

	createdAt := s.now()
	if err := s.Repo.BookingRepo.UpdateInvoiceInfo(ctx, id, url, createdAt); err != nil {
		return nil, repoErr(err, "booking")
	}
	s.Logger.Info("invoice published", "id", id, "url", url)

	b, err := s.Repo.GetBookingForInvoice(ctx, id)
	if err != nil {
		return nil, repoErr(err, "booking")
	}
	b.Recalculate()
	return b, nil
}
