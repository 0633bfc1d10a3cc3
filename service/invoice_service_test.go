package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nhtransport/models"
	"nhtransport/repository"
)

func newInvoiceService(f *fixture, r *fakeRenderer) *InvoiceService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewInvoiceService(repository.NewInvoiceRepository(f.bookings, f.company), r, f.storage, logger)
	svc.now = func() time.Time { return f.clock }
	return svc
}

func TestInvoiceHTMLAndPDF(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, NewCompanyService(f.company).Save(ctx, &models.CompanyProfile{CompanyName: "NH Transport", City: "Pune"}))

	b, err := f.svc.Create(ctx, newBooking("NH0007", day(2025, 3, 1)))
	require.NoError(t, err)

	renderer := &fakeRenderer{}
	svc := newInvoiceService(f, renderer)

	html, err := svc.HTML(ctx, b.ID)
	require.NoError(t, err)
	assert.Contains(t, string(html), "NH Transport")
	assert.Contains(t, string(html), "₹30,000.00")

	pdf, name, err := svc.PDF(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "invoice_NH0007.pdf", name)
	assert.Equal(t, "%PDF-1.4 fake", string(pdf))
	assert.Contains(t, string(renderer.html), "Thirty Thousand Rupees Only")

	_, _, err = svc.PDF(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInvoicePublish(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	b, err := f.svc.Create(ctx, newBooking("NH0007", day(2025, 3, 1)))
	require.NoError(t, err)

	svc := newInvoiceService(f, &fakeRenderer{})
	got, err := svc.Publish(ctx, b.ID)
	require.NoError(t, err)
	require.NotNil(t, got.InvoiceURL)
	assert.Equal(t, "mem://invoices/invoice_NH0007.pdf", *got.InvoiceURL)
	require.NotNil(t, got.InvoiceCreatedAt)
	assert.True(t, got.InvoiceCreatedAt.Equal(f.clock))
	assert.Contains(t, f.storage.files, *got.InvoiceURL)

	svc.Storage = nil
	_, err = svc.Publish(ctx, b.ID)
	assert.ErrorIs(t, err, ErrStorageDisabled)
}
