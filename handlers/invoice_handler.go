package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"nhtransport/service"
)

type InvoiceHandler struct {
	Service *service.InvoiceService
	Logger  *slog.Logger
}

func NewInvoiceHandler(svc *service.InvoiceService, logger *slog.Logger) *InvoiceHandler {
	return &InvoiceHandler{Service: svc, Logger: logger}
}

// Get streams the invoice as a PDF, or as printable HTML with ?format=html.
func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if r.URL.Query().Get("format") == "html" {
		html, err := h.Service.HTML(r.Context(), id)
		if err != nil {
			writeError(w, r, h.Logger, err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(html)
		return
	}

	pdf, name, err := h.Service.PDF(r.Context(), id)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	disposition := "inline"
	if r.URL.Query().Get("download") == "1" {
		disposition = "attachment"
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, name))
	_, _ = w.Write(pdf)
}

// Publish renders the PDF, stores it and records its URL on the booking.
func (h *InvoiceHandler) Publish(w http.ResponseWriter, r *http.Request) {
	b, err := h.Service.Publish(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeOK(w, http.StatusOK, "invoice generated", b)
}
