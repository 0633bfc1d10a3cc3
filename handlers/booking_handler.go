package handlers

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"nhtransport/models"
	"nhtransport/service"
	"nhtransport/utils"
)

type BookingHandler struct {
	Service *service.BookingService
	Logger  *slog.Logger
}

func NewBookingHandler(svc *service.BookingService, logger *slog.Logger) *BookingHandler {
	return &BookingHandler{Service: svc, Logger: logger}
}

func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	f, err := listFilterFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	list, err := h.Service.List(r.Context(), f)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	if list == nil {
		list = []*models.Booking{}
	}
	writeOK(w, http.StatusOK, "", list)
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req bookingRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid booking: "+err.Error())
		return
	}
	b, err := h.Service.Create(r.Context(), req.toModel())
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeOK(w, http.StatusCreated, "booking created", b)
}

func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	b, err := h.Service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeOK(w, http.StatusOK, "", b)
}

func (h *BookingHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req bookingRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid booking: "+err.Error())
		return
	}
	b, err := h.Service.Update(r.Context(), chi.URLParam(r, "id"), req.toModel())
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeOK(w, http.StatusOK, "booking updated", b)
}

func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeOK(w, http.StatusOK, "booking deleted", nil)
}

func (h *BookingHandler) NextNumber(w http.ResponseWriter, r *http.Request) {
	no, err := h.Service.NextBookingNo(r.Context())
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeOK(w, http.StatusOK, "", map[string]string{"bookingNo": no})
}

// Calculate previews the derived amounts of an unsaved form.
func (h *BookingHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req calculateRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid calculation input: "+err.Error())
		return
	}
	writeOK(w, http.StatusOK, "", h.Service.Calculate(req.Charges, req.VehiclePayment))
}

func (h *BookingHandler) Pending(w http.ResponseWriter, r *http.Request) {
	kind, err := service.ParsePendingKind(r.URL.Query().Get("type"))
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	items, err := h.Service.PendingPayments(r.Context(), kind)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	if items == nil {
		items = []service.PendingItem{}
	}
	writeOK(w, http.StatusOK, "", items)
}

func (h *BookingHandler) Summary(w http.ResponseWriter, r *http.Request) {
	f, err := bookingFilterFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	sum, err := h.Service.Summary(r.Context(), f)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeOK(w, http.StatusOK, "", sum)
}

// Export writes the filtered register as an attachment. The file is built in
// memory so a failure can still be reported as JSON.
func (h *BookingHandler) Export(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	format, err := service.ParseExportFormat(q.Get("format"))
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	f, err := listFilterFromQuery(q)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}

	var buf bytes.Buffer
	if err := h.Service.Export(r.Context(), &buf, format, f); err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", format.FileName(time.Now())))
	_, _ = w.Write(buf.Bytes())
}

// UpdateDelivery accepts JSON, or multipart form data when a proof image is
// attached under "proofImage".
func (h *BookingHandler) UpdateDelivery(w http.ResponseWriter, r *http.Request) {
	var u service.DeliveryUpdate

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		r.Body = http.MaxBytesReader(w, r.Body, utils.MaxProofImageSize+1<<20)
		if err := r.ParseMultipartForm(utils.MaxProofImageSize); err != nil {
			badRequest(w, "invalid form: "+err.Error())
			return
		}
		u.Status = r.FormValue("status")
		u.Remarks = r.FormValue("remarks")
		if r.MultipartForm != nil && len(r.MultipartForm.File["proofImage"]) > 0 {
			img, err := utils.ReadProofImage(r.MultipartForm.File["proofImage"][0])
			if err != nil {
				writeError(w, r, h.Logger, err)
				return
			}
			u.Proof = img
		}
	} else {
		var req deliveryRequest
		if err := decodeJSON(r, &req); err != nil {
			badRequest(w, "invalid delivery update: "+err.Error())
			return
		}
		u.Status, u.Remarks = req.Status, req.Remarks
	}

	b, err := h.Service.UpdateDelivery(r.Context(), chi.URLParam(r, "id"), u)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeOK(w, http.StatusOK, "delivery updated", b)
}

func (h *BookingHandler) SetPaymentStatus(w http.ResponseWriter, r *http.Request) {
	var req paymentStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid payment status: "+err.Error())
		return
	}
	b, err := h.Service.SetPaymentStatus(r.Context(), chi.URLParam(r, "id"), req.PartyPaymentStatus, req.VehiclePaymentStatus)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeOK(w, http.StatusOK, "payment status updated", b)
}

func (h *BookingHandler) AddVehiclePayment(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid payment: "+err.Error())
		return
	}
	b, err := h.Service.AddVehiclePayment(r.Context(), chi.URLParam(r, "id"), req.toModel())
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeOK(w, http.StatusCreated, "vehicle payment recorded", b)
}
