package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"nhtransport/models"
	"nhtransport/service"
)

type VehicleHandler struct {
	Service *service.VehicleService
	Logger  *slog.Logger
}

func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.List(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	if list == nil {
		list = []*models.Vehicle{}
	}
	writeOK(w, http.StatusOK, "", list)
}

func (h *VehicleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var v models.Vehicle
	if err := decodeJSON(r, &v); err != nil {
		badRequest(w, "invalid vehicle: "+err.Error())
		return
	}
	if err := h.Service.Create(r.Context(), &v); err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeOK(w, http.StatusCreated, "vehicle created", v)
}

func (h *VehicleHandler) Get(w http.ResponseWriter, r *http.Request) {
	v, err := h.Service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeOK(w, http.StatusOK, "", v)
}

func (h *VehicleHandler) Update(w http.ResponseWriter, r *http.Request) {
	var v models.Vehicle
	if err := decodeJSON(r, &v); err != nil {
		badRequest(w, "invalid vehicle: "+err.Error())
		return
	}
	if err := h.Service.Update(r.Context(), chi.URLParam(r, "id"), &v); err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeOK(w, http.StatusOK, "vehicle updated", v)
}

func (h *VehicleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeOK(w, http.StatusOK, "vehicle deleted", nil)
}
