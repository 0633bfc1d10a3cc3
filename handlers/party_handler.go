package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"nhtransport/models"
	"nhtransport/service"
)

type PartyHandler struct {
	Service *service.PartyService
	Logger  *slog.Logger
}

func (h *PartyHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.List(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	if list == nil {
		list = []*models.Party{}
	}
	writeOK(w, http.StatusOK, "", list)
}

func (h *PartyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var p models.Party
	if err := decodeJSON(r, &p); err != nil {
		badRequest(w, "invalid party: "+err.Error())
		return
	}
	if err := h.Service.Create(r.Context(), &p); err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeOK(w, http.StatusCreated, "party created", p)
}

func (h *PartyHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.Service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeOK(w, http.StatusOK, "", p)
}

func (h *PartyHandler) Update(w http.ResponseWriter, r *http.Request) {
	var p models.Party
	if err := decodeJSON(r, &p); err != nil {
		badRequest(w, "invalid party: "+err.Error())
		return
	}
	if err := h.Service.Update(r.Context(), chi.URLParam(r, "id"), &p); err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeOK(w, http.StatusOK, "party updated", p)
}

func (h *PartyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeOK(w, http.StatusOK, "party deleted", nil)
}
