package handlers

import (
	"log/slog"
	"net/http"

	"nhtransport/models"
	"nhtransport/service"
)

// CompanyHandler serves the invoice letterhead.
type CompanyHandler struct {
	Service *service.CompanyService
	Logger  *slog.Logger
}

func (h *CompanyHandler) Save(w http.ResponseWriter, r *http.Request) {
	var c models.CompanyProfile
	if err := decodeJSON(r, &c); err != nil {
		badRequest(w, "invalid company profile: "+err.Error())
		return
	}
	if err := h.Service.Save(r.Context(), &c); err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeOK(w, http.StatusCreated, "company profile saved", c)
}

func (h *CompanyHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.Service.Get(r.Context())
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeOK(w, http.StatusOK, "", c)
}
