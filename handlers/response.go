package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"nhtransport/ledger"
	"nhtransport/service"
	"nhtransport/utils"
)

// ApiResponse is the envelope of every JSON response.
type ApiResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, resp ApiResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func writeOK(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, ApiResponse{Success: true, Message: message, Data: data})
}

// writeError maps err to a status. Details of unexpected errors are logged,
// never returned.
func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status := mapError(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
		msg = "internal server error"
	}
	writeJSON(w, status, ApiResponse{Success: false, Message: msg})
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: msg})
}

func mapError(err error) int {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, ledger.ErrUnknownDeliveryStatus),
		errors.Is(err, utils.ErrInvalidUpload):
		return http.StatusBadRequest
	case errors.Is(err, ledger.ErrInvalidTransition),
		errors.Is(err, ledger.ErrProofRequired):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrStorageDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	return dec.Decode(v)
}
