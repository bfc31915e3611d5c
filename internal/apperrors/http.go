package apperrors

import (
	"encoding/json"
	"errors"
	"net/http"
)

// WriteJSON writes v with the given status.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteProblem writes a simplified problem+json error payload.
func WriteProblem(w http.ResponseWriter, code int, typ, detail string) {
	WriteJSON(w, code, map[string]any{
		"type":   typ,
		"title":  http.StatusText(code),
		"status": code,
		"detail": detail,
	})
}

// WriteError maps a domain error to its HTTP representation.
func WriteError(w http.ResponseWriter, err error) {
	var (
		ve *ValidationError
		nf *NotFoundError
		iu *ItemUnavailableError
		ce *ConflictError
		pe *PersistenceError
	)
	switch {
	case errors.As(err, &ve):
		WriteJSON(w, http.StatusBadRequest, map[string]any{
			"type":   "validation_error",
			"title":  http.StatusText(http.StatusBadRequest),
			"status": http.StatusBadRequest,
			"field":  ve.Field,
			"detail": ve.Message,
		})
	case errors.As(err, &nf):
		WriteProblem(w, http.StatusNotFound, "not_found", nf.Error())
	case errors.As(err, &iu):
		WriteProblem(w, http.StatusConflict, "item_unavailable", iu.Error())
	case errors.As(err, &ce):
		WriteProblem(w, http.StatusServiceUnavailable, "conflict", ce.Error())
	case errors.As(err, &pe):
		WriteProblem(w, http.StatusInternalServerError, "persistence_error", "order could not be saved")
	default:
		WriteProblem(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
