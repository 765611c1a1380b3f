package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okvist/rota/internal/rota"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeDomainError maps domain errors onto HTTP statuses: validation to
// 400, unknown ids to 404, duplicate assignments to 409, anything else to
// a generic 500.
func writeDomainError(w http.ResponseWriter, err error) {
	var ve *rota.ValidationError
	var nf *rota.NotFoundError
	switch {
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, ve.Reason)
	case errors.As(err, &nf):
		writeError(w, http.StatusNotFound, nf.Resource+" not found")
	case errors.Is(err, rota.ErrDuplicateAssignment):
		writeError(w, http.StatusConflict, "This assignment already exists")
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
