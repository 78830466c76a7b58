package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/rahulvj/atm-inventory-be/internal/apperr"
)

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError translates an application error into a JSON error body.
// Errors outside the taxonomy are logged and masked as a 500.
func writeError(w http.ResponseWriter, err error) {
	status := apperr.Status(err)
	msg := err.Error()
	var ae *apperr.Error
	if !errors.As(err, &ae) {
		log.Error().Err(err).Msg("Unhandled error")
		msg = "internal server error"
	}
	writeJSON(w, status, map[string]string{"error": msg})
}
