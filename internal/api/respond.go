package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/engrainai/siteapi/internal/forms"
)

func respondJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, code int, message string) {
	respondJSON(w, code, map[string]string{"error": message})
}

// respondValidationError writes the 400 body listing every failed field.
func respondValidationError(w http.ResponseWriter, verr *forms.ValidationError) {
	respondJSON(w, http.StatusBadRequest, map[string]any{
		"error":   "Validation failed",
		"details": verr.Fields,
	})
}

// decodeAndValidate decodes the request body into in and runs its validation.
// It writes the failure response itself and reports whether the handler
// should continue.
func decodeAndValidate[T interface{ Validate() error }](w http.ResponseWriter, r *http.Request, in T) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := json.NewDecoder(r.Body).Decode(in); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := in.Validate(); err != nil {
		var verr *forms.ValidationError
		if errors.As(err, &verr) {
			respondValidationError(w, verr)
		} else {
			respondError(w, http.StatusInternalServerError, "Internal server error")
		}
		return false
	}
	return true
}
