// Package shared holds the small helpers every API feature uses.
package shared

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// JSON writes v as a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes a JSON error body {"error": msg} with the given status.
func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"error": msg})
}

// Internal logs err and writes a generic 500 without leaking details.
func Internal(w http.ResponseWriter, log *zap.Logger, what string, err error) {
	log.Error(what, zap.Error(err))
	Error(w, http.StatusInternalServerError, "internal error")
}

// Decode reads a JSON request body into dst, rejecting unknown fields.
func Decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
