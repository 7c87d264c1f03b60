package utils

import (
	"encoding/json"
	"net/http"
)

// WriteJSON writes v with the given status code. Encoding failures are
// ignored here; by the time they can happen the header is already out.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes the {"error": ...} body the dashboard expects.
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, map[string]string{"error": message})
}

// ErrorMessage extracts a display message from an error, falling back to
// a generic one for nil or empty errors.
func ErrorMessage(err error) string {
	if err == nil || err.Error() == "" {
		return "Server error"
	}
	return err.Error()
}
