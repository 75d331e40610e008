// Package response provides helpers for writing consistent JSON HTTP
// responses from the reference API handlers.
package response

import (
	"encoding/json"
	"net/http"
	"strings"
)

// Response is the envelope returned for error cases:
//
//	{ "status": "error", "error": "name must not be blank" }
//
// Success responses return the record or list itself.
type Response struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

// Status values.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// WriteJSON writes data as JSON with the given HTTP status code.
// Headers must be set before WriteHeader; the body follows.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// NoContent writes a bodyless 204.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// GeneralError wraps any error into the standard envelope.
//
//	response.WriteJSON(w, http.StatusInternalServerError,
//	    response.GeneralError(err))
func GeneralError(err error) Response {
	return Response{
		Status: StatusError,
		Error:  err.Error(),
	}
}

// ValidationError joins already translated field messages into one
// envelope, e.g. "id must be 10 characters in length, gpa must be 4 or less".
func ValidationError(msgs []string) Response {
	return Response{
		Status: StatusError,
		Error:  strings.Join(msgs, ", "),
	}
}
