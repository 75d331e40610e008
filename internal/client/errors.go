package client

import (
	"errors"
	"fmt"
)

// Expected failures. The controller renders each of these on its own branch.
var (
	// ErrNotFound: the API has no record with the given id.
	ErrNotFound = errors.New("mahasiswa not found")

	// ErrConflict: create rejected because the id already exists.
	ErrConflict = errors.New("mahasiswa already exists")

	// ErrInvalidID: the id failed validation; no request was sent.
	ErrInvalidID = errors.New("invalid mahasiswa id")

	// ErrIDMismatch: the path id and the record id differ on update.
	ErrIDMismatch = errors.New("id does not match record id")
)

// APIError is any other outcome: an unexpected status, a transport failure
// such as a refused connection (StatusCode 0), or a body that could not be
// decoded.
type APIError struct {
	Op         string // "list", "get", "create", "update", "delete"
	StatusCode int    // 0 when no response was received
	Message    string // error text from the API envelope, if any
	Err        error  // underlying transport or decode error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	msg := e.Op
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(": HTTP %d", e.StatusCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *APIError) Unwrap() error {
	return e.Err
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
