// Package types holds the shared data structures used across the client,
// the reference API handlers and the storage layer.
package types

import "fmt"

// Mahasiswa represents a student record.
//
// Struct tags serve two purposes:
//
//  1. json:"...": the wire names of the remote API. encoding/json matches
//     keys case-insensitively on decode, so "ID" or "Name" are accepted too.
//
//  2. validate:"...": rules checked by go-playground/validator. The same
//     rules back the console predicates in package validate, so the client
//     and the reference API agree on what a valid record is.
//
// Major is a pointer: nil means "not set", which is distinct from "".
type Mahasiswa struct {
	ID    string  `json:"id"    validate:"required,len=10,number"`
	Name  string  `json:"name"  validate:"required,notblank"`
	Major *string `json:"major"`
	GPA   float64 `json:"gpa"   validate:"gte=0,lte=4"`
}

// MajorOr returns the major, or fallback when it is not set.
func (m Mahasiswa) MajorOr(fallback string) string {
	if m.Major == nil {
		return fallback
	}
	return *m.Major
}

// String is the locale-independent rendering used in logs.
func (m Mahasiswa) String() string {
	return fmt.Sprintf("NIM: %s, Nama: %s, Jurusan: %s, IPK: %.2f",
		m.ID, m.Name, m.MajorOr("-"), m.GPA)
}

// StringPtr returns a pointer to s. Handy for building optional fields.
func StringPtr(s string) *string {
	return &s
}
