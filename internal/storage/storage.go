// Package storage defines the Storage interface that any database backend
// of the reference API must satisfy. Handlers depend only on this interface,
// so tests can pass a fake instead of a real database.
package storage

import (
	"context"
	"errors"

	"github.com/aanand-mishra/mahasiswa/internal/types"
)

// Sentinel errors every backend maps its driver errors onto.
var (
	// ErrNotFound is returned when no record has the requested id.
	ErrNotFound = errors.New("mahasiswa not found")

	// ErrAlreadyExists is returned when a record with the same id is
	// already stored.
	ErrAlreadyExists = errors.New("mahasiswa already exists")
)

// Filter narrows List. Blank fields are ignored.
type Filter struct {
	// ID matches exactly.
	ID string
	// Name matches as a case-insensitive substring.
	Name string
}

// Storage is the database contract.
type Storage interface {
	// CreateMahasiswa inserts m and returns the stored record.
	// Returns ErrAlreadyExists when m.ID is taken.
	CreateMahasiswa(ctx context.Context, m types.Mahasiswa) (types.Mahasiswa, error)

	// GetMahasiswaByID fetches one record. Returns ErrNotFound if absent.
	GetMahasiswaByID(ctx context.Context, id string) (types.Mahasiswa, error)

	// GetMahasiswa returns the records matching f ordered by id.
	// Returns an empty slice (not nil) when nothing matches.
	GetMahasiswa(ctx context.Context, f Filter) ([]types.Mahasiswa, error)

	// UpdateMahasiswaByID replaces name, major and gpa of an existing
	// record and returns it. Returns ErrNotFound if absent.
	UpdateMahasiswaByID(ctx context.Context, id string, m types.Mahasiswa) (types.Mahasiswa, error)

	// DeleteMahasiswaByID removes a record. Returns ErrNotFound if absent.
	DeleteMahasiswaByID(ctx context.Context, id string) error
}
