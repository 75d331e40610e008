// Package mahasiswa holds the HTTP handlers of the reference API. Each
// constructor takes its dependencies and returns an http.HandlerFunc, so
// routes are wired in main with plain function calls.
package mahasiswa

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aanand-mishra/mahasiswa/internal/storage"
	"github.com/aanand-mishra/mahasiswa/internal/types"
	"github.com/aanand-mishra/mahasiswa/internal/utils/response"
	"github.com/aanand-mishra/mahasiswa/internal/validate"
)

const maxBodyBytes = 1 << 20

var (
	errEmptyBody  = errors.New("request body is empty")
	errInvalidID  = errors.New("invalid id: must be 10 digits")
	errIDMismatch = errors.New("id in body does not match id in path")
)

// New handles POST /api/mahasiswa.
//
//	201 + stored record
//	400 malformed body or failed validation
//	409 id already exists
func New(store storage.Storage, v *validate.Translated) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a mahasiswa")

		var m types.Mahasiswa
		if err := decode(w, r, &m); err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		if !checkStruct(w, v, m) {
			return
		}

		created, err := store.CreateMahasiswa(r.Context(), m)
		if err != nil {
			if errors.Is(err, storage.ErrAlreadyExists) {
				slog.Info("mahasiswa already exists", slog.String("id", m.ID))
				response.WriteJSON(w, http.StatusConflict, response.GeneralError(err))
				return
			}
			slog.Error("error creating mahasiswa",
				slog.String("id", m.ID),
				slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		slog.Info("mahasiswa created", slog.String("id", created.ID))
		response.WriteJSON(w, http.StatusCreated, created)
	}
}

// GetByID handles GET /api/mahasiswa/{id}.
func GetByID(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("getting a mahasiswa", slog.String("id", id))

		if !validate.IsValidID(id) {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(errInvalidID))
			return
		}

		m, err := store.GetMahasiswaByID(r.Context(), id)
		if err != nil {
			writeStorageError(w, "getting", id, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, m)
	}
}

// GetList handles GET /api/mahasiswa with the optional query parameters
// id (exact) and name (case-insensitive substring).
func GetList(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		f := storage.Filter{
			ID:   strings.TrimSpace(q.Get("id")),
			Name: strings.TrimSpace(q.Get("name")),
		}
		slog.Info("listing mahasiswa", slog.String("id", f.ID), slog.String("name", f.Name))

		list, err := store.GetMahasiswa(r.Context(), f)
		if err != nil {
			slog.Error("error listing mahasiswa", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, list)
	}
}

// Update handles PUT /api/mahasiswa/{id}. The body id may be omitted; when
// present it must equal the path id.
//
//	200 + stored record
//	400 invalid id, id mismatch, malformed body or failed validation
//	404 no such record
func Update(store storage.Storage, v *validate.Translated) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("updating a mahasiswa", slog.String("id", id))

		if !validate.IsValidID(id) {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(errInvalidID))
			return
		}

		var m types.Mahasiswa
		if err := decode(w, r, &m); err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		switch {
		case m.ID == "":
			m.ID = id
		case !strings.EqualFold(m.ID, id):
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(errIDMismatch))
			return
		}

		if !checkStruct(w, v, m) {
			return
		}

		updated, err := store.UpdateMahasiswaByID(r.Context(), id, m)
		if err != nil {
			writeStorageError(w, "updating", id, err)
			return
		}

		slog.Info("mahasiswa updated", slog.String("id", id))
		response.WriteJSON(w, http.StatusOK, updated)
	}
}

// Delete handles DELETE /api/mahasiswa/{id}: 204 on success, 404 if absent.
func Delete(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("deleting a mahasiswa", slog.String("id", id))

		if !validate.IsValidID(id) {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(errInvalidID))
			return
		}

		if err := store.DeleteMahasiswaByID(r.Context(), id); err != nil {
			writeStorageError(w, "deleting", id, err)
			return
		}

		slog.Info("mahasiswa deleted", slog.String("id", id))
		response.NoContent(w)
	}
}

// decode reads one JSON record from the request body.
func decode(w http.ResponseWriter, r *http.Request, m *types.Mahasiswa) error {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(m)
	if errors.Is(err, io.EOF) {
		return errEmptyBody
	}
	if err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// checkStruct validates m and writes a 400 with the translated field
// messages when it fails. It reports whether the handler may continue.
func checkStruct(w http.ResponseWriter, v *validate.Translated, m types.Mahasiswa) bool {
	err := v.Struct(m)
	if err == nil {
		return true
	}

	if msgs := v.Messages(err); msgs != nil {
		response.WriteJSON(w, http.StatusBadRequest, response.ValidationError(msgs))
		return false
	}

	slog.Error("error validating mahasiswa", slog.String("error", err.Error()))
	response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
	return false
}

// writeStorageError maps storage.ErrNotFound to 404 and anything else to 500.
func writeStorageError(w http.ResponseWriter, action, id string, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		response.WriteJSON(w, http.StatusNotFound, response.GeneralError(err))
		return
	}
	slog.Error("error "+action+" mahasiswa",
		slog.String("id", id),
		slog.String("error", err.Error()))
	response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
}
