package mahasiswa

import (
	"net/http"

	"github.com/aanand-mishra/mahasiswa/internal/storage"
	"github.com/aanand-mishra/mahasiswa/internal/validate"
)

// Register mounts the record routes on mux under /api/mahasiswa.
func Register(mux *http.ServeMux, store storage.Storage, v *validate.Translated) {
	mux.HandleFunc("POST /api/mahasiswa", New(store, v))
	mux.HandleFunc("GET /api/mahasiswa", GetList(store))
	mux.HandleFunc("GET /api/mahasiswa/{id}", GetByID(store))
	mux.HandleFunc("PUT /api/mahasiswa/{id}", Update(store, v))
	mux.HandleFunc("DELETE /api/mahasiswa/{id}", Delete(store))
}
