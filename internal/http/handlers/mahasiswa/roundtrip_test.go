package mahasiswa_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/aanand-mishra/mahasiswa/internal/client"
	"github.com/aanand-mishra/mahasiswa/internal/config"
	"github.com/aanand-mishra/mahasiswa/internal/http/handlers/mahasiswa"
	"github.com/aanand-mishra/mahasiswa/internal/logger"
	"github.com/aanand-mishra/mahasiswa/internal/messages"
	"github.com/aanand-mishra/mahasiswa/internal/storage/sqlite"
	"github.com/aanand-mishra/mahasiswa/internal/types"
	"github.com/aanand-mishra/mahasiswa/internal/validate"
)

// newAPI serves the real router over SQLite and returns a client for it.
func newAPI(t *testing.T) *client.Client {
	t.Helper()

	store, err := sqlite.New(&config.Config{StoragePath: filepath.Join(t.TempDir(), "mahasiswa.db")})
	if err != nil {
		t.Fatalf("sqlite.New: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	catalog, err := messages.New("id")
	if err != nil {
		t.Fatalf("messages.New: %v", err)
	}
	v, err := validate.NewTranslated(catalog.Translator())
	if err != nil {
		t.Fatalf("validate.NewTranslated: %v", err)
	}

	mux := http.NewServeMux()
	mahasiswa.Register(mux, store, v)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c, err := client.New(config.API{BaseURL: srv.URL}, logger.Discard())
	if err != nil {
		t.Fatalf("client.New: %v", err)
	}
	return c
}

func TestRoundTrip(t *testing.T) {
	c := newAPI(t)
	ctx := context.Background()

	budi := types.Mahasiswa{ID: "1302220001", Name: "Budi", Major: types.StringPtr("Informatika"), GPA: 3.5}
	sari := types.Mahasiswa{ID: "1302220002", Name: "Sari Dewi", GPA: 3.9}

	created, err := c.Create(ctx, budi)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.String() != budi.String() {
		t.Errorf("Create echoed %s, want %s", created, budi)
	}
	if _, err := c.Create(ctx, sari); err != nil {
		t.Fatalf("Create sari: %v", err)
	}

	if _, err := c.Create(ctx, budi); !errors.Is(err, client.ErrConflict) {
		t.Errorf("duplicate Create: err = %v, want ErrConflict", err)
	}

	got, err := c.Get(ctx, budi.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.String() != budi.String() {
		t.Errorf("Get = %s, want %s", got, budi)
	}

	all, err := c.List(ctx, client.Filter{})
	if err != nil || len(all) != 2 || all[0].ID != budi.ID || all[1].ID != sari.ID {
		t.Fatalf("List all = %+v, %v", all, err)
	}

	byName, err := c.List(ctx, client.Filter{Name: "dew"})
	if err != nil || len(byName) != 1 || byName[0].ID != sari.ID {
		t.Fatalf("List by name = %+v, %v", byName, err)
	}

	byID, err := c.List(ctx, client.Filter{ID: "1302229999"})
	if err != nil || len(byID) != 0 {
		t.Fatalf("List by unknown id = %+v, %v", byID, err)
	}

	edited := budi
	edited.Major = nil
	edited.GPA = 3.75
	if err := c.Update(ctx, budi.ID, edited); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, err = c.Get(ctx, budi.ID)
	if err != nil {
		t.Fatalf("Get after update: %v", err)
	}
	if got.Major != nil || got.GPA != 3.75 {
		t.Errorf("after update = %+v", got)
	}

	if err := c.Delete(ctx, budi.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := c.Get(ctx, budi.ID); !errors.Is(err, client.ErrNotFound) {
		t.Errorf("Get after delete: err = %v, want ErrNotFound", err)
	}
	if err := c.Delete(ctx, budi.ID); !errors.Is(err, client.ErrNotFound) {
		t.Errorf("second Delete: err = %v, want ErrNotFound", err)
	}
	if err := c.Update(ctx, budi.ID, edited); !errors.Is(err, client.ErrNotFound) {
		t.Errorf("Update after delete: err = %v, want ErrNotFound", err)
	}
}

func TestRoundTrip_ValidationMessageReachesClient(t *testing.T) {
	c := newAPI(t)

	_, err := c.Create(context.Background(), types.Mahasiswa{ID: "1302220001", Name: " ", GPA: 2})

	var apiErr *client.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *client.APIError", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Errorf("StatusCode = %d, want 400", apiErr.StatusCode)
	}
	if apiErr.Message != "name tidak boleh kosong" {
		t.Errorf("Message = %q", apiErr.Message)
	}
}
