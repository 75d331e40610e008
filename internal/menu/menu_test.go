package menu

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/aanand-mishra/mahasiswa/internal/client"
	"github.com/aanand-mishra/mahasiswa/internal/console"
	"github.com/aanand-mishra/mahasiswa/internal/logger"
	"github.com/aanand-mishra/mahasiswa/internal/messages"
	"github.com/aanand-mishra/mahasiswa/internal/types"
)

const nim = "1302220001"

// fakeStore records calls and returns canned outcomes.
type fakeStore struct {
	list    []types.Mahasiswa
	listErr error
	filters []client.Filter

	records map[string]types.Mahasiswa
	getErr  error
	gets    []string

	createErr error
	created   []types.Mahasiswa

	updateErr error
	updated   []types.Mahasiswa

	deleteErr error
	deleted   []string
}

func (f *fakeStore) List(_ context.Context, filter client.Filter) ([]types.Mahasiswa, error) {
	f.filters = append(f.filters, filter)
	return f.list, f.listErr
}

func (f *fakeStore) Get(_ context.Context, id string) (types.Mahasiswa, error) {
	f.gets = append(f.gets, id)
	if f.getErr != nil {
		return types.Mahasiswa{}, f.getErr
	}
	m, ok := f.records[id]
	if !ok {
		return types.Mahasiswa{}, fmt.Errorf("get %s: %w", id, client.ErrNotFound)
	}
	return m, nil
}

func (f *fakeStore) Create(_ context.Context, m types.Mahasiswa) (types.Mahasiswa, error) {
	f.created = append(f.created, m)
	if f.createErr != nil {
		return types.Mahasiswa{}, f.createErr
	}
	// Echo with a server-side change so tests can tell which record is shown.
	m.Name = strings.ToUpper(m.Name)
	return m, nil
}

func (f *fakeStore) Update(_ context.Context, id string, m types.Mahasiswa) error {
	f.updated = append(f.updated, m)
	return f.updateErr
}

func (f *fakeStore) Delete(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return f.deleteErr
}

func budi() types.Mahasiswa {
	return types.Mahasiswa{ID: nim, Name: "Budi", Major: types.StringPtr("Informatika"), GPA: 3.5}
}

// run feeds the input lines to a fresh App and returns what it printed.
func run(t *testing.T, store Store, lines ...string) (string, *App) {
	t.Helper()

	var out bytes.Buffer
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")

	msg, err := messages.New("en")
	if err != nil {
		t.Fatalf("messages.New: %v", err)
	}

	app := New(store, console.New(in, &out), msg, logger.Discard())
	if err := app.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return out.String(), app
}

func assertContains(t *testing.T, out string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(out, w) {
			t.Errorf("output does not contain %q:\n%s", w, out)
		}
	}
}

func TestRun_Exit(t *testing.T) {
	out, app := run(t, &fakeStore{}, "0")

	if app.State() != Exiting {
		t.Errorf("state = %s", app.State())
	}
	assertContains(t, out, "Welcome", "=== Main Menu ===", "1. Add student", "0. Exit", "Goodbye!")
}

func TestRun_InvalidOptionStaysInMenu(t *testing.T) {
	out, _ := run(t, &fakeStore{}, "9", "0")

	assertContains(t, out, "Invalid option, please try again.")
	if n := strings.Count(out, "=== Main Menu ==="); n != 2 {
		t.Errorf("main menu shown %d times, want 2", n)
	}
}

func TestRun_EndOfInputExits(t *testing.T) {
	var out bytes.Buffer
	msg, _ := messages.New("en")
	app := New(&fakeStore{}, console.New(strings.NewReader("1\n1302220001\n"), &out), msg, logger.Discard())

	if err := app.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if app.State() != Exiting {
		t.Errorf("state = %s", app.State())
	}
	assertContains(t, out.String(), "Goodbye!")
}

func TestAdd_Success(t *testing.T) {
	store := &fakeStore{}
	out, _ := run(t, store, "1", nim, "Budi", "Informatika", "3,5", "", "0")

	if len(store.created) != 1 {
		t.Fatalf("expected one create, got %d", len(store.created))
	}
	got := store.created[0]
	if got.ID != nim || got.Name != "Budi" || got.MajorOr("") != "Informatika" || got.GPA != 3.5 {
		t.Errorf("unexpected record sent: %+v", got)
	}
	assertContains(t, out,
		"Student added:",
		"NIM: 1302220001, Name: BUDI, Major: Informatika, GPA: 3.50",
		"Press Enter",
	)
	if n := strings.Count(out, "Press Enter"); n != 1 {
		t.Errorf("acknowledgement asked %d times, want 1", n)
	}
}

func TestAdd_RepromptsUntilValid(t *testing.T) {
	store := &fakeStore{}
	out, _ := run(t, store,
		"1",
		"123", "130222000A", nim, // id
		"   ", "Budi", // name
		"  ", // major: blank means not set
		"abc", "5,0", "4,0", // gpa
		"", "0",
	)

	if n := strings.Count(out, "Invalid NIM"); n != 2 {
		t.Errorf("invalid NIM shown %d times, want 2", n)
	}
	if n := strings.Count(out, "Name must not be empty."); n != 1 {
		t.Errorf("empty name shown %d times, want 1", n)
	}
	if n := strings.Count(out, "Invalid GPA"); n != 2 {
		t.Errorf("invalid GPA shown %d times, want 2", n)
	}

	if len(store.created) != 1 {
		t.Fatalf("expected one create, got %d", len(store.created))
	}
	if got := store.created[0]; got.Major != nil || got.GPA != 4 {
		t.Errorf("unexpected record sent: %+v", got)
	}
}

func TestAdd_Conflict(t *testing.T) {
	store := &fakeStore{createErr: fmt.Errorf("create %s: %w", nim, client.ErrConflict)}
	out, _ := run(t, store, "1", nim, "Budi", "", "3,5", "", "0")

	assertContains(t, out, "A student with NIM 1302220001 already exists.")
}

func TestAdd_APIError(t *testing.T) {
	store := &fakeStore{createErr: &client.APIError{Op: "create", StatusCode: 500}}
	out, _ := run(t, store, "1", nim, "Budi", "", "3,5", "", "0")

	assertContains(t, out, "API error: Failed to add student (status: 500).")
}

func TestViewAll(t *testing.T) {
	other := types.Mahasiswa{ID: "1302220002", Name: "Sari", GPA: 3.9}
	out, _ := run(t, &fakeStore{list: []types.Mahasiswa{budi(), other}}, "2", "", "0")

	assertContains(t, out,
		"Students:",
		"1. NIM: 1302220001, Name: Budi, Major: Informatika, GPA: 3.50",
		"2. NIM: 1302220002, Name: Sari, Major: -, GPA: 3.90",
	)
}

func TestViewAll_Empty(t *testing.T) {
	out, _ := run(t, &fakeStore{list: []types.Mahasiswa{}}, "2", "", "0")
	assertContains(t, out, "No students yet.")
}

func TestViewAll_TransportFailure(t *testing.T) {
	store := &fakeStore{listErr: &client.APIError{Op: "list", Err: fmt.Errorf("connection refused")}}
	out, app := run(t, store, "2", "", "0")

	assertContains(t, out, "API error: Failed to fetch data (status: N/A).")
	if app.State() != Exiting {
		t.Errorf("state = %s", app.State())
	}
}

func TestSearch(t *testing.T) {
	t.Run("by name", func(t *testing.T) {
		store := &fakeStore{list: []types.Mahasiswa{budi()}}
		out, _ := run(t, store, "3", "M", "Budi", "", "0")

		if len(store.filters) != 1 || store.filters[0] != (client.Filter{Name: "Budi"}) {
			t.Errorf("unexpected filters: %+v", store.filters)
		}
		assertContains(t, out, "Search results:", "1. NIM: 1302220001")
	})

	t.Run("by nim, not found", func(t *testing.T) {
		store := &fakeStore{}
		out, _ := run(t, store, "3", "n", nim, "", "0")

		if len(store.filters) != 1 || store.filters[0] != (client.Filter{ID: nim}) {
			t.Errorf("unexpected filters: %+v", store.filters)
		}
		assertContains(t, out, "Student not found.")
	})

	t.Run("invalid choice aborts", func(t *testing.T) {
		store := &fakeStore{}
		out, _ := run(t, store, "3", "x", "", "0")

		if len(store.filters) != 0 {
			t.Errorf("expected no list call, got %+v", store.filters)
		}
		assertContains(t, out, "Invalid option")
	})

	t.Run("blank term aborts", func(t *testing.T) {
		store := &fakeStore{}
		out, _ := run(t, store, "3", "m", "  ", "", "0")

		if len(store.filters) != 0 {
			t.Errorf("expected no list call, got %+v", store.filters)
		}
		assertContains(t, out, "Search term must not be empty.")
	})

	t.Run("api error", func(t *testing.T) {
		store := &fakeStore{listErr: &client.APIError{Op: "list", StatusCode: 503}}
		out, _ := run(t, store, "3", "m", "Budi", "", "0")
		assertContains(t, out, "API error: Failed to search data (status: 503).")
	})
}

func TestEdit_KeepAndClear(t *testing.T) {
	store := &fakeStore{records: map[string]types.Mahasiswa{nim: budi()}}
	// name blank (keep), major "" (clear), gpa blank (keep), confirm.
	out, _ := run(t, store, "4", nim, "", "", "", "y", "", "0")

	if len(store.updated) != 1 {
		t.Fatalf("expected one update, got %d", len(store.updated))
	}
	got := store.updated[0]
	if got.ID != nim || got.Name != "Budi" || got.Major != nil || got.GPA != 3.5 {
		t.Errorf("unexpected update: %+v", got)
	}
	assertContains(t, out,
		"Old data:",
		"NIM: 1302220001, Name: Budi, Major: Informatika, GPA: 3.50",
		"New data:",
		"NIM: 1302220001, Name: Budi, Major: -, GPA: 3.50",
		"Save changes for NIM 1302220001? (y/n): ",
		"Student updated.",
	)
}

func TestEdit_WhitespaceKeepsMajor(t *testing.T) {
	store := &fakeStore{records: map[string]types.Mahasiswa{nim: budi()}}
	run(t, store, "4", nim, "Budi Santoso", "   ", "3,9", "y", "", "0")

	if len(store.updated) != 1 {
		t.Fatalf("expected one update, got %d", len(store.updated))
	}
	got := store.updated[0]
	if got.Name != "Budi Santoso" || got.MajorOr("") != "Informatika" || got.GPA != 3.9 {
		t.Errorf("unexpected update: %+v", got)
	}
}

func TestEdit_Aborts(t *testing.T) {
	tests := []struct {
		name  string
		store *fakeStore
		lines []string
		want  string
	}{
		{
			name:  "invalid id",
			store: &fakeStore{},
			lines: []string{"4", "abc", "", "0"},
			want:  "Invalid NIM",
		},
		{
			name:  "not found",
			store: &fakeStore{records: map[string]types.Mahasiswa{}},
			lines: []string{"4", nim, "", "0"},
			want:  "Student not found.",
		},
		{
			name:  "fetch error",
			store: &fakeStore{getErr: &client.APIError{Op: "get", StatusCode: 500}},
			lines: []string{"4", nim, "", "0"},
			want:  "API error: Failed to fetch data (status: 500).",
		},
		{
			name:  "invalid gpa",
			store: &fakeStore{records: map[string]types.Mahasiswa{nim: budi()}},
			lines: []string{"4", nim, "", "", "abc", "", "0"},
			want:  "Invalid GPA",
		},
		{
			name:  "declined",
			store: &fakeStore{records: map[string]types.Mahasiswa{nim: budi()}},
			lines: []string{"4", nim, "", "", "", "n", "", "0"},
			want:  "Cancelled.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, app := run(t, tt.store, tt.lines...)

			assertContains(t, out, tt.want)
			if len(tt.store.updated) != 0 {
				t.Errorf("expected no update, got %+v", tt.store.updated)
			}
			if app.State() != Exiting {
				t.Errorf("state = %s", app.State())
			}
		})
	}
}

func TestEdit_InvalidIDSkipsFetch(t *testing.T) {
	store := &fakeStore{}
	run(t, store, "4", "123", "", "0")

	if len(store.gets) != 0 {
		t.Errorf("expected no fetch, got %v", store.gets)
	}
}

func TestEdit_VanishedBeforeUpdate(t *testing.T) {
	store := &fakeStore{
		records:   map[string]types.Mahasiswa{nim: budi()},
		updateErr: fmt.Errorf("update %s: %w", nim, client.ErrNotFound),
	}
	out, _ := run(t, store, "4", nim, "", "", "", "y", "", "0")

	assertContains(t, out, "Student not found (maybe already deleted?).")
}

func TestDelete(t *testing.T) {
	t.Run("confirmed", func(t *testing.T) {
		store := &fakeStore{records: map[string]types.Mahasiswa{nim: budi()}}
		out, _ := run(t, store, "5", nim, "y", "", "0")

		if len(store.deleted) != 1 || store.deleted[0] != nim {
			t.Errorf("unexpected deletes: %v", store.deleted)
		}
		assertContains(t, out,
			"Found: NIM: 1302220001, Name: Budi",
			"Delete student Budi (NIM 1302220001)? (y/n): ",
			"Student deleted.",
		)
	})

	t.Run("declined", func(t *testing.T) {
		store := &fakeStore{records: map[string]types.Mahasiswa{nim: budi()}}
		out, _ := run(t, store, "5", nim, "", "", "0")

		if len(store.deleted) != 0 {
			t.Errorf("expected no delete, got %v", store.deleted)
		}
		assertContains(t, out, "Cancelled.")
	})

	t.Run("not found", func(t *testing.T) {
		store := &fakeStore{records: map[string]types.Mahasiswa{}}
		out, _ := run(t, store, "5", nim, "", "0")

		if len(store.deleted) != 0 {
			t.Errorf("expected no delete, got %v", store.deleted)
		}
		assertContains(t, out, "Student not found.")
	})

	t.Run("api error", func(t *testing.T) {
		store := &fakeStore{
			records:   map[string]types.Mahasiswa{nim: budi()},
			deleteErr: &client.APIError{Op: "delete", StatusCode: 500, Message: "database is locked"},
		}
		out, _ := run(t, store, "5", nim, "yes", "", "0")

		assertContains(t, out, "API error: Failed to delete data (status: 500).")
	})
}

func TestApplyEdit(t *testing.T) {
	old := budi()

	tests := []struct {
		name                 string
		nameIn, majorIn, gpa string
		want                 types.Mahasiswa
		wantOK               bool
	}{
		{"all blank keeps, empty major clears", "", "", "",
			types.Mahasiswa{ID: nim, Name: "Budi", Major: nil, GPA: 3.5}, true},
		{"whitespace keeps everything", "  ", " ", "  ",
			budi(), true},
		{"replace all", " Sari ", " SI ", "3,75",
			types.Mahasiswa{ID: nim, Name: "Sari", Major: types.StringPtr("SI"), GPA: 3.75}, true},
		{"invalid gpa", "", " ", "9",
			budi(), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := applyEdit(old, tt.nameIn, tt.majorIn, tt.gpa)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if got.ID != tt.want.ID || got.Name != tt.want.Name || got.GPA != tt.want.GPA ||
				got.MajorOr("<nil>") != tt.want.MajorOr("<nil>") {
				t.Errorf("applyEdit = %+v, want %+v", got, tt.want)
			}
		})
	}

	if old.MajorOr("") != "Informatika" {
		t.Error("applyEdit must not modify the old record")
	}
}
