// Package messages is the localized message catalog of the console client.
// Texts are registered on a go-playground/universal-translator per locale and
// looked up by key with "{0}"-style parameters.
package messages

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/go-playground/locales/en"
	idlocale "github.com/go-playground/locales/id"
	ut "github.com/go-playground/universal-translator"

	"github.com/aanand-mishra/mahasiswa/internal/types"
)

// Message keys.
const (
	Welcome        = "Welcome"
	MainMenuHeader = "MainMenuHeader"
	AddOption      = "AddOption"
	ViewAllOption  = "ViewAllOption"
	SearchOption   = "SearchOption"
	EditOption     = "EditOption"
	DeleteOption   = "DeleteOption"
	ExitOption     = "ExitOption"
	ChooseOption   = "ChooseOption"
	InvalidOption  = "InvalidOption"
	InputNIM       = "InputNIM"
	InputNIMEdit   = "InputNIMEdit"
	InputNIMDelete = "InputNIMDelete"
	InputName      = "InputName"
	InputMajor     = "InputMajor"
	InputGPA       = "InputGPA"
	EditHint       = "EditHint"
	EditName       = "EditName"
	EditMajor      = "EditMajor"
	EditGPA        = "EditGPA"
	SearchBy       = "SearchBy"
	InvalidInput   = "ErrorInvalidInput"
	InvalidNIM     = "InvalidNIM"
	EmptyName      = "EmptyName"
	EmptySearch    = "EmptySearch"
	InvalidGPA     = "InvalidGPA"
	Adding         = "Adding"
	Searching      = "Searching"
	Updating       = "Updating"
	Deleting       = "Deleting"
	SuccessAdd     = "SuccessAdd"
	SuccessUpdate  = "SuccessUpdate"
	SuccessDelete  = "SuccessDelete"
	AlreadyExists  = "ErrorAlreadyExists"
	NotFound       = "ErrorNotFound"
	NotFoundGone   = "ErrorNotFoundGone"
	APIError       = "ErrorApi"
	FailAdd        = "FailAdd"
	FailFetch      = "FailFetch"
	FailSearch     = "FailSearch"
	FailUpdate     = "FailUpdate"
	FailDelete     = "FailDelete"
	StatusUnknown  = "StatusUnknown"
	ListHeader     = "ListHeader"
	EmptyList      = "EmptyList"
	SearchHeader   = "SearchHeader"
	OldData        = "OldData"
	NewData        = "NewData"
	Found          = "Found"
	ConfirmEdit    = "ConfirmEdit"
	ConfirmDelete  = "ConfirmDelete"
	Cancelled      = "Cancelled"
	PressEnter     = "PressEnter"
	Exiting        = "Exiting"
	Record         = "Record"
	UnknownState   = "UnknownState"
)

type entry struct {
	key    string
	id, en string
}

var entries = []entry{
	{Welcome, "Selamat datang di Aplikasi Data Mahasiswa", "Welcome to the Student Records application"},
	{MainMenuHeader, "=== Menu Utama ===", "=== Main Menu ==="},
	{AddOption, "Tambah Mahasiswa", "Add student"},
	{ViewAllOption, "Lihat Semua Mahasiswa", "View all students"},
	{SearchOption, "Cari Mahasiswa", "Search students"},
	{EditOption, "Edit Mahasiswa", "Edit student"},
	{DeleteOption, "Hapus Mahasiswa", "Delete student"},
	{ExitOption, "Keluar", "Exit"},
	{ChooseOption, "Pilih opsi: ", "Choose an option: "},
	{InvalidOption, "Opsi tidak valid, silakan coba lagi.", "Invalid option, please try again."},
	{InputNIM, "Masukkan NIM: ", "Enter NIM: "},
	{InputNIMEdit, "Masukkan NIM (yang akan diedit): ", "Enter NIM (to edit): "},
	{InputNIMDelete, "Masukkan NIM (yang akan dihapus): ", "Enter NIM (to delete): "},
	{InputName, "Masukkan Nama: ", "Enter name: "},
	{InputMajor, "Masukkan Jurusan (opsional): ", "Enter major (optional): "},
	{InputGPA, "Masukkan IPK (0-4, gunakan koma): ", "Enter GPA (0-4, use a comma): "},
	{EditHint,
		"Masukkan data baru (kosongkan jika tidak ingin mengubah; Enter langsung pada Jurusan akan menghapusnya):",
		"Enter new data (leave blank to keep; pressing Enter right away on Major clears it):"},
	{EditName, "Nama (Lama: {0}): ", "Name (old: {0}): "},
	{EditMajor, "Jurusan (Lama: {0}): ", "Major (old: {0}): "},
	{EditGPA, "IPK (Lama: {0}): ", "GPA (old: {0}): "},
	{SearchBy, "Cari berdasarkan NIM atau Nama? (n/m): ", "Search by NIM or name? (n/m): "},
	{InvalidInput, "Input tidak valid: {0}", "Invalid input: {0}"},
	{InvalidNIM, "NIM tidak valid (harus 10 digit angka).", "Invalid NIM (must be 10 digits)."},
	{EmptyName, "Nama tidak boleh kosong.", "Name must not be empty."},
	{EmptySearch, "Kata kunci pencarian tidak boleh kosong.", "Search term must not be empty."},
	{InvalidGPA, "IPK tidak valid (harus angka antara 0-4, gunakan koma ',').", "Invalid GPA (must be a number between 0-4, use a comma ',')."},
	{Adding, "Menambahkan data...", "Adding..."},
	{Searching, "Mencari data...", "Searching..."},
	{Updating, "Memperbarui data...", "Updating..."},
	{Deleting, "Menghapus data...", "Deleting..."},
	{SuccessAdd, "Mahasiswa berhasil ditambahkan:", "Student added:"},
	{SuccessUpdate, "Data mahasiswa berhasil diperbarui.", "Student updated."},
	{SuccessDelete, "Data mahasiswa berhasil dihapus.", "Student deleted."},
	{AlreadyExists, "Mahasiswa dengan NIM {0} sudah ada.", "A student with NIM {0} already exists."},
	{NotFound, "Data mahasiswa tidak ditemukan.", "Student not found."},
	{NotFoundGone, "Data mahasiswa tidak ditemukan (mungkin sudah dihapus?).", "Student not found (maybe already deleted?)."},
	{APIError, "Terjadi kesalahan API: {0} (Status: {1}).", "API error: {0} (status: {1})."},
	{FailAdd, "Gagal menambahkan mahasiswa", "Failed to add student"},
	{FailFetch, "Gagal mengambil data", "Failed to fetch data"},
	{FailSearch, "Gagal mencari data", "Failed to search data"},
	{FailUpdate, "Gagal mengupdate data", "Failed to update data"},
	{FailDelete, "Gagal menghapus data", "Failed to delete data"},
	{StatusUnknown, "N/A", "N/A"},
	{ListHeader, "Daftar Mahasiswa:", "Students:"},
	{EmptyList, "Belum ada data mahasiswa.", "No students yet."},
	{SearchHeader, "Hasil Pencarian:", "Search results:"},
	{OldData, "Data Lama:", "Old data:"},
	{NewData, "Data Baru:", "New data:"},
	{Found, "Data ditemukan: {0}", "Found: {0}"},
	{ConfirmEdit, "Simpan perubahan untuk NIM {0}?", "Save changes for NIM {0}?"},
	{ConfirmDelete, "Hapus mahasiswa {0} (NIM {1})?", "Delete student {0} (NIM {1})?"},
	{Cancelled, "Operasi dibatalkan.", "Cancelled."},
	{PressEnter, "Tekan Enter untuk kembali ke menu...", "Press Enter to return to the menu..."},
	{Exiting, "Terima kasih, sampai jumpa!", "Goodbye!"},
	{Record, "NIM: {0}, Nama: {1}, Jurusan: {2}, IPK: {3}", "NIM: {0}, Name: {1}, Major: {2}, GPA: {3}"},
	{UnknownState, "Kesalahan: status aplikasi tidak dikenal.", "Error: unknown application state."},
}

var placeholder = regexp.MustCompile(`\{\d+\}`)

// Catalog resolves message keys for one locale.
type Catalog struct {
	locale string
	trans  ut.Translator
	arity  map[string]int
}

// New builds the catalog for locale ("id" or "en").
func New(locale string) (*Catalog, error) {
	uni := ut.New(en.New(), en.New(), idlocale.New())

	trans, found := uni.GetTranslator(locale)
	if !found {
		return nil, fmt.Errorf("messages.New: unsupported locale %q", locale)
	}

	c := &Catalog{locale: locale, trans: trans, arity: make(map[string]int, len(entries))}
	for _, e := range entries {
		text := e.id
		if locale == "en" {
			text = e.en
		}
		if err := trans.Add(e.key, text, false); err != nil {
			return nil, fmt.Errorf("messages.New: add %s: %w", e.key, err)
		}
		c.arity[e.key] = len(placeholder.FindAllString(text, -1))
	}

	return c, nil
}

// Locale returns the catalog's locale name.
func (c *Catalog) Locale() string {
	return c.locale
}

// Translator exposes the underlying translator, e.g. for registering
// validator error translations on the same locale.
func (c *Catalog) Translator() ut.Translator {
	return c.trans
}

// T returns the text for key with params substituted. Missing params are
// rendered empty; an unknown key renders as the key itself.
func (c *Catalog) T(key string, params ...string) string {
	n, ok := c.arity[key]
	if !ok {
		return key
	}
	for len(params) < n {
		params = append(params, "")
	}
	s, err := c.trans.T(key, params...)
	if err != nil {
		return key
	}
	return s
}

// GPA formats v with two decimals using the locale's separators.
func (c *Catalog) GPA(v float64) string {
	return c.trans.FmtNumber(v, 2)
}

// Status renders an HTTP status code, or "N/A" when there was no response.
func (c *Catalog) Status(code int) string {
	if code == 0 {
		return c.T(StatusUnknown)
	}
	return strconv.Itoa(code)
}

// Record renders one student on a single line.
func (c *Catalog) Record(m types.Mahasiswa) string {
	return c.T(Record, m.ID, m.Name, m.MajorOr("-"), c.GPA(m.GPA))
}
