// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using database/sql and mattn/go-sqlite3.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-sqlite3"

	"github.com/aanand-mishra/mahasiswa/internal/config"
	"github.com/aanand-mishra/mahasiswa/internal/storage"
	"github.com/aanand-mishra/mahasiswa/internal/types"
)

// SQLite is the concrete implementation of storage.Storage.
// The embedded *sql.DB is a connection pool, safe for concurrent use.
type SQLite struct {
	Db *sql.DB
}

// New opens the database at cfg.StoragePath, creating the parent directory
// and the mahasiswa table when missing.
func New(cfg *config.Config) (*SQLite, error) {
	if dir := filepath.Dir(cfg.StoragePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("sqlite.New: create dir: %w", err)
		}
	}

	// sql.Open only validates the DSN; the first query connects.
	db, err := sql.Open("sqlite3", cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// major is nullable: NULL means "not set".
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS mahasiswa (
			id    TEXT PRIMARY KEY,
			name  TEXT NOT NULL,
			major TEXT,
			gpa   REAL NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: create table: %w", err)
	}

	return &SQLite{Db: db}, nil
}

// Close releases the connection pool.
func (s *SQLite) Close() error {
	return s.Db.Close()
}

// CreateMahasiswa inserts a new row. A duplicate id is reported as
// storage.ErrAlreadyExists.
func (s *SQLite) CreateMahasiswa(ctx context.Context, m types.Mahasiswa) (types.Mahasiswa, error) {
	stmt, err := s.Db.PrepareContext(ctx,
		"INSERT INTO mahasiswa (id, name, major, gpa) VALUES (?, ?, ?, ?)",
	)
	if err != nil {
		return types.Mahasiswa{}, fmt.Errorf("CreateMahasiswa: prepare: %w", err)
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx, m.ID, m.Name, nullable(m.Major), m.GPA)
	if err != nil {
		if isPrimaryKeyViolation(err) {
			return types.Mahasiswa{}, fmt.Errorf("CreateMahasiswa: %s: %w", m.ID, storage.ErrAlreadyExists)
		}
		return types.Mahasiswa{}, fmt.Errorf("CreateMahasiswa: exec: %w", err)
	}

	return s.GetMahasiswaByID(ctx, m.ID)
}

// GetMahasiswaByID fetches a single row by primary key.
func (s *SQLite) GetMahasiswaByID(ctx context.Context, id string) (types.Mahasiswa, error) {
	stmt, err := s.Db.PrepareContext(ctx,
		"SELECT id, name, major, gpa FROM mahasiswa WHERE id = ? LIMIT 1",
	)
	if err != nil {
		return types.Mahasiswa{}, fmt.Errorf("GetMahasiswaByID: prepare: %w", err)
	}
	defer stmt.Close()

	m, err := scan(stmt.QueryRowContext(ctx, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Mahasiswa{}, fmt.Errorf("GetMahasiswaByID: %s: %w", id, storage.ErrNotFound)
		}
		return types.Mahasiswa{}, fmt.Errorf("GetMahasiswaByID: scan: %w", err)
	}

	return m, nil
}

// GetMahasiswa returns every row matching f, ordered by id.
func (s *SQLite) GetMahasiswa(ctx context.Context, f storage.Filter) ([]types.Mahasiswa, error) {
	var (
		where []string
		args  []any
	)
	if f.ID != "" {
		where = append(where, "id = ?")
		args = append(args, f.ID)
	}
	if f.Name != "" {
		// instr avoids treating % and _ in the term as LIKE wildcards.
		where = append(where, "instr(lower(name), lower(?)) > 0")
		args = append(args, f.Name)
	}

	query := "SELECT id, name, major, gpa FROM mahasiswa"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id"

	rows, err := s.Db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("GetMahasiswa: query: %w", err)
	}
	defer rows.Close()

	list := make([]types.Mahasiswa, 0)

	for rows.Next() {
		m, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("GetMahasiswa: scan row: %w", err)
		}
		list = append(list, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetMahasiswa: rows iteration: %w", err)
	}

	return list, nil
}

// UpdateMahasiswaByID replaces the mutable columns of row id.
// The id column itself is never written.
func (s *SQLite) UpdateMahasiswaByID(ctx context.Context, id string, m types.Mahasiswa) (types.Mahasiswa, error) {
	stmt, err := s.Db.PrepareContext(ctx,
		"UPDATE mahasiswa SET name = ?, major = ?, gpa = ? WHERE id = ?",
	)
	if err != nil {
		return types.Mahasiswa{}, fmt.Errorf("UpdateMahasiswaByID: prepare: %w", err)
	}
	defer stmt.Close()

	res, err := stmt.ExecContext(ctx, m.Name, nullable(m.Major), m.GPA, id)
	if err != nil {
		return types.Mahasiswa{}, fmt.Errorf("UpdateMahasiswaByID: exec: %w", err)
	}
	if err := requireAffected(res); err != nil {
		return types.Mahasiswa{}, fmt.Errorf("UpdateMahasiswaByID: %s: %w", id, err)
	}

	return s.GetMahasiswaByID(ctx, id)
}

// DeleteMahasiswaByID removes row id permanently.
func (s *SQLite) DeleteMahasiswaByID(ctx context.Context, id string) error {
	stmt, err := s.Db.PrepareContext(ctx, "DELETE FROM mahasiswa WHERE id = ?")
	if err != nil {
		return fmt.Errorf("DeleteMahasiswaByID: prepare: %w", err)
	}
	defer stmt.Close()

	res, err := stmt.ExecContext(ctx, id)
	if err != nil {
		return fmt.Errorf("DeleteMahasiswaByID: exec: %w", err)
	}
	if err := requireAffected(res); err != nil {
		return fmt.Errorf("DeleteMahasiswaByID: %s: %w", id, err)
	}

	return nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scan(row scanner) (types.Mahasiswa, error) {
	var (
		m     types.Mahasiswa
		major sql.NullString
	)
	if err := row.Scan(&m.ID, &m.Name, &major, &m.GPA); err != nil {
		return types.Mahasiswa{}, err
	}
	if major.Valid {
		m.Major = types.StringPtr(major.String)
	}
	return m, nil
}

func nullable(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func isPrimaryKeyViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) &&
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
}
