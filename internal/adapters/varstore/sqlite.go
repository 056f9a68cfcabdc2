package varstore

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"

	"go.trai.ch/loom/internal/core/domain"
	"go.trai.ch/zerr"
	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

const schemaSQL = `CREATE TABLE IF NOT EXISTS vars (
	name  TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

// SQLiteStore implements ports.VarStore on a SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore opens (or creates) the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	path = filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return nil, storeErr(err, path)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, storeErr(err, path)
	}
	// SQLite serializes writers; one connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, storeErr(err, path)
	}

	return &SQLiteStore{db: db, path: path}, nil
}

// Get returns the stored value for name.
func (s *SQLiteStore) Get(name string) (string, bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM vars WHERE name = ?", name).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, zerr.With(storeErr(err, s.path), "variable", name)
	}
	return value, true, nil
}

// Put stores value under name.
func (s *SQLiteStore) Put(name, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO vars (name, value) VALUES (?, ?)
		 ON CONFLICT(name) DO UPDATE SET value = excluded.value`,
		name, value,
	)
	if err != nil {
		return zerr.With(storeErr(err, s.path), "variable", name)
	}
	return nil
}

// All returns every stored variable.
func (s *SQLiteStore) All() (map[string]string, error) {
	rows, err := s.db.Query("SELECT name, value FROM vars")
	if err != nil {
		return nil, storeErr(err, s.path)
	}
	defer func() { _ = rows.Close() }()

	out := make(map[string]string)
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, storeErr(err, s.path)
		}
		out[name] = value
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(err, s.path)
	}
	return out, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func storeErr(err error, path string) error {
	return zerr.With(domain.WrapCause(domain.ErrVarStoreFailed, err, "variable store failure"), "path", path)
}
