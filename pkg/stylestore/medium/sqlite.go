package medium

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	apperrors "github.com/garunski/stylestore/pkg/stylestore/errors"
)

// SQLite stores records as rows of a single table:
//
//	styles(location, body, updated_at)  PRIMARY KEY (location)
//
// Each statement runs in its own implicit transaction, so an upsert is
// all-or-nothing.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(dbPath string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, apperrors.WrapStorage(err, "create sqlite directory")
	}
	db, err := sql.Open("sqlite3", dbPath+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, apperrors.WrapStorage(err, "open sqlite "+dbPath)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS styles (
		location TEXT PRIMARY KEY,
		body BLOB NOT NULL,
		updated_at INTEGER NOT NULL
	)`); err != nil {
		db.Close()
		return nil, apperrors.WrapStorage(err, "create styles table")
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) Exists(location string) (bool, error) {
	var one int
	err := s.db.QueryRow("SELECT 1 FROM styles WHERE location = ?", location).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, apperrors.WrapStorage(err, "sqlite exists "+location)
	}
	return true, nil
}

func (s *SQLite) Read(location string) ([]byte, error) {
	var body []byte
	err := s.db.QueryRow("SELECT body FROM styles WHERE location = ?", location).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: sqlite read %s", apperrors.ErrNotFound, location)
	}
	if err != nil {
		return nil, apperrors.WrapStorage(err, "sqlite read "+location)
	}
	return body, nil
}

func (s *SQLite) Replace(location string, data []byte) error {
	_, err := s.db.Exec(`INSERT INTO styles (location, body, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(location) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
		location, data, time.Now().UnixNano())
	if err != nil {
		return apperrors.WrapStorage(err, "sqlite replace "+location)
	}
	return nil
}

func (s *SQLite) Remove(location string) error {
	if _, err := s.db.Exec("DELETE FROM styles WHERE location = ?", location); err != nil {
		return apperrors.WrapStorage(err, "sqlite remove "+location)
	}
	return nil
}

func (s *SQLite) List() ([]string, error) {
	rows, err := s.db.Query("SELECT location FROM styles ORDER BY location")
	if err != nil {
		return nil, apperrors.WrapStorage(err, "sqlite list")
	}
	defer rows.Close()

	var locations []string
	for rows.Next() {
		var loc string
		if err := rows.Scan(&loc); err != nil {
			return nil, apperrors.WrapStorage(err, "sqlite list scan")
		}
		locations = append(locations, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.WrapStorage(err, "sqlite list")
	}
	return locations, nil
}

var (
	_ Medium = (*SQLite)(nil)
	_ Lister = (*SQLite)(nil)
	_ Closer = (*SQLite)(nil)
)
