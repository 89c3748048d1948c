package storage

import (
	"archivio/artwork"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db *sql.DB
}

var ErrArtworkNotFound = errors.New("artwork not found")

func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) ensureSchema() error {
	const schema = `
CREATE TABLE IF NOT EXISTS artworks (
	id INTEGER PRIMARY KEY CHECK(id > 0),
	title TEXT NOT NULL,
	artist TEXT NOT NULL,
	year TEXT NOT NULL DEFAULT '',
	group_name TEXT NOT NULL DEFAULT '',
	technique TEXT NOT NULL DEFAULT '',
	location TEXT NOT NULL DEFAULT '',
	image TEXT NOT NULL DEFAULT ''
);
`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// ReplaceCatalog overwrites the stored catalog with records in one transaction.
func (s *SQLiteStore) ReplaceCatalog(records []artwork.Record) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM artworks;`); err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("clear artworks: %w", err)
	}

	const insertStmt = `
INSERT INTO artworks (
	id,
	title,
	artist,
	year,
	group_name,
	technique,
	location,
	image
) VALUES (?, ?, ?, ?, ?, ?, ?, ?);`

	stmt, err := tx.Prepare(insertStmt)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("prepare insert statement: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, record := range records {
		if _, err := stmt.Exec(
			record.ID,
			record.Title,
			record.Artist,
			record.Year,
			record.Group,
			record.Technique,
			record.Location,
			record.Image,
		); err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("insert artwork %d: %w", record.ID, err)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}
	return inserted, nil
}

func (s *SQLiteStore) ListArtworks() ([]artwork.Record, error) {
	rows, err := s.db.Query(`
SELECT id, title, artist, year, group_name, technique, location, image
FROM artworks
ORDER BY id ASC;`)
	if err != nil {
		return nil, fmt.Errorf("query artworks: %w", err)
	}
	defer rows.Close()

	records := make([]artwork.Record, 0, 128)
	for rows.Next() {
		record, err := scanArtwork(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate artworks: %w", err)
	}

	return records, nil
}

func (s *SQLiteStore) GetArtwork(id int) (artwork.Record, error) {
	row := s.db.QueryRow(`
SELECT id, title, artist, year, group_name, technique, location, image
FROM artworks
WHERE id = ?;`, id)

	record, err := scanArtwork(row)
	if errors.Is(err, sql.ErrNoRows) {
		return artwork.Record{}, ErrArtworkNotFound
	}
	return record, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArtwork(row rowScanner) (artwork.Record, error) {
	var record artwork.Record
	err := row.Scan(
		&record.ID,
		&record.Title,
		&record.Artist,
		&record.Year,
		&record.Group,
		&record.Technique,
		&record.Location,
		&record.Image,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return artwork.Record{}, err
	}
	if err != nil {
		return artwork.Record{}, fmt.Errorf("scan artwork: %w", err)
	}
	return record, nil
}
