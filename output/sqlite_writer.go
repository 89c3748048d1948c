package output

import (
	"archivio/artwork"
	"archivio/storage"
)

// SQLiteWriter replaces the catalog stored in the database at path.
type SQLiteWriter struct{}

func (w *SQLiteWriter) Write(path string, records []artwork.Record) error {
	store, err := storage.OpenSQLite(path)
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = store.ReplaceCatalog(records)
	return err
}
