package web

import (
	"archivio/artwork"
	"archivio/storage"
)

// Catalog is the read side served by the preview. storage.SQLiteStore
// satisfies it directly; NewSnapshot wraps a catalog loaded from JSON.
type Catalog interface {
	ListArtworks() ([]artwork.Record, error)
	// GetArtwork returns storage.ErrArtworkNotFound for unknown ids.
	GetArtwork(id int) (artwork.Record, error)
}

type snapshot struct {
	records []artwork.Record
	byID    map[int]artwork.Record
}

// NewSnapshot serves records from memory. The slice is not copied and must
// not be modified afterwards.
func NewSnapshot(records []artwork.Record) Catalog {
	if records == nil {
		records = []artwork.Record{}
	}
	byID := make(map[int]artwork.Record, len(records))
	for _, record := range records {
		byID[record.ID] = record
	}
	return &snapshot{records: records, byID: byID}
}

func (s *snapshot) ListArtworks() ([]artwork.Record, error) {
	return s.records, nil
}

func (s *snapshot) GetArtwork(id int) (artwork.Record, error) {
	record, ok := s.byID[id]
	if !ok {
		return artwork.Record{}, storage.ErrArtworkNotFound
	}
	return record, nil
}
