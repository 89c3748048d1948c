package importer

import (
	"archivio/config"
	"fmt"
	"strings"
)

type Mapper interface {
	Name() string
	Map(record Record, columns config.ColumnsConfig) (*Entry, bool)
}

func MapperByName(name string) (Mapper, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "archivio":
		return &ArchivioMapper{}, nil
	case "generic":
		return &GenericMapper{}, nil
	default:
		return nil, fmt.Errorf("unsupported mapper: %s (valid: %s)", name, strings.Join(config.MapperNames, ", "))
	}
}

// mapColumns turns a row into an Entry. Rows whose artist or title is missing
// or blank produce no entry.
func mapColumns(record Record, columns config.ColumnsConfig) (*Entry, bool) {
	artist, ok := record.Lookup(columns.Artist)
	if !ok || artist == "" {
		return nil, false
	}
	title, ok := record.Lookup(columns.Title)
	if !ok || title == "" {
		return nil, false
	}

	entry := &Entry{
		RowNumber: record.RowNumber,
		Artist:    strings.TrimSpace(artist),
		Group:     record.Get(columns.Group),
		Title:     strings.TrimSpace(title),
		Year:      record.Get(columns.Year),
		Technique: record.Get(columns.Technique),
		Location:  record.Get(columns.Location),
		Filename:  record.Get(columns.Filename),
	}
	if entry.Artist == "" || entry.Title == "" {
		return nil, false
	}

	return entry, true
}
