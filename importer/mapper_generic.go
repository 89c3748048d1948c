package importer

import "archivio/config"

// GenericMapper reads English headers and ignores the configured columns.
type GenericMapper struct{}

func (m *GenericMapper) Name() string {
	return "generic"
}

func (m *GenericMapper) Map(record Record, _ config.ColumnsConfig) (*Entry, bool) {
	columns := config.ColumnsConfig{
		Artist:    record.FirstHeader("artist", "Artist"),
		Group:     record.FirstHeader("group", "Group"),
		Title:     record.FirstHeader("title", "Title"),
		Year:      record.FirstHeader("year", "Year"),
		Technique: record.FirstHeader("technique", "Technique"),
		Location:  record.FirstHeader("location", "Location"),
		Filename:  record.FirstHeader("filename", "Filename", "file", "File"),
	}
	return mapColumns(record, columns)
}
