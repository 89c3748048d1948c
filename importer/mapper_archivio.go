package importer

import "archivio/config"

// ArchivioMapper reads the catalog sheet using the configured header names.
type ArchivioMapper struct{}

func (m *ArchivioMapper) Name() string {
	return "archivio"
}

func (m *ArchivioMapper) Map(record Record, columns config.ColumnsConfig) (*Entry, bool) {
	return mapColumns(record, columns)
}
