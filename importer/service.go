package importer

import (
	"archivio/config"
	"fmt"
	"path/filepath"
	"strings"
)

type Result struct {
	SourceFormat string
	RowsRead     int
	RowsMapped   int
	RowsSkipped  int
	Entries      []Entry
}

// Run reads one source table and maps every row in source order.
func Run(path string, format string, mapper Mapper, columns config.ColumnsConfig) (*Result, error) {
	sourceFormat, err := inferFormat(path, format)
	if err != nil {
		return nil, err
	}
	reader, err := ReaderForFormat(sourceFormat)
	if err != nil {
		return nil, err
	}

	records, err := reader.Read(path)
	if err != nil {
		return nil, err
	}

	result := &Result{
		SourceFormat: sourceFormat,
		RowsRead:     len(records),
		Entries:      make([]Entry, 0, len(records)),
	}
	for _, record := range records {
		entry, ok := mapper.Map(record, columns)
		if !ok || entry == nil {
			result.RowsSkipped++
			continue
		}
		result.RowsMapped++
		result.Entries = append(result.Entries, *entry)
	}

	return result, nil
}

func inferFormat(path string, format string) (string, error) {
	if strings.TrimSpace(format) != "" {
		return format, nil
	}

	extension := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch extension {
	case "csv":
		return "csv", nil
	case "xlsx", "xlsm", "xls":
		return "excel", nil
	default:
		return "", fmt.Errorf("unsupported file extension for %s", path)
	}
}
