package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// CSVReader reads comma-separated exports. A leading byte order mark is
// stripped, and UTF-16 input carrying a BOM is decoded to UTF-8. UTF-8 input
// must be valid; invalid bytes fail the read instead of being replaced.
type CSVReader struct{}

func (r *CSVReader) Read(path string) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv file %s: %w", path, err)
	}
	defer file.Close()

	return readCSV(file)
}

func readCSV(input io.Reader) ([]Record, error) {
	// A UTF-8 BOM switches BOMOverride to a pass-through, so validate again after it.
	decoder := transform.Chain(unicode.BOMOverride(encoding.UTF8Validator), encoding.UTF8Validator)
	reader := csv.NewReader(transform.NewReader(input, decoder))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	headers, err := reader.Read()
	if err == io.EOF {
		return []Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	records := make([]Record, 0, 128)
	rowNumber := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row %d: %w", rowNumber+1, err)
		}

		records = append(records, buildRecord(rowNumber+1, headers, row))
		rowNumber++
	}

	return records, nil
}
