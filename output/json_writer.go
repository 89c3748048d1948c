package output

import (
	"archivio/artwork"
	"encoding/json"
	"fmt"
	"os"
)

// JSONWriter writes the catalog as a two-space indented array. HTML and
// non-ASCII characters are written unescaped.
type JSONWriter struct{}

func (w *JSONWriter) Write(path string, records []artwork.Record) error {
	if records == nil {
		records = []artwork.Record{}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create json output %s: %w", path, err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(records); err != nil {
		return fmt.Errorf("write json output %s: %w", path, err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("close json output %s: %w", path, err)
	}
	return nil
}
