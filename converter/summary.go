package converter

import (
	"fmt"
	"io"
)

// PreviewSize is the number of records listed after a run.
const PreviewSize = 5

// PrintSummary writes the run summary line and a short preview of the catalog.
func PrintSummary(w io.Writer, outputPath string, result *Result) {
	fmt.Fprintf(w, "Created %s with %d artworks\n", outputPath, len(result.Records))
	fmt.Fprintf(w, "First %d artworks:\n", PreviewSize)
	for i, record := range result.Records {
		if i == PreviewSize {
			break
		}
		fmt.Fprintf(w, "  %d: %s - %s -> %s\n", record.ID, record.Artist, record.Title, record.Image)
	}
}
