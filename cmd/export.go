package cmd

import (
	"archivio/artwork"
	"archivio/output"
	"archivio/storage"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var (
	exportFrom   string
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a converted catalog to JSON, CSV, Excel or SQLite",
	Long: `Read an existing catalog (JSON, or SQLite for .db/.sqlite paths) and write it
in another format without re-running the conversion.

Output format can be selected explicitly via --format or inferred from --output extension.`,
	Example: `
  # Export the JSON catalog to Excel
  archivio export --from ./src/data/opere.json --output ./opere.xlsx

  # Export a SQLite catalog back to JSON
  archivio export --from ./opere.db --output ./opere.json

  # Force CSV independent of extension
  archivio export --from ./opere.json --format csv --output ./opere.out
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format := exportFormat
		if strings.TrimSpace(format) == "" {
			format = output.DetectFormat(exportOutput)
		}

		count, err := exportCatalog(exportFrom, exportOutput, format)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Export completed. Artworks: %d, Format: %s, File: %s\n", count, format, exportOutput)
		return nil
	},
}

func exportCatalog(from, to, format string) (int, error) {
	writer, err := output.WriterForFormat(format)
	if err != nil {
		return 0, err
	}

	records, err := loadRecords(from)
	if err != nil {
		return 0, err
	}

	if err := writer.Write(to, records); err != nil {
		return 0, err
	}
	return len(records), nil
}

func isSQLitePath(path string) bool {
	switch strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".") {
	case "db", "sqlite", "sqlite3":
		return true
	default:
		return false
	}
}

func loadStoredRecords(path string) ([]artwork.Record, error) {
	store, err := storage.OpenSQLite(path)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	return store.ListArtworks()
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportFrom, "from", "", "Catalog to read (JSON, or SQLite for .db/.sqlite)")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "Output format: json|csv|excel|sqlite (optional, inferred from output extension)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file path")

	_ = exportCmd.MarkFlagRequired("from")
	_ = exportCmd.MarkFlagRequired("output")
}
