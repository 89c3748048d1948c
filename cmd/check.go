package cmd

import (
	"archivio/artwork"
	"archivio/config"
	"archivio/imagecheck"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var (
	checkCatalog string
	checkImages  string
	checkStrict  bool
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report catalog entries whose image is missing on disk",
	Long: `Load a converted catalog and verify every image path against the image directory.

An entry is missing when it has no image, when its path does not start with the
configured prefix, or when the named file does not exist. Literal fallback paths
written by convert are reported here when the guessed file is absent.`,
	Example: `
  # Check the configured catalog
  archivio check

  # Fail with a non-zero exit status when images are missing
  archivio check --catalog ./src/data/opere.json --images ./public/drive-opere --strict
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("catalog") {
			cfg.Paths.Output = checkCatalog
		}
		if cmd.Flags().Changed("images") {
			cfg.Paths.Images = checkImages
		}

		return runCheck(cmd.OutOrStdout(), cfg, checkStrict)
	},
}

func runCheck(out io.Writer, cfg *config.Config, strict bool) error {
	if strings.TrimSpace(cfg.Paths.Output) == "" || strings.TrimSpace(cfg.Paths.Images) == "" {
		return fmt.Errorf("catalog and image directory are required (set paths.output/paths.images or --catalog/--images)")
	}

	records, err := loadRecords(cfg.Paths.Output)
	if err != nil {
		return err
	}

	report := imagecheck.Check(records, cfg.Paths.Images, cfg.Images.Prefix)
	fmt.Fprintf(out, "Present: %d / %d\n", len(report.Present), report.Total)
	if len(report.Missing) == 0 {
		fmt.Fprintln(out, "All images found.")
		return nil
	}

	fmt.Fprintf(out, "Missing (%d):\n", len(report.Missing))
	fmt.Fprintln(out, renderMissing(report.Missing))
	fmt.Fprintf(out, "Place images into: %s\n", cfg.Paths.Images)

	if strict {
		return fmt.Errorf("%d catalog entries have no image on disk", len(report.Missing))
	}
	return nil
}

func renderMissing(missing []imagecheck.Missing) string {
	rows := make([][]string, 0, len(missing))
	for _, item := range missing {
		rows = append(rows, []string{
			strconv.Itoa(item.Record.ID),
			item.Record.Artist,
			item.Record.Title,
			item.Record.Image,
			string(item.Reason),
		})
	}
	return renderTable(
		[]string{"ID", "Artist", "Title", "Image", "Reason"},
		rows,
		[]columnAlignment{alignRight},
	)
}

// loadRecords reads a catalog from JSON, or from SQLite for .db/.sqlite paths.
func loadRecords(path string) ([]artwork.Record, error) {
	if isSQLitePath(path) {
		return loadStoredRecords(path)
	}
	return artwork.LoadCatalog(path)
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&checkCatalog, "catalog", "", "Catalog path (default: paths.output)")
	checkCmd.Flags().StringVar(&checkImages, "images", "", "Image directory (default: paths.images)")
	checkCmd.Flags().BoolVar(&checkStrict, "strict", false, "Return an error when any image is missing")
}
