package cmd

import (
	"archivio/config"
	"archivio/converter"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	convertSource      string
	convertImages      string
	convertOutput      string
	convertFormat      string
	convertInputFormat string
	convertMapper      string
	convertPrefix      string
	convertTraceLimit  int
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert the archive spreadsheet into the artworks catalog",
	Long: `Read the archive export, skip rows without artist or title, resolve each
artwork image from the image directory and overwrite the output catalog.

Paths default to paths.source, paths.images and paths.output from the configuration
file; flags override them for a single run. The output format is inferred from the
output extension (.json, .csv, .xlsx, .db) unless --format is given.

The image lookup of the first records carrying a filename is traced in the log
(convert.trace_limit, default 3).`,
	Example: `
  # Convert with configured paths
  archivio convert

  # Convert an Excel export with explicit paths
  archivio convert -s ./Archivio.xlsx --images ./public/drive-opere -o ./src/data/opere.json

  # Write the catalog into SQLite
  archivio convert -o ./opere.db

  # Convert a sheet with English headers
  archivio convert -s ./catalog.csv --mapper generic
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}
		applyConvertOverrides(cmd.Flags(), cfg)

		return runConvert(cmd.OutOrStdout(), cfg, convertInputFormat)
	},
}

func applyConvertOverrides(flags *pflag.FlagSet, cfg *config.Config) {
	if flags.Changed("source") {
		cfg.Paths.Source = convertSource
	}
	if flags.Changed("images") {
		cfg.Paths.Images = convertImages
	}
	if flags.Changed("output") {
		cfg.Paths.Output = convertOutput
	}
	if flags.Changed("format") {
		cfg.Convert.Format = convertFormat
	}
	if flags.Changed("mapper") {
		cfg.Convert.Mapper = convertMapper
	}
	if flags.Changed("prefix") {
		cfg.Images.Prefix = convertPrefix
	}
	if flags.Changed("trace-limit") {
		cfg.Convert.TraceLimit = convertTraceLimit
	}
}

func runConvert(out io.Writer, cfg *config.Config, inputFormat string) error {
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	runConfig := converter.ConfigFrom(*cfg)
	runConfig.SourceFormat = inputFormat

	conv, err := converter.New(runConfig, logger)
	if err != nil {
		return err
	}

	result, err := conv.Run()
	if err != nil {
		return err
	}

	converter.PrintSummary(out, cfg.Paths.Output, result)
	fmt.Fprintf(out, "Rows read: %d, Rows skipped: %d, Format: %s -> %s\n",
		result.RowsRead,
		result.RowsSkipped,
		result.SourceFormat,
		result.OutputFormat,
	)
	fmt.Fprintln(out, renderImageCounts(result))
	return nil
}

func renderImageCounts(result *converter.Result) string {
	rows := make([][]string, 0, len(converter.Strategies()))
	for _, strategy := range converter.Strategies() {
		rows = append(rows, []string{string(strategy), strconv.Itoa(result.ImageCounts[strategy])})
	}
	return renderTable([]string{"Image lookup", "Records"}, rows, []columnAlignment{alignLeft, alignRight})
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVarP(&convertSource, "source", "s", "", "Source table path (overrides paths.source)")
	convertCmd.Flags().StringVar(&convertImages, "images", "", "Image directory (overrides paths.images)")
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "Output catalog path (overrides paths.output)")
	convertCmd.Flags().StringVarP(&convertFormat, "format", "f", "", "Output format: json|csv|excel|sqlite (optional, inferred from output extension)")
	convertCmd.Flags().StringVar(&convertInputFormat, "input-format", "", "Source format: csv|excel (optional, inferred from source extension)")
	convertCmd.Flags().StringVarP(&convertMapper, "mapper", "m", "", "Row mapper: "+strings.Join(config.MapperNames, "|")+" (overrides convert.mapper)")
	convertCmd.Flags().StringVar(&convertPrefix, "prefix", "", "Image path prefix (overrides images.prefix)")
	convertCmd.Flags().IntVar(&convertTraceLimit, "trace-limit", 0, "Number of records whose image lookup is traced (overrides convert.trace_limit)")
}
