// Package converter turns a catalog spreadsheet into artwork records with
// resolved image paths.
package converter

import (
	"archivio/artwork"
	"archivio/config"
	"archivio/imageindex"
	"archivio/importer"
	"archivio/output"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Config carries everything a run needs. The three paths are required; empty
// image options take the package defaults before validation.
type Config struct {
	SourcePath        string `validate:"required"`
	ImagesDir         string `validate:"required"`
	OutputPath        string `validate:"required"`
	SourceFormat      string
	OutputFormat      string
	Mapper            string
	ImagePrefix       string   `validate:"required,startswith=/"`
	FallbackExtension string   `validate:"required,startswith=."`
	Extensions        []string `validate:"required,min=1,dive,required,excludes=."`
	Columns           config.ColumnsConfig
	// TraceLimit bounds how many records get an image lookup trace entry.
	TraceLimit int `validate:"gte=0"`
}

// ConfigFrom copies the application configuration into a run Config.
func ConfigFrom(cfg config.Config) Config {
	return Config{
		SourcePath:        cfg.Paths.Source,
		ImagesDir:         cfg.Paths.Images,
		OutputPath:        cfg.Paths.Output,
		OutputFormat:      cfg.Convert.Format,
		Mapper:            cfg.Convert.Mapper,
		ImagePrefix:       cfg.Images.Prefix,
		FallbackExtension: cfg.Images.FallbackExtension,
		Extensions:        cfg.Images.Extensions,
		Columns:           cfg.Columns,
		TraceLimit:        cfg.Convert.TraceLimit,
	}
}

type Result struct {
	SourceFormat string
	OutputFormat string
	RowsRead     int
	RowsSkipped  int
	ImageCounts  map[Strategy]int
	Records      []artwork.Record
}

type Converter struct {
	cfg    Config
	mapper importer.Mapper
	logger *zap.Logger
}

// New fills unset options with the package defaults and validates cfg. A nil
// logger disables tracing.
func New(cfg Config, logger *zap.Logger) (*Converter, error) {
	if cfg.Columns == (config.ColumnsConfig{}) {
		cfg.Columns = config.DefaultColumns()
	}
	if cfg.ImagePrefix == "" {
		cfg.ImagePrefix = config.DefaultImagePrefix
	}
	if cfg.FallbackExtension == "" {
		cfg.FallbackExtension = config.DefaultFallbackExtension
	}
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = config.DefaultExtensions
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	mapper, err := importer.MapperByName(cfg.Mapper)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.OutputFormat) == "" {
		cfg.OutputFormat = output.DetectFormat(cfg.OutputPath)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Converter{cfg: cfg, mapper: mapper, logger: logger}, nil
}

// Run builds the image index, converts the source table and overwrites the output.
func (c *Converter) Run() (*Result, error) {
	writer, err := output.WriterForFormat(c.cfg.OutputFormat)
	if err != nil {
		return nil, err
	}

	index, err := imageindex.Build(c.cfg.ImagesDir, c.cfg.Extensions)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("image index built", zap.String("dir", c.cfg.ImagesDir), zap.Int("images", index.Len()))

	imported, err := importer.Run(c.cfg.SourcePath, c.cfg.SourceFormat, c.mapper, c.cfg.Columns)
	if err != nil {
		return nil, err
	}

	result := c.Convert(imported.Entries, index)
	result.SourceFormat = imported.SourceFormat
	result.RowsRead = imported.RowsRead
	result.RowsSkipped = imported.RowsSkipped

	if err := writer.Write(c.cfg.OutputPath, result.Records); err != nil {
		return nil, err
	}
	return result, nil
}

// Convert assigns ids and resolves images for already mapped entries.
func (c *Converter) Convert(entries []importer.Entry, index *imageindex.Index) *Result {
	resolver := &Resolver{
		Index:             index,
		Prefix:            c.cfg.ImagePrefix,
		FallbackExtension: c.cfg.FallbackExtension,
	}

	result := &Result{
		OutputFormat: c.cfg.OutputFormat,
		ImageCounts:  make(map[Strategy]int, len(Strategies())),
		Records:      make([]artwork.Record, 0, len(entries)),
	}

	nextID := 1
	for _, entry := range entries {
		resolution := resolver.Resolve(entry.Artist, entry.Title, entry.Filename)
		if entry.Filename != "" && nextID <= c.cfg.TraceLimit {
			c.trace(nextID, entry, resolution)
		}

		result.ImageCounts[resolution.Strategy]++
		result.Records = append(result.Records, artwork.Record{
			ID:        nextID,
			Title:     entry.Title,
			Artist:    entry.Artist,
			Year:      entry.Year,
			Group:     entry.Group,
			Technique: entry.Technique,
			Location:  entry.Location,
			Image:     resolution.Path,
		})
		nextID++
	}

	return result
}

func (c *Converter) trace(id int, entry importer.Entry, resolution Resolution) {
	fields := []zap.Field{
		zap.Int("id", id),
		zap.Int("row", entry.RowNumber),
		zap.String("filename", entry.Filename),
		zap.String("key", resolution.Key),
		zap.Bool("exists", resolution.ExactFile != ""),
	}
	if resolution.ExactFile != "" {
		fields = append(fields, zap.String("found", resolution.ExactFile))
	}
	fields = append(fields,
		zap.String("strategy", string(resolution.Strategy)),
		zap.String("image", resolution.Path),
	)
	c.logger.Info("image lookup", fields...)
}
