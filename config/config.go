package config

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	KeyPathsSource           = "paths.source"
	KeyPathsImages           = "paths.images"
	KeyPathsOutput           = "paths.output"
	KeyImagesPrefix          = "images.prefix"
	KeyImagesFallbackExt     = "images.fallback_extension"
	KeyImagesExtensions      = "images.extensions"
	KeyColumnsArtist         = "columns.artist"
	KeyColumnsGroup          = "columns.group"
	KeyColumnsTitle          = "columns.title"
	KeyColumnsYear           = "columns.year"
	KeyColumnsTechnique      = "columns.technique"
	KeyColumnsLocation       = "columns.location"
	KeyColumnsFilename       = "columns.filename"
	KeyConvertMapper         = "convert.mapper"
	KeyConvertFormat         = "convert.format"
	KeyConvertTraceLimit     = "convert.trace_limit"
	KeyLogLevel              = "log.level"
	KeyLogFormat             = "log.format"
	DefaultImagePrefix       = "/drive-opere"
	DefaultFallbackExtension = ".jpg"
	DefaultTraceLimit        = 3
	DefaultMapper            = "archivio"
	defaultColumnArtist      = "Autore (Nome e Cognome"
	defaultColumnGroup       = "Gruppo di appartenenza"
	defaultColumnTitle       = "Titolo"
	defaultColumnYear        = "Anno"
	defaultColumnTechnique   = "Tecnica, dimensioni (cm 10x10x10)"
	defaultColumnLocation    = "Ubicazione"
	defaultColumnFilename    = "Nome file (Cognome_Titolo)"
)

// MapperNames lists the row mappers accepted by convert.mapper.
var MapperNames = []string{"archivio", "generic"}

// DefaultExtensions is the image allow-list in scan order.
var DefaultExtensions = []string{"jpg", "jpeg", "png", "webp"}

type Config struct {
	Paths   PathsConfig   `mapstructure:"paths" yaml:"paths"`
	Images  ImagesConfig  `mapstructure:"images" yaml:"images" validate:"required"`
	Columns ColumnsConfig `mapstructure:"columns" yaml:"columns" validate:"required"`
	Convert ConvertConfig `mapstructure:"convert" yaml:"convert"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
}

// PathsConfig holds the run inputs. They may be left empty here and supplied
// per command through flags.
type PathsConfig struct {
	Source string `mapstructure:"source" yaml:"source"`
	Images string `mapstructure:"images" yaml:"images"`
	Output string `mapstructure:"output" yaml:"output"`
}

type ImagesConfig struct {
	Prefix            string   `mapstructure:"prefix" yaml:"prefix" validate:"required,startswith=/"`
	FallbackExtension string   `mapstructure:"fallback_extension" yaml:"fallback_extension" validate:"required,startswith=."`
	Extensions        []string `mapstructure:"extensions" yaml:"extensions" validate:"required,min=1,dive,required,excludes=."`
}

// ColumnsConfig names the source headers. Values must match the header text exactly.
type ColumnsConfig struct {
	Artist    string `mapstructure:"artist" yaml:"artist" validate:"required"`
	Group     string `mapstructure:"group" yaml:"group"`
	Title     string `mapstructure:"title" yaml:"title" validate:"required"`
	Year      string `mapstructure:"year" yaml:"year"`
	Technique string `mapstructure:"technique" yaml:"technique"`
	Location  string `mapstructure:"location" yaml:"location"`
	Filename  string `mapstructure:"filename" yaml:"filename"`
}

type ConvertConfig struct {
	Mapper     string `mapstructure:"mapper" yaml:"mapper"`
	Format     string `mapstructure:"format" yaml:"format"`
	TraceLimit int    `mapstructure:"trace_limit" yaml:"trace_limit" validate:"gte=0"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `mapstructure:"format" yaml:"format" validate:"omitempty,oneof=console json"`
}

// SetDefaults sets default values if not provided
func SetDefaults() {
	setDefaults(viper.GetViper())
}

// LoadAndValidate loads config from Viper and validates it
func LoadAndValidate() (*Config, error) {
	return loadAndValidateFromViper(viper.GetViper())
}

// ValidateYAMLContent validates configuration from raw YAML content.
func ValidateYAMLContent(content []byte) (*Config, error) {
	local := viper.New()
	setDefaults(local)
	local.SetConfigType("yaml")
	if err := local.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("read config content: %w", err)
	}
	return loadAndValidateFromViper(local)
}

// ExampleYAML returns the default configuration template.
func ExampleYAML() string {
	return `# archivio configuration
paths:
  source: "./Culturiamoci Archivio Foglio1.csv"
  images: "./public/drive-opere"
  output: "./src/data/opere.json"

images:
  prefix: "/drive-opere"
  fallback_extension: ".jpg"
  extensions: [jpg, jpeg, png, webp]

columns:
  artist: "Autore (Nome e Cognome"
  group: "Gruppo di appartenenza"
  title: "Titolo"
  year: "Anno"
  technique: "Tecnica, dimensioni (cm 10x10x10)"
  location: "Ubicazione"
  filename: "Nome file (Cognome_Titolo)"

convert:
  mapper: archivio
  format: ""
  trace_limit: 3

log:
  level: info
  format: console
`
}

func loadAndValidateFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if err := validateMapper(cfg.Convert.Mapper); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// DefaultColumns returns the headers of the archive spreadsheet export,
// including the unbalanced parenthesis of the artist header.
func DefaultColumns() ColumnsConfig {
	return ColumnsConfig{
		Artist:    defaultColumnArtist,
		Group:     defaultColumnGroup,
		Title:     defaultColumnTitle,
		Year:      defaultColumnYear,
		Technique: defaultColumnTechnique,
		Location:  defaultColumnLocation,
		Filename:  defaultColumnFilename,
	}
}

func setDefaults(v *viper.Viper) {
	// Empty defaults register the keys so ARCHIVIO_ env values reach Unmarshal.
	v.SetDefault(KeyPathsSource, "")
	v.SetDefault(KeyPathsImages, "")
	v.SetDefault(KeyPathsOutput, "")
	v.SetDefault(KeyConvertFormat, "")
	v.SetDefault(KeyImagesPrefix, DefaultImagePrefix)
	v.SetDefault(KeyImagesFallbackExt, DefaultFallbackExtension)
	v.SetDefault(KeyImagesExtensions, DefaultExtensions)
	columns := DefaultColumns()
	v.SetDefault(KeyColumnsArtist, columns.Artist)
	v.SetDefault(KeyColumnsGroup, columns.Group)
	v.SetDefault(KeyColumnsTitle, columns.Title)
	v.SetDefault(KeyColumnsYear, columns.Year)
	v.SetDefault(KeyColumnsTechnique, columns.Technique)
	v.SetDefault(KeyColumnsLocation, columns.Location)
	v.SetDefault(KeyColumnsFilename, columns.Filename)
	v.SetDefault(KeyConvertMapper, DefaultMapper)
	v.SetDefault(KeyConvertTraceLimit, DefaultTraceLimit)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
}

func validateMapper(mapper string) error {
	name := strings.ToLower(strings.TrimSpace(mapper))
	if name == "" || slices.Contains(MapperNames, name) {
		return nil
	}
	return fmt.Errorf("validation failed: convert.mapper %q is not supported (valid: %s)", mapper, strings.Join(MapperNames, ", "))
}
