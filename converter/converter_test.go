package converter

import (
	"archivio/artwork"
	"archivio/config"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const archivioHeader = "Autore (Nome e Cognome,Gruppo di appartenenza,Titolo,Anno,\"Tecnica, dimensioni (cm 10x10x10)\",Ubicazione,Nome file (Cognome_Titolo)\n"

func defaultColumns() config.ColumnsConfig {
	return config.ColumnsConfig{
		Artist:    "Autore (Nome e Cognome",
		Group:     "Gruppo di appartenenza",
		Title:     "Titolo",
		Year:      "Anno",
		Technique: "Tecnica, dimensioni (cm 10x10x10)",
		Location:  "Ubicazione",
		Filename:  "Nome file (Cognome_Titolo)",
	}
}

type fixture struct {
	cfg Config
}

func newFixture(t *testing.T, csvBody string, images ...string) fixture {
	t.Helper()

	root := t.TempDir()
	imagesDir := filepath.Join(root, "drive-opere")
	if err := os.Mkdir(imagesDir, 0o755); err != nil {
		t.Fatalf("mkdir images: %v", err)
	}
	for _, name := range images {
		if err := os.WriteFile(filepath.Join(imagesDir, name), []byte("img"), 0o600); err != nil {
			t.Fatalf("write image %s: %v", name, err)
		}
	}

	source := filepath.Join(root, "archivio.csv")
	if err := os.WriteFile(source, []byte(archivioHeader+csvBody), 0o600); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	return fixture{cfg: Config{
		SourcePath: source,
		ImagesDir:  imagesDir,
		OutputPath: filepath.Join(root, "opere.json"),
		Columns:    defaultColumns(),
		TraceLimit: 3,
	}}
}

func runConverter(t *testing.T, cfg Config, logger *zap.Logger) (*Result, []artwork.Record) {
	t.Helper()

	conv, err := New(cfg, logger)
	if err != nil {
		t.Fatalf("new converter: %v", err)
	}
	result, err := conv.Run()
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	records, err := artwork.LoadCatalog(cfg.OutputPath)
	if err != nil {
		t.Fatalf("load output: %v", err)
	}
	return result, records
}

func TestRun_EmitsOnlyCompleteRowsWithContiguousIDs(t *testing.T) {
	t.Parallel()

	body := "Maria Rossi,A,Sunset,1999,\"olio, 50x70\",Sala 1,\n" +
		",A,Senza autore,2000,,,\n" +
		"Luca Bianchi,,   ,2001,,,\n" +
		"  Anna Verdi  ,B,  Notte ,2002,,Deposito,verdi_notte\n" +
		"\n" +
		"Giulia Neri,,Città,,,,\n"
	fx := newFixture(t, body, "rossi_sunset.png", "verdi_notte.jpg")

	result, records := runConverter(t, fx.cfg, nil)

	if result.RowsRead != 5 || result.RowsSkipped != 2 {
		t.Fatalf("unexpected counts: read=%d skipped=%d", result.RowsRead, result.RowsSkipped)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d: %+v", len(records), records)
	}
	for i, record := range records {
		if record.ID != i+1 {
			t.Fatalf("expected contiguous ids, record %d has id %d", i, record.ID)
		}
	}

	want := artwork.Record{ID: 2, Title: "Notte", Artist: "Anna Verdi", Year: "2002", Group: "B", Location: "Deposito", Image: "/drive-opere/verdi_notte.jpg"}
	if records[1] != want {
		t.Fatalf("unexpected second record:\nwant %+v\ngot  %+v", want, records[1])
	}
	if records[0].Image != "/drive-opere/rossi_sunset.png" || records[0].Technique != "olio, 50x70" {
		t.Fatalf("unexpected first record: %+v", records[0])
	}
	if records[2].Image != "" || records[2].Title != "Città" {
		t.Fatalf("unexpected third record: %+v", records[2])
	}
}

func TestRun_ImageResolutionChain(t *testing.T) {
	t.Parallel()

	body := "Maria Rossi,,Tramonto,,,,Rossi_Tramonto\n" +
		"Maria Rossi,,Tramonto,,,,rossitramonto\n" +
		"Maria Rossi,,Sunset,,,,\n" +
		"Luca Bianchi,,Alba,,,,foo bar\n" +
		"Luca Bianchi,,Notte,,,,\n"
	fx := newFixture(t, body, "rossi_tramonto.jpg", "rossi_sunset.png", "ROSSI_TRAMONTO.jpeg")

	result, records := runConverter(t, fx.cfg, nil)

	want := []string{
		"/drive-opere/ROSSI_TRAMONTO.jpeg",
		"/drive-opere/ROSSI_TRAMONTO.jpeg",
		"/drive-opere/rossi_sunset.png",
		"/drive-opere/foo bar.jpg",
		"",
	}
	for i, path := range want {
		if records[i].Image != path {
			t.Fatalf("record %d: want image %q, got %q", i+1, path, records[i].Image)
		}
	}
	if result.ImageCounts[StrategyExact] != 1 || result.ImageCounts[StrategyNormalized] != 1 ||
		result.ImageCounts[StrategyDerived] != 1 || result.ImageCounts[StrategyLiteral] != 1 ||
		result.ImageCounts[StrategyNone] != 1 {
		t.Fatalf("unexpected strategy counts: %v", result.ImageCounts)
	}
}

func TestRun_IsDeterministic(t *testing.T) {
	t.Parallel()

	body := "Maria Rossi,,Tramonto,,,,rossi tramonto\n" +
		"Luca Bianchi,,Alba,,,,bianchi_alba\n"
	fx := newFixture(t, body, "rossi_tramonto.png", "rossi__tramonto.jpg", "bianchi_alba.webp")

	runConverter(t, fx.cfg, nil)
	first, err := os.ReadFile(fx.cfg.OutputPath)
	if err != nil {
		t.Fatalf("read first output: %v", err)
	}
	runConverter(t, fx.cfg, nil)
	second, err := os.ReadFile(fx.cfg.OutputPath)
	if err != nil {
		t.Fatalf("read second output: %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Fatalf("expected byte-identical output:\n%s\n---\n%s", first, second)
	}
	if !strings.Contains(string(first), "/drive-opere/rossi__tramonto.jpg") {
		t.Fatalf("expected scan-order tie-break to pick the jpg, got %s", first)
	}
}

func TestRun_TracesFirstRecordsWithFilename(t *testing.T) {
	t.Parallel()

	body := "Maria Rossi,,Tramonto,,,,Rossi_Tramonto\n" +
		"Luca Bianchi,,Alba,,,,\n" +
		"Anna Verdi,,Notte,,,,missing\n" +
		"Giulia Neri,,Città,,,,neri_citta\n"
	fx := newFixture(t, body, "rossi_tramonto.jpg", "neri_citta.png")

	core, observed := observer.New(zapcore.InfoLevel)
	runConverter(t, fx.cfg, zap.New(core))

	entries := observed.FilterMessage("image lookup").All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 trace entries, got %d", len(entries))
	}

	first := entries[0].ContextMap()
	if first["id"] != int64(1) || first["key"] != "rossi_tramonto" || first["exists"] != true || first["found"] != "rossi_tramonto.jpg" {
		t.Fatalf("unexpected first trace: %v", first)
	}
	second := entries[1].ContextMap()
	if second["id"] != int64(3) || second["exists"] != false || second["strategy"] != string(StrategyLiteral) {
		t.Fatalf("unexpected second trace: %v", second)
	}
	if _, ok := second["found"]; ok {
		t.Fatalf("expected no found field on a miss: %v", second)
	}
}

func TestRun_TraceLimitZeroDisablesTracing(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, "Maria Rossi,,Tramonto,,,,rossi_tramonto\n", "rossi_tramonto.jpg")
	fx.cfg.TraceLimit = 0

	core, observed := observer.New(zapcore.DebugLevel)
	runConverter(t, fx.cfg, zap.New(core))

	if n := observed.FilterMessage("image lookup").Len(); n != 0 {
		t.Fatalf("expected no trace entries, got %d", n)
	}
}

func TestRun_FatalInputs(t *testing.T) {
	t.Parallel()

	t.Run("missing source", func(t *testing.T) {
		t.Parallel()
		fx := newFixture(t, "")
		fx.cfg.SourcePath = filepath.Join(t.TempDir(), "missing.csv")
		conv, err := New(fx.cfg, nil)
		if err != nil {
			t.Fatalf("new converter: %v", err)
		}
		if _, err := conv.Run(); err == nil || !strings.Contains(err.Error(), "open csv file") {
			t.Fatalf("expected open csv error, got %v", err)
		}
		if _, statErr := os.Stat(fx.cfg.OutputPath); !os.IsNotExist(statErr) {
			t.Fatalf("expected no output to be written")
		}
	})

	t.Run("missing image directory", func(t *testing.T) {
		t.Parallel()
		fx := newFixture(t, "")
		fx.cfg.ImagesDir = filepath.Join(t.TempDir(), "missing")
		conv, err := New(fx.cfg, nil)
		if err != nil {
			t.Fatalf("new converter: %v", err)
		}
		if _, err := conv.Run(); err == nil || !strings.Contains(err.Error(), "read image directory") {
			t.Fatalf("expected image directory error, got %v", err)
		}
	})

	t.Run("unwritable output", func(t *testing.T) {
		t.Parallel()
		fx := newFixture(t, "Maria Rossi,,Tramonto,,,,\n")
		fx.cfg.OutputPath = filepath.Join(t.TempDir(), "missing", "opere.json")
		conv, err := New(fx.cfg, nil)
		if err != nil {
			t.Fatalf("new converter: %v", err)
		}
		if _, err := conv.Run(); err == nil {
			t.Fatalf("expected output error")
		}
	})
}

func TestNew_RequiresPaths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "no source", cfg: Config{ImagesDir: "img", OutputPath: "out.json"}},
		{name: "no images", cfg: Config{SourcePath: "in.csv", OutputPath: "out.json"}},
		{name: "no output", cfg: Config{SourcePath: "in.csv", ImagesDir: "img"}},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if _, err := New(tc.cfg, nil); err == nil || !strings.Contains(err.Error(), "validation failed") {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestNew_RejectsRelativePrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(cfg *Config)
		field  string
	}{
		{name: "relative prefix", mutate: func(cfg *Config) { cfg.ImagePrefix = "drive-opere" }, field: "ImagePrefix"},
		{name: "extension without dot", mutate: func(cfg *Config) { cfg.FallbackExtension = "jpg" }, field: "FallbackExtension"},
		{name: "dotted allow-list entry", mutate: func(cfg *Config) { cfg.Extensions = []string{"jpg", ".png"} }, field: "Extensions"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			fx := newFixture(t, "Mario Rossi,Gruppo A,Sunset,1999,Olio,Sala 1,rossi_sunset\n", "rossi_sunset.png")
			tc.mutate(&fx.cfg)

			_, err := New(fx.cfg, nil)
			if err == nil || !strings.Contains(err.Error(), "validation failed") || !strings.Contains(err.Error(), tc.field) {
				t.Fatalf("expected validation error on %s, got %v", tc.field, err)
			}
			if _, statErr := os.Stat(fx.cfg.OutputPath); !os.IsNotExist(statErr) {
				t.Fatalf("output must not be written, stat err=%v", statErr)
			}
		})
	}
}

func TestNew_AppliesDefaults(t *testing.T) {
	t.Parallel()

	conv, err := New(Config{SourcePath: "in.csv", ImagesDir: "img", OutputPath: "out.xlsx"}, nil)
	if err != nil {
		t.Fatalf("new converter: %v", err)
	}
	if conv.cfg.ImagePrefix != "/drive-opere" || conv.cfg.FallbackExtension != ".jpg" {
		t.Fatalf("unexpected image defaults: %+v", conv.cfg)
	}
	if conv.cfg.OutputFormat != "excel" {
		t.Fatalf("expected format inferred from extension, got %q", conv.cfg.OutputFormat)
	}
	if conv.mapper.Name() != "archivio" {
		t.Fatalf("unexpected default mapper: %q", conv.mapper.Name())
	}
}

func TestPrintSummary(t *testing.T) {
	t.Parallel()

	result := &Result{}
	for i := 1; i <= 7; i++ {
		result.Records = append(result.Records, artwork.Record{ID: i, Artist: "A", Title: "T", Image: "/drive-opere/x.jpg"})
	}

	var buf bytes.Buffer
	PrintSummary(&buf, "opere.json", result)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2+PreviewSize {
		t.Fatalf("expected %d lines, got %d: %q", 2+PreviewSize, len(lines), buf.String())
	}
	if lines[0] != "Created opere.json with 7 artworks" {
		t.Fatalf("unexpected summary line: %q", lines[0])
	}
	if lines[2] != "  1: A - T -> /drive-opere/x.jpg" {
		t.Fatalf("unexpected preview line: %q", lines[2])
	}
}
