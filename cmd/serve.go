package cmd

import (
	"archivio/artwork"
	"archivio/config"
	"archivio/storage"
	"archivio/web"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	servePort    int
	serveCatalog string
	serveDBPath  string
	serveImages  string
	serveNoOpen  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start a local read-only preview of the catalog and its images",
	Long: `Start a local HTTP server exposing the converted catalog and the image directory.

Endpoints:
- GET /api/artworks           full catalog (optional ?artist= filter)
- GET /api/artworks/{id}      one artwork
- GET <images.prefix>/<file>  image files

A JSON catalog from --catalog (default paths.output) is read once at start-up.
With --db, or a .db/.sqlite catalog path, every request queries the SQLite
catalog, so a concurrent "convert -o <db>" is visible without a restart.`,
	Example: `
  # Serve the configured catalog on the default port
  archivio serve

  # Serve a SQLite catalog on a custom port without opening a browser
  archivio serve --db ./opere.db --images ./public/drive-opere --port 9090 --no-open
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("catalog") {
			cfg.Paths.Output = serveCatalog
		}
		if cmd.Flags().Changed("images") {
			cfg.Paths.Images = serveImages
		}

		source := cfg.Paths.Output
		if strings.TrimSpace(serveDBPath) != "" {
			source = serveDBPath
		}
		if strings.TrimSpace(source) == "" || strings.TrimSpace(cfg.Paths.Images) == "" {
			return fmt.Errorf("catalog and image directory are required (set paths.output/paths.images or --catalog/--db/--images)")
		}

		catalog, closeCatalog, err := openServeCatalog(source)
		if err != nil {
			return err
		}
		defer closeCatalog() //nolint:errcheck

		records, err := catalog.ListArtworks()
		if err != nil {
			return err
		}

		logger, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck

		addr := fmt.Sprintf(":%d", servePort)
		server := &http.Server{
			Addr:    addr,
			Handler: web.NewServer(catalog, cfg.Paths.Images, cfg.Images.Prefix, logger),
		}

		errCh := make(chan error, 1)
		go func() {
			errCh <- server.ListenAndServe()
		}()

		listenURL := fmt.Sprintf("http://localhost:%d", servePort)
		logger.Info("catalog preview listening", zap.String("url", listenURL), zap.Int("artworks", len(records)))
		if !serveNoOpen {
			if openErr := openURLInBrowser(listenURL + "/api/artworks"); openErr != nil {
				logger.Warn("failed to open browser", zap.Error(openErr))
			}
		}

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sigCh)

		select {
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-sigCh:
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				return fmt.Errorf("shutdown server: %w", err)
			}
			err := <-errCh
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVar(&servePort, "port", 8080, "HTTP port for the local web server")
	serveCmd.Flags().StringVar(&serveCatalog, "catalog", "", "Catalog JSON path (default: paths.output)")
	serveCmd.Flags().StringVar(&serveDBPath, "db", "", "Serve a SQLite catalog instead of the JSON catalog")
	serveCmd.Flags().StringVar(&serveImages, "images", "", "Image directory (default: paths.images)")
	serveCmd.Flags().BoolVar(&serveNoOpen, "no-open", false, "Do not open browser automatically")
}

// openServeCatalog keeps SQLite catalogs open for live queries and loads JSON
// catalogs into memory. The returned func releases the catalog.
func openServeCatalog(path string) (web.Catalog, func() error, error) {
	if isSQLitePath(path) {
		store, err := storage.OpenSQLite(path)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	}

	records, err := artwork.LoadCatalog(path)
	if err != nil {
		return nil, nil, err
	}
	return web.NewSnapshot(records), func() error { return nil }, nil
}

func openURLInBrowser(rawURL string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", rawURL)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", rawURL)
	default:
		cmd = exec.Command("xdg-open", rawURL)
	}
	return cmd.Start()
}
