// Package web serves a localhost-only, read-only preview of a converted
// catalog together with its image directory.
package web

import (
	"archivio/artwork"
	"archivio/storage"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

type Server struct {
	catalog Catalog
	mux     *http.ServeMux
	logger  *zap.Logger
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewServer serves catalog under /api/artworks and the files of imagesDir
// under prefix.
func NewServer(catalog Catalog, imagesDir, prefix string, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	server := &Server{
		catalog: catalog,
		mux:     http.NewServeMux(),
		logger:  logger,
	}

	base := strings.TrimRight(prefix, "/")
	mux := server.mux
	mux.HandleFunc("GET /{$}", server.handleIndex)
	mux.HandleFunc("GET /api/artworks", server.handleAPIArtworks)
	mux.HandleFunc("GET /api/artworks/{id}", server.handleAPIArtwork)
	mux.Handle("GET "+base+"/", http.StripPrefix(base+"/", http.FileServer(http.Dir(imagesDir))))

	return server
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.logger.Debug("request", zap.String("method", r.Method), zap.String("path", r.URL.Path))
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/api/artworks", http.StatusFound)
}

func (s *Server) handleAPIArtworks(w http.ResponseWriter, r *http.Request) {
	records, err := s.catalog.ListArtworks()
	if err != nil {
		s.logger.Error("list artworks failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "catalog unavailable"})
		return
	}

	artist := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("artist")))
	if artist == "" {
		writeJSON(w, http.StatusOK, records)
		return
	}

	filtered := make([]artwork.Record, 0, len(records))
	for _, record := range records {
		if strings.Contains(strings.ToLower(record.Artist), artist) {
			filtered = append(filtered, record)
		}
	}
	writeJSON(w, http.StatusOK, filtered)
}

func (s *Server) handleAPIArtwork(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid artwork id"})
		return
	}

	record, err := s.catalog.GetArtwork(id)
	if errors.Is(err, storage.ErrArtworkNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "artwork not found"})
		return
	}
	if err != nil {
		s.logger.Error("get artwork failed", zap.Int("id", id), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "catalog unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	_ = encoder.Encode(payload)
}
