package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"

	"github.com/MrLemonHog/nylium-wiki-page/internal/errors"
	"github.com/MrLemonHog/nylium-wiki-page/internal/log"
)

// maxUploadBytes caps a single render upload or catalogue save
const maxUploadBytes = 64 << 20

// ImageSaver stores an uploaded render and returns the path the catalogue
// should reference
type ImageSaver interface {
	Save(id, dataURL string) (string, error)
}

// RenderConfig configures the render server
type RenderConfig struct {
	// ItemsFile is the catalogue rewritten by /save_json
	ItemsFile string

	// AssetsRoot is served as static files
	AssetsRoot string

	// PagePath is the URL path of the render page, e.g. "render_tool.html"
	PagePath string
	Page     []byte
	Images   ImageSaver

	// OnSaved is called after a successful /save_json reply and must not block
	OnSaved func()
}

// Render serves the browser-side renderer and accepts its results
type Render struct {
	cfg    RenderConfig
	router chi.Router
}

// NewRender creates the render server
func NewRender(cfg RenderConfig) *Render {
	s := &Render{
		cfg:    cfg,
		router: chi.NewRouter(),
	}

	setupBaseMiddleware(s.router)
	s.setupRoutes()

	return s
}

func (s *Render) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Render) setupRoutes() {
	s.router.Post("/upload_image", s.handleUploadImage)
	s.router.Post("/save_json", s.handleSaveJSON)
	s.router.Post("/*", func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, "Unknown endpoint")
	})

	s.router.Get("/health", handleHealth)
	s.router.Get("/"+s.cfg.PagePath, s.handlePage)

	FileServer(s.router, "/", http.Dir(s.cfg.AssetsRoot))
}

func (s *Render) handlePage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(s.cfg.Page)
}

type uploadRequest struct {
	ID    string `json:"id"`
	Image string `json:"image"`
}

type uploadResponse struct {
	Status string `json:"status"`
	Path   string `json:"path"`
}

// handleUploadImage stores one rendered icon
func (s *Render) handleUploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	var req uploadRequest
	if err := decodeJSON(r, &req); err != nil {
		respondErr(w, err)
		return
	}
	if req.ID == "" || req.Image == "" {
		respondError(w, http.StatusBadRequest, "id and image are required")
		return
	}

	path, err := s.cfg.Images.Save(req.ID, req.Image)
	if err != nil {
		respondErr(w, err)
		return
	}

	log.Info("saved render", "id", req.ID, "path", path)
	respondJSON(w, http.StatusOK, uploadResponse{Status: "ok", Path: path})
}

type saveRequest struct {
	Items json.RawMessage `json:"items"`
}

// handleSaveJSON replaces the catalogue with the one edited by the page.
// The raw document is re-indented rather than decoded so key order and
// unknown fields survive.
func (s *Render) handleSaveJSON(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	var req saveRequest
	if err := decodeJSON(r, &req); err != nil {
		respondErr(w, err)
		return
	}
	if len(req.Items) == 0 || bytes.Equal(req.Items, []byte("null")) {
		respondError(w, http.StatusBadRequest, "items is required")
		return
	}

	log.Info("updating catalogue", "file", s.cfg.ItemsFile)

	var buf bytes.Buffer
	if err := json.Indent(&buf, req.Items, "", "  "); err != nil {
		respondErr(w, errors.WrapWithCode(err, errors.CodeInvalidArgument, "Invalid items"))
		return
	}
	buf.WriteByte('\n')

	if err := os.WriteFile(s.cfg.ItemsFile, buf.Bytes(), 0644); err != nil {
		respondErr(w, errors.Wrapf(err, "write %s", s.cfg.ItemsFile))
		return
	}

	log.Info("catalogue saved", "file", s.cfg.ItemsFile)
	w.WriteHeader(http.StatusOK)

	if s.cfg.OnSaved != nil {
		s.cfg.OnSaved()
	}
}
