package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrLemonHog/nylium-wiki-page/internal/errors"
	"github.com/MrLemonHog/nylium-wiki-page/internal/storage"
)

// Wiki serves the static wiki page and a read-only catalogue API
type Wiki struct {
	store  *storage.Store
	router chi.Router
}

// NewWiki creates the wiki server. root holds the page and its assets.
func NewWiki(store *storage.Store, root string) *Wiki {
	s := &Wiki{
		store:  store,
		router: chi.NewRouter(),
	}

	s.setupMiddleware()
	s.setupRoutes(root)

	return s
}

func (s *Wiki) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Wiki) setupMiddleware() {
	setupBaseMiddleware(s.router)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
}

func (s *Wiki) setupRoutes(root string) {
	s.router.Route("/api", func(r chi.Router) {
		r.Get("/categories", s.handleGetCategories)
		r.Get("/categories/{category}/items", s.handleGetItems)
		r.Get("/items/{id}", s.handleGetItem)
	})

	s.router.Get("/health", handleHealth)

	FileServer(s.router, "/", http.Dir(root))
}

// handleGetCategories lists categories with item counts
func (s *Wiki) handleGetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.store.GetCategories()
	if err != nil {
		respondErr(w, errors.WrapWithCode(err, errors.CodeInternal, "Failed to fetch categories"))
		return
	}
	respondJSON(w, http.StatusOK, categories)
}

// handleGetItems returns the items of a category, filtered by ?q=
func (s *Wiki) handleGetItems(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	query := r.URL.Query().Get("q")

	list, err := s.store.GetItems(category, query)
	if err != nil {
		respondErr(w, errors.WrapWithCode(err, errors.CodeInternal, "Failed to fetch items"))
		return
	}
	if list == nil {
		respondErr(w, errors.NotFound("Category not found"))
		return
	}

	respondJSON(w, http.StatusOK, list)
}

func (s *Wiki) handleGetItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	item, err := s.store.GetItem(id)
	if err != nil {
		respondErr(w, errors.WrapWithCode(err, errors.CodeInternal, "Failed to fetch item"))
		return
	}
	if item == nil {
		respondErr(w, errors.NotFound("Item not found"))
		return
	}

	respondJSON(w, http.StatusOK, item)
}
