package wiki

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/MrLemonHog/nylium-wiki-page/internal/api"
	"github.com/MrLemonHog/nylium-wiki-page/internal/catalog"
	"github.com/MrLemonHog/nylium-wiki-page/internal/errors"
	"github.com/MrLemonHog/nylium-wiki-page/internal/log"
	"github.com/MrLemonHog/nylium-wiki-page/internal/render"
	"github.com/MrLemonHog/nylium-wiki-page/internal/storage"
)

// ServeConfig configures the wiki server
type ServeConfig struct {
	// Port 0 picks a free port
	Port      int
	Root      string
	Page      string
	ItemsFile string
	DBPath    string
	OpenDelay time.Duration
	Launcher  render.Launcher

	// Ready, when set, receives the page URL once the server listens
	Ready func(url string)
}

// Serve imports the catalogue into the store, serves the wiki and opens the
// page. It blocks until ctx is cancelled.
func Serve(ctx context.Context, cfg ServeConfig) error {
	if _, err := os.Stat(filepath.Join(cfg.Root, cfg.Page)); err != nil {
		log.Warn("wiki page missing", "page", cfg.Page)
	}

	store, err := storage.New(cfg.DBPath)
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "open store")
	}
	defer store.Close()

	if err := Import(store, cfg.ItemsFile); err != nil {
		// the static page reads items.json itself, the API is optional
		if errors.IsFailedPrecondition(err) {
			log.Info("no catalogue to import yet", "file", cfg.ItemsFile)
		} else {
			log.Warn("catalogue API disabled", "error", err)
		}
	}

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Port))
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "wiki server could not listen")
	}
	port := ln.Addr().(*net.TCPAddr).Port

	srv := &http.Server{
		Handler:           api.NewWiki(store, cfg.Root),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
	}()

	url := fmt.Sprintf("http://localhost:%d/%s", port, cfg.Page)
	log.Info("wiki server started", "url", url)
	if cfg.Ready != nil {
		cfg.Ready(url)
	}

	go open(ctx, cfg.Launcher, url, cfg.OpenDelay)

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		return errors.WrapWithCode(err, errors.CodeUnavailable, "wiki server failed")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("wiki server shutdown", "error", err)
	}
	log.Info("wiki server stopped")
	return nil
}

func open(ctx context.Context, launcher render.Launcher, url string, delay time.Duration) {
	if launcher == nil {
		return
	}

	select {
	case <-time.After(delay):
	case <-ctx.Done():
		return
	}

	if err := launcher.Open(ctx, url); err != nil {
		log.Warn("could not open browser", "url", url, "error", err)
	}
}

// Import loads an items file into the store
func Import(store *storage.Store, itemsFile string) error {
	cat, err := catalog.ReadFile(itemsFile)
	if err != nil {
		return err
	}
	if err := store.ReplaceCatalogue(cat); err != nil {
		return errors.Wrap(err, "import catalogue")
	}
	log.Info("catalogue imported", "file", itemsFile, "records", cat.Len())
	return nil
}
