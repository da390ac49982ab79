package render

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/MrLemonHog/nylium-wiki-page/internal/api"
	"github.com/MrLemonHog/nylium-wiki-page/internal/errors"
	"github.com/MrLemonHog/nylium-wiki-page/internal/log"
)

// SessionConfig configures one render run
type SessionConfig struct {
	// Port 0 picks a free port
	Port       int
	ItemsFile  string
	AssetsRoot string

	// OutputDir is relative to AssetsRoot and doubles as the URL prefix
	OutputDir string
	PagePath  string
	IconSize  int

	// Timeout 0 waits forever
	Timeout       time.Duration
	ShutdownDelay time.Duration
}

// Session serves the render page until it posts the updated catalogue
type Session struct {
	cfg      SessionConfig
	launcher Launcher

	saved     chan struct{}
	savedOnce sync.Once
}

// NewSession creates a render session
func NewSession(cfg SessionConfig, launcher Launcher) *Session {
	if cfg.PagePath == "" {
		cfg.PagePath = PageName
	}
	return &Session{
		cfg:      cfg,
		launcher: launcher,
		saved:    make(chan struct{}),
	}
}

// Handler returns the HTTP handler of the session
func (s *Session) Handler() http.Handler {
	images := NewImageWriter(
		filepath.Join(s.cfg.AssetsRoot, filepath.FromSlash(s.cfg.OutputDir)),
		filepath.ToSlash(s.cfg.OutputDir),
		s.cfg.IconSize,
	)

	return api.NewRender(api.RenderConfig{
		ItemsFile:  s.cfg.ItemsFile,
		AssetsRoot: s.cfg.AssetsRoot,
		PagePath:   s.cfg.PagePath,
		Page:       Page,
		Images:     images,
		OnSaved:    s.markSaved,
	})
}

func (s *Session) markSaved() {
	s.savedOnce.Do(func() { close(s.saved) })
}

// Run serves the render page, opens it with the launcher and returns once
// the catalogue has been saved, ctx is cancelled, the timeout expires or the
// launcher fails. Cancellation is a clean stop and returns nil.
func (s *Session) Run(ctx context.Context) error {
	if _, err := os.Stat(s.cfg.ItemsFile); err != nil {
		return errors.FailedPrecondition(filepath.Base(s.cfg.ItemsFile)+" not found").
			WithMeta("path", s.cfg.ItemsFile)
	}

	outDir := filepath.Join(s.cfg.AssetsRoot, filepath.FromSlash(s.cfg.OutputDir))
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return errors.Wrapf(err, "create %s", outDir)
	}
	log.Info("render output", "dir", outDir)

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.cfg.Port))
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "render server could not listen")
	}
	port := ln.Addr().(*net.TCPAddr).Port

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
		close(serveErr)
	}()

	url := fmt.Sprintf("http://localhost:%d/%s", port, s.cfg.PagePath)
	log.Info("opening render page", "url", url)

	launchCtx, cancelLaunch := context.WithCancel(ctx)
	defer cancelLaunch()

	launchErr := make(chan error, 1)
	go func() { launchErr <- s.launcher.Open(launchCtx, url) }()

	var timeout <-chan time.Time
	if s.cfg.Timeout > 0 {
		timer := time.NewTimer(s.cfg.Timeout)
		defer timer.Stop()
		timeout = timer.C
	}

	runErr := s.wait(ctx, launchErr, serveErr, timeout)

	cancelLaunch()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("render server shutdown", "error", err)
	}
	log.Info("render server stopped")

	return runErr
}

func (s *Session) wait(ctx context.Context, launchErr, serveErr <-chan error, timeout <-chan time.Time) error {
	for {
		select {
		case <-s.saved:
			log.Info("catalogue saved, stopping render server", "delay", s.cfg.ShutdownDelay)
			select {
			case <-time.After(s.cfg.ShutdownDelay):
			case <-ctx.Done():
			}
			return nil

		case <-ctx.Done():
			log.Info("render stopped")
			return nil

		case <-timeout:
			return errors.Newf(errors.CodeUnavailable, "render did not finish within %s", s.cfg.Timeout)

		case err, ok := <-serveErr:
			if !ok {
				serveErr = nil
				continue
			}
			return errors.WrapWithCode(err, errors.CodeUnavailable, "render server failed")

		case err := <-launchErr:
			if err != nil {
				return errors.Wrap(err, "browser launch failed")
			}
			// launcher handed off the page; keep waiting for the save
			launchErr = nil
		}
	}
}
