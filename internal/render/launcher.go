package render

import (
	"context"
	"encoding/json"
	"os"
	"os/exec"
	goruntime "runtime"
	"strings"

	cdpruntime "github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"

	"github.com/MrLemonHog/nylium-wiki-page/internal/errors"
	"github.com/MrLemonHog/nylium-wiki-page/internal/log"
)

//go:generate mockgen -destination=mock/mock_launcher.go -package=rendermock github.com/MrLemonHog/nylium-wiki-page/internal/render Launcher

// Launcher opens the render page. Open may return as soon as the page is
// handed off, or block until ctx is cancelled; a non-nil error means the
// page will never run.
type Launcher interface {
	Open(ctx context.Context, url string) error
}

// Browser modes accepted by NewLauncher
const (
	BrowserSystem   = "system"
	BrowserHeadless = "headless"
	BrowserNone     = "none"
)

// NewLauncher returns the launcher for a browser mode
func NewLauncher(mode string) (Launcher, error) {
	switch strings.ToLower(mode) {
	case BrowserSystem, "":
		return SystemLauncher{}, nil
	case BrowserHeadless:
		return &HeadlessLauncher{ExecPath: detectChromePath()}, nil
	case BrowserNone:
		return NoopLauncher{}, nil
	default:
		return nil, errors.InvalidArgumentf("unknown browser mode %q (want system, headless or none)", mode)
	}
}

// SystemLauncher opens the URL in the desktop's default browser
type SystemLauncher struct{}

func (SystemLauncher) Open(ctx context.Context, url string) error {
	name, args := openCommand(goruntime.GOOS, url)
	if _, err := exec.LookPath(name); err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "no browser opener found, open "+url+" manually")
	}

	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "failed to open browser")
	}
	// the opener exits once the browser has the URL
	go cmd.Wait()
	return nil
}

func openCommand(goos, url string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{url}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}
	default:
		return "xdg-open", []string{url}
	}
}

// NoopLauncher leaves opening the page to the user
type NoopLauncher struct{}

func (NoopLauncher) Open(ctx context.Context, url string) error {
	log.Info("open the page in a WebGL capable browser", "url", url)
	return nil
}

// HeadlessLauncher drives the page in headless Chrome. WebGL runs on the
// SwiftShader software rasteriser, so no GPU is needed.
type HeadlessLauncher struct {
	// ExecPath is the browser binary; empty lets chromedp search for one
	ExecPath string
}

// Open blocks until ctx is cancelled, forwarding the page's console output
// to the log
func (l *HeadlessLauncher) Open(ctx context.Context, url string) error {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
		chromedp.Flag("use-gl", "angle"),
		chromedp.Flag("use-angle", "swiftshader"),
		chromedp.Flag("enable-unsafe-swiftshader", true),
		chromedp.Flag("ignore-gpu-blocklist", true),
	)
	if l.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(l.ExecPath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	chromedp.ListenTarget(browserCtx, func(ev interface{}) {
		switch ev := ev.(type) {
		case *cdpruntime.EventConsoleAPICalled:
			parts := make([]string, 0, len(ev.Args))
			for _, arg := range ev.Args {
				parts = append(parts, consoleText(arg))
			}
			log.Info("render page", "level", string(ev.Type), "message", strings.Join(parts, " "))
		case *cdpruntime.EventExceptionThrown:
			log.Warn("render page exception", "error", ev.ExceptionDetails.Error())
		}
	})

	err := chromedp.Run(browserCtx,
		chromedp.EmulateViewport(800, 800),
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
	)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return errors.WrapWithCode(err, errors.CodeUnavailable, "headless browser failed")
	}

	<-ctx.Done()
	return nil
}

// consoleText renders a console argument the way devtools would print it
func consoleText(arg *cdpruntime.RemoteObject) string {
	if len(arg.Value) > 0 {
		var s string
		if err := json.Unmarshal([]byte(arg.Value), &s); err == nil {
			return s
		}
		return string(arg.Value)
	}
	return arg.Description
}

// detectChromePath finds a Chrome/Chromium binary. CHROME_PATH wins over the
// usual install locations.
func detectChromePath() string {
	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		if _, err := os.Stat(chromePath); err == nil {
			return chromePath
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
		"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}
