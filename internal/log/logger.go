package log

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
)

// Logger wraps the slog logger shared by the whole application
type Logger struct {
	logger *slog.Logger
	level  *slog.LevelVar
	file   *os.File
}

var (
	mu           sync.RWMutex
	globalLogger *Logger
)

// init picks a handler for stderr: readable text on a terminal, JSON otherwise
func init() {
	globalLogger = newLogger(os.Stderr, new(slog.LevelVar), isatty.IsTerminal(os.Stderr.Fd()))
	globalLogger.file = os.Stderr
}

func newLogger(w io.Writer, level *slog.LevelVar, text bool) *Logger {
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if text {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	return &Logger{logger: slog.New(handler), level: level}
}

// ParseLevel maps a config value to a slog level. Unknown values mean info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SetLevel changes the minimum level of the global logger
func SetLevel(level string) {
	mu.RLock()
	defer mu.RUnlock()
	globalLogger.level.Set(ParseLevel(level))
}

// setOutput redirects the global logger to JSON records on w
func setOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	globalLogger = newLogger(w, globalLogger.level, false)
}

// SetFileOutput appends log records to filename as JSON lines
func SetFileOutput(filename string) error {
	file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()

	if globalLogger.file != nil && globalLogger.file != os.Stderr {
		globalLogger.file.Close()
	}

	logger := newLogger(file, globalLogger.level, false)
	logger.file = file
	globalLogger = logger
	return nil
}

func current() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return globalLogger.logger
}

// Standard logging methods
func Debug(msg string, args ...any) { current().Debug(msg, args...) }

func Info(msg string, args ...any) { current().Info(msg, args...) }

func Warn(msg string, args ...any) { current().Warn(msg, args...) }

func Error(msg string, args ...any) { current().Error(msg, args...) }

// Close closes the log file, if any
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if globalLogger.file != nil && globalLogger.file != os.Stderr {
		globalLogger.file.Close()
		globalLogger.file = nil
	}
}
