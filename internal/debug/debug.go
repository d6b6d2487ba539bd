package debug

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	slogmulti "github.com/samber/slog-multi"
)

// EnvVar names the environment variable holding the debug log path.
const EnvVar = "CARBON_DEBUG"

var (
	mu       sync.Mutex
	logFile  *os.File
	handlers []slog.Handler
	logger   *slog.Logger
	envOnce  sync.Once
	level    = new(slog.LevelVar)
)

func init() {
	level.Set(slog.LevelDebug)
}

// Init directs debug logging to the specified file path.
// If path is empty, uses "carbon-debug.log" in the current directory.
func Init(path string) error {
	mu.Lock()
	defer mu.Unlock()
	return initLocked(path)
}

// initLocked does the actual init work. Caller must hold mu.
func initLocked(path string) error {
	if path == "" {
		path = "carbon-debug.log"
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open debug log: %w", err)
	}
	if logFile != nil {
		logFile.Close()
	}
	logFile = f
	rebuildLocked()
	return nil
}

// AddHandler fans log records out to h in addition to the existing sinks.
func AddHandler(h slog.Handler) {
	mu.Lock()
	defer mu.Unlock()
	handlers = append(handlers, h)
	rebuildLocked()
}

// SetLevel sets the minimum level for the file sink.
func SetLevel(l slog.Level) {
	level.Set(l)
}

// Logger returns the shared logger. The first call honors CARBON_DEBUG.
func Logger() *slog.Logger {
	envOnce.Do(func() {
		if path := os.Getenv(EnvVar); path != "" {
			if err := Init(path); err != nil {
				fmt.Fprintf(os.Stderr, "carbon: %v\n", err)
			}
		}
	})

	mu.Lock()
	defer mu.Unlock()
	if logger == nil {
		rebuildLocked()
	}
	return logger
}

// Log writes a formatted debug message.
func Log(format string, args ...any) {
	Logger().Debug(fmt.Sprintf(format, args...))
}

// Close closes the debug log file and drops extra sinks.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	handlers = nil
	var err error
	if logFile != nil {
		err = logFile.Close()
		logFile = nil
	}
	rebuildLocked()
	return err
}

// rebuildLocked recomputes the fan-out logger. Caller must hold mu.
func rebuildLocked() {
	sinks := make([]slog.Handler, 0, len(handlers)+1)
	if logFile != nil {
		sinks = append(sinks, slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: level}))
	}
	sinks = append(sinks, handlers...)
	if len(sinks) == 0 {
		logger = slog.New(discardHandler{})
		return
	}
	logger = slog.New(slogmulti.Fanout(sinks...))
}

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }
