// Package config loads carbon CLI settings from CUE files.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// Schema constrains every config file. Fields are optional; unknown fields
// are errors.
const Schema = `
viewport?: {
	width:  number & >0
	height: number & >0
}
frames?:          int & >=0
delete_messages?: bool
pretty?:          bool
log_level?:       "debug" | "info" | "warn" | "error"
debug_log?:       string
`

// ErrValueNotFound is returned by Loader.Assign when no file sets a path.
var ErrValueNotFound = errors.New("value not found")

// Viewport is the root size.
type Viewport struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Config is the merged CLI configuration.
type Config struct {
	Viewport       *Viewport `json:"viewport,omitempty"`
	Frames         int       `json:"frames"`
	DeleteMessages bool      `json:"delete_messages"`
	Pretty         *bool     `json:"pretty,omitempty"` // nil: decide from the terminal
	LogLevel       string    `json:"log_level"`
	DebugLog       string    `json:"debug_log"`
}

// Default returns the settings used when no file overrides them.
func Default() Config {
	return Config{
		Frames:         1,
		DeleteMessages: true,
		LogLevel:       "info",
	}
}

// Level maps LogLevel to a slog level.
func (c Config) Level() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Loader holds compiled, schema-checked CUE files. Later files take
// precedence over earlier ones.
type Loader struct {
	roots []root
}

type root struct {
	value cue.Value
	path  string
}

// NewLoader reads and validates each file.
func NewLoader(paths ...string) (*Loader, error) {
	l := &Loader{}
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := l.add(path, content); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// NewLoaderFromBytes is NewLoader for in-memory sources.
func NewLoaderFromBytes(name string, content []byte) (*Loader, error) {
	l := &Loader{}
	if err := l.add(name, content); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Loader) add(path string, content []byte) error {
	ctx := cuecontext.New()
	schema := ctx.CompileString("close({" + Schema + "})")
	if err := schema.Err(); err != nil {
		return fmt.Errorf("config schema: %w", err)
	}

	value := ctx.CompileBytes(content, cue.Filename(path))
	if err := value.Err(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := schema.Unify(value).Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	l.roots = append(l.roots, root{value: value, path: path})
	return nil
}

// Assign decodes the value at path from the last file that sets it.
func (l *Loader) Assign(path string, target any) error {
	cuePath := cue.ParsePath(path)
	for i := len(l.roots) - 1; i >= 0; i-- {
		value := l.roots[i].value.LookupPath(cuePath)
		if !value.Exists() {
			continue
		}
		if err := value.Decode(target); err != nil {
			return fmt.Errorf("%s: %s: %w", l.roots[i].path, path, err)
		}
		return nil
	}
	return ErrValueNotFound
}

// Config merges every file over Default.
func (l *Loader) Config() (Config, error) {
	cfg := Default()
	fields := []struct {
		path   string
		target any
	}{
		{"frames", &cfg.Frames},
		{"delete_messages", &cfg.DeleteMessages},
		{"log_level", &cfg.LogLevel},
		{"debug_log", &cfg.DebugLog},
	}
	for _, f := range fields {
		if err := l.Assign(f.path, f.target); err != nil && !errors.Is(err, ErrValueNotFound) {
			return Config{}, err
		}
	}

	var vp Viewport
	switch err := l.Assign("viewport", &vp); {
	case err == nil:
		cfg.Viewport = &vp
	case !errors.Is(err, ErrValueNotFound):
		return Config{}, err
	}

	var pretty bool
	switch err := l.Assign("pretty", &pretty); {
	case err == nil:
		cfg.Pretty = &pretty
	case !errors.Is(err, ErrValueNotFound):
		return Config{}, err
	}
	return cfg, nil
}

// Load is NewLoader followed by Config. With no paths it returns Default.
func Load(paths ...string) (Config, error) {
	l, err := NewLoader(paths...)
	if err != nil {
		return Config{}, err
	}
	return l.Config()
}
