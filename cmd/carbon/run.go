package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	carbon "github.com/grindlemire/go-carbon"
	"github.com/grindlemire/go-carbon/internal/config"
	"github.com/grindlemire/go-carbon/internal/debug"
	"github.com/grindlemire/go-carbon/internal/manifest"
	"github.com/mattn/go-isatty"
)

// stringsFlag collects a repeatable string flag.
type stringsFlag []string

func (s *stringsFlag) String() string     { return strings.Join(*s, ",") }
func (s *stringsFlag) Set(v string) error { *s = append(*s, v); return nil }

// runRun implements the run subcommand.
func runRun(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var configs stringsFlag
	fs.Var(&configs, "config", "CUE config file")
	frames := fs.Int("frames", -1, "number of frames to run")
	pretty := fs.Bool("pretty", false, "indent JSON output")
	compact := fs.Bool("compact", false, "never indent JSON output")
	interval := fs.Duration("interval", 0, "run in real time, one frame per interval, until interrupted or -frames is reached")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("run needs exactly one manifest")
	}
	if *pretty && *compact {
		return errors.New("-pretty and -compact are mutually exclusive")
	}

	cfg, err := config.Load(configs...)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *frames >= 0 {
		cfg.Frames = *frames
	}

	if err := setupLogging(cfg, stderr); err != nil {
		return err
	}
	defer debug.Close()

	m, err := manifest.LoadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	tree, err := m.Build()
	if err != nil {
		return fmt.Errorf("%s: %w", fs.Arg(0), err)
	}

	indent := !*compact && (*pretty || usePretty(cfg, stdout))
	opts := []carbon.Option{
		carbon.WithEvaluator(tree.Evaluator),
		carbon.WithHost(carbon.NewJSONHost(stdout, indent)),
		carbon.WithLogger(debug.Logger()),
	}
	switch {
	case cfg.Viewport != nil:
		opts = append(opts, carbon.WithViewport(cfg.Viewport.Width, cfg.Viewport.Height))
	case tree.Viewport != nil:
		opts = append(opts, carbon.WithViewport(tree.Viewport.Width, tree.Viewport.Height))
	}
	if !cfg.DeleteMessages {
		opts = append(opts, carbon.WithoutDeleteMessages())
	}

	store := carbon.NewStore()
	opts = append(opts, carbon.WithStore(store))

	e, err := carbon.NewEngine(tree.Registry, tree.Root, opts...)
	if err != nil {
		return err
	}
	debug.Logger().Info("running", "manifest", fs.Arg(0), "frames", cfg.Frames)
	if *interval <= 0 {
		return e.Run(cfg.Frames)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return runLive(ctx, e, store, *interval, cfg.Frames)
}

// runLive renders a frame every interval until ctx is done or, when frames
// is positive, that many frames have run.
func runLive(ctx context.Context, e *carbon.Engine, store *carbon.Store, interval time.Duration, frames int) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	clock := carbon.OnTimer(interval, func() {
		if frames > 0 && e.FramesElapsed() >= uint64(frames) {
			cancel()
			return
		}
		// frames_elapsed changes every frame, so every frame is dirty.
		store.MarkDirty()
	})
	return carbon.NewLoop(e, interval, clock).Run(ctx)
}

// setupLogging sends log records at cfg's level to stderr, plus the debug
// file when one is configured.
func setupLogging(cfg config.Config, stderr io.Writer) error {
	if cfg.DebugLog != "" {
		if err := debug.Init(cfg.DebugLog); err != nil {
			return err
		}
	}
	debug.SetLevel(cfg.Level())
	debug.AddHandler(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.Level()}))
	return nil
}

// usePretty decides indentation when no flag forces it: the config wins,
// otherwise indent only for a terminal.
func usePretty(cfg config.Config, w io.Writer) bool {
	if cfg.Pretty != nil {
		return *cfg.Pretty
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
