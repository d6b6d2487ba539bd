package main

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/grindlemire/go-carbon/internal/manifest"
	"golang.org/x/sync/errgroup"
)

// runCheck implements the check subcommand.
// It loads each manifest and compiles its expressions without running a
// frame. Files are checked concurrently; every failure is reported.
func runCheck(args []string, stdout io.Writer) error {
	verbose := false
	var paths []string

	// Parse arguments
	for _, arg := range args {
		if arg == "-v" || arg == "--verbose" {
			verbose = true
		} else {
			paths = append(paths, arg)
		}
	}
	if len(paths) == 0 {
		return fmt.Errorf("no manifests given")
	}

	errs := make([]error, len(paths))
	var nodes atomic.Int64
	var g errgroup.Group
	g.SetLimit(8)
	for i, path := range paths {
		g.Go(func() error {
			n, err := checkFile(path)
			errs[i] = err
			nodes.Add(int64(n))
			return nil
		})
	}
	_ = g.Wait()

	var errorCount int
	for i, err := range errs {
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			errorCount++
			continue
		}
		if verbose {
			fmt.Fprintf(stdout, "%s: ok\n", paths[i])
		}
	}

	if errorCount > 0 {
		return fmt.Errorf("%d file(s) had errors", errorCount)
	}
	if verbose {
		fmt.Fprintf(stdout, "All %d file(s) passed checks (%d nodes)\n", len(paths), nodes.Load())
	}
	return nil
}

// checkFile loads and builds one manifest and returns its node count.
func checkFile(path string) (int, error) {
	m, err := manifest.LoadFile(path)
	if err != nil {
		return 0, err
	}
	tree, err := m.Build()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	return tree.Registry.Len(), nil
}
