// Package main provides the carbon CLI, which runs render-tree manifests
// headlessly and prints the native messages each frame produces.
//
// Usage:
//
//	carbon run [options] manifest.yaml   Run frames and print messages
//	carbon check manifest.yaml...        Validate manifests
//	carbon help                          Show help
//
// Examples:
//
//	carbon run -frames 3 scene.yaml
//	carbon run -config dev.cue scene.yaml
//	carbon check scenes/*.yaml
package main

import (
	"fmt"
	"os"
)

const version = "0.1.0"

const usage = `carbon - headless runner for carbon render trees

Usage:
  carbon <command> [options] [path...]

Commands:
  run         Run a manifest and print each frame's native messages as JSON
  check       Validate manifests and compile their expressions
  version     Print version information
  help        Show this help message

Run options:
  -config f   CUE config file (repeatable, later files win)
  -frames n   Number of frames to run (overrides config)
  -pretty     Indent JSON output (default: when stdout is a terminal)
  -compact    Never indent JSON output
  -interval d Run in real time, one frame per interval (for example 16ms)

Examples:
  carbon run -frames 3 scene.yaml
  carbon run -config dev.cue -config local.cue scene.yaml
  carbon check scenes/a.yaml scenes/b.yaml
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "run":
		if err := runRun(args, os.Stdout, os.Stderr); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	case "check":
		if err := runCheck(args, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("carbon version %s\n", version)
	case "help", "-h", "--help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", command)
		fmt.Print(usage)
		os.Exit(1)
	}
}
