package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"

	"github.com/ochairo/wokwikit/internal/domain/entities"
)

const version = "2.0.0"

// Process exit codes. Cancellation is distinguished from failure so
// scripted callers can tell an interrupted run from a broken one.
const (
	exitOK        = 0
	exitFailure   = 1
	exitUsage     = 2
	exitCancelled = 130
)

// errNothingToDo marks runs that never attempted an operation (missing
// input rather than a failed attempt).
var errNothingToDo = errors.New("nothing to do")

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(exitUsage)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	command := os.Args[1]

	// Dispatch to subcommand
	switch command {
	case "setup", "scan", "config":
		err = runSetup(ctx, os.Args[2:])
	case "diagram":
		err = runDiagram(ctx, os.Args[2:])
	case "version", "--version":
		printVersion()
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(exitUsage)
	}

	os.Exit(exitCode(ctx, err))
}

func exitCode(ctx context.Context, err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, entities.ErrSelectionCancelled) || errors.Is(ctx.Err(), context.Canceled):
		fmt.Fprintln(os.Stderr, "Cancelled")
		return exitCancelled
	case errors.Is(err, errNothingToDo):
		return exitUsage
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitFailure
	}
}

func printUsage() {
	fmt.Println(`wokwikit - simulator wiring toolkit for embedded firmware projects

Usage:
  wokwikit <command> [options]

Commands:
  setup    Scan firmware build outputs and write wokwi.toml
  scan     Alias for setup
  config   Alias for setup
  diagram  Download a project's diagram.json (from URL, ID, or url.txt)
  version  Show version information
  help     Show this help

Use "wokwikit <command> --help" for more information about a command.`)
}

func printVersion() {
	fmt.Printf("wokwikit %s (%s/%s)\n\n", version, runtime.GOOS, runtime.GOARCH)
	fmt.Println(`Components:
  - Universal firmware scanner (STM32CubeIDE, PlatformIO)
  - Diagram downloader (wokwi.com projects)`)
}
