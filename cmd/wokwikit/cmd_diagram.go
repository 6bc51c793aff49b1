package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/ochairo/wokwikit/internal/domain-adapters/gateways"
	"github.com/ochairo/wokwikit/internal/external-adapters/yaml"
	"github.com/ochairo/wokwikit/internal/external-adapters/zaplog"
)

// defaultReferenceFile is consulted when no reference argument is given.
const defaultReferenceFile = "url.txt"

func runDiagram(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("diagram", flag.ExitOnError)
	verbose := fs.Bool("verbose", false, "Enable debug logging")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: wokwikit diagram [options] [url|id|file]

Download a hosted project's archive and extract only diagram.json into the
current directory. The reference may be a full project URL, a bare numeric
project ID, or the path of a file containing one. Without an argument,
url.txt in the current directory is used.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  wokwikit diagram https://wokwi.com/projects/443059386202798081
  wokwikit diagram 443059386202798081
  wokwikit diagram ./url.txt
`)
	}

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parsing flags: %w", err)
	}

	logger, err := zaplog.New(*verbose)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer logger.Sync()

	settings, err := yaml.LoadSettings(yaml.SettingsFileName)
	if err != nil {
		return err
	}

	input := fs.Arg(0)
	if input == "" {
		if _, err := os.Stat(defaultReferenceFile); err != nil {
			fmt.Fprintf(os.Stderr, "No %s found in current directory\n", defaultReferenceFile)
			fmt.Fprintln(os.Stderr, "Usage: wokwikit diagram <url|id|file>")
			return errNothingToDo
		}
		fmt.Printf("📁 Using default file: %s\n", defaultReferenceFile)
		input = defaultReferenceFile
	}

	resolver := gateways.NewReferenceResolver()
	ref, err := resolver.Resolve(input)
	if err != nil {
		return err
	}
	fmt.Printf("🎯 Target: %s\n", ref)

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolving working directory: %w", err)
	}

	downloader := gateways.NewDiagramDownloader(logger,
		gateways.WithTimeout(settings.Timeout),
		gateways.WithEndpoints(settings.Endpoints),
	)

	fmt.Println("🌐 Downloading project archive...")
	summary, err := downloader.Fetch(ctx, ref, workDir)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Extracted %s (%d bytes, sha256 %s)\n", gateways.DiagramFileName, summary.Bytes, summary.SHA256)
	if summary.Parts > 0 || summary.Connections > 0 {
		fmt.Printf("  Parts: %d, Connections: %d\n", summary.Parts, summary.Connections)
	}
	return nil
}
