package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/ochairo/wokwikit/internal/domain-adapters/gateways"
	"github.com/ochairo/wokwikit/internal/domain/entities"
	"github.com/ochairo/wokwikit/internal/domain/services"
	"github.com/ochairo/wokwikit/internal/external-adapters/wokwiconfig"
	"github.com/ochairo/wokwikit/internal/external-adapters/yaml"
	"github.com/ochairo/wokwikit/internal/external-adapters/zaplog"
)

func runSetup(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("setup", flag.ExitOnError)
	var (
		root      = fs.String("root", "", "Scan root directory (default: detected project root)")
		latest    = fs.Bool("latest", false, "Pick the most recently built group without prompting")
		selectIdx = fs.Int("select", 0, "Pick group N without prompting (1-based)")
		verbose   = fs.Bool("verbose", false, "Enable debug logging")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: wokwikit setup [options]

Scan the project tree for paired firmware build outputs (.bin + .elf) and
write wokwi.toml in the current directory. Only complete pairs are offered;
a .bin without its .elf (or vice versa) is skipped silently.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  wokwikit setup            # scan, prompt if several groups are found
  wokwikit setup --latest   # scriptable: newest build wins
  wokwikit setup --select 2 # scriptable: fixed choice
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

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolving working directory: %w", err)
	}

	settings, err := yaml.LoadSettings(yaml.SettingsFileName)
	if err != nil {
		return err
	}

	scanRoot := *root
	if scanRoot == "" {
		scanRoot = settings.Root
	}
	projectKind := entities.ProjectUnknown
	if scanRoot == "" {
		var rootErr error
		scanRoot, projectKind, rootErr = gateways.NewProjectLocator().Locate(workDir)
		if errors.Is(rootErr, entities.ErrNoProjectRoot) {
			fmt.Println("⚠ Project root not found, scanning from current directory")
		}
	}

	fmt.Printf("📂 Project: %s\n", scanRoot)
	fmt.Printf("🏷  Type: %s\n", projectKind)
	fmt.Println("\n🔍 Scanning firmware files...")

	scanner := gateways.NewFirmwareScanner(logger)
	files := scanner.Scan(scanRoot)
	if len(files) == 0 {
		return fmt.Errorf(`%w under %s

Suggestions:
  - STM32: build the project in STM32CubeIDE
  - ESP32: run 'pio run' in PlatformIO`, entities.ErrNoFirmwareFiles, scanRoot)
	}
	fmt.Printf("✓ Found %d firmware files\n", len(files))

	groups, dups := services.Group(files)
	for _, d := range dups {
		fmt.Printf("⚠ %s\n", d)
	}
	if len(groups) == 0 {
		var listing strings.Builder
		for _, f := range files {
			fmt.Fprintf(&listing, "\n  %s", f.Path)
		}
		return fmt.Errorf("%w; files found:%s", entities.ErrNoCompleteGroups, listing.String())
	}
	fmt.Printf("✓ Found %d complete firmware groups\n", len(groups))

	group, err := services.Select(ctx, groups, setupChooser(*latest, *selectIdx, settings))
	if err != nil {
		return err
	}

	fmt.Printf("\n✓ Selected: %s\n", group.Base)
	fmt.Printf("  BIN: %s\n", group.Primary.Path)
	fmt.Printf("  ELF: %s\n", group.Debug.Path)

	writer := wokwiconfig.NewWriter()
	outPath, err := writer.Write(group, workDir)
	if err != nil {
		return err
	}
	fmt.Printf("\n✓ Updated: %s\n", outPath)

	echoConfig(outPath)
	return nil
}

// setupChooser picks the selection mechanism: explicit index, automatic
// latest, or interactive prompt. Flags win over the settings file.
func setupChooser(latest bool, selectIdx int, settings *yaml.Settings) services.Chooser {
	switch {
	case selectIdx > 0:
		return gateways.IndexChooser{Index: selectIdx}
	case latest || settings.Select == "latest":
		return gateways.AutoChooser{}
	default:
		return gateways.PromptChooser{In: os.Stdin, Out: os.Stdout}
	}
}

// echoConfig prints the generated file back, line-numbered like a build log.
func echoConfig(path string) {
	f, err := os.Open(path) //nolint:gosec // G304: path was produced by the writer above
	if err != nil {
		return
	}
	//nolint:errcheck // Defer close on read-only file
	defer f.Close()

	fmt.Printf("\n📄 %s content:\n", wokwiconfig.FileName)
	scanner := bufio.NewScanner(f)
	for n := 1; scanner.Scan(); n++ {
		fmt.Printf("%2d: %s\n", n, scanner.Text())
	}
}
