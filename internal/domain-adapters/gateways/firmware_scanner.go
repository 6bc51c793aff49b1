// Package gateways provides adapters around the filesystem and the
// hosted simulator service.
package gateways

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ochairo/wokwikit/internal/domain/entities"
	"github.com/ochairo/wokwikit/internal/domain/interfaces"
)

// Build-output directory conventions recognized by the scanner.
// "Debug" covers STM32CubeIDE projects, "build" covers generic build
// trees and PlatformIO's .pio/build layout.
var buildDirNames = map[string]bool{
	"Debug": true,
	"build": true,
}

// FirmwareScanner locates firmware build outputs under a root directory.
type FirmwareScanner struct {
	logger interfaces.Logger
}

// NewFirmwareScanner creates a new firmware scanner
func NewFirmwareScanner(logger interfaces.Logger) *FirmwareScanner {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	return &FirmwareScanner{logger: logger}
}

// Scan walks root recursively and returns every .bin and .elf file that
// lives under a recognized build-output directory. It never fails on an
// empty result: unreadable subtrees are skipped and no matches simply
// yields an empty slice. Symlinked directories are not descended into,
// which guards against filesystem cycles.
func (s *FirmwareScanner) Scan(root string) []entities.FirmwareFile {
	var found []entities.FirmwareFile

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			s.logger.Debug("skipping unreadable path", interfaces.F("path", path), interfaces.F("error", err))
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			return nil
		}

		kind, ok := imageKind(path)
		if !ok {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil || !underBuildDir(rel) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}

		ext := filepath.Ext(path)
		found = append(found, entities.FirmwareFile{
			Path:    path,
			Kind:    kind,
			Dir:     filepath.Dir(path),
			Base:    strings.TrimSuffix(filepath.Base(path), ext),
			ModTime: info.ModTime(),
			Size:    info.Size(),
		})
		return nil
	})
	if err != nil {
		// WalkDir only fails here if root itself is unreadable
		s.logger.Warn("scan root not readable", interfaces.F("root", root), interfaces.F("error", err))
	}

	return found
}

// imageKind maps a file extension to its firmware image category.
func imageKind(path string) (entities.ImageKind, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".bin":
		return entities.KindPrimaryImage, true
	case ".elf":
		return entities.KindDebugImage, true
	}
	return "", false
}

// underBuildDir reports whether any ancestor directory segment of the
// root-relative path is a recognized build-output directory.
func underBuildDir(rel string) bool {
	dir := filepath.Dir(rel)
	for _, seg := range strings.Split(dir, string(filepath.Separator)) {
		if buildDirNames[seg] {
			return true
		}
	}
	return false
}

// ProjectLocator discovers the project root for a working directory.
type ProjectLocator struct{}

// NewProjectLocator creates a new project locator
func NewProjectLocator() *ProjectLocator {
	return &ProjectLocator{}
}

// Locate walks from dir upward looking for an STM32CubeIDE project
// (*.ioc file) or a PlatformIO project (platformio.ini). When neither is
// found it returns dir itself with ErrNoProjectRoot; callers treat that
// as a warning and scan from the working directory.
func (l *ProjectLocator) Locate(dir string) (string, entities.ProjectKind, error) {
	current, err := filepath.Abs(dir)
	if err != nil {
		return dir, entities.ProjectUnknown, entities.ErrNoProjectRoot
	}

	for {
		if matches, _ := filepath.Glob(filepath.Join(current, "*.ioc")); len(matches) > 0 {
			return current, entities.ProjectSTM32, nil
		}
		if _, err := os.Stat(filepath.Join(current, "platformio.ini")); err == nil {
			return current, entities.ProjectPlatformIO, nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			return dir, entities.ProjectUnknown, entities.ErrNoProjectRoot
		}
		current = parent
	}
}
