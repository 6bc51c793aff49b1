// Package entities defines core domain models and data structures.
package entities

import (
	"path/filepath"
	"time"
)

// ImageKind classifies a firmware build output by its role.
type ImageKind string

// Firmware image categories recognized by the scanner
const (
	// KindPrimaryImage is the flat binary flashed into the simulator (.bin)
	KindPrimaryImage ImageKind = "primary"
	// KindDebugImage is the symbol-bearing counterpart (.elf)
	KindDebugImage ImageKind = "debug"
)

// FirmwareFile is a single build output discovered on disk.
// Immutable once discovered.
type FirmwareFile struct {
	Path    string
	Kind    ImageKind
	Dir     string
	Base    string // file name without extension
	ModTime time.Time
	Size    int64
}

// Name returns the file name including extension.
func (f FirmwareFile) Name() string {
	return filepath.Base(f.Path)
}

// FirmwareGroup is a matched pair of primary and debug images sharing a
// directory and base name. Groups are transient and rebuilt on every scan.
type FirmwareGroup struct {
	Dir     string
	Base    string
	Primary FirmwareFile
	Debug   FirmwareFile
}

// Key identifies the group within one scan.
func (g FirmwareGroup) Key() string {
	return filepath.Join(g.Dir, g.Base)
}

// LastModified returns the later of the two files' modification times.
// Used by the automatic selection rule.
func (g FirmwareGroup) LastModified() time.Time {
	if g.Debug.ModTime.After(g.Primary.ModTime) {
		return g.Debug.ModTime
	}
	return g.Primary.ModTime
}

// ProjectKind identifies the build environment a project root belongs to.
type ProjectKind string

// Supported project layouts
const (
	ProjectSTM32      ProjectKind = "STM32CubeIDE"
	ProjectPlatformIO ProjectKind = "PlatformIO"
	ProjectUnknown    ProjectKind = "Unknown"
)
