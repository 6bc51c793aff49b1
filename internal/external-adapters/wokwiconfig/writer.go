// Package wokwiconfig renders and reads the simulator configuration
// document (wokwi.toml) that wires firmware artifacts into the simulator.
package wokwiconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ochairo/wokwikit/internal/domain/entities"
)

// FileName is the fixed configuration file name in the working directory.
const FileName = "wokwi.toml"

// Writer renders a resolved firmware group into wokwi.toml.
type Writer struct{}

// NewWriter creates a new config writer
func NewWriter() *Writer {
	return &Writer{}
}

// Write renders the configuration for group into targetDir, fully
// replacing any existing file. Paths are stored relative to targetDir
// with backslash separators on every platform, so generated configs stay
// diffable across hosts. The write is atomic: a temp file in the same
// directory is renamed over the destination, never leaving a partial
// document behind.
func (w *Writer) Write(group *entities.FirmwareGroup, targetDir string) (string, error) {
	binPath, err := relativePath(targetDir, group.Primary.Path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", entities.ErrConfigWriteFailed, err)
	}
	elfPath, err := relativePath(targetDir, group.Debug.Path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", entities.ErrConfigWriteFailed, err)
	}

	content := render(group, binPath, elfPath)
	outPath := filepath.Join(targetDir, FileName)

	tmp, err := os.CreateTemp(targetDir, ".wokwi-*.toml")
	if err != nil {
		return "", fmt.Errorf("%w: %v", entities.ErrConfigWriteFailed, err)
	}
	_, writeErr := tmp.WriteString(content)
	closeErr := tmp.Close()
	if writeErr == nil {
		writeErr = closeErr
	}
	if writeErr == nil {
		writeErr = os.Rename(tmp.Name(), outPath)
	}
	if writeErr != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("%w: %v", entities.ErrConfigWriteFailed, writeErr)
	}

	return outPath, nil
}

func render(group *entities.FirmwareGroup, binPath, elfPath string) string {
	var b strings.Builder
	b.WriteString("# Wokwi Configuration\n")
	b.WriteString("# Generated by wokwikit\n")
	fmt.Fprintf(&b, "# Firmware: %s (%s bytes)\n", group.Primary.Name(), groupDigits(group.Primary.Size))
	fmt.Fprintf(&b, "# ELF: %s (%s bytes)\n", group.Debug.Name(), groupDigits(group.Debug.Size))
	fmt.Fprintf(&b, "# Build time: %s\n", group.Primary.ModTime.Format(time.ANSIC))
	b.WriteString("\n[wokwi]\nversion = 1\n")
	fmt.Fprintf(&b, "firmware = '%s'\n", binPath)
	fmt.Fprintf(&b, "elf = '%s'\n", elfPath)
	return b.String()
}

// relativePath computes the path of target relative to fromDir with all
// separators normalized to backslash.
func relativePath(fromDir, target string) (string, error) {
	rel, err := filepath.Rel(fromDir, target)
	if err != nil {
		return "", err
	}
	rel = strings.ReplaceAll(rel, string(filepath.Separator), `\`)
	return strings.ReplaceAll(rel, "/", `\`), nil
}

// groupDigits formats n with thousands separators (12345 -> "12,345").
func groupDigits(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
