package gateways

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ochairo/wokwikit/internal/domain/entities"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte("x"), 0600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestFirmwareScanner_Scan(t *testing.T) {
	tests := []struct {
		name  string
		files []string
		want  []string // root-relative paths expected in the result
	}{
		{
			name: "empty tree",
		},
		{
			name:  "stm32 debug layout",
			files: []string{"Debug/app.bin", "Debug/app.elf"},
			want:  []string{"Debug/app.bin", "Debug/app.elf"},
		},
		{
			name:  "platformio layout",
			files: []string{".pio/build/esp32/firmware.bin", ".pio/build/esp32/firmware.elf"},
			want:  []string{".pio/build/esp32/firmware.bin", ".pio/build/esp32/firmware.elf"},
		},
		{
			name:  "nested debug directory",
			files: []string{"fw/Debug/out/app.bin"},
			want:  []string{"fw/Debug/out/app.bin"},
		},
		{
			name:  "files outside build conventions are ignored",
			files: []string{"src/app.bin", "doc/app.elf", "Release/app.bin"},
		},
		{
			name:  "other extensions are ignored",
			files: []string{"Debug/app.hex", "Debug/app.map", "build/app.o"},
		},
		{
			name:  "extension match is case-insensitive",
			files: []string{"Debug/APP.BIN"},
			want:  []string{"Debug/APP.BIN"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			for _, f := range tt.files {
				writeFile(t, filepath.Join(root, filepath.FromSlash(f)))
			}

			scanner := NewFirmwareScanner(nil)
			got := scanner.Scan(root)

			gotSet := make(map[string]bool, len(got))
			for _, f := range got {
				rel, err := filepath.Rel(root, f.Path)
				if err != nil {
					t.Fatalf("Rel(%s): %v", f.Path, err)
				}
				gotSet[filepath.ToSlash(rel)] = true
			}

			if len(got) != len(tt.want) {
				t.Fatalf("Scan() found %d files %v, want %d", len(got), gotSet, len(tt.want))
			}
			for _, w := range tt.want {
				if !gotSet[w] {
					t.Errorf("Scan() missing %s, got %v", w, gotSet)
				}
			}
		})
	}
}

func TestFirmwareScanner_Metadata(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "Debug", "app.bin")
	writeFile(t, path)

	got := NewFirmwareScanner(nil).Scan(root)
	if len(got) != 1 {
		t.Fatalf("Scan() found %d files, want 1", len(got))
	}

	f := got[0]
	if f.Kind != entities.KindPrimaryImage {
		t.Errorf("Kind = %s, want primary", f.Kind)
	}
	if f.Base != "app" {
		t.Errorf("Base = %q, want app", f.Base)
	}
	if f.Dir != filepath.Dir(path) {
		t.Errorf("Dir = %q, want %q", f.Dir, filepath.Dir(path))
	}
	if f.Size != 1 {
		t.Errorf("Size = %d, want 1", f.Size)
	}
	if f.ModTime.IsZero() {
		t.Error("ModTime is zero")
	}
}

func TestFirmwareScanner_MissingRoot(t *testing.T) {
	got := NewFirmwareScanner(nil).Scan(filepath.Join(t.TempDir(), "nope"))
	if len(got) != 0 {
		t.Errorf("Scan() on missing root found %d files, want 0", len(got))
	}
}

func TestProjectLocator_Locate(t *testing.T) {
	t.Run("stm32 marker in ancestor", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "board.ioc"))
		nested := filepath.Join(root, "Core", "Src")
		if err := os.MkdirAll(nested, 0750); err != nil {
			t.Fatal(err)
		}

		dir, kind, err := NewProjectLocator().Locate(nested)
		if err != nil {
			t.Fatalf("Locate() error = %v", err)
		}
		if kind != entities.ProjectSTM32 {
			t.Errorf("kind = %s, want STM32CubeIDE", kind)
		}
		if resolved, _ := filepath.EvalSymlinks(dir); resolved != mustEval(t, root) {
			t.Errorf("dir = %s, want %s", dir, root)
		}
	})

	t.Run("platformio marker", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "platformio.ini"))

		_, kind, err := NewProjectLocator().Locate(root)
		if err != nil {
			t.Fatalf("Locate() error = %v", err)
		}
		if kind != entities.ProjectPlatformIO {
			t.Errorf("kind = %s, want PlatformIO", kind)
		}
	})

	t.Run("no marker falls back with ErrNoProjectRoot", func(t *testing.T) {
		root := t.TempDir()
		dir, kind, err := NewProjectLocator().Locate(root)
		if err == nil {
			t.Skip("an ancestor of TempDir carries a project marker on this host")
		}
		if dir != root {
			t.Errorf("dir = %s, want fallback %s", dir, root)
		}
		if kind != entities.ProjectUnknown {
			t.Errorf("kind = %s, want Unknown", kind)
		}
	})
}

func mustEval(t *testing.T, path string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		t.Fatalf("EvalSymlinks(%s): %v", path, err)
	}
	return resolved
}
