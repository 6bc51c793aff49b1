package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ochairo/wokwikit/internal/domain/entities"
)

func group(dir string, binMod, elfMod time.Time) entities.FirmwareGroup {
	return entities.FirmwareGroup{
		Dir:     dir,
		Base:    "app",
		Primary: firmwareFile(dir, "app", entities.KindPrimaryImage, binMod),
		Debug:   firmwareFile(dir, "app", entities.KindDebugImage, elfMod),
	}
}

func TestLatest(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		groups  []entities.FirmwareGroup
		wantDir string
	}{
		{
			name: "later elf wins over later bin",
			groups: []entities.FirmwareGroup{
				group("old", base, base),
				group("new", base, base.Add(time.Hour)),
			},
			wantDir: "new",
		},
		{
			name: "group age uses the later of the two files",
			groups: []entities.FirmwareGroup{
				group("a", base.Add(2*time.Hour), base),
				group("b", base, base.Add(time.Hour)),
			},
			wantDir: "a",
		},
		{
			name: "exact tie falls to first in order",
			groups: []entities.FirmwareGroup{
				group("first", base, base),
				group("second", base, base),
			},
			wantDir: "first",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Latest(tt.groups)
			if got == nil {
				t.Fatal("Latest() returned nil")
			}
			if got.Dir != tt.wantDir {
				t.Errorf("Latest() picked %s, want %s", got.Dir, tt.wantDir)
			}
		})
	}
}

func TestLatest_Empty(t *testing.T) {
	if got := Latest(nil); got != nil {
		t.Errorf("Latest(nil) = %v, want nil", got)
	}
}

type fixedChooser struct {
	idx int
	err error
}

func (c fixedChooser) Choose(_ context.Context, groups []entities.FirmwareGroup) (*entities.FirmwareGroup, error) {
	if c.err != nil {
		return nil, c.err
	}
	return &groups[c.idx], nil
}

func TestSelect(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()

	t.Run("zero groups fails", func(t *testing.T) {
		_, err := Select(ctx, nil, fixedChooser{})
		if !errors.Is(err, entities.ErrNoCompleteGroups) {
			t.Errorf("Select() error = %v, want ErrNoCompleteGroups", err)
		}
	})

	t.Run("single group skips the chooser", func(t *testing.T) {
		groups := []entities.FirmwareGroup{group("only", base, base)}
		got, err := Select(ctx, groups, fixedChooser{err: errors.New("chooser must not run")})
		if err != nil {
			t.Fatalf("Select() error = %v", err)
		}
		if got.Dir != "only" {
			t.Errorf("Select() picked %s, want only", got.Dir)
		}
	})

	t.Run("multiple groups delegate to chooser", func(t *testing.T) {
		groups := []entities.FirmwareGroup{group("a", base, base), group("b", base, base)}
		got, err := Select(ctx, groups, fixedChooser{idx: 1})
		if err != nil {
			t.Fatalf("Select() error = %v", err)
		}
		if got.Dir != "b" {
			t.Errorf("Select() picked %s, want b", got.Dir)
		}
	})

	t.Run("chooser cancellation propagates", func(t *testing.T) {
		groups := []entities.FirmwareGroup{group("a", base, base), group("b", base, base)}
		_, err := Select(ctx, groups, fixedChooser{err: entities.ErrSelectionCancelled})
		if !errors.Is(err, entities.ErrSelectionCancelled) {
			t.Errorf("Select() error = %v, want ErrSelectionCancelled", err)
		}
	})
}
