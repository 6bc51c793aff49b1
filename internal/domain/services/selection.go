package services

import (
	"context"
	"fmt"

	"github.com/ochairo/wokwikit/internal/domain/entities"
)

// Chooser resolves one firmware group out of several candidates.
// Implementations gather the choice however they like (prompt, flag,
// settings file); the automatic tie-break rule itself lives in Latest.
type Chooser interface {
	Choose(ctx context.Context, groups []entities.FirmwareGroup) (*entities.FirmwareGroup, error)
}

// Latest picks the group whose later modification time (of its two files)
// is the maximum across all groups. Exact timestamp ties resolve to the
// earlier group in iteration order; that ordering is deterministic for a
// given scan but not guaranteed to mean "most recent wins".
func Latest(groups []entities.FirmwareGroup) *entities.FirmwareGroup {
	if len(groups) == 0 {
		return nil
	}

	best := 0
	for i := 1; i < len(groups); i++ {
		if groups[i].LastModified().After(groups[best].LastModified()) {
			best = i
		}
	}
	return &groups[best]
}

// Select resolves exactly one group. Zero candidates fail, a single
// candidate is returned without interaction, and multiple candidates are
// delegated to the chooser.
func Select(ctx context.Context, groups []entities.FirmwareGroup, chooser Chooser) (*entities.FirmwareGroup, error) {
	switch len(groups) {
	case 0:
		return nil, entities.ErrNoCompleteGroups
	case 1:
		return &groups[0], nil
	}

	selected, err := chooser.Choose(ctx, groups)
	if err != nil {
		return nil, fmt.Errorf("resolving firmware group: %w", err)
	}
	return selected, nil
}
