// Package services holds pure domain logic for firmware discovery:
// pairing scanned files into groups and resolving one group from many.
package services

import (
	"sort"

	"github.com/ochairo/wokwikit/internal/domain/entities"
)

// Group partitions scanned firmware files by (directory, base name) and
// returns the complete groups: exactly one primary image paired with one
// debug image. Incomplete groups are dropped without diagnostics; callers
// that care about near-matches must inspect the scan results themselves.
//
// A second file of the same category landing on an already-populated slot
// does not replace the first: the duplicate is reported instead, since
// picking silently would guess at the caller's intent.
func Group(files []entities.FirmwareFile) ([]entities.FirmwareGroup, []entities.DuplicateArtifact) {
	type slot struct {
		primary *entities.FirmwareFile
		debug   *entities.FirmwareFile
	}

	slots := make(map[string]*slot)
	order := make([]string, 0, len(files))
	var dups []entities.DuplicateArtifact

	for i := range files {
		f := files[i]
		key := f.Dir + "\x00" + f.Base
		s, ok := slots[key]
		if !ok {
			s = &slot{}
			slots[key] = s
			order = append(order, key)
		}

		switch f.Kind {
		case entities.KindPrimaryImage:
			if s.primary != nil {
				dups = append(dups, entities.DuplicateArtifact{Kind: f.Kind, Kept: s.primary.Path, Dup: f.Path})
				continue
			}
			s.primary = &files[i]
		case entities.KindDebugImage:
			if s.debug != nil {
				dups = append(dups, entities.DuplicateArtifact{Kind: f.Kind, Kept: s.debug.Path, Dup: f.Path})
				continue
			}
			s.debug = &files[i]
		}
	}

	groups := make([]entities.FirmwareGroup, 0, len(order))
	for _, key := range order {
		s := slots[key]
		if s.primary == nil || s.debug == nil {
			continue
		}
		groups = append(groups, entities.FirmwareGroup{
			Dir:     s.primary.Dir,
			Base:    s.primary.Base,
			Primary: *s.primary,
			Debug:   *s.debug,
		})
	}

	// Deterministic order regardless of scan order
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Dir != groups[j].Dir {
			return groups[i].Dir < groups[j].Dir
		}
		return groups[i].Base < groups[j].Base
	})

	return groups, dups
}
