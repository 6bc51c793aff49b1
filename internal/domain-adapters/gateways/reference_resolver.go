package gateways

import (
	"fmt"
	"os"
	"strings"

	"github.com/ochairo/wokwikit/internal/domain/entities"
)

// ReferenceResolver normalizes a user-supplied project reference into its
// canonical URL form. It accepts a full project URL, a bare numeric ID,
// or the path of a local file containing either. It never touches the
// network.
type ReferenceResolver struct{}

// NewReferenceResolver creates a new reference resolver
func NewReferenceResolver() *ReferenceResolver {
	return &ReferenceResolver{}
}

// Resolve returns the canonical reference for input. Resolution is
// idempotent on already-canonical URLs. A file is read at most once: its
// trimmed content must itself be a URL or a numeric ID, not another path.
func (r *ReferenceResolver) Resolve(input string) (entities.ProjectReference, error) {
	input = strings.TrimSpace(input)

	if ref, ok := normalize(input); ok {
		return ref, nil
	}

	// Neither URL nor ID: treat as a path to a file holding one
	data, err := os.ReadFile(input) //nolint:gosec // G304: user-supplied reference file
	if err != nil {
		if os.IsNotExist(err) {
			return entities.ProjectReference{}, fmt.Errorf("%w: %s", entities.ErrFileNotFound, input)
		}
		return entities.ProjectReference{}, fmt.Errorf("reading reference file %s: %w", input, err)
	}

	content := strings.TrimSpace(string(data))
	if ref, ok := normalize(content); ok {
		return ref, nil
	}
	return entities.ProjectReference{}, fmt.Errorf("%w: %s holds neither a project URL nor a numeric ID", entities.ErrInvalidReference, input)
}

// normalize recognizes the canonical URL prefix and bare numeric IDs.
func normalize(s string) (entities.ProjectReference, bool) {
	if strings.HasPrefix(s, entities.CanonicalProjectPrefix) {
		return entities.ProjectReference{URL: s}, true
	}
	if isNumeric(s) {
		return entities.ProjectReference{URL: entities.CanonicalProjectPrefix + s}, true
	}
	return entities.ProjectReference{}, false
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
