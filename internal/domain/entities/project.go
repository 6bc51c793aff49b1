package entities

import "strings"

// CanonicalProjectPrefix is the only recognized URL form for a hosted
// simulator project. Numeric IDs are expanded onto it.
const CanonicalProjectPrefix = "https://wokwi.com/projects/"

// ProjectReference is a canonical identifier for a hosted project,
// always in fully-qualified URL form.
type ProjectReference struct {
	URL string
}

// ProjectID extracts the project identifier from the canonical URL.
// It is the path segment immediately after "/projects/"; for URLs that
// carry nothing after the prefix the last segment is used.
func (r ProjectReference) ProjectID() string {
	if _, after, ok := strings.Cut(r.URL, "/projects/"); ok {
		if id, _, _ := strings.Cut(after, "/"); id != "" {
			return id
		}
	}
	trimmed := strings.TrimRight(r.URL, "/")
	return trimmed[strings.LastIndex(trimmed, "/")+1:]
}

// String returns the canonical URL.
func (r ProjectReference) String() string {
	return r.URL
}
