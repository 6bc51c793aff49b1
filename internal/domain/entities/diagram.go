package entities

// DiagramSummary holds informational counts parsed from an extracted
// diagram definition. Purely advisory: a diagram that fails to parse
// still counts as a successful retrieval.
type DiagramSummary struct {
	Parts       int
	Connections int
	Bytes       int64
	SHA256      string // short hex digest of the extracted content
}
