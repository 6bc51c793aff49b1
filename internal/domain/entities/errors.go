package entities

import (
	"errors"
	"fmt"
)

// Sentinel errors for the two command pipelines. Callers classify with
// errors.Is and map the kind to an exit code; messages shown to the user
// are produced where the failure happens.
var (
	// ErrNoProjectRoot is non-fatal: scanning falls back to the working directory.
	ErrNoProjectRoot = errors.New("no project root found")

	ErrNoFirmwareFiles    = errors.New("no firmware files found")
	ErrNoCompleteGroups   = errors.New("no complete firmware groups found")
	ErrSelectionCancelled = errors.New("selection cancelled")
	ErrConfigWriteFailed  = errors.New("config write failed")

	ErrInvalidReference    = errors.New("invalid project reference")
	ErrFileNotFound        = errors.New("file not found")
	ErrDownloadFailed      = errors.New("download failed")
	ErrArchiveCorrupt      = errors.New("archive corrupt")
	ErrTargetEntryNotFound = errors.New("target entry not found in archive")
)

// Stage names a phase of the diagram retrieval pipeline.
type Stage string

// Retrieval pipeline stages
const (
	StageResolved    Stage = "resolved"
	StageDownloading Stage = "downloading"
	StageExtracting  Stage = "extracting"
	StageDone        Stage = "done"
)

// PipelineError records where in the retrieval pipeline a failure occurred.
type PipelineError struct {
	Stage Stage
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// DuplicateArtifact reports a second file of the same category mapping to
// an already-populated group slot. The first file wins; the duplicate is
// surfaced instead of silently overwriting.
type DuplicateArtifact struct {
	Kind ImageKind
	Kept string
	Dup  string
}

func (d DuplicateArtifact) String() string {
	return fmt.Sprintf("duplicate %s image %s (keeping %s)", d.Kind, d.Dup, d.Kept)
}
