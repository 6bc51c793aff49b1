package gateways

import (
	"archive/zip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ochairo/wokwikit/internal/domain/entities"
	"github.com/ochairo/wokwikit/internal/domain/interfaces"
)

// DiagramFileName is the archive entry of interest and the fixed output
// name in the working directory.
const DiagramFileName = "diagram.json"

// DefaultDownloadTimeout bounds each candidate request.
const DefaultDownloadTimeout = 30 * time.Second

// DefaultEndpointTemplates are the candidate download URLs, tried in
// order with {id} substituted. The hosted service does not document a
// stable export endpoint, so both API-style and direct-download forms
// are attempted once each.
var DefaultEndpointTemplates = []string{
	"https://wokwi.com/api/projects/{id}/zip",
	"https://wokwi.com/projects/{id}/zip",
	"https://wokwi.com/projects/{id}/download",
	"https://wokwi.com/api/projects/{id}/export/zip",
}

// browserUserAgent satisfies the upstream service's bot mitigation,
// which rejects obviously non-browser clients.
const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// DiagramDownloader retrieves a project archive and extracts its diagram
// definition into a working directory.
type DiagramDownloader struct {
	httpClient *http.Client
	endpoints  []string
	tempDir    string // "" means the OS default
	logger     interfaces.Logger
}

// DownloaderOption customizes a DiagramDownloader.
type DownloaderOption func(*DiagramDownloader)

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) DownloaderOption {
	return func(dl *DiagramDownloader) {
		dl.httpClient.Timeout = d
	}
}

// WithEndpoints overrides the candidate endpoint templates.
func WithEndpoints(templates []string) DownloaderOption {
	return func(dl *DiagramDownloader) {
		if len(templates) > 0 {
			dl.endpoints = templates
		}
	}
}

// WithTempDir places the temporary archive in dir instead of the OS
// temp directory.
func WithTempDir(dir string) DownloaderOption {
	return func(dl *DiagramDownloader) {
		dl.tempDir = dir
	}
}

// NewDiagramDownloader creates a new diagram downloader
func NewDiagramDownloader(logger interfaces.Logger, opts ...DownloaderOption) *DiagramDownloader {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	dl := &DiagramDownloader{
		httpClient: &http.Client{Timeout: DefaultDownloadTimeout},
		endpoints:  DefaultEndpointTemplates,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(dl)
	}
	return dl
}

// Fetch downloads the archive for ref, extracts the diagram definition
// into outDir under its fixed name, and returns an informational summary.
// The temporary archive is removed on every exit path. Errors carry the
// pipeline stage they occurred in.
func (d *DiagramDownloader) Fetch(ctx context.Context, ref entities.ProjectReference, outDir string) (*entities.DiagramSummary, error) {
	projectID := ref.ProjectID()
	if projectID == "" {
		return nil, &entities.PipelineError{Stage: entities.StageResolved, Err: fmt.Errorf("%w: %s has no project ID", entities.ErrInvalidReference, ref)}
	}

	archivePath, err := d.download(ctx, ref, projectID)
	if err != nil {
		return nil, &entities.PipelineError{Stage: entities.StageDownloading, Err: err}
	}
	defer func() {
		if rmErr := os.Remove(archivePath); rmErr != nil && !os.IsNotExist(rmErr) {
			d.logger.Warn("temporary archive not removed", interfaces.F("path", archivePath), interfaces.F("error", rmErr))
		}
	}()

	content, err := extractEntry(archivePath, DiagramFileName)
	if err != nil {
		return nil, &entities.PipelineError{Stage: entities.StageExtracting, Err: err}
	}

	outPath := filepath.Join(outDir, DiagramFileName)
	if err := os.WriteFile(outPath, content, 0644); err != nil { //nolint:gosec // G306: diagram is a shared project file
		return nil, &entities.PipelineError{Stage: entities.StageExtracting, Err: fmt.Errorf("writing %s: %w", outPath, err)}
	}

	return summarize(content), nil
}

// download tries each candidate endpoint once and streams the first
// accepted response body into a temporary archive file. A response is
// accepted only with success status and a zip-like content type.
func (d *DiagramDownloader) download(ctx context.Context, ref entities.ProjectReference, projectID string) (string, error) {
	for _, template := range d.endpoints {
		url := strings.ReplaceAll(template, "{id}", projectID)

		path, err := d.tryCandidate(ctx, url, ref)
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			d.logger.Debug("candidate endpoint rejected", interfaces.F("url", url), interfaces.F("error", err))
			continue
		}
		d.logger.Info("downloaded project archive", interfaces.F("url", url))
		return path, nil
	}
	return "", fmt.Errorf("%w: no candidate endpoint accepted project %s", entities.ErrDownloadFailed, projectID)
}

// tryCandidate issues one request and, if accepted, returns the path of
// the temporary archive holding the body.
func (d *DiagramDownloader) tryCandidate(ctx context.Context, url string, ref entities.ProjectReference) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept", "application/zip, application/octet-stream, */*")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Referer", ref.URL)

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	//nolint:errcheck // Defer close on HTTP response body
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}
	contentType := strings.ToLower(resp.Header.Get("Content-Type"))
	if !strings.Contains(contentType, "zip") && !strings.Contains(contentType, "octet-stream") {
		return "", fmt.Errorf("unexpected content type %q", contentType)
	}

	tmp, err := os.CreateTemp(d.tempDir, "wokwikit-*.zip")
	if err != nil {
		return "", fmt.Errorf("creating temporary archive: %w", err)
	}

	// Stream in fixed-size chunks; the archive is never fully buffered
	buf := make([]byte, 8*1024)
	_, err = io.CopyBuffer(tmp, resp.Body, buf)
	closeErr := tmp.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("writing temporary archive: %w", err)
	}

	return tmp.Name(), nil
}

// extractEntry returns the bytes of the first archive entry whose name
// ends with target. A suffix match, not exact: archives may nest the
// file under a subdirectory.
func extractEntry(archivePath, target string) ([]byte, error) {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entities.ErrArchiveCorrupt, err)
	}
	//nolint:errcheck // Defer close on read-only archive
	defer zr.Close()

	for _, f := range zr.File {
		if !strings.HasSuffix(f.Name, target) {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("opening archive entry %s: %w", f.Name, err)
		}
		content, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return nil, fmt.Errorf("reading archive entry %s: %w", f.Name, err)
		}
		return content, nil
	}
	return nil, fmt.Errorf("%w: %s", entities.ErrTargetEntryNotFound, target)
}

// summarize derives informational counts from the extracted diagram.
// The diagram not being parseable JSON is not a failure.
func summarize(content []byte) *entities.DiagramSummary {
	digest := sha256.Sum256(content)
	summary := &entities.DiagramSummary{
		Bytes:  int64(len(content)),
		SHA256: hex.EncodeToString(digest[:])[:12],
	}

	var diagram struct {
		Parts       []json.RawMessage `json:"parts"`
		Connections []json.RawMessage `json:"connections"`
	}
	if err := json.Unmarshal(content, &diagram); err == nil {
		summary.Parts = len(diagram.Parts)
		summary.Connections = len(diagram.Connections)
	}
	return summary
}
