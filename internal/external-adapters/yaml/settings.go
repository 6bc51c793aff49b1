// Package yaml provides YAML-based tool settings loading.
package yaml

import (
	"fmt"
	"os"
	"time"

	"github.com/ochairo/wokwikit/internal/domain-adapters/gateways"
	"gopkg.in/yaml.v3"
)

// SettingsFileName is the optional per-project settings file.
const SettingsFileName = ".wokwikit.yml"

// yamlSettings represents the raw YAML structure
type yamlSettings struct {
	Root           string   `yaml:"root"`
	Select         string   `yaml:"select"`
	TimeoutSeconds int      `yaml:"timeout_seconds"`
	Endpoints      []string `yaml:"endpoints"`
}

// Settings holds per-project defaults for both commands. Everything is
// optional; command-line flags win over the file.
type Settings struct {
	// Root overrides the scan root for setup
	Root string
	// Select is the default selection policy: "prompt" or "latest"
	Select string
	// Timeout bounds each candidate download request
	Timeout time.Duration
	// Endpoints overrides the candidate download URL templates
	Endpoints []string
}

// Defaults returns the settings used when no file is present.
func Defaults() *Settings {
	return &Settings{
		Select:  "prompt",
		Timeout: gateways.DefaultDownloadTimeout,
	}
}

// LoadSettings reads the settings file at path. A missing file is not an
// error: defaults are returned.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: settings path is fixed relative to the working directory
	if err != nil {
		if os.IsNotExist(err) {
			return Defaults(), nil
		}
		return nil, fmt.Errorf("failed to read settings file %s: %w", path, err)
	}
	return ParseSettings(data)
}

// ParseSettings parses YAML bytes into Settings.
func ParseSettings(data []byte) (*Settings, error) {
	var raw yamlSettings
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse settings YAML: %w", err)
	}

	s := Defaults()
	if raw.Root != "" {
		s.Root = raw.Root
	}
	if raw.Select != "" {
		if raw.Select != "prompt" && raw.Select != "latest" {
			return nil, fmt.Errorf("invalid select policy %q (want prompt or latest)", raw.Select)
		}
		s.Select = raw.Select
	}
	if raw.TimeoutSeconds < 0 {
		return nil, fmt.Errorf("timeout_seconds must not be negative")
	}
	if raw.TimeoutSeconds > 0 {
		s.Timeout = time.Duration(raw.TimeoutSeconds) * time.Second
	}
	if len(raw.Endpoints) > 0 {
		s.Endpoints = raw.Endpoints
	}
	return s, nil
}
