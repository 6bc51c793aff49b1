package wokwiconfig

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Document is the parsed [wokwi] section of a configuration file.
type Document struct {
	Version  int
	Firmware string
	Elf      string
}

// Read parses the wokwi.toml at path. Only the [wokwi] section is
// understood; the document this package writes is a fixed three-key
// section and nothing more.
func Read(path string) (*Document, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: config path chosen by caller
	if err != nil {
		return nil, err
	}
	return Parse(string(data))
}

// Parse parses configuration content produced by Writer.
func Parse(content string) (*Document, error) {
	doc := &Document{}
	inSection := false

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") {
			inSection = line == "[wokwi]"
			continue
		}
		if !inSection {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.Trim(strings.TrimSpace(value), "'")

		switch key {
		case "version":
			v, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("invalid version %q: %w", value, err)
			}
			doc.Version = v
		case "firmware":
			doc.Firmware = value
		case "elf":
			doc.Elf = value
		}
	}

	if doc.Firmware == "" || doc.Elf == "" {
		return nil, fmt.Errorf("missing firmware or elf entry in [wokwi] section")
	}
	return doc, nil
}
